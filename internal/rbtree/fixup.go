package rbtree

import (
	"github.com/sirupsen/logrus"
)

// InsertCase enumerates the insert fix-up steps.
type InsertCase int

const (
	// InsertUncleRed recolors parent, uncle and grandparent and moves up.
	InsertUncleRed InsertCase = iota
	// InsertInnerGrandchild rotates the parent to turn the node into an
	// outer grandchild, then continues as InsertOuterGrandchild.
	InsertInnerGrandchild
	// InsertOuterGrandchild recolors and rotates the grandparent. Terminal.
	InsertOuterGrandchild

	numInsertCases
)

var insertCaseNames = [numInsertCases]string{
	"uncle-red",
	"inner-grandchild",
	"outer-grandchild",
}

func (c InsertCase) String() string {
	if c < 0 || c >= numInsertCases {
		return "unknown"
	}
	return insertCaseNames[c]
}

// DeleteCase enumerates the delete fix-up steps.
type DeleteCase int

const (
	// DeleteSiblingRed rotates the parent toward the node so that the new
	// sibling is black.
	DeleteSiblingRed DeleteCase = iota
	// DeleteNephewsBlack recolors the sibling red and moves up.
	DeleteNephewsBlack
	// DeleteNearNephewRed rotates the sibling away from the node so that
	// the far nephew becomes red.
	DeleteNearNephewRed
	// DeleteFarNephewRed recolors and rotates the parent. Terminal.
	DeleteFarNephewRed

	numDeleteCases
)

var deleteCaseNames = [numDeleteCases]string{
	"sibling-red",
	"nephews-black",
	"near-nephew-red",
	"far-nephew-red",
}

func (c DeleteCase) String() string {
	if c < 0 || c >= numDeleteCases {
		return "unknown"
	}
	return deleteCaseNames[c]
}

// classifyInsert picks the fix-up step for a red node with a red parent.
// The returned side is the side of the parent under the grandparent.
func (t *Tree[K, V]) classifyInsert(x *Node[K, V]) (InsertCase, side) {
	parent := x.parent
	s := parent.side()
	uncle := parent.parent.link[s.opposite()]

	switch {
	case uncle.color == Red:
		return InsertUncleRed, s
	case x.side() != s:
		return InsertInnerGrandchild, s
	default:
		return InsertOuterGrandchild, s
	}
}

func (t *Tree[K, V]) fixInsert(x *Node[K, V]) {
	for x != t.root && x.parent.color == Red {
		c, s := t.classifyInsert(x)
		t.stats.InsertCases[c]++
		t.trace("insert", c.String(), s, x.key)

		switch c {
		case InsertUncleRed:
			parent := x.parent
			grandparent := parent.parent
			parent.color = Black
			grandparent.link[s.opposite()].color = Black
			if grandparent != t.root {
				grandparent.color = Red
			}
			x = grandparent

		case InsertInnerGrandchild:
			x = x.parent
			t.rotate(x, s)
			fallthrough

		case InsertOuterGrandchild:
			x.parent.color = Black
			x.parent.parent.color = Red
			t.rotate(x.parent.parent, s.opposite())
		}
	}
	t.root.color = Black
}

// classifyDelete picks the fix-up step for a doubly black node.
// The returned side is the side of x under its parent.
func (t *Tree[K, V]) classifyDelete(x *Node[K, V]) (DeleteCase, side) {
	s := x.side()
	sibling := x.parent.link[s.opposite()]

	switch {
	case sibling.color == Red:
		return DeleteSiblingRed, s
	case sibling.link[s.opposite()].color == Red:
		return DeleteFarNephewRed, s
	case sibling.link[s].color == Red:
		return DeleteNearNephewRed, s
	default:
		return DeleteNephewsBlack, s
	}
}

func (t *Tree[K, V]) fixDelete(x *Node[K, V]) {
	for x != t.root && x.color == Black {
		c, s := t.classifyDelete(x)
		t.stats.DeleteCases[c]++
		t.trace("delete", c.String(), s, x.parent.key)

		parent := x.parent
		sibling := parent.link[s.opposite()]

		switch c {
		case DeleteSiblingRed:
			sibling.color = Black
			parent.color = Red
			t.rotate(parent, s)

		case DeleteNephewsBlack:
			sibling.color = Red
			x = parent

		case DeleteNearNephewRed:
			sibling.link[s].color = Black
			sibling.color = Red
			t.rotate(sibling, s.opposite())

		case DeleteFarNephewRed:
			sibling.color = parent.color
			parent.color = Black
			sibling.link[s.opposite()].color = Black
			t.rotate(parent, s)
			x = t.root
		}
	}
	x.color = Black
}

func (t *Tree[K, V]) trace(op, step string, s side, key K) {
	if !t.config.Trace {
		return
	}
	t.log.WithFields(logrus.Fields{
		"op":   op,
		"case": step,
		"side": s,
		"key":  key,
	}).Debug("fixup")
}
