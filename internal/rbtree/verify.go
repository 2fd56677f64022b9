package rbtree

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Verify validates Red-Black Tree invariants:
//  1. The sentinel is black and links only to itself
//  2. The root, if any, is black and has no parent
//  3. Red nodes have black children
//  4. All paths from a node to its leaves have the same number of black nodes
//  5. Keys ascend in order, parent links match child links, and Len matches
//     the number of reachable nodes
//
// It returns nil if all properties are satisfied.
func (t *Tree[K, V]) Verify() error {
	if t.nilNode.color != Black {
		return errors.New("sentinel is not black")
	}
	if !t.nilNode.isSentinel() || t.nilNode.link[right] != t.nilNode {
		return errors.New("sentinel links to a real node")
	}

	if t.root != t.nilNode {
		if t.root.color != Black {
			return errors.Errorf("root %v is red", t.root.key)
		}
		if t.root.parent != t.nilNode {
			return errors.Errorf("root %v has a parent", t.root.key)
		}
	}

	count, _, err := t.verifySubtree(t.root)
	if err != nil {
		return err
	}
	if count != t.size {
		return errors.Errorf("size is %d but %d nodes are reachable", t.size, count)
	}

	first := true
	var prev K
	for key := range t.All() {
		if !first && t.compare(prev, key) >= 0 {
			return errors.Errorf("keys out of order: %v before %v", prev, key)
		}
		prev, first = key, false
	}
	return nil
}

// verifySubtree returns the node count and black-height of the subtree at n.
// The black-height counts the black nodes below n, sentinel included.
func (t *Tree[K, V]) verifySubtree(n *Node[K, V]) (count, blackHeight int, err error) {
	if n == t.nilNode {
		return 0, 0, nil
	}

	var heights [2]int
	count = 1
	for _, s := range []side{left, right} {
		child := n.link[s]
		if child != t.nilNode && child.parent != n {
			return 0, 0, errors.Errorf("%s child %v of %v has a wrong parent link", s, child.key, n.key)
		}
		if n.color == Red && child.color == Red {
			return 0, 0, errors.Errorf("red node %v has red %s child %v", n.key, s, child.key)
		}

		c, h, err := t.verifySubtree(child)
		if err != nil {
			return 0, 0, err
		}
		if child.color == Black {
			h++
		}
		count += c
		heights[s] = h
	}

	if heights[left] != heights[right] {
		return 0, 0, errors.Errorf("black-height mismatch under %v: left %d, right %d",
			n.key, heights[left], heights[right])
	}
	return count, heights[left], nil
}

// BlackHeight returns the number of black nodes on any path from the root to
// a leaf, the root excluded and the sentinel included. An empty tree has
// black-height 0.
func (t *Tree[K, V]) BlackHeight() int {
	height := 0
	for n := t.root; n != t.nilNode; n = n.link[left] {
		if n.link[left].color == Black {
			height++
		}
	}
	return height
}

// check runs Verify after a mutation when the tree is configured to do so.
// A failure is a bug in the tree, not a caller error.
func (t *Tree[K, V]) check(op string, key K) {
	if !t.config.Verify {
		return
	}
	if err := t.Verify(); err != nil {
		entry := t.log.WithFields(logrus.Fields{
			"op":  op,
			"key": key,
		})
		entry.WithError(err).Error("red-black invariant violated")
		entry.Panicf("%s %v: %v", op, key, err)
	}
}
