package rbtree

import (
	"iter"
	"strings"

	"github.com/pkg/errors"
)

// Order selects a depth-first traversal order.
type Order int

const (
	InOrder Order = iota
	PreOrder
	PostOrder
)

func (o Order) String() string {
	switch o {
	case InOrder:
		return "in"
	case PreOrder:
		return "pre"
	case PostOrder:
		return "post"
	default:
		return "unknown"
	}
}

// ParseOrder parses "in", "pre" or "post" (an "-order" suffix is accepted).
func ParseOrder(s string) (Order, error) {
	switch strings.TrimSuffix(strings.ToLower(s), "-order") {
	case "in":
		return InOrder, nil
	case "pre":
		return PreOrder, nil
	case "post":
		return PostOrder, nil
	}
	return 0, errors.Wrapf(ErrInvalidArgument, "unknown traversal order %q", s)
}

// Entry is a key, value and color triple produced by Entries.
type Entry[K, V any] struct {
	Key   K
	Value V
	Color Color
}

// Traverse returns the mappings in the given order. The sequence is lazy
// and may be ranged over again to restart it. An unknown order yields
// nothing.
func (t *Tree[K, V]) Traverse(order Order) iter.Seq2[K, V] {
	return t.pairs(t.nodes(order))
}

// Entries is like Traverse but also yields each node's color.
func (t *Tree[K, V]) Entries(order Order) iter.Seq[Entry[K, V]] {
	nodes := t.nodes(order)
	return func(yield func(Entry[K, V]) bool) {
		for n := range nodes {
			if !yield(Entry[K, V]{Key: n.key, Value: n.val, Color: n.color}) {
				return
			}
		}
	}
}

// All returns the mappings in ascending key order.
func (t *Tree[K, V]) All() iter.Seq2[K, V] {
	return t.Traverse(InOrder)
}

// Backward returns the mappings in descending key order.
func (t *Tree[K, V]) Backward() iter.Seq2[K, V] {
	return t.pairs(t.inOrder(right))
}

// Ascend returns the mappings with keys >= from in ascending order.
func (t *Tree[K, V]) Ascend(from K) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for n := t.ceilingNode(from); n != t.nilNode; n = t.neighbor(n, right) {
			if !yield(n.key, n.val) {
				return
			}
		}
	}
}

// Keys returns the keys in ascending order.
func (t *Tree[K, V]) Keys() []K {
	keys := make([]K, 0, t.size)
	for k := range t.All() {
		keys = append(keys, k)
	}
	return keys
}

func (t *Tree[K, V]) pairs(nodes iter.Seq[*Node[K, V]]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for n := range nodes {
			if !yield(n.key, n.val) {
				return
			}
		}
	}
}

func (t *Tree[K, V]) nodes(order Order) iter.Seq[*Node[K, V]] {
	switch order {
	case InOrder:
		return t.inOrder(left)
	case PreOrder:
		return t.preOrder()
	case PostOrder:
		return t.postOrder()
	default:
		return func(func(*Node[K, V]) bool) {}
	}
}

// inOrder walks symmetrically, visiting the first subtree before each node.
// first == left gives ascending order.
func (t *Tree[K, V]) inOrder(first side) iter.Seq[*Node[K, V]] {
	return func(yield func(*Node[K, V]) bool) {
		stack := []*Node[K, V]{}
		current := t.root
		for current != t.nilNode || len(stack) > 0 {
			for current != t.nilNode {
				stack = append(stack, current)
				current = current.link[first]
			}

			current = stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if !yield(current) {
				return
			}

			current = current.link[first.opposite()]
		}
	}
}

func (t *Tree[K, V]) preOrder() iter.Seq[*Node[K, V]] {
	return func(yield func(*Node[K, V]) bool) {
		if t.root == t.nilNode {
			return
		}

		stack := []*Node[K, V]{t.root}
		for len(stack) > 0 {
			current := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if !yield(current) {
				return
			}

			if current.link[right] != t.nilNode {
				stack = append(stack, current.link[right])
			}
			if current.link[left] != t.nilNode {
				stack = append(stack, current.link[left])
			}
		}
	}
}

func (t *Tree[K, V]) postOrder() iter.Seq[*Node[K, V]] {
	return func(yield func(*Node[K, V]) bool) {
		stack := []*Node[K, V]{}
		var last *Node[K, V]
		current := t.root

		for current != t.nilNode || len(stack) > 0 {
			if current != t.nilNode {
				stack = append(stack, current)
				current = current.link[left]
				continue
			}

			top := stack[len(stack)-1]
			if top.link[right] != t.nilNode && top.link[right] != last {
				current = top.link[right]
				continue
			}

			if !yield(top) {
				return
			}
			last = top
			stack = stack[:len(stack)-1]
		}
	}
}
