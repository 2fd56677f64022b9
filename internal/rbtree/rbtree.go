// Package rbtree implements an ordered key-value map backed by a
// Red-Black Tree with insertion, deletion, search and ordered traversal.
//
// Red-Black Tree is a self-balancing binary search tree that guarantees
// O(log n) time complexity for basic operations. External leaves are
// represented by a per-tree black sentinel node instead of nil, so color
// lookups never branch on nullability.
//
// A Tree is not safe for concurrent use. Callers that share a tree between
// goroutines must guard it themselves (see package memtable).
package rbtree

import (
	"cmp"
	"fmt"
	"reflect"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Color is the color of a tree node.
type Color bool

const (
	Red   Color = false
	Black Color = true
)

func (c Color) String() string {
	if c == Red {
		return "red"
	}
	return "black"
}

// side selects one of the two child links of a node.
type side int

const (
	left side = iota
	right
)

func (s side) opposite() side {
	return 1 - s
}

func (s side) String() string {
	if s == left {
		return "left"
	}
	return "right"
}

// Node is a single entry of the tree.
//
// Nodes returned by Tree.Root and the Node accessors are views into the
// live structure: they must not be retained across Insert or Delete.
type Node[K, V any] struct {
	key    K
	val    V
	color  Color
	link   [2]*Node[K, V] // indexed by side
	parent *Node[K, V]
}

// isSentinel reports whether n is the leaf marker. The sentinel is the only
// node that links to itself.
func (n *Node[K, V]) isSentinel() bool {
	return n.link[left] == n
}

func (n *Node[K, V]) side() side {
	if n == n.parent.link[left] {
		return left
	}
	return right
}

func visible[K, V any](n *Node[K, V]) *Node[K, V] {
	if n == nil || n.isSentinel() {
		return nil
	}
	return n
}

func (n *Node[K, V]) Key() K       { return n.key }
func (n *Node[K, V]) Value() V     { return n.val }
func (n *Node[K, V]) Color() Color { return n.color }

// Left returns the left child, or nil when it is a leaf.
func (n *Node[K, V]) Left() *Node[K, V] { return visible(n.link[left]) }

// Right returns the right child, or nil when it is a leaf.
func (n *Node[K, V]) Right() *Node[K, V] { return visible(n.link[right]) }

// Parent returns the parent node, or nil for the root.
func (n *Node[K, V]) Parent() *Node[K, V] { return visible(n.parent) }

// IsLeaf reports whether the node has no real children.
func (n *Node[K, V]) IsLeaf() bool {
	return n.Children() == 0
}

// Children returns the number of real children (0, 1 or 2).
func (n *Node[K, V]) Children() int {
	count := 0
	for _, child := range n.link {
		if visible(child) != nil {
			count++
		}
	}
	return count
}

func (n *Node[K, V]) String() string {
	return fmt.Sprintf("(%v : %s)", n.key, n.color)
}

// Pair is a key-value pair used to seed a tree.
type Pair[K, V any] struct {
	Key   K
	Value V
}

// Tree represents a Red-Black Tree instance.
// Use New, NewWithCompare or NewFrom to create one.
type Tree[K, V any] struct {
	root    *Node[K, V]
	nilNode *Node[K, V] // Sentinel node
	size    int
	compare func(a, b K) int
	config  Config
	log     logrus.FieldLogger
	stats   Stats
}

// New creates an empty tree ordered by the natural order of K.
// A nil config means DefaultConfig().
func New[K cmp.Ordered, V any](config *Config) *Tree[K, V] {
	return NewWithCompare[K, V](cmp.Compare[K], config)
}

// NewWithCompare creates an empty tree ordered by compare, which must return
// a negative number, zero or a positive number when a is less than, equal to
// or greater than b.
func NewWithCompare[K, V any](compare func(a, b K) int, config *Config) *Tree[K, V] {
	if config == nil {
		config = DefaultConfig()
	}

	logger := config.Logger
	if logger == nil {
		logger = log
	}

	nilNode := &Node[K, V]{color: Black}
	nilNode.link = [2]*Node[K, V]{nilNode, nilNode}

	return &Tree[K, V]{
		root:    nilNode,
		nilNode: nilNode,
		compare: compare,
		config:  *config,
		log:     logger,
	}
}

// NewFrom creates a tree and inserts pairs in order. It stops at the first
// pair that cannot be inserted.
func NewFrom[K cmp.Ordered, V any](config *Config, pairs ...Pair[K, V]) (*Tree[K, V], error) {
	t := New[K, V](config)
	for i, p := range pairs {
		if err := t.Insert(p.Key, p.Value); err != nil {
			return nil, errors.Wrapf(err, "pair %d", i)
		}
	}
	return t, nil
}

// Insert adds a new mapping while maintaining Red-Black Tree properties.
//
// An equal key is rejected with a *DuplicateKeyError unless the tree was
// configured with ReplaceDuplicates, in which case the value is overwritten
// in place. A nil key or value fails with ErrInvalidArgument.
func (t *Tree[K, V]) Insert(key K, val V) error {
	if isNil(key) {
		return errors.Wrap(ErrInvalidArgument, "nil key")
	}
	if isNil(val) {
		return errors.Wrapf(ErrInvalidArgument, "nil value for key %v", key)
	}

	parent := t.nilNode
	current := t.root
	dir := left

	for current != t.nilNode {
		c := t.compare(key, current.key)
		if c == 0 {
			if t.config.Duplicates == ReplaceDuplicates {
				current.val = val
				return nil
			}
			return &DuplicateKeyError[K]{Key: key}
		}

		parent = current
		if c < 0 {
			dir = left
		} else {
			dir = right
		}
		current = current.link[dir]
	}

	newNode := t.newNode(key, val)
	newNode.parent = parent
	t.size++

	if parent == t.nilNode {
		newNode.color = Black
		t.root = newNode
	} else {
		parent.link[dir] = newNode
		// A child of the root cannot break anything: the root is black.
		if parent.parent != t.nilNode {
			t.fixInsert(newNode)
		}
	}

	t.check("insert", key)
	return nil
}

// Delete removes the mapping for key and returns its value. If key doesn't
// exist the operation is a no-op and ok is false.
//
// A node with two children takes the key and value of its in-order
// predecessor, and the predecessor's node is the one spliced out.
func (t *Tree[K, V]) Delete(key K) (val V, ok bool) {
	z := t.findNode(key)
	if z == t.nilNode {
		return val, false
	}
	val = z.val

	target := z
	if z.link[left] != t.nilNode && z.link[right] != t.nilNode {
		target = t.extreme(z.link[left], right)
		z.key, z.val = target.key, target.val
	}

	// target has at most one real child.
	child := target.link[left]
	if child == t.nilNode {
		child = target.link[right]
	}
	removedColor := target.color

	t.transplant(target, child)
	t.release(target)
	t.size--

	if removedColor == Black {
		t.fixDelete(child)
	}
	t.nilNode.parent = nil

	t.check("delete", key)
	return val, true
}

// Clear removes every mapping.
func (t *Tree[K, V]) Clear() {
	t.stats.Freed += int64(t.size)
	t.root = t.nilNode
	t.size = 0
}

// rotate turns the subtree rooted at x toward dir: the child of x on the
// opposite side takes the place of x and x becomes its child on dir.
//
//	rotate(x, left):      x              y
//	                     / \            / \
//	                    a   y    ->    x   c
//	                       / \        / \
//	                      b   c      a   b
func (t *Tree[K, V]) rotate(x *Node[K, V], dir side) {
	opp := dir.opposite()
	y := x.link[opp]

	x.link[opp] = y.link[dir]
	if y.link[dir] != t.nilNode {
		y.link[dir].parent = x
	}

	y.parent = x.parent
	if x.parent == t.nilNode {
		t.root = y
	} else {
		x.parent.link[x.side()] = y
	}

	y.link[dir] = x
	x.parent = y
	t.stats.Rotations++
}

// transplant puts v in the position of u. v may be the sentinel, whose
// parent is then set so that fixDelete can walk up from it.
func (t *Tree[K, V]) transplant(u, v *Node[K, V]) {
	if u.parent == t.nilNode {
		t.root = v
	} else {
		u.parent.link[u.side()] = v
	}
	v.parent = u.parent
}

// extreme returns the last node reached by following dir links from x.
func (t *Tree[K, V]) extreme(x *Node[K, V], dir side) *Node[K, V] {
	for x.link[dir] != t.nilNode {
		x = x.link[dir]
	}
	return x
}

// neighbor returns the in-order predecessor (dir == left) or successor
// (dir == right) of x, or the sentinel if there is none.
func (t *Tree[K, V]) neighbor(x *Node[K, V], dir side) *Node[K, V] {
	if x.link[dir] != t.nilNode {
		return t.extreme(x.link[dir], dir.opposite())
	}

	p := x.parent
	for p != t.nilNode && x == p.link[dir] {
		x = p
		p = p.parent
	}
	return p
}

func (t *Tree[K, V]) newNode(key K, val V) *Node[K, V] {
	t.stats.Allocated++
	return &Node[K, V]{
		key:    key,
		val:    val,
		color:  Red,
		link:   [2]*Node[K, V]{t.nilNode, t.nilNode},
		parent: t.nilNode,
	}
}

func (t *Tree[K, V]) release(n *Node[K, V]) {
	var zero Node[K, V]
	*n = zero
	t.stats.Freed++
}

// Find returns the value stored under key.
func (t *Tree[K, V]) Find(key K) (V, bool) {
	node := t.findNode(key)
	if node == t.nilNode {
		var zero V
		return zero, false
	}
	return node.val, true
}

func (t *Tree[K, V]) findNode(key K) *Node[K, V] {
	current := t.root
	for current != t.nilNode {
		c := t.compare(key, current.key)
		switch {
		case c == 0:
			return current
		case c < 0:
			current = current.link[left]
		default:
			current = current.link[right]
		}
	}
	return t.nilNode
}

// ceilingNode returns the node with the least key >= key.
func (t *Tree[K, V]) ceilingNode(key K) *Node[K, V] {
	found := t.nilNode
	current := t.root
	for current != t.nilNode {
		c := t.compare(key, current.key)
		if c == 0 {
			return current
		}
		if c < 0 {
			found = current
			current = current.link[left]
		} else {
			current = current.link[right]
		}
	}
	return found
}

// Exists checks if a key is present in the tree.
func (t *Tree[K, V]) Exists(key K) bool {
	return t.findNode(key) != t.nilNode
}

// Len returns the number of mappings.
func (t *Tree[K, V]) Len() int {
	return t.size
}

// IsEmpty reports whether the tree holds no mappings.
func (t *Tree[K, V]) IsEmpty() bool {
	return t.size == 0
}

// Root returns the root node, or nil for an empty tree.
func (t *Tree[K, V]) Root() *Node[K, V] {
	return visible(t.root)
}

// Min returns the smallest key and its value.
func (t *Tree[K, V]) Min() (K, V, bool) {
	return t.pick(func() *Node[K, V] { return t.extreme(t.root, left) })
}

// Max returns the largest key and its value.
func (t *Tree[K, V]) Max() (K, V, bool) {
	return t.pick(func() *Node[K, V] { return t.extreme(t.root, right) })
}

// Predecessor returns the entry immediately before key. It reports false when
// key is absent or is the smallest key.
func (t *Tree[K, V]) Predecessor(key K) (K, V, bool) {
	return t.adjacent(key, left)
}

// Successor returns the entry immediately after key. It reports false when
// key is absent or is the largest key.
func (t *Tree[K, V]) Successor(key K) (K, V, bool) {
	return t.adjacent(key, right)
}

func (t *Tree[K, V]) adjacent(key K, dir side) (K, V, bool) {
	return t.pick(func() *Node[K, V] {
		node := t.findNode(key)
		if node == t.nilNode {
			return node
		}
		return t.neighbor(node, dir)
	})
}

func (t *Tree[K, V]) pick(locate func() *Node[K, V]) (key K, val V, ok bool) {
	if t.root == t.nilNode {
		return key, val, false
	}
	node := locate()
	if node == t.nilNode {
		return key, val, false
	}
	return node.key, node.val, true
}

// Stats returns the allocation, rotation and fix-up counters.
func (t *Tree[K, V]) Stats() Stats {
	return t.stats
}

// isNil reports whether v is a nil interface or a nil pointer-like value.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func,
		reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}
