// Package memtable provides an in-memory ordered table that is safe for
// concurrent use. It guards an rbtree.Tree, which is not synchronized, with
// a read-write mutex.
package memtable

import (
	"cmp"
	"sync"

	"github.com/pkg/errors"

	"github.com/AlonMell/ordmap/internal/rbtree"
	"github.com/AlonMell/ordmap/internal/tools"
)

// MemTable represents an in-memory table using RBTree.
type MemTable[K cmp.Ordered, V any] struct {
	tree *rbtree.Tree[K, V]
	mu   sync.RWMutex
}

// NewMemTable creates a new MemTable instance. Put on an existing key
// replaces its value.
func NewMemTable[K cmp.Ordered, V any]() *MemTable[K, V] {
	return &MemTable[K, V]{
		tree: rbtree.New[K, V](&rbtree.Config{Duplicates: rbtree.ReplaceDuplicates}),
	}
}

// Put adds or updates a key-value pair in the MemTable.
func (m *MemTable[K, V]) Put(key K, value V) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.tree.Insert(key, value)
}

// Get retrieves a value by key from the MemTable.
func (m *MemTable[K, V]) Get(key K) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.tree.Find(key)
}

// Delete removes a key and returns the value it held.
func (m *MemTable[K, V]) Delete(key K) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.tree.Delete(key)
}

// Count returns the number of entries in the MemTable.
func (m *MemTable[K, V]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.tree.Len()
}

// ForEach iterates over all entries in the MemTable in sorted order.
// fn must not modify the table.
func (m *MemTable[K, V]) ForEach(fn func(key K, value V) bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for key, value := range m.tree.All() {
		if !fn(key, value) {
			break
		}
	}
}

// Verify checks the invariants of the underlying tree.
func (m *MemTable[K, V]) Verify() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.tree.Verify()
}

type entry[K, V any] struct {
	key   K
	value V
}

// MemTableIterator iterates over a snapshot of the entries in the MemTable.
type MemTableIterator[K cmp.Ordered, V any] struct {
	table     *MemTable[K, V]
	entries   []entry[K, V]
	currIndex int
	current   entry[K, V]
	mu        sync.Mutex
	closed    bool
}

// Iterator creates a new MemTableIterator. The table's read lock is held
// until Close, so writers block while the iterator is open.
func (m *MemTable[K, V]) Iterator() *MemTableIterator[K, V] {
	m.mu.RLock() // Will be released when Close() is called

	entries := make([]entry[K, V], 0, m.tree.Len())
	for key, value := range m.tree.All() {
		entries = append(entries, entry[K, V]{key, value})
	}

	return &MemTableIterator[K, V]{
		table:     m,
		entries:   entries,
		currIndex: -1, // Start before the first element
	}
}

// Range returns an iterator over the entries whose keys lie in r.
func (m *MemTable[K, V]) Range(r tools.KeyRange[K]) *tools.RangeIterator[K, V] {
	return tools.NewRangeIterator[K, V](m.Iterator(), r)
}

// Merge builds a new table holding the entries of all tables. For a key
// present in several tables the value from the earliest one wins.
func Merge[K cmp.Ordered, V any](tables ...*MemTable[K, V]) (*MemTable[K, V], error) {
	iterators := make([]tools.Iterator[K, V], 0, len(tables))
	for _, t := range tables {
		iterators = append(iterators, t.Iterator())
	}

	merged := tools.NewMergeIterator(iterators)
	defer merged.Close()

	out := NewMemTable[K, V]()
	for merged.Next() {
		if err := out.Put(merged.Key(), merged.Value()); err != nil {
			return nil, errors.Wrapf(err, "merge key %v", merged.Key())
		}
	}
	return out, nil
}

// Next advances the iterator to the next entry.
func (it *MemTableIterator[K, V]) Next() bool {
	if it.closed || it.currIndex >= len(it.entries)-1 {
		return false
	}

	it.currIndex++
	it.current = it.entries[it.currIndex]
	return true
}

// Key returns the current key.
func (it *MemTableIterator[K, V]) Key() K {
	return it.current.key
}

// Value returns the current value.
func (it *MemTableIterator[K, V]) Value() V {
	return it.current.value
}

// Close releases resources held by the iterator.
func (it *MemTableIterator[K, V]) Close() error {
	it.mu.Lock()
	defer it.mu.Unlock()

	if !it.closed {
		it.closed = true
		it.table.mu.RUnlock() // Release lock acquired in Iterator()
	}

	return nil
}
