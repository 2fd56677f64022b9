// Package tools provides iterators shared by the ordered map containers.
package tools

import (
	"cmp"
	"container/heap"
)

// Iterator is the common interface for all ordered iterators.
type Iterator[K cmp.Ordered, V any] interface {
	// Next advances the iterator to the next key-value pair.
	// Returns false when no more items exist.
	Next() bool

	// Key returns the current key.
	Key() K

	// Value returns the current value.
	Value() V

	// Close releases resources associated with the iterator.
	Close() error
}

// Item represents an element in the priority queue used by MergeIterator.
type Item[K cmp.Ordered, V any] struct {
	iterator Iterator[K, V]
	key      K
	value    V
	priority int // position of the iterator in the merge list
	index    int // Used by heap.Interface
}

// priorityQueue implements heap.Interface and holds Items.
type priorityQueue[K cmp.Ordered, V any] []*Item[K, V]

func (pq priorityQueue[K, V]) Len() int { return len(pq) }

func (pq priorityQueue[K, V]) Less(i, j int) bool {
	// Smallest key first; on equal keys the earlier iterator wins
	if c := cmp.Compare(pq[i].key, pq[j].key); c != 0 {
		return c < 0
	}
	return pq[i].priority < pq[j].priority
}

func (pq priorityQueue[K, V]) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue[K, V]) Push(x any) {
	n := len(*pq)
	item := x.(*Item[K, V])
	item.index = n
	*pq = append(*pq, item)
}

func (pq *priorityQueue[K, V]) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // avoid memory leak
	item.index = -1 // for safety
	*pq = old[0 : n-1]
	return item
}

// MergeIterator merges multiple sorted iterators in key order.
// Equal keys are returned once, with the value from the iterator that
// appears earliest in the iterators list.
type MergeIterator[K cmp.Ordered, V any] struct {
	iterators []Iterator[K, V]
	pq        priorityQueue[K, V]
	current   *Item[K, V]
	last      K
	started   bool
}

// NewMergeIterator creates a new MergeIterator from multiple iterators.
// The first iterator in the list has the highest priority.
func NewMergeIterator[K cmp.Ordered, V any](iterators []Iterator[K, V]) *MergeIterator[K, V] {
	m := &MergeIterator[K, V]{
		iterators: iterators,
		pq:        make(priorityQueue[K, V], 0, len(iterators)),
	}

	// Add the first item from each iterator to the priority queue
	for i, it := range iterators {
		if it.Next() {
			heap.Push(&m.pq, &Item[K, V]{
				iterator: it,
				key:      it.Key(),
				value:    it.Value(),
				priority: i,
			})
		}
	}

	return m
}

// Next advances the iterator to the next key.
func (m *MergeIterator[K, V]) Next() bool {
	for m.pq.Len() > 0 {
		item := heap.Pop(&m.pq).(*Item[K, V])
		duplicate := m.started && item.key == m.last

		if !duplicate {
			m.current = &Item[K, V]{key: item.key, value: item.value}
			m.last = item.key
			m.started = true
		}

		// Advance this iterator and push it back if it has more data
		if item.iterator.Next() {
			item.key = item.iterator.Key()
			item.value = item.iterator.Value()
			heap.Push(&m.pq, item)
		}

		if !duplicate {
			return true
		}
	}

	m.current = nil
	return false
}

// Key returns the current key.
func (m *MergeIterator[K, V]) Key() K {
	if m.current == nil {
		var zero K
		return zero
	}
	return m.current.key
}

// Value returns the current value.
func (m *MergeIterator[K, V]) Value() V {
	if m.current == nil {
		var zero V
		return zero
	}
	return m.current.value
}

// Close closes all iterators.
func (m *MergeIterator[K, V]) Close() error {
	var err error
	for _, it := range m.iterators {
		if closeErr := it.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}
	return err
}

// KeyRange represents an inclusive range of keys. An open end is unbounded.
type KeyRange[K cmp.Ordered] struct {
	Start     K
	End       K
	OpenStart bool
	OpenEnd   bool
}

// Between returns the range [start, end].
func Between[K cmp.Ordered](start, end K) KeyRange[K] {
	return KeyRange[K]{Start: start, End: end}
}

// From returns the range [start, +inf).
func From[K cmp.Ordered](start K) KeyRange[K] {
	return KeyRange[K]{Start: start, OpenEnd: true}
}

// Until returns the range (-inf, end].
func Until[K cmp.Ordered](end K) KeyRange[K] {
	return KeyRange[K]{End: end, OpenStart: true}
}

// Contains reports whether key lies in the range.
func (r KeyRange[K]) Contains(key K) bool {
	return (r.OpenStart || key >= r.Start) && (r.OpenEnd || key <= r.End)
}

// RangeIterator wraps an Iterator and filters keys to a specific range.
type RangeIterator[K cmp.Ordered, V any] struct {
	Iterator[K, V]
	rang      KeyRange[K]
	exhausted bool
}

// NewRangeIterator creates a new range-limited iterator.
func NewRangeIterator[K cmp.Ordered, V any](it Iterator[K, V], rang KeyRange[K]) *RangeIterator[K, V] {
	return &RangeIterator[K, V]{
		Iterator: it,
		rang:     rang,
	}
}

// Next advances to the next key in the range.
func (r *RangeIterator[K, V]) Next() bool {
	if r.exhausted {
		return false
	}

	// Advance until we find a key in range or run out of keys
	for r.Iterator.Next() {
		key := r.Key()

		// Stop if we've passed the end of the range
		if !r.rang.OpenEnd && key > r.rang.End {
			r.exhausted = true
			return false
		}

		// Skip keys before the start of the range
		if !r.rang.OpenStart && key < r.rang.Start {
			continue
		}

		return true
	}

	r.exhausted = true
	return false
}
