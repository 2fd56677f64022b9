package memtable_test

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlonMell/ordmap/internal/memtable"
	"github.com/AlonMell/ordmap/internal/rbtree"
	"github.com/AlonMell/ordmap/internal/tools"
)

func fill(t *testing.T, keys ...string) *memtable.MemTable[string, string] {
	t.Helper()
	m := memtable.NewMemTable[string, string]()
	for _, k := range keys {
		require.NoError(t, m.Put(k, "v-"+k))
	}
	return m
}

func drain(it tools.Iterator[string, string]) []string {
	defer it.Close()
	var keys []string
	for it.Next() {
		keys = append(keys, it.Key())
	}
	return keys
}

func TestPutGetDelete(t *testing.T) {
	m := fill(t, "b", "a", "c")

	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "v-a", v)

	require.NoError(t, m.Put("a", "again"))
	v, _ = m.Get("a")
	assert.Equal(t, "again", v)
	assert.Equal(t, 3, m.Count())

	v, ok = m.Delete("b")
	assert.True(t, ok)
	assert.Equal(t, "v-b", v)
	_, ok = m.Get("b")
	assert.False(t, ok)

	_, ok = m.Delete("missing")
	assert.False(t, ok)
	assert.Equal(t, 2, m.Count())
	assert.NoError(t, m.Verify())
}

func TestPutNilValue(t *testing.T) {
	m := memtable.NewMemTable[string, []byte]()
	assert.ErrorIs(t, m.Put("k", nil), rbtree.ErrInvalidArgument)
	assert.Zero(t, m.Count())
}

func TestForEach(t *testing.T) {
	m := fill(t, "d", "b", "a", "c")

	var keys []string
	m.ForEach(func(key, value string) bool {
		keys = append(keys, key)
		return key != "c"
	})
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}

func TestIterator(t *testing.T) {
	m := fill(t, "d", "b", "a", "c")

	it := m.Iterator()
	assert.Equal(t, []string{"a", "b", "c", "d"}, drain(it))
	assert.False(t, it.Next(), "closed iterator must stay exhausted")
	assert.NoError(t, it.Close(), "double close is harmless")

	// the read lock is released after Close
	require.NoError(t, m.Put("e", "v-e"))
	assert.Equal(t, 5, m.Count())
}

func TestRange(t *testing.T) {
	m := fill(t, "a", "b", "c", "d", "e")

	tests := []struct {
		name string
		r    tools.KeyRange[string]
		want []string
	}{
		{"Between", tools.Between("b", "d"), []string{"b", "c", "d"}},
		{"From", tools.From("d"), []string{"d", "e"}},
		{"Until", tools.Until("b"), []string{"a", "b"}},
		{"Empty", tools.Between("x", "z"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, drain(m.Range(tt.r)))
		})
	}
}

func TestMerge(t *testing.T) {
	newer := fill(t, "b", "d")
	older := fill(t, "a", "b", "c")
	require.NoError(t, older.Put("b", "old"))

	merged, err := memtable.Merge(newer, older)
	require.NoError(t, err)

	assert.Equal(t, 4, merged.Count())
	v, _ := merged.Get("b")
	assert.Equal(t, "v-b", v, "earlier table wins")

	var keys []string
	merged.ForEach(func(key, _ string) bool {
		keys = append(keys, key)
		return true
	})
	assert.Equal(t, []string{"a", "b", "c", "d"}, keys)

	// sources are unlocked again
	require.NoError(t, newer.Put("z", "z"))
	require.NoError(t, older.Put("z", "z"))
}

func TestConcurrentAccess(t *testing.T) {
	m := memtable.NewMemTable[int, string]()

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				k := w*1000 + i
				_ = m.Put(k, strconv.Itoa(k))
				if i%3 == 0 {
					m.Delete(k)
				}
				m.Get(k)
			}
		}(w)
	}
	wg.Wait()

	// 500 puts per worker, every third one deleted again
	assert.Equal(t, 8*(500-167), m.Count())
	assert.NoError(t, m.Verify())
}
