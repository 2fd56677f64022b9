package rbtree_test

import (
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlonMell/ordmap/internal/rbtree"
)

func keysOf[K, V any](seq iter.Seq2[K, V]) []K {
	var keys []K
	for k := range seq {
		keys = append(keys, k)
	}
	return keys
}

func TestTraverse(t *testing.T) {
	// 2(0(-1, 1), 3)
	rb := rbtree.New[int, string](nil)
	for _, k := range []int{1, 2, 3, -1, 0} {
		require.NoError(t, rb.Insert(k, "x"))
	}

	tests := []struct {
		order rbtree.Order
		want  []int
	}{
		{rbtree.InOrder, []int{-1, 0, 1, 2, 3}},
		{rbtree.PreOrder, []int{2, 0, -1, 1, 3}},
		{rbtree.PostOrder, []int{-1, 1, 0, 3, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.order.String(), func(t *testing.T) {
			seq := rb.Traverse(tt.order)
			assert.Equal(t, tt.want, keysOf(seq))
			// ranging again restarts the walk
			assert.Equal(t, tt.want, keysOf(seq))
		})
	}

	assert.Equal(t, []int{3, 2, 1, 0, -1}, keysOf(rb.Backward()))
	assert.Empty(t, keysOf(rb.Traverse(rbtree.Order(42))))
}

func TestTraverseEmpty(t *testing.T) {
	rb := rbtree.New[int, int](nil)
	for _, order := range []rbtree.Order{rbtree.InOrder, rbtree.PreOrder, rbtree.PostOrder} {
		assert.Empty(t, keysOf(rb.Traverse(order)))
	}
	assert.Empty(t, keysOf(rb.Backward()))
	assert.Empty(t, keysOf(rb.Ascend(0)))
	assert.Empty(t, rb.Keys())
}

func TestTraverseEarlyStop(t *testing.T) {
	rb := rbtree.New[int, int](nil)
	for i := range 100 {
		require.NoError(t, rb.Insert(i, i))
	}

	for _, order := range []rbtree.Order{rbtree.InOrder, rbtree.PreOrder, rbtree.PostOrder} {
		seen := 0
		for range rb.Traverse(order) {
			seen++
			if seen == 10 {
				break
			}
		}
		assert.Equal(t, 10, seen, order.String())
	}
}

func TestEntries(t *testing.T) {
	rb := rbtree.New[int, string](nil)
	for _, k := range []int{1, 2, 3} {
		require.NoError(t, rb.Insert(k, "v"))
	}

	var got []rbtree.Entry[int, string]
	for e := range rb.Entries(rbtree.PreOrder) {
		got = append(got, e)
	}

	assert.Equal(t, []rbtree.Entry[int, string]{
		{Key: 2, Value: "v", Color: rbtree.Black},
		{Key: 1, Value: "v", Color: rbtree.Red},
		{Key: 3, Value: "v", Color: rbtree.Red},
	}, got)
}

func TestAscend(t *testing.T) {
	rb := rbtree.New[int, int](nil)
	for i := 0; i < 50; i += 5 {
		require.NoError(t, rb.Insert(i, i))
	}

	assert.Equal(t, []int{20, 25, 30, 35, 40, 45}, keysOf(rb.Ascend(20)))
	assert.Equal(t, []int{25, 30, 35, 40, 45}, keysOf(rb.Ascend(21)))
	assert.Equal(t, rb.Keys(), keysOf(rb.Ascend(-100)))
	assert.Empty(t, keysOf(rb.Ascend(46)))
}

func TestParseOrder(t *testing.T) {
	for input, want := range map[string]rbtree.Order{
		"in":         rbtree.InOrder,
		"PRE":        rbtree.PreOrder,
		"post-order": rbtree.PostOrder,
	} {
		got, err := rbtree.ParseOrder(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got)
	}

	_, err := rbtree.ParseOrder("level")
	assert.ErrorIs(t, err, rbtree.ErrInvalidArgument)
}
