package btree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func nodeKeys(n *node[int, string]) []int {
	keys := make([]int, 0, len(n.items))
	for _, it := range n.items {
		keys = append(keys, it.key)
	}
	return keys
}

func TestNodeSearch(t *testing.T) {
	n := leaf(10, 20, 30, 40)

	for _, tc := range []struct {
		key   int
		pos   int
		found bool
	}{
		{5, 0, false},
		{10, 0, true},
		{15, 1, false},
		{30, 2, true},
		{40, 3, true},
		{45, 4, false},
	} {
		pos, found := n.search(tc.key)
		require.Equal(t, tc.pos, pos, "key %d", tc.key)
		require.Equal(t, tc.found, found, "key %d", tc.key)
	}

	pos, found := leaf().search(1)
	require.Zero(t, pos)
	require.False(t, found)
}

func TestNodeInsertRemoveAt(t *testing.T) {
	n := leaf(1, 3)

	n.insertItemAt(1, item[int, string]{key: 2})
	n.insertItemAt(0, item[int, string]{key: 0})
	n.insertItemAt(4, item[int, string]{key: 4})
	require.Equal(t, []int{0, 1, 2, 3, 4}, nodeKeys(n))

	out := n.removeItemAt(2)
	require.Equal(t, 2, out.key)
	out = n.removeItemAt(3)
	require.Equal(t, 4, out.key)
	require.Equal(t, []int{0, 1, 3}, nodeKeys(n))
}

func TestNodeSplitLeaf(t *testing.T) {
	n := leaf(1, 2, 3, 4, 5)
	right := &node[int, string]{}

	mid := n.split(2, right)
	require.Equal(t, 3, mid.key)
	require.Equal(t, "3", mid.val)
	require.Equal(t, []int{1, 2}, nodeKeys(n))
	require.Equal(t, []int{4, 5}, nodeKeys(right))
	require.True(t, right.isLeaf())
}

func TestNodeSplitInternal(t *testing.T) {
	c1, c3, c5, c7 := leaf(1), leaf(3), leaf(5), leaf(7)
	n := inner([]int{2, 4, 6}, c1, c3, c5, c7)
	right := &node[int, string]{}

	mid := n.split(1, right)
	require.Equal(t, 4, mid.key)
	require.Equal(t, []int{2}, nodeKeys(n))
	require.Equal(t, []int{6}, nodeKeys(right))
	require.Equal(t, []*node[int, string]{c1, c3}, n.children)
	require.Same(t, c5, right.children[0])
	require.Same(t, c7, right.children[1])
}

func TestNodeBelow(t *testing.T) {
	tr := filled(t, 2, seq(10, 100, 10)...)

	for _, tc := range []struct {
		key  int
		want int
		ok   bool
	}{
		{5, 0, false},
		{10, 0, false},
		{11, 10, true},
		{60, 50, true},
		{65, 60, true},
		{1000, 100, true},
	} {
		it, ok := tr.root.below(tc.key)
		require.Equal(t, tc.ok, ok, "key %d", tc.key)
		if ok {
			require.Equal(t, tc.want, it.key, "key %d", tc.key)
		}
	}
}
