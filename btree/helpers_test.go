package btree

import (
	"cmp"
	"os"
	"strconv"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func leaf(keys ...int) *node[int, string] {
	n := &node[int, string]{}
	for _, k := range keys {
		n.items = append(n.items, item[int, string]{key: k, val: strconv.Itoa(k)})
	}
	return n
}

func inner(keys []int, children ...*node[int, string]) *node[int, string] {
	n := leaf(keys...)
	n.children = children
	return n
}

// treeOf wraps a hand-built node structure in a tree and fills in its bookkeeping.
func treeOf(t *testing.T, degree int, root *node[int, string]) *BTree[int, string] {
	t.Helper()

	tr, err := New[int, string](degree)
	require.NoError(t, err)
	tr.root = root

	var walk func(n *node[int, string], depth int)
	walk = func(n *node[int, string], depth int) {
		tr.nodes++
		tr.count += len(n.items)
		if depth+1 > tr.height {
			tr.height = depth + 1
		}
		for _, c := range n.children {
			walk(c, depth+1)
		}
	}
	walk(root, 0)
	require.NoError(t, tr.Check())
	return tr
}

// filled returns a tree of the given degree holding keys with values strconv.Itoa(key).
func filled(t *testing.T, degree int, keys ...int) *BTree[int, string] {
	t.Helper()

	tr, err := New[int, string](degree)
	require.NoError(t, err)
	for _, k := range keys {
		res, err := tr.Insert(k, strconv.Itoa(k))
		require.NoError(t, err)
		require.Equal(t, Inserted, res)
	}
	require.NoError(t, tr.Check())
	return tr
}

func seq(from, to, step int) []int {
	var out []int
	for k := from; k <= to; k += step {
		out = append(out, k)
	}
	return out
}

func render[K cmp.Ordered, V any](tr *BTree[K, V]) string {
	v := &Visualizer[K, V]{Tree: tr}
	return v.Visualize()
}

func allKeys(t *testing.T, tr *BTree[int, string]) []int {
	t.Helper()

	it, err := tr.Iterate(Unbounded[int](), Unbounded[int]())
	require.NoError(t, err)
	keys, _ := it.Collect()
	require.NoError(t, it.Err())
	return keys
}
