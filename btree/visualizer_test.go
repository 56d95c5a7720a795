package btree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVisualize(t *testing.T) {
	require.Equal(t, "<destroyed>", (&Visualizer[int, string]{}).Visualize())

	tr := treeOf(t, 3, inner([]int{20, 40},
		leaf(5, 10),
		leaf(25, 30, 35),
		leaf(45, 50)))
	require.Equal(t, "L0: [20 40]\nL1: [5 10] [25 30 35] [45 50]", render(tr))
}

func TestVisualizeStringKeys(t *testing.T) {
	tr, err := New[string, int](2)
	require.NoError(t, err)
	for i, k := range []string{"delta", "alpha", "echo", "charlie", "bravo"} {
		_, err := tr.Insert(k, i)
		require.NoError(t, err)
	}
	require.Equal(t, "L0: [delta]\nL1: [alpha bravo charlie] [echo]", render(tr))
}

func TestTreeString(t *testing.T) {
	tr := filled(t, 2, 1, 2, 3, 4, 5)
	require.Equal(t, "BTree(t=2, len=5, height=2, nodes=3)", tr.String())
}
