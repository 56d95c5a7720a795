package skiplist

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInsertGetDelete(t *testing.T) {
	sl := New[int, string]()

	require.True(t, sl.Insert(3, "c"))
	require.True(t, sl.Insert(1, "a"))
	require.True(t, sl.Insert(2, "b"))
	require.False(t, sl.Insert(2, "B"))
	require.Equal(t, 3, sl.Len())

	v, ok := sl.Get(2)
	require.True(t, ok)
	require.Equal(t, "B", v)

	require.True(t, sl.Delete(2))
	require.False(t, sl.Delete(2))
	_, ok = sl.Get(2)
	require.False(t, ok)
	require.Equal(t, 2, sl.Len())
}

func TestAscend(t *testing.T) {
	sl := New[int, int]()
	for k := 100; k > 0; k-- {
		sl.Insert(k, k*k)
	}

	collect := func(from, to *int) []int {
		var keys []int
		sl.Ascend(from, to, func(k, _ int) bool {
			keys = append(keys, k)
			return true
		})
		return keys
	}

	all := collect(nil, nil)
	require.Len(t, all, 100)
	require.Equal(t, 1, all[0])
	require.Equal(t, 100, all[99])

	from, to := 10, 14
	require.Equal(t, []int{10, 11, 12, 13}, collect(&from, &to))

	from = 200
	require.Empty(t, collect(&from, nil))

	var n int
	sl.Ascend(nil, nil, func(int, int) bool {
		n++
		return n < 5
	})
	require.Equal(t, 5, n)
}
