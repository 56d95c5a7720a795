package handle

import (
	"testing"

	"github.com/go-faker/faker/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"ordtree/btree"
	"ordtree/internal/skiplist"
)

func TestCreateIssuesDistinctHandles(t *testing.T) {
	table := NewTable[int, string](zaptest.NewLogger(t))

	a, err := table.Create(2)
	require.NoError(t, err)
	b, err := table.Create(5)
	require.NoError(t, err)
	require.NotZero(t, a)
	require.NotEqual(t, a, b)
	require.Equal(t, 2, table.Len())
	require.Equal(t, []Handle{a, b}, table.Handles())

	tree, err := table.Get(b)
	require.NoError(t, err)
	require.Equal(t, 5, tree.MinDegree())
}

func TestCreateRejectsBadDegree(t *testing.T) {
	table := NewTable[int, string](nil)

	h, err := table.Create(1)
	require.ErrorIs(t, err, btree.ErrInvalidConfiguration)
	require.Zero(t, h)
	require.Zero(t, table.Len())
}

func TestTreesAreIndependent(t *testing.T) {
	table := NewTable[int, string](nil)
	a, err := table.Create(2)
	require.NoError(t, err)
	b, err := table.Create(3)
	require.NoError(t, err)

	_, err = table.Insert(a, 1, "in a")
	require.NoError(t, err)
	_, err = table.Insert(b, 1, "in b")
	require.NoError(t, err)

	res, err := table.Delete(a, 1)
	require.NoError(t, err)
	require.Equal(t, btree.Deleted, res)

	_, err = table.Find(a, 1)
	require.ErrorIs(t, err, btree.ErrKeyNotFound)
	v, err := table.Find(b, 1)
	require.NoError(t, err)
	require.Equal(t, "in b", v)
}

func TestStaleAndUnknownHandles(t *testing.T) {
	table := NewTable[int, string](nil)
	h, err := table.Create(2)
	require.NoError(t, err)
	_, err = table.Insert(h, 1, "a")
	require.NoError(t, err)

	require.NoError(t, table.Destroy(h))
	require.ErrorIs(t, table.Destroy(h), btree.ErrUseAfterDestroy)
	require.Zero(t, table.Len())

	_, err = table.Insert(h, 2, "b")
	require.ErrorIs(t, err, btree.ErrUseAfterDestroy)
	_, err = table.Update(h, 1, "b")
	require.ErrorIs(t, err, btree.ErrUseAfterDestroy)
	_, err = table.Find(h, 1)
	require.ErrorIs(t, err, btree.ErrUseAfterDestroy)
	_, err = table.Delete(h, 1)
	require.ErrorIs(t, err, btree.ErrUseAfterDestroy)
	_, err = table.Iterate(h, btree.Unbounded[int](), btree.Unbounded[int]())
	require.ErrorIs(t, err, btree.ErrUseAfterDestroy)
	_, _, err = table.Last(h, btree.Unbounded[int](), btree.Unbounded[int]())
	require.ErrorIs(t, err, btree.ErrUseAfterDestroy)

	for _, bogus := range []Handle{0, h + 1, 1 << 40} {
		_, err = table.Get(bogus)
		require.ErrorIs(t, err, ErrInvalidHandle)
		require.ErrorIs(t, table.Destroy(bogus), ErrInvalidHandle)
	}

	// Handles are not reused after destroy.
	next, err := table.Create(2)
	require.NoError(t, err)
	require.NotEqual(t, h, next)
	_, err = table.Find(h, 1)
	require.ErrorIs(t, err, btree.ErrUseAfterDestroy)
}

func TestNodeBudgetAppliesToEveryTree(t *testing.T) {
	table := NewTable[int, string](nil, btree.WithMaxNodes(1))
	for i := 0; i < 2; i++ {
		h, err := table.Create(2)
		require.NoError(t, err)
		for k := 0; k < 3; k++ {
			_, err := table.Insert(h, k, "")
			require.NoError(t, err)
		}
		_, err = table.Insert(h, 3, "")
		require.ErrorIs(t, err, btree.ErrResourceExhausted)
	}
}

func TestTableMatchesModel(t *testing.T) {
	table := NewTable[string, string](zap.NewNop())
	h, err := table.Create(3)
	require.NoError(t, err)
	m := skiplist.New[string, string]()

	for i := 0; i < 500; i++ {
		k, v := faker.Word(), faker.Word()
		res, err := table.Insert(h, k, v)
		require.NoError(t, err)
		if m.Insert(k, v) {
			require.Equal(t, btree.Inserted, res)
		} else {
			require.Equal(t, btree.Updated, res)
		}
	}

	it, err := table.Iterate(h, btree.Unbounded[string](), btree.Unbounded[string]())
	require.NoError(t, err)
	keys, vals := it.Collect()
	require.NoError(t, it.Err())

	var wantKeys, wantVals []string
	m.Ascend(nil, nil, func(k, v string) bool {
		wantKeys = append(wantKeys, k)
		wantVals = append(wantVals, v)
		return true
	})
	require.Equal(t, wantKeys, keys)
	require.Equal(t, wantVals, vals)

	k, v, err := table.Last(h, btree.Unbounded[string](), btree.Unbounded[string]())
	require.NoError(t, err)
	require.Equal(t, wantKeys[len(wantKeys)-1], k)
	require.Equal(t, wantVals[len(wantVals)-1], v)

	tree, err := table.Get(h)
	require.NoError(t, err)
	require.NoError(t, tree.Check())
}

func TestIntegerPayloads(t *testing.T) {
	table := NewTable[int64, uint64](nil)
	h, err := table.Create(2)
	require.NoError(t, err)

	for k := int64(-50); k < 50; k++ {
		res, err := table.Insert(h, k, uint64(k*k))
		require.NoError(t, err)
		require.Equal(t, btree.Inserted, res)
	}
	res, err := table.Update(h, -7, 7)
	require.NoError(t, err)
	require.Equal(t, btree.Updated, res)

	v, err := table.Find(h, -7)
	require.NoError(t, err)
	require.Equal(t, uint64(7), v)
	_, err = table.Find(h, 50)
	require.ErrorIs(t, err, btree.ErrKeyNotFound)

	it, err := table.Iterate(h, btree.At[int64](-2), btree.At[int64](2))
	require.NoError(t, err)
	keys, vals := it.Collect()
	require.Equal(t, []int64{-2, -1, 0, 1}, keys)
	require.Equal(t, []uint64{4, 1, 0, 1}, vals)

	require.NoError(t, table.Destroy(h))
}
