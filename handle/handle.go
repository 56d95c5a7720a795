/*
Package handle exposes b-trees through opaque handles, the shape of a flat C-style API:
create returns a handle and every later call passes it back.

Handles are never reused. A handle whose tree was destroyed keeps reporting
btree.ErrUseAfterDestroy, and a value that was never issued reports ErrInvalidHandle.
A Table is not safe for concurrent use.
*/
package handle

import (
	"cmp"
	"slices"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"ordtree/btree"
)

// ErrInvalidHandle reports a handle the table never issued.
var ErrInvalidHandle = errors.New("invalid b-tree handle")

// Handle names a tree inside a Table. The zero Handle is never issued.
type Handle uint64

// Table owns the trees it creates and resolves handles to them.
type Table[K cmp.Ordered, V any] struct {
	trees     map[Handle]*btree.BTree[K, V]
	destroyed map[Handle]struct{}
	next      Handle
	opts      []btree.Option
	logger    *zap.Logger
}

// NewTable creates an empty table. opts are applied to every tree it creates.
func NewTable[K cmp.Ordered, V any](logger *zap.Logger, opts ...btree.Option) *Table[K, V] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Table[K, V]{
		trees:     make(map[Handle]*btree.BTree[K, V]),
		destroyed: make(map[Handle]struct{}),
		next:      1,
		opts:      append([]btree.Option{btree.WithLogger(logger)}, opts...),
		logger:    logger,
	}
}

// Create makes a new empty tree and returns its handle.
func (t *Table[K, V]) Create(minDegree int) (Handle, error) {
	tree, err := btree.New[K, V](minDegree, t.opts...)
	if err != nil {
		return 0, err
	}
	h := t.next
	t.next++
	t.trees[h] = tree
	t.logger.Info("b-tree created", zap.Uint64("handle", uint64(h)), zap.Int("minDegree", minDegree))
	return h, nil
}

// Get resolves h to its tree.
func (t *Table[K, V]) Get(h Handle) (*btree.BTree[K, V], error) {
	if tree, ok := t.trees[h]; ok {
		return tree, nil
	}
	if _, ok := t.destroyed[h]; ok {
		return nil, errors.Wrapf(btree.ErrUseAfterDestroy, "handle %d", h)
	}
	return nil, errors.Wrapf(ErrInvalidHandle, "handle %d", h)
}

// Insert stores value under key in the tree behind h, overwriting an existing value.
func (t *Table[K, V]) Insert(h Handle, key K, value V) (btree.Result, error) {
	tree, err := t.Get(h)
	if err != nil {
		return btree.NotFound, err
	}
	return tree.Insert(key, value)
}

// Update overwrites the value under an existing key and never inserts.
func (t *Table[K, V]) Update(h Handle, key K, value V) (btree.Result, error) {
	tree, err := t.Get(h)
	if err != nil {
		return btree.NotFound, err
	}
	return tree.Update(key, value)
}

// Find returns the value under key; a miss is btree.ErrKeyNotFound.
func (t *Table[K, V]) Find(h Handle, key K) (V, error) {
	tree, err := t.Get(h)
	if err != nil {
		var zero V
		return zero, err
	}
	return tree.Find(key)
}

// Delete removes key; a miss is btree.NotFound, not an error.
func (t *Table[K, V]) Delete(h Handle, key K) (btree.Result, error) {
	tree, err := t.Get(h)
	if err != nil {
		return btree.NotFound, err
	}
	return tree.Delete(key)
}

// Iterate returns an iterator over [from, to) of the tree behind h.
func (t *Table[K, V]) Iterate(h Handle, from, to btree.Bound[K]) (*btree.Iterator[K, V], error) {
	tree, err := t.Get(h)
	if err != nil {
		return nil, err
	}
	return tree.Iterate(from, to)
}

// Last returns the largest entry in [from, to).
func (t *Table[K, V]) Last(h Handle, from, to btree.Bound[K]) (K, V, error) {
	tree, err := t.Get(h)
	if err != nil {
		var (
			k K
			v V
		)
		return k, v, err
	}
	return tree.Last(from, to)
}

// Destroy releases the tree behind h. Destroying it again reports btree.ErrUseAfterDestroy.
func (t *Table[K, V]) Destroy(h Handle) error {
	tree, err := t.Get(h)
	if err != nil {
		return err
	}
	if err := tree.Destroy(); err != nil {
		return err
	}
	delete(t.trees, h)
	t.destroyed[h] = struct{}{}
	t.logger.Info("b-tree destroyed", zap.Uint64("handle", uint64(h)))
	return nil
}

// Len returns the number of live trees.
func (t *Table[K, V]) Len() int {
	return len(t.trees)
}

// Handles returns the live handles in ascending order.
func (t *Table[K, V]) Handles() []Handle {
	hs := make([]Handle, 0, len(t.trees))
	for h := range t.trees {
		hs = append(hs, h)
	}
	slices.Sort(hs)
	return hs
}
