package btree

import "cmp"

// Bound is one end of an iteration range. The zero value is unbounded.
type Bound[K cmp.Ordered] struct {
	key K
	set bool
}

// At bounds a range at key: inclusive as a lower bound, exclusive as an upper bound.
func At[K cmp.Ordered](key K) Bound[K] {
	return Bound[K]{key: key, set: true}
}

// Unbounded leaves one end of a range open.
func Unbounded[K cmp.Ordered]() Bound[K] {
	return Bound[K]{}
}

// Key returns the bound's key and whether the bound is set.
func (b Bound[K]) Key() (K, bool) {
	return b.key, b.set
}

type frame[K cmp.Ordered, V any] struct {
	n   *node[K, V]
	pos int // next item of n to yield
}

/*
Iterator yields the entries of [from, to) in ascending key order, one at a time.
It keeps the root-to-current path on a stack, so nothing is materialised up front.

Mutating the tree while an iterator is live invalidates it: the next call to Next returns
false and Err reports ErrIteratorInvalidated. Rewind restarts the iterator against the
current contents.
*/
type Iterator[K cmp.Ordered, V any] struct {
	tree    *BTree[K, V]
	from    Bound[K]
	to      Bound[K]
	stack   []frame[K, V]
	version uint64
	err     error
	done    bool
}

// Iterate returns an iterator over [from, to).
func (tr *BTree[K, V]) Iterate(from, to Bound[K]) (*Iterator[K, V], error) {
	if tr.destroyed {
		return nil, ErrUseAfterDestroy
	}
	it := &Iterator[K, V]{tree: tr, from: from, to: to}
	it.Rewind()
	return it, nil
}

// Ascend calls fn for every entry of [from, to) in order until fn returns false.
func (tr *BTree[K, V]) Ascend(from, to Bound[K], fn func(key K, value V) bool) error {
	it, err := tr.Iterate(from, to)
	if err != nil {
		return err
	}
	for {
		k, v, ok := it.Next()
		if !ok {
			return it.Err()
		}
		if !fn(k, v) {
			return nil
		}
	}
}

// Rewind restarts the iteration at the lower bound.
func (it *Iterator[K, V]) Rewind() {
	it.stack = it.stack[:0]
	it.err = nil
	it.done = false
	tr := it.tree
	if tr.destroyed {
		it.err = ErrUseAfterDestroy
		it.done = true
		return
	}
	it.version = tr.version
	if tr.root == nil {
		it.done = true
		return
	}
	if !it.from.set {
		it.pushLeftmost(tr.root)
		return
	}
	for n := tr.root; ; {
		pos, found := n.search(it.from.key)
		it.stack = append(it.stack, frame[K, V]{n: n, pos: pos})
		if found || n.isLeaf() {
			return
		}
		n = n.children[pos]
	}
}

func (it *Iterator[K, V]) pushLeftmost(n *node[K, V]) {
	for {
		it.stack = append(it.stack, frame[K, V]{n: n})
		if n.isLeaf() {
			return
		}
		n = n.children[0]
	}
}

// Next returns the next entry, or ok == false once the range is exhausted or the
// iterator became invalid (see Err).
func (it *Iterator[K, V]) Next() (key K, value V, ok bool) {
	if it.done {
		return key, value, false
	}
	if it.tree.destroyed {
		return it.fail(ErrUseAfterDestroy)
	}
	if it.tree.version != it.version {
		return it.fail(ErrIteratorInvalidated)
	}
	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]
		if top.pos >= len(top.n.items) {
			it.stack = it.stack[:len(it.stack)-1]
			continue
		}
		cur := top.n.items[top.pos]
		top.pos++
		if it.to.set && cmp.Compare(cur.key, it.to.key) >= 0 {
			break
		}
		if !top.n.isLeaf() {
			it.pushLeftmost(top.n.children[top.pos])
		}
		return cur.key, cur.val, true
	}
	it.Close()
	return key, value, false
}

func (it *Iterator[K, V]) fail(err error) (key K, value V, ok bool) {
	it.err = err
	it.Close()
	return key, value, false
}

// Err returns the error that stopped the iteration early, or nil.
func (it *Iterator[K, V]) Err() error {
	return it.err
}

// Close releases the iterator's path. Next returns false afterwards until Rewind.
func (it *Iterator[K, V]) Close() {
	clear(it.stack)
	it.stack = it.stack[:0]
	it.done = true
}

// Collect drains the iterator into parallel key and value slices.
func (it *Iterator[K, V]) Collect() ([]K, []V) {
	var keys []K
	var vals []V
	for {
		k, v, ok := it.Next()
		if !ok {
			return keys, vals
		}
		keys = append(keys, k)
		vals = append(vals, v)
	}
}
