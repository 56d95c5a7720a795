package btree

import (
	"cmp"

	"github.com/cockroachdb/errors"
)

/*
Check walks the whole tree and verifies every structural invariant: strictly increasing
keys, separator ordering, uniform leaf depth, occupancy bounds, child counts, and that the
cached length, height and node count match what is reachable. It returns an assertion
failure describing the first violation.
*/
func (tr *BTree[K, V]) Check() error {
	if tr.destroyed {
		return ErrUseAfterDestroy
	}
	if tr.root == nil {
		if tr.count != 0 || tr.height != 0 || tr.nodes != 0 {
			return errors.AssertionFailedf("empty tree reports len=%d height=%d nodes=%d", tr.count, tr.height, tr.nodes)
		}
		return nil
	}
	if len(tr.root.items) == 0 {
		return errors.AssertionFailedf("non-nil root holds no keys")
	}

	c := checker[K, V]{tr: tr, leafDepth: -1}
	if err := c.walk(tr.root, 0, nil, nil); err != nil {
		return err
	}
	switch {
	case c.items != tr.count:
		return errors.AssertionFailedf("len is %d but %d items are reachable", tr.count, c.items)
	case c.nodes != tr.nodes:
		return errors.AssertionFailedf("node count is %d but %d nodes are reachable", tr.nodes, c.nodes)
	case c.leafDepth+1 != tr.height:
		return errors.AssertionFailedf("height is %d but leaves sit at depth %d", tr.height, c.leafDepth)
	}
	return nil
}

type checker[K cmp.Ordered, V any] struct {
	tr        *BTree[K, V]
	leafDepth int
	items     int
	nodes     int
}

// walk checks n, whose keys must lie strictly between lo and hi when those are set.
func (c *checker[K, V]) walk(n *node[K, V], depth int, lo, hi *K) error {
	c.nodes++
	c.items += len(n.items)

	if n != c.tr.root && len(n.items) < c.tr.minItems() {
		return errors.AssertionFailedf("node at depth %d holds %d keys, minimum is %d", depth, len(n.items), c.tr.minItems())
	}
	if len(n.items) > c.tr.maxItems() {
		return errors.AssertionFailedf("node at depth %d holds %d keys, maximum is %d", depth, len(n.items), c.tr.maxItems())
	}
	for i, it := range n.items {
		if i > 0 && cmp.Compare(n.items[i-1].key, it.key) >= 0 {
			return errors.AssertionFailedf("keys out of order at depth %d: %v then %v", depth, n.items[i-1].key, it.key)
		}
		if lo != nil && cmp.Compare(it.key, *lo) <= 0 {
			return errors.AssertionFailedf("key %v at depth %d is not above separator %v", it.key, depth, *lo)
		}
		if hi != nil && cmp.Compare(it.key, *hi) >= 0 {
			return errors.AssertionFailedf("key %v at depth %d is not below separator %v", it.key, depth, *hi)
		}
	}

	if n.isLeaf() {
		if c.leafDepth == -1 {
			c.leafDepth = depth
		} else if c.leafDepth != depth {
			return errors.AssertionFailedf("leaves at depths %d and %d", c.leafDepth, depth)
		}
		return nil
	}

	if len(n.children) != len(n.items)+1 {
		return errors.AssertionFailedf("internal node at depth %d has %d keys and %d children", depth, len(n.items), len(n.children))
	}
	for i, child := range n.children {
		childLo, childHi := lo, hi
		if i > 0 {
			childLo = &n.items[i-1].key
		}
		if i < len(n.items) {
			childHi = &n.items[i].key
		}
		if err := c.walk(child, depth+1, childLo, childHi); err != nil {
			return err
		}
	}
	return nil
}
