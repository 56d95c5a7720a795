package btree

import (
	"cmp"
	"fmt"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

/*
BTree only keeps a pointer to the root node of the tree plus the bookkeeping its public
operations report. A tree is made up of nodes. Each node contains data items.
An empty tree has a nil root.
*/
type BTree[K cmp.Ordered, V any] struct {
	root      *node[K, V]
	degree    int
	count     int
	height    int
	nodes     int
	maxNodes  int
	version   uint64
	destroyed bool
	logger    *zap.Logger
}

// New creates an empty tree with the given minimum degree, which must be at least 2.
func New[K cmp.Ordered, V any](minDegree int, opts ...Option) (*BTree[K, V], error) {
	if minDegree < 2 {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "minimum degree %d is below 2", minDegree)
	}
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxNodes < 0 {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "node budget %d is negative", o.maxNodes)
	}
	return &BTree[K, V]{
		degree:   minDegree,
		maxNodes: o.maxNodes,
		logger:   o.logger,
	}, nil
}

func (tr *BTree[K, V]) maxItems() int { return 2*tr.degree - 1 }
func (tr *BTree[K, V]) minItems() int { return tr.degree - 1 }

// MinDegree returns the minimum degree the tree was created with.
func (tr *BTree[K, V]) MinDegree() int { return tr.degree }

// Len returns the number of stored entries.
func (tr *BTree[K, V]) Len() int { return tr.count }

// Height returns the number of levels, 0 for an empty tree.
func (tr *BTree[K, V]) Height() int { return tr.height }

// Destroyed reports whether Destroy has been called.
func (tr *BTree[K, V]) Destroyed() bool { return tr.destroyed }

func (tr *BTree[K, V]) String() string {
	if tr.destroyed {
		return fmt.Sprintf("BTree(t=%d, destroyed)", tr.degree)
	}
	return fmt.Sprintf("BTree(t=%d, len=%d, height=%d, nodes=%d)", tr.degree, tr.count, tr.height, tr.nodes)
}

// reserve fails when n more nodes would exceed the node budget.
func (tr *BTree[K, V]) reserve(n int) error {
	if tr.maxNodes > 0 && tr.nodes+n > tr.maxNodes {
		tr.logger.Warn("b-tree node budget exhausted",
			zap.Int("nodes", tr.nodes), zap.Int("maxNodes", tr.maxNodes))
		return errors.Wrapf(ErrResourceExhausted, "%d more nodes needed, %d of %d in use", n, tr.nodes, tr.maxNodes)
	}
	return nil
}

func (tr *BTree[K, V]) newNode() *node[K, V] {
	tr.nodes++
	return &node[K, V]{items: make([]item[K, V], 0, tr.maxItems()+1)}
}

func (tr *BTree[K, V]) freeNode(n *node[K, V]) {
	tr.nodes--
	n.items = nil
	n.children = nil
}

// Find returns the value stored under key, or ErrKeyNotFound.
func (tr *BTree[K, V]) Find(key K) (V, error) {
	var zero V
	if tr.destroyed {
		return zero, ErrUseAfterDestroy
	}
	if tr.root == nil {
		return zero, ErrKeyNotFound
	}
	n, pos, found := tr.root.get(key)
	if !found {
		return zero, ErrKeyNotFound
	}
	return n.items[pos].val, nil
}

// Has reports whether key is stored. A destroyed tree holds nothing.
func (tr *BTree[K, V]) Has(key K) bool {
	if tr.destroyed || tr.root == nil {
		return false
	}
	_, _, found := tr.root.get(key)
	return found
}

/*
Create a new root node.
The existing root then becomes the new root's left child.
The new node created after splitting the existing root becomes new root's right child.
Only called for a full internal root; a full leaf root is handled by insertIntoFullRoot.
*/
func (tr *BTree[K, V]) splitRoot() error {
	if err := tr.reserve(2); err != nil {
		return err
	}
	newRoot, right := tr.newNode(), tr.newNode()
	midItem := tr.root.split(tr.minItems(), right)
	newRoot.items = append(newRoot.items, midItem)
	newRoot.children = append(newRoot.children, tr.root, right)
	tr.root = newRoot
	tr.grew()
	return nil
}

// insertIntoFullRoot inserts into a root that is a full leaf and splits it into a new root.
func (tr *BTree[K, V]) insertIntoFullRoot(it item[K, V]) error {
	if err := tr.reserve(2); err != nil {
		return err
	}
	newRoot, right := tr.newNode(), tr.newNode()
	pos, _ := tr.root.search(it.key)
	tr.root.insertItemAt(pos, it)
	midItem := tr.root.split(tr.degree, right)
	newRoot.items = append(newRoot.items, midItem)
	newRoot.children = append(newRoot.children, tr.root, right)
	tr.root = newRoot
	tr.grew()
	return nil
}

func (tr *BTree[K, V]) grew() {
	tr.height++
	tr.logger.Debug("b-tree root split", zap.Int("height", tr.height), zap.Int("nodes", tr.nodes))
}

/*
Insert stores value under key. An existing key has its value overwritten in place, with
no structural change, and the result is Updated; otherwise the result is Inserted.
The only failures are ErrUseAfterDestroy and ErrResourceExhausted. On the latter the key
is not stored, and any split already completed on the way down leaves a valid tree.
*/
func (tr *BTree[K, V]) Insert(key K, value V) (Result, error) {
	if tr.destroyed {
		return NotFound, ErrUseAfterDestroy
	}

	// The tree is empty, so initialize a new node.
	if tr.root == nil {
		if err := tr.reserve(1); err != nil {
			return NotFound, err
		}
		tr.root = tr.newNode()
		tr.root.items = append(tr.root.items, item[K, V]{key: key, val: value})
		tr.count++
		tr.height = 1
		tr.version++
		return Inserted, nil
	}

	// The data item already exists, so just update its value.
	if n, pos, found := tr.root.get(key); found {
		n.items[pos].val = value
		tr.version++
		return Updated, nil
	}

	nodes := tr.nodes
	it := item[K, V]{key: key, val: value}
	var err error
	switch {
	case len(tr.root.items) < tr.maxItems():
		err = tr.root.insert(tr, it)
	case tr.root.isLeaf():
		err = tr.insertIntoFullRoot(it)
	default:
		// The tree root is full, so perform a split on the root before descending.
		if err = tr.splitRoot(); err == nil {
			err = tr.root.insert(tr, it)
		}
	}
	if err != nil {
		// Splits finished before the failure still moved items between nodes.
		if tr.nodes != nodes {
			tr.version++
		}
		return NotFound, err
	}
	tr.count++
	tr.version++
	return Inserted, nil
}

// Update overwrites the value of an existing key and never inserts.
func (tr *BTree[K, V]) Update(key K, value V) (Result, error) {
	if tr.destroyed {
		return NotFound, ErrUseAfterDestroy
	}
	if tr.root == nil {
		return NotFound, nil
	}
	n, pos, found := tr.root.get(key)
	if !found {
		return NotFound, nil
	}
	n.items[pos].val = value
	tr.version++
	return Updated, nil
}

/*
Delete removes key. A missing key yields NotFound and leaves the tree untouched: presence
is checked before the rebalancing descent starts.
*/
func (tr *BTree[K, V]) Delete(key K) (Result, error) {
	if tr.destroyed {
		return NotFound, ErrUseAfterDestroy
	}
	if !tr.Has(key) {
		return NotFound, nil
	}
	tr.version++
	if _, ok := tr.root.remove(tr, key, removeItem); !ok {
		return NotFound, errors.AssertionFailedf("key %v vanished during delete", key)
	}
	tr.count--

	if len(tr.root.items) == 0 {
		old := tr.root
		if old.isLeaf() {
			tr.root = nil
		} else {
			tr.root = old.children[0]
		}
		tr.freeNode(old)
		tr.height--
		if tr.root != nil {
			tr.logger.Debug("b-tree root collapsed", zap.Int("height", tr.height), zap.Int("nodes", tr.nodes))
		}
	}
	return Deleted, nil
}

// Min returns the entry with the smallest key.
func (tr *BTree[K, V]) Min() (K, V, error) {
	var (
		k K
		v V
	)
	if tr.destroyed {
		return k, v, ErrUseAfterDestroy
	}
	if tr.root == nil {
		return k, v, ErrKeyNotFound
	}
	it := tr.root.min()
	return it.key, it.val, nil
}

// Max returns the entry with the largest key.
func (tr *BTree[K, V]) Max() (K, V, error) {
	var (
		k K
		v V
	)
	if tr.destroyed {
		return k, v, ErrUseAfterDestroy
	}
	if tr.root == nil {
		return k, v, ErrKeyNotFound
	}
	it := tr.root.max()
	return it.key, it.val, nil
}

// Last returns the entry with the largest key in [from, to).
func (tr *BTree[K, V]) Last(from, to Bound[K]) (K, V, error) {
	var (
		k K
		v V
	)
	if tr.destroyed {
		return k, v, ErrUseAfterDestroy
	}
	if tr.root == nil {
		return k, v, ErrKeyNotFound
	}
	var it item[K, V]
	if to.set {
		var ok bool
		if it, ok = tr.root.below(to.key); !ok {
			return k, v, ErrKeyNotFound
		}
	} else {
		it = tr.root.max()
	}
	if from.set && cmp.Less(it.key, from.key) {
		return k, v, ErrKeyNotFound
	}
	return it.key, it.val, nil
}

/*
Destroy releases every node. The tree is unusable afterwards: all operations report
ErrUseAfterDestroy, including a second Destroy.
*/
func (tr *BTree[K, V]) Destroy() error {
	if tr.destroyed {
		return ErrUseAfterDestroy
	}
	tr.logger.Debug("b-tree destroyed", zap.Int("keys", tr.count), zap.Int("nodes", tr.nodes))
	tr.root = nil
	tr.count, tr.height, tr.nodes = 0, 0, 0
	tr.version++
	tr.destroyed = true
	return nil
}
