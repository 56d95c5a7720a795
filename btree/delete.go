package btree

// toRemove details what item to remove in a node.remove call.
type toRemove int

const (
	removeItem toRemove = iota // removes the given key
	removeMin                  // removes smallest item in the subtree
	removeMax                  // removes largest item in the subtree
)

/*
remove deletes an item from the subtree rooted at n and returns it. For removeItem it
reports false, without touching any leaf, when key is absent; the descent may still have
rebalanced on the way down, so Delete checks presence first.
Every child the descent enters is first grown to at least t keys, so the leaf that finally
loses an item never drops below t-1. Only the root may end up empty, which the tree
collapses afterwards.
*/
func (n *node[K, V]) remove(tr *BTree[K, V], key K, typ toRemove) (item[K, V], bool) {
	var i int
	var found bool
	switch typ {
	case removeMax:
		if n.isLeaf() {
			return n.removeItemAt(len(n.items) - 1), true
		}
		i = len(n.items)
	case removeMin:
		if n.isLeaf() {
			return n.removeItemAt(0), true
		}
		i = 0
	default:
		i, found = n.search(key)
		if n.isLeaf() {
			if !found {
				return item[K, V]{}, false
			}
			return n.removeItemAt(i), true
		}
	}

	if found {
		return n.removeSeparator(tr, i), true
	}

	if len(n.children[i].items) <= tr.minItems() {
		i = n.growChild(tr, i)
	}
	return n.children[i].remove(tr, key, typ)
}

/*
removeSeparator deletes items[i] of an internal node.
The in-order predecessor replaces it when the left child can spare a key, else the
successor when the right child can. Otherwise both children are merged around it and
the deletion continues inside the merged child.
*/
func (n *node[K, V]) removeSeparator(tr *BTree[K, V], i int) item[K, V] {
	out := n.items[i]
	var zero K
	switch {
	case len(n.children[i].items) > tr.minItems():
		n.items[i], _ = n.children[i].remove(tr, zero, removeMax)
	case len(n.children[i+1].items) > tr.minItems():
		n.items[i], _ = n.children[i+1].remove(tr, zero, removeMin)
	default:
		n.mergeChildren(tr, i)
		n.children[i].remove(tr, out.key, removeItem)
	}
	return out
}

/*
growChild makes sure children[i] holds more than t-1 keys before the descent enters it:
borrow through the parent from the left sibling, else from the right sibling, else merge
with a sibling. It returns the index of the child that now covers that key range.
*/
func (n *node[K, V]) growChild(tr *BTree[K, V], i int) int {
	switch {
	case i > 0 && len(n.children[i-1].items) > tr.minItems():
		n.rotateRight(i)
	case i < len(n.items) && len(n.children[i+1].items) > tr.minItems():
		n.rotateLeft(i)
	default:
		if i >= len(n.items) {
			i--
		}
		n.mergeChildren(tr, i)
	}
	return i
}

// rotateRight moves the separator items[i-1] down into children[i] and the left sibling's
// largest item up in its place.
func (n *node[K, V]) rotateRight(i int) {
	child, left := n.children[i], n.children[i-1]
	stolen := left.removeItemAt(len(left.items) - 1)
	child.insertItemAt(0, n.items[i-1])
	n.items[i-1] = stolen
	if !left.isLeaf() {
		child.insertChildAt(0, left.removeChildAt(len(left.children)-1))
	}
}

// rotateLeft moves the separator items[i] down into children[i] and the right sibling's
// smallest item up in its place.
func (n *node[K, V]) rotateLeft(i int) {
	child, right := n.children[i], n.children[i+1]
	stolen := right.removeItemAt(0)
	child.items = append(child.items, n.items[i])
	n.items[i] = stolen
	if !right.isLeaf() {
		child.children = append(child.children, right.removeChildAt(0))
	}
}

// mergeChildren folds children[i+1] and the separator items[i] into children[i].
func (n *node[K, V]) mergeChildren(tr *BTree[K, V], i int) {
	child := n.children[i]
	sep := n.removeItemAt(i)
	right := n.removeChildAt(i + 1)
	child.items = append(child.items, sep)
	child.items = append(child.items, right.items...)
	child.children = append(child.children, right.children...)
	tr.freeNode(right)
}
