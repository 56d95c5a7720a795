package btree

import "cmp"

/*
A node holds its items in ascending key order. Internal nodes own len(items)+1 children;
a node with no children is a leaf. Slices replace fixed-size arrays because the degree
is chosen at runtime.
*/
type node[K cmp.Ordered, V any] struct {
	items    []item[K, V]
	children []*node[K, V]
}

func (n *node[K, V]) isLeaf() bool {
	return len(n.children) == 0
}

/*
If data item with key k is found in node n, return its index i.
Else, return the index j where the key would have resided if it was present in the node.
Basically, lower bound of the key in the node -- this coincides with position of the child pointer,
so the traversal continues down children[j] when the returned boolean value is false.
*/
func (n *node[K, V]) search(key K) (int, bool) {
	low, high := 0, len(n.items)
	for low < high {
		mid := int(uint(low+high) >> 1)
		switch c := cmp.Compare(key, n.items[mid].key); {
		case c > 0:
			low = mid + 1
		case c < 0:
			high = mid
		default:
			return mid, true
		}
	}
	return low, false
}

// helper method to insert data item at an arbitrary position of a node
func (n *node[K, V]) insertItemAt(pos int, it item[K, V]) {
	var zero item[K, V]
	n.items = append(n.items, zero)
	copy(n.items[pos+1:], n.items[pos:])
	n.items[pos] = it
}

// helper method to insert child pointer at an arbitrary position of a node
func (n *node[K, V]) insertChildAt(pos int, child *node[K, V]) {
	n.children = append(n.children, nil)
	copy(n.children[pos+1:], n.children[pos:])
	n.children[pos] = child
}

func (n *node[K, V]) removeItemAt(pos int) item[K, V] {
	out := n.items[pos]
	copy(n.items[pos:], n.items[pos+1:])
	var zero item[K, V]
	n.items[len(n.items)-1] = zero
	n.items = n.items[:len(n.items)-1]
	return out
}

func (n *node[K, V]) removeChildAt(pos int) *node[K, V] {
	out := n.children[pos]
	copy(n.children[pos:], n.children[pos+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
	return out
}

/*
split moves everything right of items[mid] into the empty node right and returns items[mid],
which the caller links into the parent together with right. n keeps items[:mid].
The caller allocates right beforehand so that a failed allocation never leaves a half-split node.
*/
func (n *node[K, V]) split(mid int, right *node[K, V]) item[K, V] {
	midItem := n.items[mid]
	right.items = append(right.items, n.items[mid+1:]...)
	clear(n.items[mid:])
	n.items = n.items[:mid]

	if !n.isLeaf() {
		right.children = append(right.children, n.children[mid+1:]...)
		clear(n.children[mid+1:])
		n.children = n.children[:mid+1]
	}
	return midItem
}

/*
insert walks from n down to the leaf that receives it. The caller has checked that the key
is absent.
Full internal children on the path are split before the descent enters them, so every
parent we return to has room for one more separator. A full leaf is split after it takes
the new item: it then holds 2t items, keeps t, promotes item t and hands t-1 to its new
right sibling.
*/
func (n *node[K, V]) insert(tr *BTree[K, V], it item[K, V]) error {
	pos, _ := n.search(it.key)

	// If we reach a leaf node -> it has sufficient space for the new item, insert it.
	if n.isLeaf() {
		n.insertItemAt(pos, it)
		return nil
	}

	child := n.children[pos]
	if len(child.items) < tr.maxItems() {
		return child.insert(tr, it)
	}

	if child.isLeaf() {
		return n.insertIntoFullLeaf(tr, pos, it)
	}

	// The next node on the traversal path is a full internal node, so split it.
	if err := tr.reserve(1); err != nil {
		return err
	}
	right := tr.newNode()
	midItem := child.split(tr.minItems(), right)
	n.insertItemAt(pos, midItem)
	n.insertChildAt(pos+1, right)

	// The promoted item may be smaller than the key, then the key belongs to the new right node.
	if cmp.Less(midItem.key, it.key) {
		pos++
	}
	return n.children[pos].insert(tr, it)
}

// insertIntoFullLeaf places it into the full leaf children[pos] and splits that leaf.
func (n *node[K, V]) insertIntoFullLeaf(tr *BTree[K, V], pos int, it item[K, V]) error {
	if err := tr.reserve(1); err != nil {
		return err
	}
	full := n.children[pos]
	right := tr.newNode()
	at, _ := full.search(it.key)
	full.insertItemAt(at, it)
	midItem := full.split(tr.degree, right)
	n.insertItemAt(pos, midItem)
	n.insertChildAt(pos+1, right)
	return nil
}

// get returns the node and index holding key, if any.
func (n *node[K, V]) get(key K) (*node[K, V], int, bool) {
	for next := n; next != nil; {
		pos, found := next.search(key)
		if found {
			return next, pos, true
		}
		if next.isLeaf() {
			break
		}
		next = next.children[pos]
	}
	return nil, 0, false
}

func (n *node[K, V]) min() item[K, V] {
	for !n.isLeaf() {
		n = n.children[0]
	}
	return n.items[0]
}

func (n *node[K, V]) max() item[K, V] {
	for !n.isLeaf() {
		n = n.children[len(n.children)-1]
	}
	return n.items[len(n.items)-1]
}

// below returns the largest item whose key is strictly less than key.
func (n *node[K, V]) below(key K) (item[K, V], bool) {
	var best item[K, V]
	var ok bool
	for next := n; next != nil; {
		pos, _ := next.search(key)
		if pos > 0 {
			best, ok = next.items[pos-1], true
		}
		if next.isLeaf() {
			break
		}
		next = next.children[pos]
	}
	return best, ok
}
