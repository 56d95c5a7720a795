// Package skiplist is a small ordered map. It is test support only: the b-tree and handle
// tests replay every operation against it and compare the results.
package skiplist

import (
	"cmp"
	"math"
	"math/rand/v2"
)

const (
	MaxHeight = 16
	p         = 0.5
)

var probabilities [MaxHeight]uint32

type node[K cmp.Ordered, V any] struct {
	key   K
	val   V
	tower [MaxHeight]*node[K, V]
}

type SkipList[K cmp.Ordered, V any] struct {
	head   *node[K, V] // starting head node
	height int         // current height
	length int
}

func init() {
	probability := 1.0

	for level := 0; level < MaxHeight; level++ {
		probabilities[level] = uint32(probability * float64(math.MaxUint32))
		probability *= p
	}
}

func randomHeight() int {
	seed := rand.Uint32()

	height := 1
	for height < MaxHeight && seed <= probabilities[height] {
		height++
	}

	return height
}

func New[K cmp.Ordered, V any]() *SkipList[K, V] {
	return &SkipList[K, V]{
		head:   &node[K, V]{},
		height: 1,
	}
}

func (sl *SkipList[K, V]) Len() int {
	return sl.length
}

func (sl *SkipList[K, V]) search(key K) (*node[K, V], [MaxHeight]*node[K, V]) {
	var next *node[K, V]
	var journey [MaxHeight]*node[K, V]

	prev := sl.head
	// top to bottom level
	for level := sl.height - 1; level >= 0; level-- {
		for next = prev.tower[level]; next != nil; next = prev.tower[level] {
			// key <= next.key
			if cmp.Compare(key, next.key) <= 0 {
				break
			}
			// key > next.key
			prev = next
		}
		journey[level] = prev
	}

	if next != nil && cmp.Compare(key, next.key) == 0 {
		return next, journey
	}
	return nil, journey
}

func (sl *SkipList[K, V]) Get(key K) (V, bool) {
	n, _ := sl.search(key)

	if n != nil {
		return n.val, true
	}
	var zero V
	return zero, false
}

// Insert reports whether key was new.
func (sl *SkipList[K, V]) Insert(key K, val V) bool {
	n, journey := sl.search(key)

	// update value of existing key
	if n != nil {
		n.val = val
		return false
	}

	height := randomHeight()
	newNode := &node[K, V]{
		key: key,
		val: val,
	}

	// bottom to top level
	for level := 0; level < height; level++ {
		prev := journey[level]
		if prev == nil {
			// prev is nil if we extend the height of the list,
			// journey array won't have an entry for it.
			prev = sl.head
		}
		newNode.tower[level] = prev.tower[level]
		prev.tower[level] = newNode
	}

	// update current height of skiplist
	if height > sl.height {
		sl.height = height
	}
	sl.length++
	return true
}

func (sl *SkipList[K, V]) shrink() {
	for level := sl.height - 1; level > 0; level-- {
		if sl.head.tower[level] == nil {
			sl.height--
		} else {
			break
		}
	}
}

func (sl *SkipList[K, V]) Delete(key K) bool {
	n, journey := sl.search(key)

	// no such key exists
	if n == nil {
		return false
	}

	// bottom to top level
	for level := 0; level < sl.height; level++ {
		prev := journey[level]

		if prev.tower[level] != n {
			break
		}

		prev.tower[level] = n.tower[level]
		n.tower[level] = nil
	}

	// shrink height if the removed node was the only node residing on
	// that particular level of the skip list.
	sl.shrink()
	sl.length--
	return true
}

// Ascend calls fn for each entry with from <= key < to in order, until fn returns false.
// A nil bound is open.
func (sl *SkipList[K, V]) Ascend(from, to *K, fn func(K, V) bool) {
	next := sl.head.tower[0]
	if from != nil {
		_, journey := sl.search(*from)
		next = journey[0].tower[0]
	}
	for ; next != nil; next = next.tower[0] {
		if to != nil && cmp.Compare(next.key, *to) >= 0 {
			return
		}
		if !fn(next.key, next.val) {
			return
		}
	}
}
