package btree

import "cmp"

/*
data item in a node.
key uniquely identifies a data item and is used for sorting; val is the caller's payload.
*/
type item[K cmp.Ordered, V any] struct {
	key K
	val V
}
