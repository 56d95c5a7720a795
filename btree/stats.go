package btree

// Stats holds statistics about the tree.
type Stats struct {
	Height        int
	Nodes         int
	InternalNodes int
	Leaves        int
	Keys          int
}

// Stats counts nodes by kind. It visits every node.
func (tr *BTree[K, V]) Stats() (Stats, error) {
	if tr.destroyed {
		return Stats{}, ErrUseAfterDestroy
	}
	s := Stats{Height: tr.height}
	if tr.root == nil {
		return s, nil
	}
	level := []*node[K, V]{tr.root}
	for len(level) > 0 {
		var next []*node[K, V]
		for _, n := range level {
			s.Nodes++
			s.Keys += len(n.items)
			if n.isLeaf() {
				s.Leaves++
				continue
			}
			s.InternalNodes++
			next = append(next, n.children...)
		}
		level = next
	}
	return s, nil
}
