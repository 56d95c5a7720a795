package btree

import (
	"cmp"
	"strings"

	"github.com/fatih/color"
)

var (
	levelColor = color.New(color.FgYellow, color.Bold)
	keyColor   = color.New(color.FgCyan)
	dimColor   = color.New(color.Faint)
)

// Visualizer renders a tree one level per line, e.g.
//
//	L0: [3]
//	L1: [1 2] [4 5]
type Visualizer[K cmp.Ordered, V any] struct {
	Tree *BTree[K, V]
}

func (v *Visualizer[K, V]) Visualize() string {
	switch {
	case v.Tree == nil || v.Tree.destroyed:
		return dimColor.Sprint("<destroyed>")
	case v.Tree.root == nil:
		return dimColor.Sprint("<empty>")
	}

	var b strings.Builder
	level := []*node[K, V]{v.Tree.root}
	for depth := 0; len(level) > 0; depth++ {
		if depth > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(levelColor.Sprintf("L%d:", depth))
		var next []*node[K, V]
		for _, n := range level {
			b.WriteString(" [")
			for i, it := range n.items {
				if i > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(keyColor.Sprint(it.key))
			}
			b.WriteByte(']')
			next = append(next, n.children...)
		}
		level = next
	}
	return b.String()
}
