package scenegraph

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"

	"github.com/npillmayer/scenegraph/arena"
	tp "github.com/xlab/treeprint"
)

// Dump renders the graph as an ASCII tree, one line per node, children
// indented under their parent in attachment order. format turns a payload
// into its label; if format is nil, payloads are printed with %v.
//
// Dump is meant for debugging and tests, not for serialization.
func (sg *SceneGraph[T]) Dump(format func(payload T) string) string {
	if format == nil {
		format = func(payload T) string { return fmt.Sprintf("%v", payload) }
	}
	root := tp.NewWithRoot(format(sg.root))
	type frame struct {
		slot   arena.Index
		parent tp.Tree
	}
	var stack []frame
	// Stack frames pop in reverse push order, so children go on backwards
	// to come out in attachment order.
	pushChildren := func(span childSpan, parent tp.Tree) {
		var order []arena.Index
		for child := span.first; !child.IsNull(); {
			order = append(order, child)
			n, ok := sg.nodes.Get(child)
			assertThat(ok, "broken sibling chain at %v", child)
			child = n.sibling
		}
		for i := len(order) - 1; i >= 0; i-- {
			stack = append(stack, frame{order[i], parent})
		}
	}
	pushChildren(sg.rootChildren, root)
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n, ok := sg.nodes.Get(top.slot)
		assertThat(ok, "dangling child index %v during dump", top.slot)
		if n.children.isEmpty() {
			top.parent.AddNode(format(n.payload))
			continue
		}
		branch := top.parent.AddBranch(format(n.payload))
		pushChildren(n.children, branch)
	}
	return root.String()
}
