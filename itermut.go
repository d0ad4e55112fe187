package scenegraph

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"github.com/npillmayer/scenegraph/arena"
)

// Predicate decides whether a node, and with it its whole subtree, takes
// part in a mutable traversal. A predicate must be a pure function of the
// payload: it must not mutate the graph, and it must return.
type Predicate[T any] func(payload *T) bool

// IterMut is a mutable depth-first preorder iterator created by
// SceneGraph.IterMutPredicate. See there for the traversal contract.
//
// Frames hold indices only, never pointers; every Next call resolves its
// pair freshly from the arena. Pointers handed out by one Next call are
// therefore valid only until the next call on the same iterator, and no
// two live pairs can overlap on one record.
type IterMut[T any] struct {
	sg    *SceneGraph[T]
	pred  Predicate[T]
	stack []mutFrame
}

// mutFrame is one pending traversal step: a candidate node, keyed by the
// index of its parent so the pair can be resolved disjointly.
type mutFrame struct {
	parent    NodeIndex
	candidate arena.Index
}

// IterMutPredicate creates a mutable traversal of the whole graph,
// yielding for every admitted node a pair of payload pointers: the node's
// parent and the node itself, so that both may be updated in one step.
//
// A node is admitted only if pred accepts its payload. A rejected node is
// skipped together with its entire subtree; its siblings are still
// considered. The root is tested lazily, when traversal first reaches one
// of its children; a rejected root empties the whole sequence.
//
// The iterator requires exclusive use of the graph for its lifetime: no
// other read or write may touch the graph until the traversal is dropped.
// Pointers returned by Next are valid only until the next call to Next.
func (sg *SceneGraph[T]) IterMutPredicate(pred Predicate[T]) *IterMut[T] {
	it := &IterMut[T]{sg: sg, pred: pred}
	if !sg.rootChildren.isEmpty() {
		it.stack = append(it.stack, mutFrame{parent: Root(), candidate: sg.rootChildren.first})
	}
	return it
}

// Next returns the next admitted (parent, child) payload pair, or false
// when the traversal is exhausted. Parent and child always address two
// distinct records, which the arena's disjoint-pair lookup enforces.
func (it *IterMut[T]) Next() (parent *T, child *T, ok bool) {
	for len(it.stack) > 0 {
		top := it.stack[len(it.stack)-1]
		it.stack = it.stack[:len(it.stack)-1]

		var candidate *node[T]
		if top.parent.IsRoot() {
			parent = &it.sg.root
			if !it.pred(parent) {
				// A rejected root prunes everything: every pending frame
				// is rooted here as well and would fail the same test.
				continue
			}
			n, ok := it.sg.nodes.Get(top.candidate)
			assertThat(ok, "dangling child index %v during traversal", top.candidate)
			candidate = n
		} else {
			// Parent and candidate are distinct by the tree shape (no
			// node is its own ancestor); Get2 enforces it.
			p, n := it.sg.nodes.Get2(top.parent.slot, top.candidate)
			assertThat(p != nil, "dangling parent index %v during traversal", top.parent)
			assertThat(n != nil, "dangling child index %v during traversal", top.candidate)
			parent = &p.payload
			candidate = n
		}

		// The sibling stays under the same parent, so a rejected
		// candidate does not take its siblings down with it.
		if !candidate.sibling.IsNull() {
			it.stack = append(it.stack, mutFrame{parent: top.parent, candidate: candidate.sibling})
		}
		if !it.pred(&candidate.payload) {
			tracer().Debugf("pruning subtree at %v", top.candidate)
			continue
		}
		if !candidate.children.isEmpty() {
			it.stack = append(it.stack, mutFrame{
				parent:    branchIndex(top.candidate),
				candidate: candidate.children.first,
			})
		}
		return parent, &candidate.payload, true
	}
	return nil, nil, false
}

// WalkMutPredicate runs a whole pruned mutable traversal, calling visit
// once per admitted node with the (parent, child) payload pair. The pair
// is only valid for the duration of the call, which bounds its scope to a
// single step; prefer this over IterMutPredicate when the traversal does
// not need to pause.
func (sg *SceneGraph[T]) WalkMutPredicate(pred Predicate[T], visit func(parent, child *T)) {
	it := sg.IterMutPredicate(pred)
	for parent, child, ok := it.Next(); ok; parent, child, ok = it.Next() {
		visit(parent, child)
	}
}
