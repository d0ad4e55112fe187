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

// Iter is a read-only depth-first preorder iterator over a scene graph,
// created by SceneGraph.IterFrom. See there for the traversal contract.
type Iter[T any] struct {
	sg    *SceneGraph[T]
	stack []iterFrame[T]
}

type iterFrame[T any] struct {
	index NodeIndex
	node  *node[T]
}

// Item is one node yielded by a read-only traversal: the node's index,
// for re-entering the tree later, and its payload.
type Item[T any] struct {
	Index   NodeIndex
	Payload *T
}

// IterFrom creates an iterator over all proper descendants of the node at
// start, in depth-first preorder: a node's descendants are fully visited
// before its next sibling, and children of one parent appear in
// attachment order. The start node itself is not yielded.
//
// The graph must not be mutated while the iterator is in use. An iterator
// is a single forward pass; to traverse again, create a new one.
//
// IterFrom returns ErrNodeNotFound if start is a stale branch handle;
// the root is always a valid starting point.
func (sg *SceneGraph[T]) IterFrom(start NodeIndex) (*Iter[T], error) {
	span := sg.rootChildren
	if !start.IsRoot() {
		n, ok := sg.nodes.Get(start.slot)
		if !ok {
			return nil, ErrNodeNotFound
		}
		span = n.children
	}
	it := &Iter[T]{sg: sg}
	if !span.isEmpty() {
		it.push(span.first)
	}
	return it, nil
}

// Next returns the next node of the traversal, or false when the sequence
// is exhausted. The returned payload pointer grants read access; writing
// through it would break the shared-access contract of this iterator.
func (it *Iter[T]) Next() (NodeIndex, *T, bool) {
	if len(it.stack) == 0 {
		return NodeIndex{}, nil, false
	}
	top := it.stack[len(it.stack)-1]
	it.stack = it.stack[:len(it.stack)-1]
	// The sibling goes onto the stack before the first child, so the
	// child, popped first, has its subtree exhausted before the sibling
	// gets its turn. That is the whole preorder argument.
	if !top.node.sibling.IsNull() {
		it.push(top.node.sibling)
	}
	if !top.node.children.isEmpty() {
		it.push(top.node.children.first)
	}
	return top.index, &top.node.payload, true
}

// All drains the iterator into a slice.
func (it *Iter[T]) All() []Item[T] {
	var items []Item[T]
	for ix, payload, ok := it.Next(); ok; ix, payload, ok = it.Next() {
		items = append(items, Item[T]{Index: ix, Payload: payload})
	}
	return items
}

func (it *Iter[T]) push(slot arena.Index) {
	n, ok := it.sg.nodes.Get(slot)
	assertThat(ok, "dangling child index %v during traversal", slot)
	it.stack = append(it.stack, iterFrame[T]{index: branchIndex(slot), node: n})
}
