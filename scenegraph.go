package scenegraph

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"
	"fmt"

	"github.com/npillmayer/scenegraph/arena"
)

// ErrNodeNotFound is returned if a client passed a NodeIndex whose node is
// no longer part of the scene graph.
var ErrNodeNotFound = errors.New("node not found in scene graph")

// ErrCannotMoveRoot is returned on an attempt to detach, remove or
// reparent the root node. The root lives and dies with its graph.
var ErrCannotMoveRoot = errors.New("root node cannot be detached or moved")

// ErrCyclicReparent is returned if reparenting a node would place it below
// its own subtree, which would turn the tree into a cycle.
var ErrCyclicReparent = errors.New("cannot reparent a node below its own subtree")

// SceneGraph is a tree of payload-carrying nodes. The root payload is held
// by the graph itself; all other nodes live in a generational arena and
// are addressed through their NodeIndex.
//
// A SceneGraph is not safe for concurrent mutation. Read-only traversals
// may run concurrently with each other, but a mutable traversal
// (IterMutPredicate) requires exclusive use of the graph for its whole
// lifetime.
type SceneGraph[T any] struct {
	root         T
	rootChildren childSpan
	nodes        arena.Arena[node[T]]
}

// New creates a scene graph consisting of just a root node carrying the
// given payload.
func New[T any](rootPayload T) *SceneGraph[T] {
	return &SceneGraph[T]{root: rootPayload}
}

// Len returns the number of branch nodes in the graph, i.e. all nodes
// except the root.
func (sg *SceneGraph[T]) Len() int {
	return sg.nodes.Len()
}

// Get returns a pointer to the payload of the node identified by ix, or
// false if ix is a stale branch handle. The root always resolves.
func (sg *SceneGraph[T]) Get(ix NodeIndex) (*T, bool) {
	if ix.IsRoot() {
		return &sg.root, true
	}
	n, ok := sg.nodes.Get(ix.slot)
	if !ok {
		return nil, false
	}
	return &n.payload, true
}

// Attach inserts a new node carrying payload as the last child of parent,
// so that sibling order always equals attachment order. It returns the
// new node's index, or ErrNodeNotFound if parent does not resolve.
func (sg *SceneGraph[T]) Attach(parent NodeIndex, payload T) (NodeIndex, error) {
	if !parent.IsRoot() {
		if _, ok := sg.nodes.Get(parent.slot); !ok {
			return NodeIndex{}, ErrNodeNotFound
		}
	}
	slot := sg.nodes.Insert(node[T]{payload: payload})
	sg.appendChild(parent, slot)
	tracer().Debugf("attached node %v under %v", slot, parent)
	return branchIndex(slot), nil
}

// Detach unlinks the node at ix, together with its whole subtree, and
// returns it as a scene graph of its own, rooted at the detached node.
// The detached nodes get fresh indices in the new graph; handles into the
// old graph's subtree turn stale.
func (sg *SceneGraph[T]) Detach(ix NodeIndex) (*SceneGraph[T], error) {
	if ix.IsRoot() {
		return nil, ErrCannotMoveRoot
	}
	n, ok := sg.nodes.Get(ix.slot)
	if !ok {
		return nil, ErrNodeNotFound
	}
	sg.unlink(ix.slot)
	detached := New(n.payload)
	// Move the subtree over, preserving sibling order. Frames are pushed
	// sibling first, so a node's subtree is transplanted before its
	// sibling, which keeps attachment order intact in the new arena.
	type frame struct {
		oldSlot   arena.Index
		newParent NodeIndex
	}
	var stack []frame
	if !n.children.isEmpty() {
		stack = append(stack, frame{n.children.first, Root()})
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		old, ok := sg.nodes.Get(top.oldSlot)
		assertThat(ok, "dangling child index %v during detach", top.oldSlot)
		if !old.sibling.IsNull() {
			stack = append(stack, frame{old.sibling, top.newParent})
		}
		children := old.children
		rec, _ := sg.nodes.Remove(top.oldSlot)
		newIx, err := detached.Attach(top.newParent, rec.payload)
		assertThat(err == nil, "attach to freshly built graph failed: %v", err)
		if !children.isEmpty() {
			stack = append(stack, frame{children.first, newIx})
		}
	}
	sg.nodes.Remove(ix.slot)
	tracer().Debugf("detached subtree of %d nodes at %v", detached.Len()+1, ix)
	return detached, nil
}

// Remove unlinks the node at ix, drops its whole subtree, and returns the
// removed node's payload.
func (sg *SceneGraph[T]) Remove(ix NodeIndex) (T, error) {
	var none T
	if ix.IsRoot() {
		return none, ErrCannotMoveRoot
	}
	n, ok := sg.nodes.Get(ix.slot)
	if !ok {
		return none, ErrNodeNotFound
	}
	sg.unlink(ix.slot)
	payload := n.payload
	dropped := 0
	for _, slot := range sg.subtreeSlots(ix.slot) {
		sg.nodes.Remove(slot)
		dropped++
	}
	tracer().Debugf("removed %d nodes at %v", dropped, ix)
	return payload, nil
}

// Reparent unlinks the node at ix and re-attaches it, subtree and all, as
// the last child of newParent. Moving a node below its own subtree is
// refused with ErrCyclicReparent.
func (sg *SceneGraph[T]) Reparent(ix NodeIndex, newParent NodeIndex) error {
	if ix.IsRoot() {
		return ErrCannotMoveRoot
	}
	if _, ok := sg.nodes.Get(ix.slot); !ok {
		return ErrNodeNotFound
	}
	if !newParent.IsRoot() {
		if _, ok := sg.nodes.Get(newParent.slot); !ok {
			return ErrNodeNotFound
		}
		for _, slot := range sg.subtreeSlots(ix.slot) {
			if slot == newParent.slot {
				return ErrCyclicReparent
			}
		}
	}
	sg.unlink(ix.slot)
	sg.appendChild(newParent, ix.slot)
	tracer().Debugf("reparented %v under %v", ix, newParent)
	return nil
}

// Parent returns the index of the parent of the node at ix. The root has
// no parent; asking for it is an ErrNodeNotFound, as is a stale ix.
// Parent scans the tree from the root, so it is O(n).
func (sg *SceneGraph[T]) Parent(ix NodeIndex) (NodeIndex, error) {
	if ix.IsRoot() {
		return NodeIndex{}, ErrNodeNotFound
	}
	if _, ok := sg.nodes.Get(ix.slot); !ok {
		return NodeIndex{}, ErrNodeNotFound
	}
	parent, ok := sg.findParent(ix.slot)
	assertThat(ok, "node %v resolves but is unreachable from the root", ix)
	return parent, nil
}

// Clear drops all branch nodes, leaving just the root. All branch handles
// turn stale and stay stale: slots are vacated one by one, so their
// generation history survives and an old handle can never alias a node
// attached after the Clear.
func (sg *SceneGraph[T]) Clear() {
	for child := sg.rootChildren.first; !child.IsNull(); {
		n, ok := sg.nodes.Get(child)
		assertThat(ok, "dangling child index %v", child)
		next := n.sibling
		for _, slot := range sg.subtreeSlots(child) {
			sg.nodes.Remove(slot)
		}
		child = next
	}
	sg.rootChildren = childSpan{}
}

// --- Internal link management ------------------------------------------

// childSpanOf returns the child span of the node identified by parent,
// which must resolve.
func (sg *SceneGraph[T]) childSpanOf(parent NodeIndex) *childSpan {
	if parent.IsRoot() {
		return &sg.rootChildren
	}
	n, ok := sg.nodes.Get(parent.slot)
	assertThat(ok, "dangling parent index %v", parent)
	return &n.children
}

// appendChild links an already arena-resident node as the last child of
// parent. The node must currently be unlinked (null sibling, not part of
// any child chain).
func (sg *SceneGraph[T]) appendChild(parent NodeIndex, slot arena.Index) {
	span := sg.childSpanOf(parent)
	if span.isEmpty() {
		span.first = slot
		span.last = slot
		return
	}
	tail, ok := sg.nodes.Get(span.last)
	assertThat(ok, "dangling tail index %v in child span", span.last)
	tail.sibling = slot
	span.last = slot
}

// unlink removes the node at slot from its parent's child chain and clears
// its sibling link. The node itself stays in the arena.
func (sg *SceneGraph[T]) unlink(slot arena.Index) {
	parent, ok := sg.findParent(slot)
	assertThat(ok, "node %v resolves but is unreachable from the root", slot)
	span := sg.childSpanOf(parent)
	n, _ := sg.nodes.Get(slot)
	if span.first == slot {
		if span.last == slot { // only child
			*span = childSpan{}
		} else {
			span.first = n.sibling
		}
		n.sibling = arena.Index{}
		return
	}
	prevSlot := span.first
	for {
		prev, ok := sg.nodes.Get(prevSlot)
		assertThat(ok, "broken sibling chain at %v", prevSlot)
		if prev.sibling == slot {
			prev.sibling = n.sibling
			if span.last == slot {
				span.last = prevSlot
			}
			n.sibling = arena.Index{}
			return
		}
		prevSlot = prev.sibling
		assertThat(!prevSlot.IsNull(), "node %v not found in its parent's child chain", slot)
	}
}

// findParent locates the parent of the node at target by walking the tree
// from the root.
func (sg *SceneGraph[T]) findParent(target arena.Index) (NodeIndex, bool) {
	type frame struct {
		parent NodeIndex
		slot   arena.Index
	}
	var stack []frame
	if !sg.rootChildren.isEmpty() {
		stack = append(stack, frame{Root(), sg.rootChildren.first})
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.slot == target {
			return top.parent, true
		}
		n, ok := sg.nodes.Get(top.slot)
		assertThat(ok, "dangling child index %v", top.slot)
		if !n.sibling.IsNull() {
			stack = append(stack, frame{top.parent, n.sibling})
		}
		if !n.children.isEmpty() {
			stack = append(stack, frame{branchIndex(top.slot), n.children.first})
		}
	}
	return NodeIndex{}, false
}

// subtreeSlots collects the slots of the node at start and all of its
// descendants.
func (sg *SceneGraph[T]) subtreeSlots(start arena.Index) []arena.Index {
	slots := []arena.Index{start}
	for i := 0; i < len(slots); i++ {
		n, ok := sg.nodes.Get(slots[i])
		assertThat(ok, "dangling child index %v", slots[i])
		for child := n.children.first; !child.IsNull(); {
			slots = append(slots, child)
			c, ok := sg.nodes.Get(child)
			assertThat(ok, "broken sibling chain at %v", child)
			child = c.sibling
		}
	}
	return slots
}

func (sg *SceneGraph[T]) String() string {
	return fmt.Sprintf("(SceneGraph #nodes=%d root=%v)", sg.Len()+1, sg.root)
}
