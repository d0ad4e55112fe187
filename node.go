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

// NodeIndex identifies a node of a SceneGraph: either the distinguished
// root, or a branch node sitting in the graph's arena. NodeIndex is
// opaque, copyable and comparable; clients keep it around to re-enter the
// tree at a previously visited node.
//
// The zero NodeIndex identifies the root, which is always valid. A branch
// NodeIndex turns stale when its node is removed from the graph, after
// which operations taking it will report ErrNodeNotFound.
type NodeIndex struct {
	slot arena.Index // null for the root
}

// Root returns the NodeIndex of the root node. Equal to the zero NodeIndex.
func Root() NodeIndex {
	return NodeIndex{}
}

// branchIndex wraps an arena slot as a NodeIndex.
func branchIndex(slot arena.Index) NodeIndex {
	return NodeIndex{slot: slot}
}

// IsRoot returns true if ix identifies the root node.
func (ix NodeIndex) IsRoot() bool {
	return ix.slot.IsNull()
}

func (ix NodeIndex) String() string {
	if ix.IsRoot() {
		return "NodeIndex(root)"
	}
	return "NodeIndex(" + ix.slot.String() + ")"
}

// node is the arena-resident record for one branch node: its payload plus
// its place in the tree. The root is not a node; it has no sibling and no
// parent, and its child span lives in the SceneGraph itself.
type node[T any] struct {
	payload  T
	children childSpan   // empty if the node is a leaf
	sibling  arena.Index // next sibling, null if this is the last child
}

// childSpan is the head and tail of a node's child chain. Children link to
// each other through their sibling index; the stored tail makes appending
// O(1). The zero childSpan is the empty chain.
type childSpan struct {
	first arena.Index
	last  arena.Index
}

func (span childSpan) isEmpty() bool {
	return span.first.IsNull()
}
