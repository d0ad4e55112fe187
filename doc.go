/*
Package scenegraph implements a tree of payload-carrying nodes, backed by a
generational arena, together with two depth-first traversal primitives.

The graph consists of a single root payload, held inline by the SceneGraph
itself, and any number of branch nodes, held in an arena and addressed by
versioned indices. Every node is identified by a NodeIndex, an opaque,
copyable handle which clients may keep around to re-enter the tree later;
a handle for a node that has since been removed simply stops resolving.

Children of a node form an intrusive singly-linked chain in attachment
order, with a stored tail so that attaching is O(1). There is no random
access to the i-th child; traversal only ever needs "first child" and
"next sibling", and that is all the node records store.

Traversal

Two traversal primitives are offered, both depth-first preorder, both
pull-based with an explicit frame stack (no recursion, so arbitrarily deep
trees are fine):

IterFrom starts at any valid node and yields each proper descendant
together with its NodeIndex. It only ever reads the graph.

IterMutPredicate walks from the root and yields, for every node admitted
by a caller-supplied predicate, a pair of pointers: one to the node's
payload and one to its parent's payload, so that both may be updated in
one step. A node rejected by the predicate is skipped along with its whole
subtree; its siblings are unaffected. The two pointers of a pair are
guaranteed to address distinct records; they are valid only until the next
call to Next on the same iterator.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scenegraph

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'scenegraph'.
func tracer() tracing.Trace {
	return tracing.Select("scenegraph")
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("scenegraph: "+msg, msgargs...)
		panic(msg)
	}
}
