package scenegraph

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// condNode is the payload type for pruning tests: a name plus the flag the
// predicate looks at.
type condNode struct {
	name      string
	condition bool
}

func always(*string) bool { return true }

func TestIterMutReturnsNothingOnEmptyGraph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scenegraph")
	defer teardown()
	//
	sg := New("Root")
	it := sg.IterMutPredicate(always)
	if _, _, ok := it.Next(); ok {
		t.Error("expected traversal of root-only graph to be empty, wasn't")
	}
}

func TestIterMutNormal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scenegraph")
	defer teardown()
	//
	sg := New("Root")
	sg.Attach(Root(), "First Child")
	secondChild, _ := sg.Attach(Root(), "Second Child")
	sg.Attach(secondChild, "First Grandchild")

	expectMutPayloads(t, sg, always, "First Child", "Second Child", "First Grandchild")
}

func TestIterMutStagger(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scenegraph")
	defer teardown()
	//
	sg := New("Root")
	child, _ := sg.Attach(Root(), "First Child")
	sg.Attach(child, "Second Child")

	expectMutPayloads(t, sg, always, "First Child", "Second Child")
}

func TestIterMutSingle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scenegraph")
	defer teardown()
	//
	sg := New("Root")
	sg.Attach(Root(), "First Child")
	expectMutPayloads(t, sg, always, "First Child")
}

func TestIterMutAgreesWithReadOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scenegraph")
	defer teardown()
	//
	sg := New("Root")
	a, _ := sg.Attach(Root(), "a")
	aa, _ := sg.Attach(a, "a.a")
	sg.Attach(aa, "a.a.a")
	sg.Attach(a, "a.b")
	b, _ := sg.Attach(Root(), "b")
	sg.Attach(b, "b.a")

	read := iterItems(t, sg, Root())
	it := sg.IterMutPredicate(always)
	pos := 0
	for _, child, ok := it.Next(); ok; _, child, ok = it.Next() {
		if pos >= len(read) {
			t.Fatal("mutable traversal yields more nodes than the read traversal")
		}
		if *child != *read[pos].Payload {
			t.Errorf("traversals disagree at position %d: %q vs %q", pos, *child, *read[pos].Payload)
		}
		pos++
	}
	if pos != len(read) {
		t.Errorf("expected mutable traversal to yield %d nodes, yielded %d", len(read), pos)
	}
}

func TestIterMutVisitsNoneWhenRootDoesNotMatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scenegraph")
	defer teardown()
	//
	sg := New(condNode{"Root", false})
	sg.Attach(Root(), condNode{"Child 1", true})

	count := 0
	it := sg.IterMutPredicate(func(n *condNode) bool { return n.condition })
	for _, _, ok := it.Next(); ok; _, _, ok = it.Next() {
		count++
	}
	if count != 0 {
		t.Errorf("expected the whole graph to be skipped, visited %d nodes", count)
	}
}

func TestIterMutVisitsOnlyMatchingNodes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scenegraph")
	defer teardown()
	//
	sg := New(condNode{"Root", true})
	c1, _ := sg.Attach(Root(), condNode{"Child 1", true})
	c2, _ := sg.Attach(Root(), condNode{"Child 2", false})
	sg.Attach(Root(), condNode{"Child 3", true})
	sg.Attach(c1, condNode{"Child of child 1", true})
	// Skipped entirely: its parent fails the predicate.
	sg.Attach(c2, condNode{"Child of child 2", true})

	var names []string
	it := sg.IterMutPredicate(func(n *condNode) bool { return n.condition })
	for _, child, ok := it.Next(); ok; _, child, ok = it.Next() {
		names = append(names, child.name)
	}
	expected := []string{"Child 1", "Child of child 1", "Child 3"}
	if len(names) != len(expected) {
		t.Fatalf("expected %d admitted nodes, got %d: %v", len(expected), len(names), names)
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("expected node #%d to be %q, is %q", i, expected[i], names[i])
		}
	}
}

func TestIterMutYieldsParentOfEachChild(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scenegraph")
	defer teardown()
	//
	sg := New("Root")
	a, _ := sg.Attach(Root(), "a")
	sg.Attach(a, "a.a")
	sg.Attach(Root(), "b")

	expectedParent := map[string]string{"a": "Root", "a.a": "a", "b": "Root"}
	it := sg.IterMutPredicate(always)
	for parent, child, ok := it.Next(); ok; parent, child, ok = it.Next() {
		if want := expectedParent[*child]; *parent != want {
			t.Errorf("expected parent of %q to be %q, is %q", *child, want, *parent)
		}
	}
}

func TestIterMutMutatesParentAndChild(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scenegraph")
	defer teardown()
	//
	// Count, on every node, how often it shows up in a yielded pair. A
	// node is a "child" once and a "parent" once per admitted child.
	type counted struct {
		asParent int
		asChild  int
	}
	sg := New(counted{})
	a, _ := sg.Attach(Root(), counted{})
	sg.Attach(a, counted{})
	sg.Attach(a, counted{})
	sg.Attach(Root(), counted{})

	it := sg.IterMutPredicate(func(*counted) bool { return true })
	for parent, child, ok := it.Next(); ok; parent, child, ok = it.Next() {
		parent.asParent++
		child.asChild++
	}
	root, _ := sg.Get(Root())
	if root.asParent != 2 {
		t.Errorf("expected root to parent 2 yields, parented %d", root.asParent)
	}
	aPayload, _ := sg.Get(a)
	if aPayload.asParent != 2 || aPayload.asChild != 1 {
		t.Errorf("expected inner node to be parent twice and child once, got %d/%d",
			aPayload.asParent, aPayload.asChild)
	}
}

func TestIterMutSeesEarlierMutations(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scenegraph")
	defer teardown()
	//
	// Writing through a yielded pair must be visible when the same node
	// comes around again as a parent.
	sg := New("root")
	a, _ := sg.Attach(Root(), "a")
	sg.Attach(a, "a.a")

	it := sg.IterMutPredicate(always)
	for parent, child, ok := it.Next(); ok; parent, child, ok = it.Next() {
		if *child == "a" {
			*child = "A"
		}
		if *child == "a.a" && *parent != "A" {
			t.Errorf("expected mutation of %q to be visible in later parent yield, read %q", "a", *parent)
		}
	}
	payload, _ := sg.Get(a)
	if *payload != "A" {
		t.Errorf("expected mutation to persist after traversal, read %q", *payload)
	}
}

func TestWalkMutPredicate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scenegraph")
	defer teardown()
	//
	sg := New(condNode{"Root", true})
	c1, _ := sg.Attach(Root(), condNode{"Child 1", true})
	sg.Attach(c1, condNode{"Child of child 1", false})
	sg.Attach(Root(), condNode{"Child 2", true})

	var visited []string
	sg.WalkMutPredicate(
		func(n *condNode) bool { return n.condition },
		func(parent, child *condNode) { visited = append(visited, child.name) },
	)
	expected := []string{"Child 1", "Child 2"}
	if len(visited) != len(expected) {
		t.Fatalf("expected %d visits, got %d: %v", len(expected), len(visited), visited)
	}
	for i := range expected {
		if visited[i] != expected[i] {
			t.Errorf("expected visit #%d to be %q, is %q", i, expected[i], visited[i])
		}
	}
}

// --- Helpers ------------------------------------------------------------

func expectMutPayloads(t *testing.T, sg *SceneGraph[string], pred Predicate[string], expected ...string) {
	t.Helper()
	it := sg.IterMutPredicate(pred)
	var names []string
	for _, child, ok := it.Next(); ok; _, child, ok = it.Next() {
		names = append(names, *child)
	}
	if len(names) != len(expected) {
		t.Fatalf("expected %d nodes, traversal yielded %d: %v", len(expected), len(names), names)
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("expected node #%d to be %q, is %q", i, expected[i], names[i])
		}
	}
}
