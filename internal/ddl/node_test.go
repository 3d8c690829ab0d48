package ddl

import "testing"

// =============================================================================
// Node Construction and Tree Shape
// =============================================================================

func TestAttachParent_AppendsChildAndSetsBackReference(t *testing.T) {
	parent := NewStructureNode("Root", nil)
	child := NewStructureNode("Child", nil)

	child.AttachParent(parent)

	if len(parent.Children) != 1 || parent.Children[0] != child {
		t.Fatalf("expected child appended to parent, got %+v", parent.Children)
	}
	if child.Parent != parent {
		t.Error("expected child's Parent to reference parent")
	}
}

func TestDepth_RootIsZeroAndIncreasesPerAncestor(t *testing.T) {
	root := NewStructureNode("Root", nil)
	mid := NewStructureNode("Mid", nil)
	leaf := NewStructureNode("Leaf", nil)

	mid.AttachParent(root)
	leaf.AttachParent(mid)

	if root.Depth() != 0 {
		t.Errorf("expected root depth 0, got %d", root.Depth())
	}
	if mid.Depth() != 1 {
		t.Errorf("expected mid depth 1, got %d", mid.Depth())
	}
	if leaf.Depth() != 2 {
		t.Errorf("expected leaf depth 2, got %d", leaf.Depth())
	}
}

func TestNewPrimitiveListNode_DefaultsArityToOne(t *testing.T) {
	n := NewPrimitiveListNode("int8", PrimInt8, 0)
	if n.Arity != 1 {
		t.Errorf("expected arity defaulted to 1, got %d", n.Arity)
	}
	if n.Kind != KindPrimitiveList {
		t.Errorf("expected KindPrimitiveList, got %v", n.Kind)
	}
}

func TestAddPayloadCells_PreservesOrder(t *testing.T) {
	n := NewPrimitiveListNode("int8", PrimInt8, 1)
	n.AddPayloadCells(NewIntCell(PrimInt8, 1), NewIntCell(PrimInt8, 2))
	n.AddPayloadCells(NewIntCell(PrimInt8, 3))

	if len(n.Payload) != 3 {
		t.Fatalf("expected 3 cells, got %d", len(n.Payload))
	}
	for i, want := range []int64{1, 2, 3} {
		if n.Payload[i].Int != want {
			t.Errorf("cell %d: expected %d, got %d", i, want, n.Payload[i].Int)
		}
	}
}

// =============================================================================
// ParseStack
// =============================================================================

func TestParseStack_PushPopOrder(t *testing.T) {
	s := NewParseStack()
	a := NewStructureNode("A", nil)
	b := NewStructureNode("B", nil)

	s.Push(a)
	s.Push(b)

	top, ok := s.Top()
	if !ok || top != b {
		t.Fatalf("expected top to be B, got %+v ok=%v", top, ok)
	}

	popped, ok := s.Pop()
	if !ok || popped != b {
		t.Fatalf("expected pop to return B, got %+v ok=%v", popped, ok)
	}
	if s.Depth() != 1 {
		t.Errorf("expected depth 1 after pop, got %d", s.Depth())
	}

	popped2, ok2 := s.Pop()
	if !ok2 || popped2 != a {
		t.Fatalf("expected pop to return A, got %+v ok=%v", popped2, ok2)
	}
	if !s.Empty() {
		t.Error("expected stack to be empty")
	}
}

func TestParseStack_PopOnEmptyReportsNotOK(t *testing.T) {
	s := NewParseStack()
	_, ok := s.Pop()
	if ok {
		t.Error("expected Pop on empty stack to report ok=false")
	}
}

// =============================================================================
// Name and Identifier Rendering
// =============================================================================

func TestName_StringRendersSigil(t *testing.T) {
	global := Name{Scope: ScopeGlobal, Identifier: "node1"}
	if global.String() != "$node1" {
		t.Errorf("expected $node1, got %q", global.String())
	}
	local := Name{Scope: ScopeLocal, Identifier: "node1"}
	if local.String() != "%node1" {
		t.Errorf("expected %%node1, got %q", local.String())
	}
}

func TestReference_StringJoinsNames(t *testing.T) {
	ref := Reference{Names: []Name{
		{Scope: ScopeGlobal, Identifier: "a"},
		{Scope: ScopeGlobal, Identifier: "b"},
	}}
	if ref.String() != "$a, $b" {
		t.Errorf("expected '$a, $b', got %q", ref.String())
	}
}
