package ddl

import "testing"

// =============================================================================
// Basic Parsing
// =============================================================================

func TestParse_EmptyBufferYieldsRootOnlyTree(t *testing.T) {
	p := NewParserWithBuffer([]byte(""), false)
	if !p.Parse() {
		t.Fatal("expected empty buffer to parse successfully")
	}
	root := p.GetRoot()
	if root == nil {
		t.Fatal("expected non-nil root")
	}
	if len(root.Children) != 0 {
		t.Errorf("expected no children, got %d", len(root.Children))
	}
}

func TestParse_EmptyStructure(t *testing.T) {
	p := NewParserWithBuffer([]byte("Foo {}"), false)
	if !p.Parse() {
		t.Fatal("expected Foo {} to parse")
	}
	root := p.GetRoot()
	if len(root.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(root.Children))
	}
	foo := root.Children[0]
	if foo.TypeIdentifier != "Foo" || foo.Kind != KindStructure {
		t.Errorf("unexpected node: %+v", foo)
	}
}

func TestParse_MetricWithProperty(t *testing.T) {
	p := NewParserWithBuffer([]byte(`Metric (key = "mass") {float {1.0}}`), false)
	if !p.Parse() {
		t.Fatal("expected parse to succeed")
	}
	metric := p.GetRoot().Children[0]
	if metric.TypeIdentifier != "Metric" {
		t.Fatalf("expected Metric, got %s", metric.TypeIdentifier)
	}
	if len(metric.Properties) != 1 || metric.Properties[0].Identifier != "key" {
		t.Fatalf("expected 1 property 'key', got %+v", metric.Properties)
	}
	if metric.Properties[0].Cell.Str != "mass" {
		t.Errorf("expected property value 'mass', got %q", metric.Properties[0].Cell.Str)
	}
	if len(metric.Children) != 1 {
		t.Fatalf("expected 1 child (float list), got %d", len(metric.Children))
	}
	floatNode := metric.Children[0]
	if floatNode.Kind != KindPrimitiveList || floatNode.PrimType != PrimFloat {
		t.Errorf("expected a float primitive-list child, got %+v", floatNode)
	}
	if len(floatNode.Payload) != 1 || floatNode.Payload[0].Float != 1.0 {
		t.Errorf("expected payload [1.0], got %+v", floatNode.Payload)
	}
}

func TestParse_GeometryNodeWithGlobalName(t *testing.T) {
	p := NewParserWithBuffer([]byte(`GeometryNode $node1 {Name {string {"box01"}}}`), false)
	if !p.Parse() {
		t.Fatal("expected parse to succeed")
	}
	geom := p.GetRoot().Children[0]
	if geom.Name == nil || geom.Name.Scope != ScopeGlobal || geom.Name.Identifier != "node1" {
		t.Fatalf("expected name $node1, got %+v", geom.Name)
	}
}

func TestParse_Int16List(t *testing.T) {
	p := NewParserWithBuffer([]byte(`int16 {1, 2, 3, -4}`), false)
	if !p.Parse() {
		t.Fatal("expected parse to succeed")
	}
	node := p.GetRoot().Children[0]
	if node.Kind != KindPrimitiveList || node.PrimType != PrimInt16 {
		t.Fatalf("expected int16 primitive list, got %+v", node)
	}
	want := []int64{1, 2, 3, -4}
	if len(node.Payload) != len(want) {
		t.Fatalf("expected %d cells, got %d", len(want), len(node.Payload))
	}
	for i, w := range want {
		if node.Payload[i].Int != w {
			t.Errorf("cell %d: expected %d, got %d", i, w, node.Payload[i].Int)
		}
	}
}

func TestParse_TransformFloatArray(t *testing.T) {
	src := `Transform {float[4] {{1,0,0,0}, {0,1,0,0}, {0,0,1,0}, {0,0,0,1}}}`
	p := NewParserWithBuffer([]byte(src), false)
	if !p.Parse() {
		t.Fatal("expected parse to succeed")
	}
	transform := p.GetRoot().Children[0]
	floatList := transform.Children[0]
	if floatList.Arity != 4 {
		t.Fatalf("expected arity 4, got %d", floatList.Arity)
	}
	if len(floatList.Payload) != 16 {
		t.Fatalf("expected 16 cells, got %d", len(floatList.Payload))
	}
}

func TestParse_RefWithRefBlock(t *testing.T) {
	p := NewParserWithBuffer([]byte(`Node (material = ref {$mat1}) {}`), false)
	if !p.Parse() {
		t.Fatal("expected parse to succeed")
	}
	node := p.GetRoot().Children[0]
	prop := node.Properties[0]
	if prop.Kind != PropertyValueReference {
		t.Fatalf("expected a reference-valued property, got %+v", prop)
	}
	if len(prop.Ref.Names) != 1 || prop.Ref.Names[0].Identifier != "mat1" {
		t.Errorf("unexpected reference: %+v", prop.Ref)
	}
}

func TestParse_TwoTopLevelSiblings(t *testing.T) {
	p := NewParserWithBuffer([]byte(`A {} B {}`), false)
	if !p.Parse() {
		t.Fatal("expected parse to succeed")
	}
	if len(p.GetRoot().Children) != 2 {
		t.Fatalf("expected 2 siblings, got %d", len(p.GetRoot().Children))
	}
	if p.GetRoot().Children[0].TypeIdentifier != "A" || p.GetRoot().Children[1].TypeIdentifier != "B" {
		t.Errorf("unexpected sibling order: %+v", p.GetRoot().Children)
	}
}

// =============================================================================
// Error Cases
// =============================================================================

func TestParse_ArityMismatchFails(t *testing.T) {
	p := NewParserWithBuffer([]byte(`float[4] {{1,2,3}}`), false)
	if p.Parse() {
		t.Fatal("expected arity mismatch to fail parsing")
	}
}

func TestParse_IntegerOutOfRangeFails(t *testing.T) {
	p := NewParserWithBuffer([]byte(`int8 {300}`), false)
	if p.Parse() {
		t.Fatal("expected out-of-range int8 literal to fail parsing")
	}
}

func TestParse_UnterminatedBlockCommentFails(t *testing.T) {
	p := NewParserWithBuffer([]byte(`Foo {} /* never closed`), false)
	if p.Parse() {
		t.Fatal("expected unterminated block comment to fail parsing")
	}
}

func TestParse_TrailingGarbageFails(t *testing.T) {
	p := NewParserWithBuffer([]byte(`Foo {} )`), false)
	if p.Parse() {
		t.Fatal("expected trailing unmatched ')' to fail parsing")
	}
}

func TestParse_MaxDepthExceededFails(t *testing.T) {
	p := NewParserWithBuffer([]byte(`A {B {C {}}}`), false)
	p.SetMaxDepth(2)
	if p.Parse() {
		t.Fatal("expected nesting past max depth to fail parsing")
	}
}

// =============================================================================
// Parser Lifecycle
// =============================================================================

func TestParser_ClearResetsState(t *testing.T) {
	p := NewParserWithBuffer([]byte(`Foo {}`), false)
	if !p.Parse() {
		t.Fatal("expected first parse to succeed")
	}
	p.Clear()
	if p.GetRoot() != nil {
		t.Error("expected root to be nil after Clear")
	}
	if p.GetBufferSize() != 0 {
		t.Error("expected buffer to be cleared")
	}
}

func TestParser_SetBufferDiscardsPreviousTree(t *testing.T) {
	p := NewParserWithBuffer([]byte(`Foo {}`), false)
	p.Parse()
	p.SetBuffer([]byte(`Bar {}`), false)
	if p.GetRoot() != nil {
		t.Error("expected SetBuffer to discard the previous tree")
	}
	if !p.Parse() {
		t.Fatal("expected reparse to succeed")
	}
	if p.GetRoot().Children[0].TypeIdentifier != "Bar" {
		t.Errorf("expected Bar, got %s", p.GetRoot().Children[0].TypeIdentifier)
	}
}

func TestParser_LogCallbackReceivesErrors(t *testing.T) {
	var gotSeverity Severity
	var gotMessage string
	p := NewParserWithBuffer([]byte(`int8 {300}`), false)
	p.SetLogCallback(func(sev Severity, msg string) {
		gotSeverity = sev
		gotMessage = msg
	})
	if p.Parse() {
		t.Fatal("expected parse to fail")
	}
	if gotSeverity != SeverityError {
		t.Errorf("expected SeverityError, got %v", gotSeverity)
	}
	if gotMessage == "" {
		t.Error("expected a non-empty log message")
	}
}
