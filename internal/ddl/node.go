package ddl

import "github.com/google/uuid"

// NodeKind discriminates the two shapes a DdlNode can take (spec.md §3
// invariant): a primitive-list node carries typed payload cells and no
// children; a custom-structure node carries children/properties and no
// payload.
type NodeKind int

const (
	// KindStructure is a custom, arbitrarily-named container node.
	KindStructure NodeKind = iota
	// KindPrimitiveList is a node whose type identifier is a reserved
	// primitive keyword and which carries a typed payload.
	KindPrimitiveList
)

// DdlNode is a node in the parsed OpenDDL tree. It exclusively owns its
// children, properties and payload cells; Parent is a non-owning back
// reference (spec.md §5). ID gives every node a stable identity usable
// for diagnostics and for consumer-side reference resolution without
// requiring pointer identity to survive a copy or a (de)serialization
// round trip — the same role google/uuid plays for session identity in
// the teacher's internal/shared-dsl/session package.
type DdlNode struct {
	ID             uuid.UUID
	Kind           NodeKind
	TypeIdentifier Identifier
	Name           *Name
	Properties     []Property
	// Payload holds the ordered, typed primitive cells of a
	// KindPrimitiveList node; it is non-nil (empty until cells are
	// added) from NewPrimitiveListNode on. It stays nil for a
	// custom-structure node.
	Payload []PrimCell
	// Arity is the declared group size recorded alongside the
	// payload's type for `type[N]` data-array-lists; 1 for a plain
	// data list. Payload length is always a multiple of Arity.
	Arity int
	// PrimType is the payload's declared primitive type; only
	// meaningful when Kind == KindPrimitiveList.
	PrimType PrimitiveType

	Children []*DdlNode
	Parent   *DdlNode
}

// NewStructureNode creates an empty custom-structure node.
func NewStructureNode(typeIdent Identifier, name *Name) *DdlNode {
	return &DdlNode{
		ID:             uuid.New(),
		Kind:           KindStructure,
		TypeIdentifier: typeIdent,
		Name:           name,
	}
}

// NewPrimitiveListNode creates an empty primitive-list node declared
// with the given primitive type and arity (1 for a plain data list).
func NewPrimitiveListNode(typeIdent Identifier, primType PrimitiveType, arity int) *DdlNode {
	if arity <= 0 {
		arity = 1
	}
	return &DdlNode{
		ID:             uuid.New(),
		Kind:           KindPrimitiveList,
		TypeIdentifier: typeIdent,
		PrimType:       primType,
		Arity:          arity,
		Payload:        []PrimCell{},
	}
}

// AttachParent makes n a child of parent, appending it to parent's
// child list in source order and setting n's non-owning back
// reference. It is the tree-model equivalent of the source
// implementation's DDLNode::attachParent.
func (n *DdlNode) AttachParent(parent *DdlNode) {
	n.Parent = parent
	if parent != nil {
		parent.Children = append(parent.Children, n)
	}
}

// AddProperty appends a property in source order; duplicate
// identifiers are allowed (spec.md §8).
func (n *DdlNode) AddProperty(p Property) {
	n.Properties = append(n.Properties, p)
}

// AddPayloadCells appends cells to the node's payload, preserving
// order; used by parseDataList/parseDataArrayList to build up a flat
// payload from one or more groups.
func (n *DdlNode) AddPayloadCells(cells ...PrimCell) {
	n.Payload = append(n.Payload, cells...)
}

// Depth returns the number of ancestors between n and the tree root,
// i.e. the root itself has depth 0.
func (n *DdlNode) Depth() int {
	d := 0
	for p := n.Parent; p != nil; p = p.Parent {
		d++
	}
	return d
}
