package ddl

// PropertyValueKind discriminates the value carried by a Property.
type PropertyValueKind int

const (
	// PropertyValueCell marks a property whose value is a single
	// PrimCell — this also covers the grammar's "identifier encoded as
	// a string-typed cell" case (spec.md §3), since a bare identifier
	// used as a property value is stored as a PrimString cell by
	// parseProperty. A bare $/% name is stored as a reference instead.
	PropertyValueCell PropertyValueKind = iota
	// PropertyValueReference marks a property whose value is a
	// `ref { ... }` block or bare name list.
	PropertyValueReference
)

// Property is an `identifier = value` pair attached to a structure
// header. Properties are kept in an ordered slice on their owning
// DdlNode rather than a singly linked list (design note §9 applies the
// same contiguous-sequence treatment used for PrimCell); source order
// and duplicates are both preserved, since property-identifier
// semantics are a consumer concern (spec.md §8).
type Property struct {
	Identifier Identifier
	Kind       PropertyValueKind
	Cell       PrimCell
	Ref        Reference
}

// NewCellProperty builds a property whose value is a single primitive cell.
func NewCellProperty(id Identifier, cell PrimCell) Property {
	return Property{Identifier: id, Kind: PropertyValueCell, Cell: cell}
}

// NewReferenceProperty builds a property whose value is a reference.
func NewReferenceProperty(id Identifier, ref Reference) Property {
	return Property{Identifier: id, Kind: PropertyValueReference, Ref: ref}
}
