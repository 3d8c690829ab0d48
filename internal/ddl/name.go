package ddl

import "fmt"

// Name is a scoped symbolic identifier: a pair (scope, identifier)
// where scope is Global ($name) or Local (%name). Names are kept
// symbolic everywhere in the tree — the core never resolves a Name to
// a pointer; that is left to consumers (spec.md §5).
type Name struct {
	Scope      Scope
	Identifier Identifier
}

// String renders the name in its source syntax, e.g. "$node1" or "%b".
func (n Name) String() string {
	return fmt.Sprintf("%s%s", n.Scope, n.Identifier)
}

// Reference is an ordered, owned sequence of Names, produced either by
// a `ref { name, ... }` block or by a bare comma-separated name list in
// property position.
type Reference struct {
	Names []Name
}

// String renders the reference as a comma-separated name list.
func (r Reference) String() string {
	s := ""
	for i, n := range r.Names {
		if i > 0 {
			s += ", "
		}
		s += n.String()
	}
	return s
}
