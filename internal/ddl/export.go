package ddl

import (
	"strconv"
	"strings"
)

// Export walks root depth-first (each node's header before its
// children, its closing brace after them) and renders syntactically equivalent
// OpenDDL text (spec.md §4.4). root is expected to be the synthetic
// root returned by Parser.GetRoot(): only its children are rendered,
// one top-level declaration per child, in source order.
func Export(root *DdlNode) string {
	var sb strings.Builder
	for _, child := range root.Children {
		exportNode(&sb, child, 0)
	}
	return sb.String()
}

func indent(sb *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		sb.WriteString("  ")
	}
}

func exportNode(sb *strings.Builder, n *DdlNode, depth int) {
	indent(sb, depth)
	sb.WriteString(string(n.TypeIdentifier))

	if n.Kind == KindPrimitiveList && n.Arity > 1 {
		sb.WriteByte('[')
		sb.WriteString(strconv.Itoa(n.Arity))
		sb.WriteByte(']')
	}

	if n.Name != nil {
		sb.WriteByte(' ')
		sb.WriteString(n.Name.String())
	}

	if len(n.Properties) > 0 {
		sb.WriteString(" (")
		for i, prop := range n.Properties {
			if i > 0 {
				sb.WriteString(", ")
			}
			exportProperty(sb, prop)
		}
		sb.WriteByte(')')
	}

	sb.WriteString(" {")

	switch n.Kind {
	case KindPrimitiveList:
		exportPayload(sb, n)
		sb.WriteString("}\n")
	default:
		if len(n.Children) == 0 {
			sb.WriteString("}\n")
			return
		}
		sb.WriteByte('\n')
		for _, child := range n.Children {
			exportNode(sb, child, depth+1)
		}
		indent(sb, depth)
		sb.WriteString("}\n")
	}
}

func exportProperty(sb *strings.Builder, prop Property) {
	sb.WriteString(string(prop.Identifier))
	sb.WriteString(" = ")
	switch prop.Kind {
	case PropertyValueReference:
		if len(prop.Ref.Names) == 1 {
			sb.WriteString(prop.Ref.Names[0].String())
		} else {
			sb.WriteString("ref { ")
			sb.WriteString(prop.Ref.String())
			sb.WriteString(" }")
		}
	default:
		// A property literal has no declared type: the parser types it
		// by its spelling, so unsigned cells are written in hex and
		// whole-valued doubles keep a fractional part.
		s := formatCell(prop.Cell)
		switch prop.Cell.Type {
		case PrimUInt8, PrimUInt16, PrimUInt32, PrimUInt64:
			s = "0x" + strconv.FormatUint(prop.Cell.UInt, 16)
		case PrimDouble:
			if !strings.ContainsAny(s, ".e") {
				s += ".0"
			}
		}
		sb.WriteString(s)
	}
}

func exportPayload(sb *strings.Builder, n *DdlNode) {
	if len(n.Payload) == 0 {
		return
	}
	if n.Arity <= 1 {
		for i, cell := range n.Payload {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(formatCell(cell))
		}
		return
	}

	for g := 0; g < len(n.Payload); g += n.Arity {
		if g > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("{ ")
		for i := 0; i < n.Arity; i++ {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(formatCell(n.Payload[g+i]))
		}
		sb.WriteString(" }")
	}
}

// formatCell renders a single PrimCell's value per spec.md §4.4: bool
// as true/false, integers as decimal, floating as a round-trip-safe
// shortest decimal, strings requoted with escapes, names as their
// source sigil form.
func formatCell(c PrimCell) string {
	switch c.Type {
	case PrimBool:
		if c.Bool {
			return "true"
		}
		return "false"
	case PrimInt8, PrimInt16, PrimInt32, PrimInt64:
		return strconv.FormatInt(c.Int, 10)
	case PrimUInt8, PrimUInt16, PrimUInt32, PrimUInt64:
		return strconv.FormatUint(c.UInt, 10)
	case PrimHalf:
		return strconv.FormatFloat(float64(c.Half), 'g', -1, 32)
	case PrimFloat:
		return strconv.FormatFloat(float64(c.Float), 'g', -1, 32)
	case PrimDouble:
		return strconv.FormatFloat(c.Double, 'g', -1, 64)
	case PrimString:
		return quoteString(c.Str)
	case PrimRef:
		return c.Name.String()
	default:
		return ""
	}
}

// quoteString renders a Go string back into OpenDDL's `"..."` syntax,
// escaping backslash, double quote, newline, tab and carriage return —
// the exact escape set ParseStringLiteral understands (spec.md §4.2),
// so export/re-parse round-trips exactly.
func quoteString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
