// Package ddl implements the OpenDDL parser core: buffer normalization,
// lexical primitives, the typed primitive/tree data model, the
// recursive-descent parser, and the exporter.
package ddl

import "fmt"

// PrimitiveType is the closed set of OpenDDL primitive data types.
type PrimitiveType int

// The reserved primitive type keywords, in the order they appear in
// the OpenDDL grammar. PrimNone is a sentinel for an uninitialized
// cell and never matches a keyword.
const (
	PrimNone PrimitiveType = iota
	PrimBool
	PrimInt8
	PrimInt16
	PrimInt32
	PrimInt64
	PrimUInt8
	PrimUInt16
	PrimUInt32
	PrimUInt64
	PrimHalf
	PrimFloat
	PrimDouble
	PrimString
	PrimRef
)

var primitiveTypeNames = map[PrimitiveType]string{
	PrimNone:   "none",
	PrimBool:   "bool",
	PrimInt8:   "int8",
	PrimInt16:  "int16",
	PrimInt32:  "int32",
	PrimInt64:  "int64",
	PrimUInt8:  "uint8",
	PrimUInt16: "uint16",
	PrimUInt32: "uint32",
	PrimUInt64: "uint64",
	PrimHalf:   "half",
	PrimFloat:  "float",
	PrimDouble: "double",
	PrimString: "string",
	PrimRef:    "ref",
}

// primitiveKeywords maps the reserved keyword spelling back to its
// PrimitiveType, used by the lexer to recognize a type identifier.
var primitiveKeywords = func() map[string]PrimitiveType {
	m := make(map[string]PrimitiveType, len(primitiveTypeNames))
	for t, name := range primitiveTypeNames {
		if t == PrimNone {
			continue
		}
		m[name] = t
	}
	return m
}()

// String renders the keyword spelling of a PrimitiveType.
func (t PrimitiveType) String() string {
	if name, ok := primitiveTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("PrimitiveType(%d)", int(t))
}

// IsPrimitiveKeyword reports whether ident names one of the reserved
// primitive type keywords, and returns the matching PrimitiveType.
// Exposed so callers can classify a type identifier without re-running
// ParsePrimitiveDataType (see SPEC_FULL.md, SUPPLEMENTED FEATURES).
func IsPrimitiveKeyword(ident Identifier) (PrimitiveType, bool) {
	t, ok := primitiveKeywords[string(ident)]
	return t, ok
}

// PrimCell is a single typed payload value. It is a closed sum type:
// exactly one of the typed fields is meaningful, selected by Type.
// This replaces the source implementation's tagged byte buffer plus
// linked-list "next" pointer (design note §9): a DdlNode holds its
// cells as a contiguous, ordered []PrimCell rather than chasing Next
// pointers, so PrimCell itself carries no link.
type PrimCell struct {
	Type   PrimitiveType
	Bool   bool
	Int    int64   // backing store for all signed integer widths
	UInt   uint64  // backing store for all unsigned integer widths and hex literals
	Half   float32 // IEEE-754 binary16 widened to float32 in memory (open question, §9)
	Float  float32
	Double float64
	Str    string // owned string payload for PrimString
	Name   Name   // owned reference payload for PrimRef
}

// NewBoolCell builds a Bool-typed primitive cell.
func NewBoolCell(v bool) PrimCell { return PrimCell{Type: PrimBool, Bool: v} }

// NewIntCell builds a signed-integer-typed primitive cell of the given width type.
func NewIntCell(t PrimitiveType, v int64) PrimCell { return PrimCell{Type: t, Int: v} }

// NewUIntCell builds an unsigned-integer-typed primitive cell of the given width type.
func NewUIntCell(t PrimitiveType, v uint64) PrimCell { return PrimCell{Type: t, UInt: v} }

// NewFloatingCell builds a half/float/double-typed primitive cell.
func NewFloatingCell(t PrimitiveType, v float64) PrimCell {
	switch t {
	case PrimHalf:
		return PrimCell{Type: t, Half: float32(v)}
	case PrimFloat:
		return PrimCell{Type: t, Float: float32(v)}
	default:
		return PrimCell{Type: PrimDouble, Double: v}
	}
}

// NewStringCell builds a String-typed primitive cell.
func NewStringCell(v string) PrimCell { return PrimCell{Type: PrimString, Str: v} }

// NewRefCell builds a Ref-typed primitive cell carrying a single Name.
func NewRefCell(n Name) PrimCell { return PrimCell{Type: PrimRef, Name: n} }
