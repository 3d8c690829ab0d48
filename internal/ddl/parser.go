package ddl

import "fmt"

// DefaultMaxDepth bounds parse-stack nesting to protect against
// pathological/malicious input (design note §9, SPEC_FULL.md
// SUPPLEMENTED FEATURES); callers can raise or lower it via Config.
const DefaultMaxDepth = 256

// Parser drives the OpenDDL grammar over an owned or borrowed byte
// buffer, maintaining an explicit ParseStack whose top is the current
// insertion parent (spec.md §4.3). A conforming implementation MAY
// always copy identifier/string bytes into node-owned storage — this
// one does, via Go's string value semantics, so the tree always
// outlives the buffer regardless of ownsBuffer.
type Parser struct {
	buffer     []byte
	ownsBuffer bool
	logger     LogCallback
	maxDepth   int

	root  *DdlNode
	stack *ParseStack
	pos   int

	// pendingPrimType/pendingArity/pendingIsPrim carry parseHeader's
	// classification of the type identifier it just consumed (and the
	// arity it parsed off any `[N]` suffix) forward to the caller,
	// since Go has no multi-return "out" struct as convenient as the
	// source's by-reference PrimitiveDataType&/len& parameters.
	pendingPrimType PrimitiveType
	pendingArity    int
	pendingIsPrim   bool
}

// NewParser creates an empty parser with no buffer attached.
func NewParser() *Parser {
	return &Parser{maxDepth: DefaultMaxDepth}
}

// NewParserWithBuffer creates a parser over buf. ownsIt records
// whether the parser is responsible for the buffer's lifetime; since
// this implementation never frees buffers explicitly (Go is garbage
// collected), ownsIt is only stored: SetBuffer and Clear replace the
// buffer whatever its value, and Parse normalizes buf in place either
// way.
func NewParserWithBuffer(buf []byte, ownsIt bool) *Parser {
	p := NewParser()
	p.SetBuffer(buf, ownsIt)
	return p
}

// SetBuffer attaches a new buffer to the parser, discarding any
// previously parsed tree.
func (p *Parser) SetBuffer(buf []byte, ownsIt bool) {
	p.buffer = buf
	p.ownsBuffer = ownsIt
	p.root = nil
	p.stack = nil
	p.pos = 0
}

// GetBuffer returns the parser's current buffer.
func (p *Parser) GetBuffer() []byte { return p.buffer }

// GetBufferSize returns the length of the parser's current buffer.
func (p *Parser) GetBufferSize() int { return len(p.buffer) }

// Clear discards the buffer and any parsed tree.
func (p *Parser) Clear() {
	p.buffer = nil
	p.ownsBuffer = false
	p.root = nil
	p.stack = nil
	p.pos = 0
}

// SetLogCallback installs the diagnostic sink.
func (p *Parser) SetLogCallback(cb LogCallback) { p.logger = cb }

// GetLogCallback returns the installed diagnostic sink, or nil.
func (p *Parser) GetLogCallback() LogCallback { return p.logger }

// SetMaxDepth overrides the nesting depth cap (default DefaultMaxDepth).
func (p *Parser) SetMaxDepth(depth int) {
	if depth > 0 {
		p.maxDepth = depth
	}
}

// GetRoot returns the synthetic root of the most recently parsed tree,
// or nil if Parse has not yet succeeded.
func (p *Parser) GetRoot() *DdlNode { return p.root }

func (p *Parser) log(sev Severity, msg string) {
	if p.logger != nil {
		p.logger(sev, msg)
	}
}

// Parse runs the full top-level algorithm of spec.md §4.3: normalize,
// push the synthetic root, repeatedly parse top-level declarations
// until the cursor reaches the buffer's end, then pop the root.
// Returns true iff the whole buffer was consumed with an empty
// structural stack; otherwise the partially constructed tree is
// discarded and false is returned.
func (p *Parser) Parse() bool {
	if err := Normalize(p.buffer); err != nil {
		p.reportHard(err)
		return false
	}

	p.root = NewStructureNode(Identifier("$root"), nil)
	p.stack = NewParseStack()
	p.stack.Push(p.root)
	p.pos = 0

	for p.pos < len(p.buffer) {
		skipped := SkipWhitespace(p.buffer, p.pos)
		if skipped >= len(p.buffer) {
			p.pos = skipped
			break
		}
		p.pos = skipped

		before := p.pos
		if err := p.parseNextNode(); err != nil {
			p.reportHard(err)
			p.root = nil
			return false
		}
		if p.pos == before {
			p.reportHard(newError(ErrNoProgress, p.buffer, p.pos, "parser made no progress"))
			p.root = nil
			return false
		}
	}

	_, _ = p.stack.Pop() // pop the synthetic root
	ok := p.pos >= len(p.buffer) && p.stack.Empty()
	if !ok {
		p.root = nil
	}
	return ok
}

func (p *Parser) reportHard(err error) {
	p.log(SeverityError, err.Error())
}

// parseNextNode parses one declaration: a header, then either a
// primitive data list/array-list or a nested custom structure body
// (spec.md §4.3).
func (p *Parser) parseNextNode() error {
	parent, ok := p.stack.Top()
	if !ok {
		return newError(ErrExpectedToken, p.buffer, p.pos, "no active parent on the parse stack")
	}

	typeIdent, name, props, err := p.parseHeader()
	if err != nil {
		return err
	}

	if p.pendingIsPrim {
		node := NewPrimitiveListNode(typeIdent, p.pendingPrimType, p.pendingArity)
		node.Name = name
		node.Properties = props
		node.AttachParent(parent)
		if err := p.parseDataBody(node, p.pendingPrimType); err != nil {
			return err
		}
		return nil
	}

	node := NewStructureNode(typeIdent, name)
	node.Properties = props
	node.AttachParent(parent)

	p.pos = SkipWhitespace(p.buffer, p.pos)
	if p.pos >= len(p.buffer) || p.buffer[p.pos] != '{' {
		return newError(ErrExpectedToken, p.buffer, p.pos, "expected '{' to open structure body")
	}
	p.pos++

	if p.stack.Depth() >= p.maxDepth {
		return newError(ErrUnexpectedToken, p.buffer, p.pos, "maximum nesting depth exceeded")
	}
	p.stack.Push(node)

	for {
		p.pos = SkipWhitespace(p.buffer, p.pos)
		if p.pos >= len(p.buffer) {
			return newError(ErrExpectedToken, p.buffer, p.pos, "unterminated structure body, expected '}'")
		}
		if p.buffer[p.pos] == '}' {
			p.pos++
			break
		}
		before := p.pos
		if err := p.parseNextNode(); err != nil {
			return err
		}
		if p.pos == before {
			return newError(ErrNoProgress, p.buffer, p.pos, "parser made no progress inside structure body")
		}
	}

	if _, ok := p.stack.Pop(); !ok {
		return newError(ErrExpectedToken, p.buffer, p.pos, "unmatched closing brace")
	}
	return nil
}

// parseHeader parses a structure header: type identifier, optional
// name, optional property list (spec.md §4.3). The type identifier may
// be a reserved primitive keyword (optionally with an `[N]` arity
// suffix) or an arbitrary custom identifier. ParsePrimitiveDataType
// reads a keyword together with its suffix in one pass, so parseHeader
// never re-scans a `[N]` suffix; when it does not match, the custom
// identifier is read with ParseIdentifier. The classification and any parsed arity are left in
// p.pendingIsPrim/p.pendingPrimType/p.pendingArity for parseNextNode.
func (p *Parser) parseHeader() (typeIdent Identifier, name *Name, props []Property, err error) {
	startPos := p.pos

	nextPos, primType, arity, isPrim, ptErr := ParsePrimitiveDataType(p.buffer, startPos)
	if ptErr != nil {
		return "", nil, nil, ptErr
	}
	p.pendingIsPrim = isPrim
	if isPrim {
		typeIdent = Identifier(primType.String())
		p.pendingPrimType = primType
		p.pos = nextPos
		p.pendingArity = arity
	} else {
		idEnd, id, ok := ParseIdentifier(p.buffer, startPos)
		if !ok {
			return "", nil, nil, newError(ErrExpectedToken, p.buffer, startPos, "expected type identifier")
		}
		typeIdent = id
		p.pos = idEnd
		p.pendingArity = 1
	}

	// Optional name.
	if nameEnd, n, ok, nameErr := ParseName(p.buffer, p.pos); nameErr == nil && ok {
		name = &n
		p.pos = nameEnd
	} else if nameErr != nil {
		return "", nil, nil, nameErr
	}

	// Optional property list.
	afterWs := SkipWhitespace(p.buffer, p.pos)
	if afterWs < len(p.buffer) && p.buffer[afterWs] == '(' {
		p.pos = afterWs + 1
		props, err = p.parsePropertyList()
		if err != nil {
			return "", nil, nil, err
		}
	}

	return typeIdent, name, props, nil
}

// parsePropertyList parses `prop (, prop)* )`, the opening `(` having
// already been consumed by the caller.
func (p *Parser) parsePropertyList() ([]Property, error) {
	var props []Property
	p.pos = SkipWhitespace(p.buffer, p.pos)
	if p.pos < len(p.buffer) && p.buffer[p.pos] == ')' {
		p.pos++
		return props, nil
	}
	for {
		prop, err := p.parseProperty()
		if err != nil {
			return nil, err
		}
		props = append(props, prop)

		p.pos = SkipWhitespace(p.buffer, p.pos)
		if p.pos >= len(p.buffer) {
			return nil, newError(ErrExpectedToken, p.buffer, p.pos, "unterminated property list, expected ')'")
		}
		if p.buffer[p.pos] == ')' {
			p.pos++
			return props, nil
		}
		if p.buffer[p.pos] != ',' {
			return nil, newError(ErrUnexpectedToken, p.buffer, p.pos, "expected ',' or ')' in property list")
		}
		p.pos = SkipWhitespace(p.buffer, p.pos+1)
		if p.pos < len(p.buffer) && p.buffer[p.pos] == ')' {
			return nil, newError(ErrUnexpectedToken, p.buffer, p.pos, "trailing comma not allowed")
		}
	}
}

// parseProperty parses a single `identifier = (literal | name | ref-block)`.
func (p *Parser) parseProperty() (Property, error) {
	idEnd, id, ok := ParseIdentifier(p.buffer, p.pos)
	if !ok {
		return Property{}, newError(ErrExpectedToken, p.buffer, p.pos, "expected property identifier")
	}
	p.pos = SkipWhitespace(p.buffer, idEnd)
	if p.pos >= len(p.buffer) || p.buffer[p.pos] != '=' {
		return Property{}, newError(ErrExpectedToken, p.buffer, p.pos, "expected '=' in property")
	}
	p.pos = SkipWhitespace(p.buffer, p.pos+1)

	// ref-block or bare name/name-list.
	if refEnd, ref, refOk, refErr := ParseReference(p.buffer, p.pos); refErr != nil {
		return Property{}, refErr
	} else if refOk {
		p.pos = refEnd
		return NewReferenceProperty(id, ref), nil
	}

	// String literal.
	if strEnd, s, strOk, strErr := ParseStringLiteral(p.buffer, p.pos); strErr != nil {
		return Property{}, strErr
	} else if strOk {
		p.pos = strEnd
		return NewCellProperty(id, NewStringCell(s)), nil
	}

	// Boolean literal.
	if boolEnd, b, boolOk := ParseBooleanLiteral(p.buffer, p.pos); boolOk {
		p.pos = boolEnd
		return NewCellProperty(id, NewBoolCell(b)), nil
	}

	// Hex literal.
	if hexEnd, cell, hexOk, hexErr := ParseHexaLiteral(p.buffer, p.pos); hexErr != nil {
		return Property{}, hexErr
	} else if hexOk {
		p.pos = hexEnd
		return NewCellProperty(id, cell), nil
	}

	// Numeric literal: try floating first (covers ints with no
	// fractional part too), falling back to a signed-int64 cell when
	// there's no '.'/exponent, matching the source's dual
	// integer/float literal handling in property position.
	if floatEnd, v, floatOk, floatErr := ParseFloatingLiteral(p.buffer, p.pos); floatErr != nil {
		return Property{}, floatErr
	} else if floatOk {
		p.pos = floatEnd
		if isWholeNumberText(p.buffer[SkipWhitespace(p.buffer, idEnd):floatEnd]) {
			return NewCellProperty(id, NewIntCell(PrimInt64, int64(v))), nil
		}
		return NewCellProperty(id, NewFloatingCell(PrimDouble, v)), nil
	}

	// Bare identifier used as a value: encoded as a string-typed cell
	// (spec.md §3: Property value "a name/identifier encoded as a
	// string-typed cell").
	if valEnd, valID, valOk := ParseIdentifier(p.buffer, p.pos); valOk {
		p.pos = valEnd
		return NewCellProperty(id, NewStringCell(string(valID))), nil
	}

	return Property{}, newError(ErrExpectedToken, p.buffer, p.pos, "expected property value")
}

func isWholeNumberText(b []byte) bool {
	for _, c := range b {
		if c == '.' || c == 'e' || c == 'E' {
			return false
		}
	}
	return true
}

// parseDataBody parses the `{ ... }` body of a primitive-list node,
// dispatching to a data-array-list when parseHeader recorded an arity
// greater than 1 and to a plain data list otherwise (spec.md §4.3
// step 3). An explicit `[1]` suffix is therefore read as a plain data
// list: its body takes bare literals, and `{ ... }` groups are not
// accepted there.
func (p *Parser) parseDataBody(node *DdlNode, primType PrimitiveType) error {
	p.pos = SkipWhitespace(p.buffer, p.pos)
	if p.pos >= len(p.buffer) || p.buffer[p.pos] != '{' {
		return newError(ErrExpectedToken, p.buffer, p.pos, "expected '{' to open data list")
	}
	p.pos++

	if p.pendingArity > 1 {
		return p.parseDataArrayList(node, primType, p.pendingArity)
	}
	return p.parseDataList(node, primType)
}

// parseDataList parses `{ literal (, literal)* }` for a single-arity
// primitive-list node (spec.md §4.3). An empty `{}` yields no cells.
func (p *Parser) parseDataList(node *DdlNode, primType PrimitiveType) error {
	p.pos = SkipWhitespace(p.buffer, p.pos)
	if p.pos < len(p.buffer) && p.buffer[p.pos] == '}' {
		p.pos++
		return nil
	}
	for {
		cell, err := p.parseLiteral(primType)
		if err != nil {
			return err
		}
		node.AddPayloadCells(cell)

		p.pos = SkipWhitespace(p.buffer, p.pos)
		if p.pos >= len(p.buffer) {
			return newError(ErrExpectedToken, p.buffer, p.pos, "unterminated data list, expected '}'")
		}
		if p.buffer[p.pos] == '}' {
			p.pos++
			return nil
		}
		if p.buffer[p.pos] != ',' {
			return newError(ErrUnexpectedToken, p.buffer, p.pos, "expected ',' or '}' in data list")
		}
		p.pos = SkipWhitespace(p.buffer, p.pos+1)
		if p.pos < len(p.buffer) && p.buffer[p.pos] == '}' {
			return newError(ErrUnexpectedToken, p.buffer, p.pos, "trailing comma not allowed")
		}
	}
}

// parseDataArrayList parses `{ group (, group)* }` where each group is
// `{ literal (, literal)* }` containing exactly arity literals
// (spec.md §4.3). Groups are concatenated into the node's flat payload.
func (p *Parser) parseDataArrayList(node *DdlNode, primType PrimitiveType, arity int) error {
	p.pos = SkipWhitespace(p.buffer, p.pos)
	if p.pos < len(p.buffer) && p.buffer[p.pos] == '}' {
		p.pos++
		return nil
	}
	for {
		p.pos = SkipWhitespace(p.buffer, p.pos)
		if p.pos >= len(p.buffer) || p.buffer[p.pos] != '{' {
			return newError(ErrExpectedToken, p.buffer, p.pos, "expected '{' to open arity group")
		}
		p.pos++

		groupStart := len(node.Payload)
		if p.pos < len(p.buffer) && SkipWhitespace(p.buffer, p.pos) < len(p.buffer) && p.buffer[SkipWhitespace(p.buffer, p.pos)] == '}' {
			p.pos = SkipWhitespace(p.buffer, p.pos) + 1
		} else {
			for {
				cell, err := p.parseLiteral(primType)
				if err != nil {
					return err
				}
				node.AddPayloadCells(cell)

				p.pos = SkipWhitespace(p.buffer, p.pos)
				if p.pos >= len(p.buffer) {
					return newError(ErrExpectedToken, p.buffer, p.pos, "unterminated arity group, expected '}'")
				}
				if p.buffer[p.pos] == '}' {
					p.pos++
					break
				}
				if p.buffer[p.pos] != ',' {
					return newError(ErrUnexpectedToken, p.buffer, p.pos, "expected ',' or '}' in arity group")
				}
				p.pos = SkipWhitespace(p.buffer, p.pos+1)
				if p.pos < len(p.buffer) && p.buffer[p.pos] == '}' {
					return newError(ErrUnexpectedToken, p.buffer, p.pos, "trailing comma not allowed")
				}
			}
		}
		groupLen := len(node.Payload) - groupStart
		if groupLen != arity {
			return newError(ErrArityMismatch, p.buffer, p.pos,
				fmt.Sprintf("group has %d literal(s), expected %d", groupLen, arity))
		}

		p.pos = SkipWhitespace(p.buffer, p.pos)
		if p.pos >= len(p.buffer) {
			return newError(ErrExpectedToken, p.buffer, p.pos, "unterminated data array list, expected '}'")
		}
		if p.buffer[p.pos] == '}' {
			p.pos++
			return nil
		}
		if p.buffer[p.pos] != ',' {
			return newError(ErrUnexpectedToken, p.buffer, p.pos, "expected ',' or '}' in data array list")
		}
		p.pos = SkipWhitespace(p.buffer, p.pos+1)
		if p.pos < len(p.buffer) && p.buffer[p.pos] == '}' {
			return newError(ErrUnexpectedToken, p.buffer, p.pos, "trailing comma not allowed")
		}
	}
}

// parseLiteral parses one literal according to the enclosing
// primitive type (spec.md §4.3): bool -> bool literal; integer types
// -> integer; float/half/double -> floating (narrowed to the target
// width); string -> string; ref -> name.
func (p *Parser) parseLiteral(primType PrimitiveType) (PrimCell, error) {
	switch primType {
	case PrimBool:
		end, v, ok := ParseBooleanLiteral(p.buffer, p.pos)
		if !ok {
			return PrimCell{}, newError(ErrTypeMismatch, p.buffer, p.pos, "expected boolean literal")
		}
		p.pos = end
		return NewBoolCell(v), nil

	case PrimInt8, PrimInt16, PrimInt32, PrimInt64,
		PrimUInt8, PrimUInt16, PrimUInt32, PrimUInt64:
		if hexEnd, cell, hexOk, hexErr := ParseHexaLiteral(p.buffer, p.pos); hexErr != nil {
			return PrimCell{}, hexErr
		} else if hexOk {
			p.pos = hexEnd
			return cell, nil
		}
		end, cell, ok, err := ParseIntegerLiteral(p.buffer, p.pos, primType)
		if err != nil {
			return PrimCell{}, err
		}
		if !ok {
			return PrimCell{}, newError(ErrTypeMismatch, p.buffer, p.pos, "expected integer literal")
		}
		p.pos = end
		return cell, nil

	case PrimHalf, PrimFloat, PrimDouble:
		end, v, ok, err := ParseFloatingLiteral(p.buffer, p.pos)
		if err != nil {
			return PrimCell{}, err
		}
		if !ok {
			return PrimCell{}, newError(ErrTypeMismatch, p.buffer, p.pos, "expected floating literal")
		}
		p.pos = end
		return NewFloatingCell(primType, v), nil

	case PrimString:
		end, s, ok, err := ParseStringLiteral(p.buffer, p.pos)
		if err != nil {
			return PrimCell{}, err
		}
		if !ok {
			return PrimCell{}, newError(ErrTypeMismatch, p.buffer, p.pos, "expected string literal")
		}
		p.pos = end
		return NewStringCell(s), nil

	case PrimRef:
		end, name, ok, err := ParseName(p.buffer, p.pos)
		if err != nil {
			return PrimCell{}, err
		}
		if !ok {
			return PrimCell{}, newError(ErrTypeMismatch, p.buffer, p.pos, "expected name literal")
		}
		p.pos = end
		return NewRefCell(name), nil

	default:
		return PrimCell{}, newError(ErrTypeMismatch, p.buffer, p.pos, "unsupported primitive type in data list")
	}
}
