package ddl

import "github.com/emirpasic/gods/stacks/arraystack"

// ParseStack is the explicit "sequence of DdlNode back-references"
// described in spec.md §3, whose top designates the current insertion
// parent while parsing a structure body. Design note §9 calls this "an
// ordinary stack container"; we use gods' arraystack the way
// foursquare-scala-gazelle's dependency set supplies it, rather than
// hand-rolling a slice-backed stack.
type ParseStack struct {
	s *arraystack.Stack
}

// NewParseStack creates an empty ParseStack.
func NewParseStack() *ParseStack {
	return &ParseStack{s: arraystack.New()}
}

// Push makes n the new top of the stack.
func (p *ParseStack) Push(n *DdlNode) {
	p.s.Push(n)
}

// Pop removes and returns the current top. ok is false on an empty stack.
func (p *ParseStack) Pop() (n *DdlNode, ok bool) {
	v, found := p.s.Pop()
	if !found {
		return nil, false
	}
	return v.(*DdlNode), true
}

// Top returns the current top without removing it. ok is false on an
// empty stack.
func (p *ParseStack) Top() (n *DdlNode, ok bool) {
	v, found := p.s.Peek()
	if !found {
		return nil, false
	}
	return v.(*DdlNode), true
}

// Empty reports whether the stack has no elements.
func (p *ParseStack) Empty() bool {
	return p.s.Empty()
}

// Depth returns the current number of elements on the stack.
func (p *ParseStack) Depth() int {
	return p.s.Size()
}
