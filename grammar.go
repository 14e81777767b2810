// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jevent

import (
	"strings"

	"github.com/creachadair/mds/stack"
)

// A Class is a grammatical class of token that may follow the current
// position of the parser.
type Class uint8

// Constants defining the valid Class values.
const (
	ClassValue     Class = 1 << iota // any value: [ { string number bool null
	ClassKey                         // an object key: string followed by ":"
	ClassComma                       // ","
	ClassArrayEnd                    // "]"
	ClassObjectEnd                   // "}"
	ClassEOF                         // end of input
	ClassColon                       // ":" outside an object key (never expected)

	numClasses = iota
)

var classStr = [...]string{
	"value", "key", "comma", "array_end", "object_end", "eof", "colon",
}

func (c Class) String() string {
	for i := range numClasses {
		if c == 1<<i {
			return classStr[i]
		}
	}
	return "invalid"
}

// Expect is a set of token classes.
type Expect uint8

// Expecting returns the set containing the given classes.
func Expecting(cs ...Class) Expect {
	var e Expect
	for _, c := range cs {
		e |= Expect(c)
	}
	return e
}

// Has reports whether c is an element of e.
func (e Expect) Has(c Class) bool { return e&Expect(c) != 0 }

// Classes returns the elements of e in canonical order.
func (e Expect) Classes() []Class {
	var cs []Class
	for i := range numClasses {
		if c := Class(1 << i); e.Has(c) {
			cs = append(cs, c)
		}
	}
	return cs
}

// String renders e as a comma-separated list of class names in canonical
// order, for example "comma, array_end".
func (e Expect) String() string {
	cs := e.Classes()
	ss := make([]string, len(cs))
	for i, c := range cs {
		ss[i] = c.String()
	}
	return strings.Join(ss, ", ")
}

// A Context is the kind of composite value a Frame represents.
type Context byte

// Constants defining the valid Context values.
const (
	ContextTop    Context = iota // the top level of the input
	ContextArray                 // inside an array
	ContextObject                // inside an object
)

func (c Context) String() string {
	switch c {
	case ContextTop:
		return "top"
	case ContextArray:
		return "array"
	case ContextObject:
		return "object"
	}
	return "invalid"
}

// A Frame is one open context of the grammar stack, together with the set of
// token classes that may legally follow.
type Frame struct {
	Context   Context
	Expecting Expect
}

// A Stack is the grammar state of a parser: a stack of frames whose top
// determines what is allowed next. The bottom frame always has ContextTop
// and is never popped.
type Stack struct {
	frames *stack.Stack[*Frame]
}

// NewStack constructs a stack in the initial state: a single top-level frame
// expecting a value.
func NewStack() *Stack {
	s := &Stack{frames: stack.New[*Frame]()}
	s.frames.Push(&Frame{Context: ContextTop, Expecting: Expecting(ClassValue)})
	return s
}

// Push pushes a new frame with the given context and expectations.
func (s *Stack) Push(ctx Context, exp Expect) {
	s.frames.Push(&Frame{Context: ctx, Expecting: exp})
}

// Pop removes and returns the top frame. It panics if the top frame is the
// top-level frame.
func (s *Stack) Pop() Frame {
	if s.frames.Len() <= 1 {
		panic("jevent: pop of top-level frame")
	}
	f, _ := s.frames.Pop()
	return *f
}

// Top returns the current top frame. Changes to the frame are reflected in
// the stack.
func (s *Stack) Top() *Frame {
	return s.frames.Top()
}

// Depth reports the number of open arrays and objects on the stack.
func (s *Stack) Depth() int { return s.frames.Len() - 1 }

// MustExpect reports an error of concrete type *GrammarError if c is not in
// the expected set of the top frame. The token is the one being checked.
func (s *Stack) MustExpect(c Class, tok Token) error {
	if top := s.Top(); !top.Expecting.Has(c) {
		return &GrammarError{Token: tok, Found: c, Expecting: top.Expecting}
	}
	return nil
}
