// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"errors"
	"fmt"
	"io"

	"github.com/creachadair/jevent"
)

// Parse parses a single JSON value from r and returns its syntax tree.
// Escape sequences in strings are decoded. If r contains no value, Parse
// returns nil, io.EOF.
func Parse(r io.Reader) (Value, error) {
	p := jevent.NewParser(r)
	p.DecodeEscapes(true)
	return FromParser(p)
}

// FromParser registers a Builder with p, parses the remainder of its input,
// and returns the resulting syntax tree. If the input contains no value,
// FromParser returns nil, io.EOF.
func FromParser(p *jevent.Parser) (Value, error) {
	var b Builder
	p.Register(&b)
	if err := p.ParseAll(); err != nil {
		return nil, err
	}
	v := b.Result()
	if v == nil {
		return nil, io.EOF
	}
	return v, nil
}

// A Builder is a jevent.Observer that constructs a syntax tree from the
// events of a parser. The zero value is ready for use.
//
// Start events push a new container, and the matching end event pops it and
// adds it to the enclosing container. Values in an object are inserted under
// the most recent key.
type Builder struct {
	stk  []frame
	root Value
}

type frame struct {
	val Value // *Object or *Array

	key   string          // pending key, for an object
	kloc  jevent.Location // location of the pending key
	keyed bool            // key is valid
}

// Result returns the completed value, or nil if no complete value has been
// constructed yet.
func (b *Builder) Result() Value { return b.root }

// Reset discards all state in b, so that it can be used for another value.
func (b *Builder) Reset() { b.stk = b.stk[:0]; b.root = nil }

// Depth reports the number of containers currently open.
func (b *Builder) Depth() int { return len(b.stk) }

// Handle implements the jevent.Observer interface.
func (b *Builder) Handle(e jevent.Event) error {
	switch e.Kind {
	case jevent.ArrayStart:
		b.stk = append(b.stk, frame{val: &Array{node: node{e.Location}}})
		return nil

	case jevent.ObjectStart:
		b.stk = append(b.stk, frame{val: &Object{node: node{e.Location}}})
		return nil

	case jevent.ArrayEnd, jevent.ObjectEnd:
		if len(b.stk) == 0 {
			return fmt.Errorf("unbalanced %v", e.Kind)
		}
		top := b.stk[len(b.stk)-1].val
		b.stk = b.stk[:len(b.stk)-1]
		switch t := top.(type) {
		case *Array:
			t.loc = cover(t.loc, e.Location)
		case *Object:
			t.loc = cover(t.loc, e.Location)
		}
		return b.reduce(top)

	case jevent.ObjectKey:
		if len(b.stk) == 0 {
			return errors.New("key outside object")
		}
		f := &b.stk[len(b.stk)-1]
		if _, ok := f.val.(*Object); !ok {
			return errors.New("key outside object")
		}
		f.key, f.kloc, f.keyed = e.Text, e.Location, true
		return nil

	case jevent.StringValue:
		return b.reduce(&String{node: node{e.Location}, Value: e.Text})
	case jevent.IntegerValue:
		return b.reduce(&Integer{node: node{e.Location}, Value: e.Int})
	case jevent.FloatValue:
		return b.reduce(&Float{node: node{e.Location}, Value: e.Float})
	case jevent.BoolValue:
		return b.reduce(&Bool{node: node{e.Location}, Value: e.Bool})
	case jevent.NullValue:
		return b.reduce(&Null{node: node{e.Location}})
	}
	return fmt.Errorf("unknown event %v", e.Kind)
}

// reduce adds a completed value v to the innermost open container, or makes
// it the result if no container is open.
func (b *Builder) reduce(v Value) error {
	if len(b.stk) == 0 {
		if b.root != nil {
			return errors.New("extra value after result")
		}
		b.root = v
		return nil
	}
	f := &b.stk[len(b.stk)-1]
	switch c := f.val.(type) {
	case *Array:
		c.Values = append(c.Values, v)
	case *Object:
		if !f.keyed {
			return errors.New("object value without a key")
		}
		c.Members = append(c.Members, &Member{Key: f.key, KeyLoc: f.kloc, Value: v})
		f.keyed = false
	}
	return nil
}

// cover returns a location spanning from the start of a to the end of b.
func cover(a, b jevent.Location) jevent.Location {
	return jevent.Location{
		Span:  jevent.Span{Pos: a.Pos, End: b.End},
		First: a.First,
		Last:  b.Last,
	}
}
