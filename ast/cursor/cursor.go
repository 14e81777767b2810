// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package cursor walks the values of a syntax tree built by package ast.
//
// A Cursor holds a trail of the values it has descended through, so that a
// caller can step down into a member or element, inspect it, and step back
// up again. The path package uses this to enumerate the values selected by a
// path expression.
package cursor

import (
	"fmt"

	"github.com/creachadair/jevent/ast"
)

// Path follows path from v and returns the value it reaches, which must have
// type T. The path elements are those accepted by Cursor.Down.
func Path[T ast.Value](v ast.Value, path ...any) (T, error) {
	var zero T
	c := New(v).Down(path...)
	if err := c.Err(); err != nil {
		return zero, err
	}
	out, ok := c.Value().(T)
	if !ok {
		return zero, fmt.Errorf("value at end of path is %T, not %T", c.Value(), zero)
	}
	return out, nil
}

// A Cursor is a position within a tree of ast values.
type Cursor struct {
	root  ast.Value
	trail []ast.Value // values entered below root, innermost last
	err   error
}

// New returns a Cursor positioned at root.
func New(root ast.Value) *Cursor { return &Cursor{root: root} }

// Origin returns the value at which c was created.
func (c *Cursor) Origin() ast.Value { return c.root }

// AtOrigin reports whether c is positioned at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.trail) == 0 }

// Value returns the value at the position of c.
func (c *Cursor) Value() ast.Value {
	if n := len(c.trail); n > 0 {
		return c.trail[n-1]
	}
	return c.root
}

// Path returns the values from the origin down to the position of c,
// inclusive.
func (c *Cursor) Path() []ast.Value {
	return append([]ast.Value{c.root}, c.trail...)
}

// Err returns the error recorded by the last call to Down, or nil.
func (c *Cursor) Err() error { return c.err }

// Up moves c to the container enclosing its position, and returns c.
// At the origin, Up does nothing.
func (c *Cursor) Up() *Cursor {
	if n := len(c.trail); n > 0 {
		c.trail = c.trail[:n-1]
	}
	return c
}

// Reset moves c back to its origin and discards any recorded error.
func (c *Cursor) Reset() { c.trail = c.trail[:0]; c.err = nil }

// Down moves c through each element of path in turn, and returns c.
//
// A string selects the value of the first object member with that key.
// An int selects an array element, or the value of an object member, by
// position; a negative int counts from the end. A function of type
//
//	func(ast.Value) (ast.Value, error)
//
// is called with the current value and moves c to the value it returns.
//
// Down stops at the first element it cannot follow, leaving c at the last
// value it reached, and records an error that Err reports.
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil
	for _, elt := range path {
		next, err := step(c.Value(), elt)
		if err != nil {
			c.err = err
			break
		}
		c.trail = append(c.trail, next)
	}
	return c
}

// step returns the value reached from cur by one path element.
func step(cur ast.Value, elt any) (ast.Value, error) {
	switch t := elt.(type) {
	case string:
		obj, ok := cur.(*ast.Object)
		if !ok {
			return nil, fmt.Errorf("cannot look up key %q in %T", t, cur)
		}
		if m := obj.Find(t); m != nil {
			return m.Value, nil
		}
		return nil, fmt.Errorf("key %q not found", t)

	case int:
		switch v := cur.(type) {
		case *ast.Array:
			if i, ok := position(v.Len(), t); ok {
				return v.Values[i], nil
			}
			return nil, fmt.Errorf("index %d out of range for array of length %d", t, v.Len())
		case *ast.Object:
			if i, ok := position(v.Len(), t); ok {
				return v.Members[i].Value, nil
			}
			return nil, fmt.Errorf("index %d out of range for object of %d members", t, v.Len())
		}
		return nil, fmt.Errorf("cannot index %T", cur)

	case func(ast.Value) (ast.Value, error):
		return t(cur)
	}
	return nil, fmt.Errorf("invalid path element %T", elt)
}

// position resolves a possibly-negative index i against a length n.
func position(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}
