// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package path

import (
	"github.com/creachadair/jevent/ast"
	"github.com/creachadair/jevent/ast/cursor"
)

// Select reports the values selected by e from the syntax tree v, in
// document order.
func (e Expr) Select(v ast.Value) []Match {
	var out []Match
	e.selectAt(cursor.New(v), nil, &out)
	return out
}

func (e Expr) selectAt(c *cursor.Cursor, prefix Expr, out *[]Match) {
	if len(prefix) == len(e) {
		*out = append(*out, Match{Path: prefix, Value: c.Value()})
		return
	}
	step := e[len(prefix)]
	switch t := c.Value().(type) {
	case *ast.Object:
		for i, m := range t.Members {
			if step.Matches(m.Key, 0, true) {
				e.descend(c, i, prefix, Step{Op: Member, Key: m.Key}, out)
				if step.Op == Member {
					return // first member with the key
				}
			}
		}
	case *ast.Array:
		for i := range t.Values {
			if step.Matches("", i, false) {
				e.descend(c, i, prefix, Step{Op: Index, Index: i}, out)
			}
		}
	}
}

// descend moves c to the ith element of its current value, selects from
// there, and moves c back.
func (e Expr) descend(c *cursor.Cursor, i int, prefix Expr, step Step, out *[]Match) {
	if c.Down(i).Err() != nil {
		return
	}
	next := append(prefix[:len(prefix):len(prefix)], step)
	e.selectAt(c, next, out)
	c.Up()
}
