// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package path

import (
	"io"

	"github.com/creachadair/jevent"
	"github.com/creachadair/jevent/ast"
)

// A Match is a value selected by a path expression.
type Match struct {
	Path  Expr      // the concrete location of the value, without wildcards
	Value ast.Value // the selected value
}

// Find parses path and reports the values it selects from the JSON document
// read from r. See Expr.Find.
func Find(r io.Reader, path string) ([]Match, error) {
	e, err := Parse(path)
	if err != nil {
		return nil, err
	}
	return e.Find(r)
}

// Find reports the values selected by e from the JSON document read from r,
// in document order. Escape sequences in keys and strings are decoded.
//
// Parsing stops as soon as no further matches are possible, so a syntax error
// in the document after that point is not reported.
func (e Expr) Find(r io.Reader) ([]Match, error) {
	p := jevent.NewParser(r)
	p.DecodeEscapes(true)
	x := NewExtractor(e)
	p.Register(x)
	if err := x.Drive(p); err != nil {
		return nil, err
	}
	return x.Matches(), nil
}

// An Extractor is a jevent.Observer that captures the values selected by a
// path expression while a document is parsed. Only the selected values are
// retained; the rest of the document is discarded as it is read.
type Extractor struct {
	expr Expr
	stk  []elem // one for each open container outside a capture

	cap   *ast.Builder // capture in progress, or nil
	cpath Expr         // the path of the capture in progress
	depth int          // containers open in the capture

	matches []Match
	done    bool
}

// An elem records the position of the parser within an open container.
type elem struct {
	isObj bool
	key   string // the current key, if isObj
	index int    // the current offset, if !isObj
}

// NewExtractor constructs an Extractor for the values selected by e.
func NewExtractor(e Expr) *Extractor { return &Extractor{expr: e} }

// Matches returns the values captured so far.
func (x *Extractor) Matches() []Match { return x.matches }

// Done reports whether x can capture no more values from the document: either
// the document is complete, or e is definite and its value has been found.
// A caller driving the parser may stop once Done reports true.
func (x *Extractor) Done() bool { return x.done }

// Drive calls p.Next until x is done or the input is exhausted.
// The extractor must already be registered with p.
func (x *Extractor) Drive(p *jevent.Parser) error {
	for !x.done {
		ok, err := p.Next()
		if err != nil {
			return err
		} else if !ok {
			break
		}
	}
	return nil
}

// Handle implements the jevent.Observer interface. Once x is done, further
// events are ignored.
func (x *Extractor) Handle(e jevent.Event) error {
	if x.done {
		return nil
	}
	if x.cap != nil {
		return x.capture(e)
	}

	switch e.Kind {
	case jevent.ObjectKey:
		if n := len(x.stk); n > 0 {
			x.stk[n-1].key = e.Text
		}
		return nil

	case jevent.ArrayStart, jevent.ObjectStart:
		if x.selected() {
			x.cap = new(ast.Builder)
			x.cpath = x.current()
			return x.capture(e)
		}
		x.stk = append(x.stk, elem{isObj: e.Kind == jevent.ObjectStart})
		return nil

	case jevent.ArrayEnd, jevent.ObjectEnd:
		if n := len(x.stk); n > 0 {
			x.stk = x.stk[:n-1]
		}
		x.advance()
		return nil
	}

	// Scalar values.
	if x.selected() {
		var b ast.Builder
		if err := b.Handle(e); err != nil {
			return err
		}
		x.addMatch(x.current(), b.Result())
	}
	x.advance()
	return nil
}

// capture forwards e to the capture in progress, and records the match when
// the captured value is complete.
func (x *Extractor) capture(e jevent.Event) error {
	if err := x.cap.Handle(e); err != nil {
		return err
	}
	switch e.Kind {
	case jevent.ArrayStart, jevent.ObjectStart:
		x.depth++
	case jevent.ArrayEnd, jevent.ObjectEnd:
		x.depth--
	}
	if x.depth == 0 {
		x.addMatch(x.cpath, x.cap.Result())
		x.cap, x.cpath = nil, nil
		x.advance()
	}
	return nil
}

func (x *Extractor) addMatch(p Expr, v ast.Value) {
	x.matches = append(x.matches, Match{Path: p, Value: v})
	if x.expr.Definite() {
		x.done = true
	}
}

// advance records that a value has been completed in the innermost open
// container.
func (x *Extractor) advance() {
	n := len(x.stk)
	if n == 0 {
		x.done = true // the top-level value is complete
		return
	}
	if top := &x.stk[n-1]; !top.isObj {
		top.index++
	}
}

// selected reports whether the value beginning at the current position is
// selected by the expression.
func (x *Extractor) selected() bool {
	if len(x.stk) != len(x.expr) {
		return false
	}
	for i, e := range x.stk {
		if !x.expr[i].Matches(e.key, e.index, e.isObj) {
			return false
		}
	}
	return true
}

// current returns the concrete path of the value at the current position.
func (x *Extractor) current() Expr {
	out := make(Expr, len(x.stk))
	for i, e := range x.stk {
		if e.isObj {
			out[i] = Step{Op: Member, Key: e.key}
		} else {
			out[i] = Step{Op: Index, Index: e.index}
		}
	}
	return out
}
