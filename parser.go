// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jevent

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/creachadair/jevent/internal/escape"
)

// A Parser is an incremental event parser. Each call to Next consumes input
// up to the next event, delivers that event to the registered observers, and
// returns. The caller controls the pace of parsing, and may stop at any point
// by not calling Next again.
type Parser struct {
	s    *Scanner
	stk  *Stack
	sink Sink
	dec  bool // decode escape sequences in strings

	done bool  // input is exhausted
	err  error // sticky error from a previous step
}

// NewParser constructs a new Parser that consumes input from r.
func NewParser(r io.Reader) *Parser { return NewParserWithScanner(NewScanner(r)) }

// NewParserWithScanner constructs a new Parser that consumes tokens from s.
func NewParserWithScanner(s *Scanner) *Parser {
	return &Parser{s: s, stk: NewStack()}
}

// Register adds o to the observers that receive events from p.
func (p *Parser) Register(o Observer) { p.sink.Register(o) }

// DecodeEscapes configures the parser to decode standard JSON escape
// sequences in keys and string values (true), or to deliver their text
// verbatim between the quotes (false). The default is false.
//
// Enabling decoding also configures the scanner so that an escaped quote
// does not end a string.
func (p *Parser) DecodeEscapes(ok bool) {
	p.dec = ok
	p.s.AllowEscapes(ok)
}

// Stack returns the grammar stack of p. The caller must not modify it.
func (p *Parser) Stack() *Stack { return p.stk }

// Next advances the parser by one event. It returns true if an event was
// delivered to the observers, or false if the input is exhausted.
//
// Once Next has returned false, further calls return false without reading
// input. If Next reports an error, parsing stops and further calls report
// the same error. Lexical errors have concrete type *TokenizationError, and
// structural errors have type *GrammarError or *ParseError. An error
// reported by an observer is returned unmodified.
func (p *Parser) Next() (bool, error) {
	if p.err != nil {
		return false, p.err
	} else if p.done {
		return false, nil
	}
	ok, err := p.step()
	if err != nil {
		p.err = err
		return false, err
	}
	p.done = !ok
	return ok, nil
}

// ParseAll calls Next until the input is exhausted or an error occurs.
func (p *Parser) ParseAll() error {
	for {
		ok, err := p.Next()
		if err != nil {
			return err
		} else if !ok {
			return nil
		}
	}
}

func (p *Parser) step() (bool, error) {
	for {
		tok, err := p.s.Next()
		if errors.Is(err, io.EOF) {
			return false, p.endOfInput()
		} else if err != nil {
			return false, err
		}

		top := p.stk.Top()
		switch tok.Kind {
		case Symbol:
			switch tok.Text {
			case "[":
				if err := p.stk.MustExpect(ClassValue, tok); err != nil {
					return false, err
				}
				p.stk.Push(ContextArray, Expecting(ClassValue, ClassArrayEnd))
				return true, p.emit(ArrayStart, tok)

			case "]":
				if err := p.stk.MustExpect(ClassArrayEnd, tok); err != nil {
					return false, err
				}
				p.stk.Pop()
				p.completeValue()
				return true, p.emit(ArrayEnd, tok)

			case "{":
				if err := p.stk.MustExpect(ClassValue, tok); err != nil {
					return false, err
				}
				p.stk.Push(ContextObject, Expecting(ClassKey, ClassObjectEnd))
				return true, p.emit(ObjectStart, tok)

			case "}":
				if err := p.stk.MustExpect(ClassObjectEnd, tok); err != nil {
					return false, err
				}
				p.stk.Pop()
				p.completeValue()
				return true, p.emit(ObjectEnd, tok)

			case ",":
				if err := p.stk.MustExpect(ClassComma, tok); err != nil {
					return false, err
				}
				if top.Context == ContextObject {
					top.Expecting = Expecting(ClassKey)
				} else {
					top.Expecting = Expecting(ClassValue)
				}
				continue // a comma has no event of its own

			default: // ":"
				return false, p.stk.MustExpect(ClassColon, tok)
			}

		case String:
			text, err := p.unquote(tok)
			if err != nil {
				return false, err
			}
			if top.Expecting.Has(ClassKey) {
				if err := p.requireColon(tok); err != nil {
					return false, err
				}
				top.Expecting = Expecting(ClassValue)
				return true, p.sink.Emit(Event{Kind: ObjectKey, Text: text, Location: tok.Location})
			}
			if err := p.stk.MustExpect(ClassValue, tok); err != nil {
				return false, err
			}
			p.completeValue()
			return true, p.sink.Emit(Event{Kind: StringValue, Text: text, Location: tok.Location})

		case Integer, Float, Bool, Null:
			if err := p.stk.MustExpect(ClassValue, tok); err != nil {
				return false, err
			}
			evt, err := decodeValue(tok)
			if err != nil {
				return false, err
			}
			p.completeValue()
			return true, p.sink.Emit(evt)

		default:
			return false, fmt.Errorf("unknown token %v", tok)
		}
	}
}

// completeValue updates the top frame after a value in that frame has been
// completed, including a composite value closed by the current token.
func (p *Parser) completeValue() {
	top := p.stk.Top()
	switch top.Context {
	case ContextArray:
		top.Expecting = Expecting(ClassComma, ClassArrayEnd)
	case ContextObject:
		top.Expecting = Expecting(ClassComma, ClassObjectEnd)
	default:
		top.Expecting = Expecting(ClassEOF)
	}
}

// requireColon consumes the ":" following the object key tok.
func (p *Parser) requireColon(key Token) error {
	tok, err := p.s.Next()
	if errors.Is(err, io.EOF) {
		return &ParseError{
			Offset:  key.Location.End,
			Pos:     key.Location.Last,
			Message: fmt.Sprintf("unexpected end of input after object key %s, want \":\"", key.Text),
		}
	} else if err != nil {
		return err
	}
	if tok.Kind != Symbol || tok.Text != ":" {
		return &ParseError{
			Offset:  tok.Location.Pos,
			Pos:     tok.Location.First,
			Message: fmt.Sprintf("got %s after object key %s, want \":\"", tok, key.Text),
		}
	}
	return nil
}

// endOfInput checks that the input ended at a valid position.
func (p *Parser) endOfInput() error {
	if p.stk.Depth() == 0 {
		return nil
	}
	top := p.stk.Top()
	return &ParseError{
		Offset:    p.s.src.Offset(),
		Pos:       p.s.src.Position(),
		Message:   fmt.Sprintf("unexpected end of input in unclosed %s", top.Context),
		Expecting: top.Expecting,
	}
}

func (p *Parser) emit(kind EventKind, tok Token) error {
	return p.sink.Emit(Event{Kind: kind, Text: tok.Text, Location: tok.Location})
}

// unquote returns the contents of the string token tok without its quotes,
// decoding escapes if that is enabled.
func (p *Parser) unquote(tok Token) (string, error) {
	text := tok.Text[1 : len(tok.Text)-1]
	if !p.dec {
		return text, nil
	}
	dec, err := escape.Unquote(text)
	if err != nil {
		return "", &TokenizationError{
			Offset:  tok.Location.Pos,
			Pos:     tok.Location.First,
			Message: fmt.Sprintf("invalid string %s: %v", tok.Text, err),
			err:     err,
		}
	}
	return dec, nil
}

// decodeValue constructs the event for a number, bool, or null token.
func decodeValue(tok Token) (Event, error) {
	evt := Event{Text: tok.Text, Location: tok.Location}
	switch tok.Kind {
	case Integer:
		v, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			return Event{}, &TokenizationError{
				Offset:  tok.Location.Pos,
				Pos:     tok.Location.First,
				Message: fmt.Sprintf("integer %s out of range", tok.Text),
				err:     err,
			}
		}
		evt.Kind, evt.Int = IntegerValue, v
	case Float:
		v, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return Event{}, &TokenizationError{
				Offset:  tok.Location.Pos,
				Pos:     tok.Location.First,
				Message: fmt.Sprintf("number %s out of range", tok.Text),
				err:     err,
			}
		}
		evt.Kind, evt.Float = FloatValue, v
	case Bool:
		evt.Kind, evt.Bool = BoolValue, tok.Text == "true"
	default:
		evt.Kind = NullValue
	}
	return evt, nil
}
