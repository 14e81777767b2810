// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jevent

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"go4.org/mem"
)

// TokenKind is the type of a lexical token in the JSON grammar.
type TokenKind byte

// Constants defining the valid TokenKind values.
const (
	Invalid TokenKind = iota // invalid token
	Symbol                   // structural symbol: { } [ ] : ,
	String                   // quoted string
	Integer                  // number: integer with no fraction or exponent
	Float                    // number with fraction and/or exponent
	Bool                     // constant: true or false
	Null                     // constant: null
)

var tokenKindStr = [...]string{
	Invalid: "invalid",
	Symbol:  "symbol",
	String:  "string",
	Integer: "integer",
	Float:   "float",
	Bool:    "bool",
	Null:    "null",
}

func (k TokenKind) String() string {
	if int(k) >= len(tokenKindStr) {
		return tokenKindStr[Invalid]
	}
	return tokenKindStr[k]
}

// A Token is a single lexical unit of the input.
type Token struct {
	Kind     TokenKind
	Text     string // the exact source bytes; strings retain their quotes
	Location Location
}

func (t Token) String() string { return fmt.Sprintf("%s %q", t.Kind, t.Text) }

// A Scanner reads lexical tokens from a Source. Each call to Next returns the
// next token of the input, or reports an error.
type Scanner struct {
	src *Source
	esc bool         // recognize backslash escapes in strings
	buf bytes.Buffer // current token
}

// NewScanner constructs a new lexical scanner that consumes input from r.
func NewScanner(r io.Reader) *Scanner { return &Scanner{src: NewSource(r)} }

// NewScannerWithSource constructs a new lexical scanner that consumes input
// from src.
func NewScannerWithSource(src *Source) *Scanner { return &Scanner{src: src} }

// AllowEscapes configures the scanner to treat a backslash inside a string
// as escaping the following character (true), or to end each string at the
// first double quote after the opening quote (false). The default is false.
func (s *Scanner) AllowEscapes(ok bool) { s.esc = ok }

// Next returns the next token of the input. At the end of the input, Next
// returns io.EOF. Any other error has concrete type *TokenizationError.
func (s *Scanner) Next() (Token, error) {
	s.buf.Reset()

	// Discard whitespace.
	for {
		ch, ok := s.src.Peek()
		if !ok {
			if err := s.src.Err(); err != nil {
				return Token{}, s.readError(err)
			}
			return Token{}, io.EOF
		} else if !isSpace(ch) {
			break
		}
		s.src.Get()
	}

	ch, _ := s.src.Peek()
	start := s.src.Offset()
	first := s.src.Position()

	var kind TokenKind
	switch {
	case isSymbol(ch):
		s.src.getTo(&s.buf)
		kind = Symbol
	case ch == '"':
		if err := s.scanString(); err != nil {
			return Token{}, err
		}
		kind = String
	default:
		before, clipped := s.src.lineBefore()
		if err := s.scanLiteral(); err != nil {
			return Token{}, err
		}
		k, ok := classify(s.buf.Bytes())
		if !ok {
			return Token{}, &TokenizationError{
				Offset:  start,
				Pos:     first,
				Message: fmt.Sprintf("unrecognized literal %q", s.buf.String()),
				Preview: renderPreview(before, clipped, s.buf.String()),
			}
		}
		kind = k
	}
	return Token{
		Kind: kind,
		Text: s.buf.String(),
		Location: Location{
			Span:  Span{Pos: start, End: s.src.Offset()},
			First: first,
			Last:  s.src.Position(),
		},
	}, nil
}

// scanString consumes a string literal including its quotes.
// Precondition: the next character is '"'.
func (s *Scanner) scanString() error {
	start, first := s.src.Offset(), s.src.Position()
	before, clipped := s.src.lineBefore()

	open, _ := s.src.getTo(&s.buf)
	var esc bool
	for {
		ch, ok := s.src.getTo(&s.buf)
		if !ok {
			if err := s.src.Err(); err != nil {
				return s.readError(err)
			}
			return &TokenizationError{
				Offset:  start,
				Pos:     first,
				Message: "unterminated string literal",
				Preview: renderPreview(before, clipped, s.buf.String()),
			}
		}
		if esc {
			esc = false
		} else if ch == '\\' && s.esc {
			esc = true
		} else if ch == open {
			return nil
		}
	}
}

// scanLiteral consumes a bare literal up to the next whitespace, structural
// symbol, or end of input.
func (s *Scanner) scanLiteral() error {
	for {
		ch, ok := s.src.Peek()
		if !ok {
			if err := s.src.Err(); err != nil {
				return s.readError(err)
			}
			return nil
		} else if isSpace(ch) || isSymbol(ch) {
			return nil
		}
		s.src.getTo(&s.buf)
	}
}

func (s *Scanner) readError(err error) error {
	return &TokenizationError{
		Offset:  s.src.Offset(),
		Pos:     s.src.Position(),
		Message: fmt.Sprintf("read failed: %v", err),
		err:     err,
	}
}

// classify reports the kind of the bare literal text, and whether it is a
// recognized literal.
func classify(text []byte) (TokenKind, bool) {
	if k, ok := numberKind(text); ok {
		return k, true
	}
	switch t := mem.B(text); {
	case t.Equal(mem.S("true")), t.Equal(mem.S("false")):
		return Bool, true
	case t.Equal(mem.S("null")):
		return Null, true
	}
	return Invalid, false
}

// numberKind reports whether text matches the JSON number grammar
//
//	-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?
//
// and if so whether it is an Integer (no fraction or exponent) or a Float.
func numberKind(text []byte) (TokenKind, bool) {
	i := 0
	if i < len(text) && text[i] == '-' {
		i++
	}

	// Integer part: a single zero, or a nonzero digit followed by digits.
	if i == len(text) || !isDigit(rune(text[i])) {
		return Invalid, false
	} else if text[i] == '0' {
		i++
	} else {
		i += countDigits(text[i:])
	}
	kind := Integer

	// Optional fraction.
	if i < len(text) && text[i] == '.' {
		i++
		nd := countDigits(text[i:])
		if nd == 0 {
			return Invalid, false
		}
		i += nd
		kind = Float
	}

	// Optional exponent.
	if i < len(text) && (text[i] == 'e' || text[i] == 'E') {
		i++
		if i < len(text) && (text[i] == '+' || text[i] == '-') {
			i++
		}
		nd := countDigits(text[i:])
		if nd == 0 {
			return Invalid, false
		}
		i += nd
		kind = Float
	}
	if i != len(text) {
		return Invalid, false
	}
	return kind, true
}

func countDigits(text []byte) int {
	for i, b := range text {
		if !isDigit(rune(b)) {
			return i
		}
	}
	return len(text)
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isDigit(ch rune) bool  { return '0' <= ch && ch <= '9' }
func isSymbol(ch rune) bool { return strings.ContainsRune("{}[]:,", ch) }
