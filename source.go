// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jevent

import (
	"bufio"
	"bytes"
	"io"
	"unicode/utf8"
)

// previewRadius is the number of characters on either side of an error
// column retained for diagnostic previews.
const previewRadius = 17

// A Source adapts a byte stream into a sequence of characters with a single
// character of lookahead. Peek followed by Get never reads the underlying
// stream twice.
//
// A byte sequence that is not valid UTF-8 is delivered as utf8.RuneError,
// one byte at a time; the scanner keeps the original bytes in token text.
//
// End of input is not an error: Peek and Get report false. If the underlying
// reader fails with an error other than io.EOF, the source behaves as if the
// input ended and the error is reported by Err.
type Source struct {
	r   *bufio.Reader
	err error

	ahead bool // whether next holds a character
	next  rune
	nsize int
	bad   byte // the source byte, if next is an invalid encoding

	pos       int // byte offset of the next character
	line, col int // 0-based line and column of the next character

	// The most recent characters of the current line, for previews.
	tail    []rune
	clipped bool // characters were discarded from the front of tail
}

// NewSource constructs a Source that reads from r.
func NewSource(r io.Reader) *Source {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Source{r: br}
}

// Peek returns the next character of the input without consuming it, and
// reports whether one was available. Repeated calls to Peek return the same
// character.
func (s *Source) Peek() (rune, bool) {
	if s.ahead {
		return s.next, true
	} else if s.err != nil {
		return 0, false
	}
	ch, nb, err := s.r.ReadRune()
	if err != nil {
		s.err = err
		return 0, false
	}
	if ch == utf8.RuneError && nb == 1 {
		s.r.UnreadRune()
		s.bad, _ = s.r.ReadByte()
	}
	s.next, s.nsize, s.ahead = ch, nb, true
	return ch, true
}

// Get consumes and returns the next character of the input, and reports
// whether one was available.
func (s *Source) Get() (rune, bool) {
	ch, ok := s.Peek()
	if !ok {
		return 0, false
	}
	s.ahead = false
	s.pos += s.nsize
	if ch == '\n' {
		s.line++
		s.col = 0
		s.tail = s.tail[:0]
		s.clipped = false
	} else {
		s.col++
		s.tail = append(s.tail, ch)
		if len(s.tail) > 2*previewRadius {
			n := copy(s.tail, s.tail[len(s.tail)-previewRadius:])
			s.tail = s.tail[:n]
			s.clipped = true
		}
	}
	return ch, true
}

// getTo consumes the next character as Get does, and appends its exact
// source encoding to buf.
func (s *Source) getTo(buf *bytes.Buffer) (rune, bool) {
	ch, ok := s.Get()
	if !ok {
		return 0, false
	} else if ch == utf8.RuneError && s.nsize == 1 {
		buf.WriteByte(s.bad)
	} else {
		buf.WriteRune(ch)
	}
	return ch, true
}

// Err reports the error that ended the input, if it was not io.EOF.
func (s *Source) Err() error {
	if s.err == io.EOF {
		return nil
	}
	return s.err
}

// Offset reports the byte offset of the next unconsumed character.
func (s *Source) Offset() int { return s.pos }

// Position reports the line and column of the next unconsumed character.
func (s *Source) Position() LineCol { return LineCol{Line: s.line + 1, Column: s.col} }

// lineBefore returns a copy of up to previewRadius characters of the current
// line preceding the next character, and reports whether earlier characters
// of the line were omitted.
func (s *Source) lineBefore() ([]rune, bool) {
	text, clipped := s.tail, s.clipped
	if len(text) > previewRadius {
		text = text[len(text)-previewRadius:]
		clipped = true
	}
	return append([]rune(nil), text...), clipped
}
