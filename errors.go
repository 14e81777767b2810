// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jevent

import (
	"fmt"
	"strings"
)

// TokenizationError is the concrete type of lexical errors: unterminated
// strings, literals that match no value grammar, and read failures.
type TokenizationError struct {
	Offset  int     // byte offset of the offending token
	Pos     LineCol // line and column of the offending token
	Message string

	// Preview is a two-line excerpt of the source line containing the error,
	// with a caret under the offending column. It is empty if no source text
	// was available.
	Preview string

	err error
}

// Error satisfies the error interface.
func (t *TokenizationError) Error() string {
	msg := fmt.Sprintf("at offset %d (%s): %s", t.Offset, t.Pos, t.Message)
	if t.Preview != "" {
		msg += "\n" + t.Preview
	}
	return msg
}

// Unwrap supports error wrapping.
func (t *TokenizationError) Unwrap() error { return t.err }

// GrammarError is the concrete type of errors reported when a token appears
// where the grammar does not permit it.
type GrammarError struct {
	Token     Token  // the offending token
	Found     Class  // the grammatical class of the token
	Expecting Expect // the classes that were permitted
}

// Error satisfies the error interface.
func (g *GrammarError) Error() string {
	return fmt.Sprintf("at offset %d (%s): unexpected %s (%s %q), expecting any of: %s",
		g.Token.Location.Pos, g.Token.Location.First, g.Found, g.Token.Kind, g.Token.Text, g.Expecting)
}

// ParseError is the concrete type of structural errors not tied to a single
// misplaced token, such as end of input inside an open array or object, or
// an object key without a following colon.
type ParseError struct {
	Offset    int
	Pos       LineCol
	Message   string
	Expecting Expect // the classes that were permitted, if known
}

// Error satisfies the error interface.
func (p *ParseError) Error() string {
	msg := fmt.Sprintf("at offset %d (%s): %s", p.Offset, p.Pos, p.Message)
	if p.Expecting != 0 {
		msg += ", expecting any of: " + p.Expecting.String()
	}
	return msg
}

// renderPreview formats a bounded excerpt of a source line around an error
// column. The before runes precede the column on the same line, and clipped
// reports whether the line has further text before them. The rest string
// holds the source text starting at the column.
//
// The result has two lines, each indented by a tab: the excerpt, and a caret
// marking the column. Text cut from either end is marked by "...".
func renderPreview(before []rune, clipped bool, rest string) string {
	var after []rune
	var more bool
	for _, ch := range rest {
		if ch == '\n' || ch == '\r' {
			break
		} else if len(after) > previewRadius {
			more = true
			break
		}
		after = append(after, ch)
	}

	var line strings.Builder
	line.WriteString("\t")
	if clipped {
		line.WriteString("...")
	}
	col := line.Len() - 1
	for _, ch := range before {
		line.WriteRune(printable(ch))
		col++
	}
	for _, ch := range after {
		line.WriteRune(printable(ch))
	}
	if more {
		line.WriteString("...")
	}
	return line.String() + "\n\t" + strings.Repeat(" ", col) + "^"
}

func printable(ch rune) rune {
	if ch < ' ' {
		return ' '
	}
	return ch
}
