// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package path implements a subset of JSONPath for selecting values from a
// JSON document, either from a syntax tree or directly from an event stream.
//
// The supported grammar is:
//
//	 expr = ["$"] steps
//	steps = step [steps]
//	 step = "." name
//	 step = "[" value "]"
//	 name = WORD | "*"
//	value = "'" QTEXT "'" | INDEX | "*"
//
//	 WORD = RE `\w+`
//	QTEXT = RE `([^'\\]|\\.)*`
//	INDEX = RE `\d+`
//
// The leading "$" may be omitted, in which case the first step may also be a
// bare name, so that "a.b[1]" means "$.a.b[1]".
package path

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// An Op is a path operator.
type Op byte

const (
	Invalid  Op = iota // invalid operator
	Member             // object member lookup by key
	Index              // array element lookup by offset
	Wildcard           // all elements of an array or object
)

var opText = [...]string{
	Invalid:  "invalid",
	Member:   "member",
	Index:    "index",
	Wildcard: "*",
}

func (o Op) String() string {
	if int(o) >= len(opText) {
		return opText[Invalid]
	}
	return opText[o]
}

// A Step is a single step of a path expression.
type Step struct {
	Op    Op
	Key   string // for Member
	Index int    // for Index
}

// Matches reports whether s selects the element with the given key or index.
// Keys are matched only by Member and indices only by Index.
func (s Step) Matches(key string, index int, isKey bool) bool {
	switch s.Op {
	case Member:
		return isKey && key == s.Key
	case Index:
		return !isKey && index == s.Index
	case Wildcard:
		return true
	}
	return false
}

func (s Step) String() string {
	switch s.Op {
	case Member:
		if nameRE.MatchString(s.Key) {
			return "." + s.Key
		}
		return "['" + quoteName(s.Key) + "']"
	case Index:
		return "[" + strconv.Itoa(s.Index) + "]"
	case Wildcard:
		return "[*]"
	}
	return "[invalid]"
}

// An Expr is a parsed path expression. An empty Expr selects the root.
type Expr []Step

// Parse parses s as a path expression.
func Parse(s string) (Expr, error) {
	t, ok := strings.CutPrefix(s, "$")
	if !ok && s != "" && !strings.HasPrefix(s, "[") && !strings.HasPrefix(s, ".") {
		t = "." + s // a bare leading name
	}
	var steps Expr
	for t != "" {
		step, rest, err := parseStep(t)
		if err != nil {
			return nil, fmt.Errorf("at %q: %w", t, err)
		}
		steps = append(steps, step)
		t = rest
	}
	return steps, nil
}

// MustParse is as Parse, but panics if s is not a valid expression.
func MustParse(s string) Expr {
	e, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("path: %v", err))
	}
	return e
}

// String renders e in normalized form, for example $.a['b c'][0][*].
func (e Expr) String() string {
	var buf strings.Builder
	buf.WriteString("$")
	for _, s := range e {
		buf.WriteString(s.String())
	}
	return buf.String()
}

// Definite reports whether e selects at most one value, that is, whether it
// contains no wildcards.
func (e Expr) Definite() bool {
	for _, s := range e {
		if s.Op == Wildcard {
			return false
		}
	}
	return true
}

func parseStep(s string) (_ Step, rest string, _ error) {
	if t, ok := strings.CutPrefix(s, "."); ok {
		if u, ok := strings.CutPrefix(t, "*"); ok {
			return Step{Op: Wildcard}, u, nil
		}
		if m := wordRE.FindString(t); m != "" {
			return Step{Op: Member, Key: m}, t[len(m):], nil
		}
		return Step{}, s, errors.New("invalid .name")
	}
	if t, ok := strings.CutPrefix(s, "["); ok {
		step, u, err := parseValue(t)
		if err != nil {
			return Step{}, s, err
		}
		u, ok := strings.CutPrefix(u, "]")
		if !ok {
			return Step{}, s, errors.New("missing close bracket")
		}
		return step, u, nil
	}
	return Step{}, s, errors.New("invalid path step")
}

func parseValue(s string) (_ Step, rest string, _ error) {
	if t, ok := strings.CutPrefix(s, "*"); ok {
		return Step{Op: Wildcard}, t, nil
	}
	if m := indexRE.FindString(s); m != "" {
		n, err := strconv.Atoi(m)
		if err != nil {
			return Step{}, s, fmt.Errorf("invalid index: %w", err)
		}
		return Step{Op: Index, Index: n}, s[len(m):], nil
	}
	if strings.HasPrefix(s, "-") {
		return Step{}, s, errors.New("negative indices are not supported")
	}
	if m := quoteRE.FindStringSubmatch(s); m != nil {
		return Step{Op: Member, Key: unquoteName(m[1])}, s[len(m[0]):], nil
	}
	return Step{}, s, fmt.Errorf("invalid value: %q", s)
}

// quoteName escapes backslashes and single quotes in a bracketed name.
func quoteName(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s)
}

// unquoteName reverses quoteName.
func unquoteName(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

var (
	nameRE  = regexp.MustCompile(`^\w+$`)
	wordRE  = regexp.MustCompile(`^\w+`)
	indexRE = regexp.MustCompile(`^\d+`)
	quoteRE = regexp.MustCompile(`^'((?:[^'\\]|\\.)*)'`)
)
