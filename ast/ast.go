// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package ast defines an abstract syntax tree for JSON values, and an event
// observer that constructs syntax trees from the output of a jevent.Parser.
package ast

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/creachadair/jevent"
)

// A Value is an arbitrary JSON value.
type Value interface {
	// Location reports the location of the value in its source.
	Location() jevent.Location

	// Span reports the byte span of the value in its source.
	Span() jevent.Span

	// Interface returns the Go representation of the value, with the same
	// shape produced by encoding/json, except that integers are int64.
	Interface() any

	// JSON renders the value as compact JSON text.
	JSON() string
}

type node struct{ loc jevent.Location }

// Location satisfies part of the Value interface.
func (n node) Location() jevent.Location { return n.loc }

// Span satisfies part of the Value interface.
func (n node) Span() jevent.Span { return n.loc.Span }

// An Object is a collection of key-value members, in source order.
type Object struct {
	node
	Members []*Member
}

// Find returns the first member of o with the given key, or nil.
func (o *Object) Find(key string) *Member {
	for _, m := range o.Members {
		if m.Key == key {
			return m
		}
	}
	return nil
}

// Len reports the number of members in o.
func (o *Object) Len() int { return len(o.Members) }

// Interface returns a map[string]any. If a key occurs more than once, the
// last occurrence wins.
func (o *Object) Interface() any {
	m := make(map[string]any, len(o.Members))
	for _, mem := range o.Members {
		m[mem.Key] = mem.Value.Interface()
	}
	return m
}

func (o *Object) JSON() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, m := range o.Members {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(jevent.Quote(m.Key))
		sb.WriteByte(':')
		sb.WriteString(m.Value.JSON())
	}
	sb.WriteByte('}')
	return sb.String()
}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value

	KeyLoc jevent.Location // the location of the key
}

// An Array is a sequence of values.
type Array struct {
	node
	Values []Value
}

// Len reports the number of elements in a.
func (a *Array) Len() int { return len(a.Values) }

// Interface returns a []any.
func (a *Array) Interface() any {
	vs := make([]any, len(a.Values))
	for i, v := range a.Values {
		vs[i] = v.Interface()
	}
	return vs
}

func (a *Array) JSON() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range a.Values {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(v.JSON())
	}
	sb.WriteByte(']')
	return sb.String()
}

// A String is a string value. Whether escape sequences in Value have been
// decoded depends on the configuration of the parser that produced it.
type String struct {
	node
	Value string
}

func (s *String) Interface() any { return s.Value }
func (s *String) JSON() string   { return jevent.Quote(s.Value) }

// An Integer is an integer value.
type Integer struct {
	node
	Value int64
}

func (z *Integer) Interface() any { return z.Value }
func (z *Integer) JSON() string   { return strconv.FormatInt(z.Value, 10) }

// A Float is a floating-point value.
type Float struct {
	node
	Value float64
}

func (f *Float) Interface() any { return f.Value }
func (f *Float) JSON() string   { return strconv.FormatFloat(f.Value, 'g', -1, 64) }

// A Bool is a Boolean constant, true or false.
type Bool struct {
	node
	Value bool
}

func (b *Bool) Interface() any { return b.Value }
func (b *Bool) JSON() string   { return strconv.FormatBool(b.Value) }

// Null represents the null constant.
type Null struct{ node }

func (*Null) Interface() any { return nil }
func (*Null) JSON() string   { return "null" }

// ToValue converts a Go value into a Value without location. It accepts
// nil, bool, string, int, int64, float64, and []any and map[string]any of
// these. Map keys are sorted. It panics for other types.
func ToValue(v any) Value {
	switch t := v.(type) {
	case nil:
		return new(Null)
	case Value:
		return t
	case bool:
		return &Bool{Value: t}
	case string:
		return &String{Value: t}
	case int:
		return &Integer{Value: int64(t)}
	case int64:
		return &Integer{Value: t}
	case float64:
		return &Float{Value: t}
	case []any:
		arr := &Array{Values: make([]Value, len(t))}
		for i, elt := range t {
			arr.Values[i] = ToValue(elt)
		}
		return arr
	case map[string]any:
		keys := slices.Sorted(maps.Keys(t))
		obj := &Object{Members: make([]*Member, len(keys))}
		for i, key := range keys {
			obj.Members[i] = &Member{Key: key, Value: ToValue(t[key])}
		}
		return obj
	default:
		panic("ast: unsupported value type")
	}
}
