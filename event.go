// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jevent

import (
	"fmt"
	"strconv"

	"github.com/creachadair/jevent/internal/escape"
)

// EventKind is the type of a parser event.
type EventKind byte

// Constants defining the valid EventKind values.
const (
	NoEvent      EventKind = iota // invalid event
	ArrayStart                    // "[" opens an array
	ArrayEnd                      // "]" closes an array
	ObjectStart                   // "{" opens an object
	ObjectEnd                     // "}" closes an object
	ObjectKey                     // the key of an object member
	StringValue                   // a string value
	IntegerValue                  // an integer value
	FloatValue                    // a floating-point value
	BoolValue                     // true or false
	NullValue                     // null
)

var eventKindStr = [...]string{
	NoEvent:      "invalid",
	ArrayStart:   "array_start",
	ArrayEnd:     "array_end",
	ObjectStart:  "object_start",
	ObjectEnd:    "object_end",
	ObjectKey:    "object_key",
	StringValue:  "string_value",
	IntegerValue: "integer_value",
	FloatValue:   "float_value",
	BoolValue:    "bool_value",
	NullValue:    "null_value",
}

func (k EventKind) String() string {
	if int(k) >= len(eventKindStr) {
		return eventKindStr[NoEvent]
	}
	return eventKindStr[k]
}

// IsValue reports whether k is a scalar value event.
func (k EventKind) IsValue() bool { return k >= StringValue && k <= NullValue }

// An Event is a single unit of parser output. Events are values; observers
// may retain them without copying.
type Event struct {
	Kind EventKind

	// Text is the decoded text of a key or string value, the source text of a
	// number, bool, or null, or the delimiter of a start or end event.
	Text string

	Int   int64   // for IntegerValue
	Float float64 // for FloatValue
	Bool  bool    // for BoolValue

	Location Location // the location of the token that produced the event
}

// Value returns the payload of e as a Go value: a string for keys, strings,
// and delimiters; an int64, float64, or bool for the corresponding values;
// and nil for null.
func (e Event) Value() any {
	switch e.Kind {
	case IntegerValue:
		return e.Int
	case FloatValue:
		return e.Float
	case BoolValue:
		return e.Bool
	case NullValue:
		return nil
	default:
		return e.Text
	}
}

// String renders e in the form kind(payload), for example
// object_key("hello") or integer_value(1). Start and end events render as
// the bare kind.
func (e Event) String() string {
	switch e.Kind {
	case ArrayStart, ArrayEnd, ObjectStart, ObjectEnd, NullValue:
		return e.Kind.String()
	case ObjectKey, StringValue:
		return fmt.Sprintf("%s(%s)", e.Kind, escape.Quote(e.Text))
	case IntegerValue:
		return fmt.Sprintf("%s(%d)", e.Kind, e.Int)
	case FloatValue:
		return fmt.Sprintf("%s(%s)", e.Kind, strconv.FormatFloat(e.Float, 'g', -1, 64))
	case BoolValue:
		return fmt.Sprintf("%s(%v)", e.Kind, e.Bool)
	}
	return e.Kind.String()
}

// An Observer receives events from a Sink. If Handle reports an error, the
// error is returned to the caller that emitted the event.
type Observer interface {
	Handle(Event) error
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event) error

// Handle satisfies the Observer interface.
func (f ObserverFunc) Handle(e Event) error { return f(e) }

// A Sink dispatches each event to a sequence of registered observers.
// The zero value is ready for use and has no observers.
type Sink struct {
	obs []Observer
}

// Register adds o to the observers of s. Observers are called in the order
// they were registered.
func (s *Sink) Register(o Observer) { s.obs = append(s.obs, o) }

// Len reports the number of observers registered with s.
func (s *Sink) Len() int { return len(s.obs) }

// Emit delivers e to each observer of s in order, before returning. If an
// observer reports an error, delivery stops and that error is returned.
func (s *Sink) Emit(e Event) error {
	for _, o := range s.obs {
		if err := o.Handle(e); err != nil {
			return err
		}
	}
	return nil
}
