// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"bytes"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/creachadair/jevent"
)

// A Formatter carries the settings for pretty-printing JSON values.
// A zero value is ready for use with default settings.
type Formatter struct {
	// Indent is the text used for each level of indentation. It must not
	// contain tabs. If empty, two spaces are used.
	Indent string

	// MaxLineItems is the largest number of simple values in an array that
	// will be rendered on a single line. If zero, 3 is used.
	MaxLineItems int
}

func (f Formatter) indent() string {
	if f.Indent == "" {
		return "  "
	}
	return f.Indent
}

func (f Formatter) maxLineItems() int {
	if f.MaxLineItems <= 0 {
		return 3
	}
	return f.MaxLineItems
}

// Format renders a pretty-printed representation of v to w with default
// settings.
func Format(w io.Writer, v Value) error {
	var f Formatter
	return f.Format(w, v)
}

// FormatToString formats v to a string with default settings.
// In case of error in formatting, it returns an empty string.
func FormatToString(v Value) string {
	var buf bytes.Buffer
	if Format(&buf, v) != nil {
		return ""
	}
	return buf.String()
}

// Format renders a pretty-printed representation of v to w using the settings
// from f. The output is valid JSON, ending with a newline.
//
// Simple values of object members are aligned in a column, and arrays and
// objects small enough to fit on one line are rendered that way.
func (f Formatter) Format(w io.Writer, v Value) error {
	tw := tabwriter.NewWriter(w, 4, 4, 1, ' ', 0)
	f.formatValue(tw, v, "", "")
	io.WriteString(tw, "\n")
	return tw.Flush()
}

type writeFlusher interface {
	io.Writer
	Flush() error
}

// formatValue writes a representation of v to w, preceded by init, with
// nested lines indented by indent.
func (f Formatter) formatValue(w writeFlusher, v Value, init, indent string) {
	switch t := v.(type) {
	case *Array:
		f.formatArray(w, t, init, indent)
	case *Object:
		f.formatObject(w, t, init, indent)
	default:
		fmt.Fprint(w, init, v.JSON())
	}
}

func (f Formatter) formatArray(w writeFlusher, a *Array, init, indent string) {
	if f.isBoring(a) {
		fmt.Fprint(w, init, "[")
		for i, v := range a.Values {
			if i > 0 {
				io.WriteString(w, ", ")
			}
			f.formatValue(w, v, "", "")
		}
		io.WriteString(w, "]")
		return
	}

	fmt.Fprint(w, init, "[\n")
	adent := indent + f.indent()
	for i, v := range a.Values {
		f.formatValue(w, v, adent, adent)
		if i+1 < len(a.Values) {
			io.WriteString(w, ",")
		}
		io.WriteString(w, "\n")
	}
	w.Flush()
	fmt.Fprint(w, indent, "]")
}

func (f Formatter) formatObject(w writeFlusher, o *Object, init, indent string) {
	if f.isBoring(o) {
		fmt.Fprint(w, init, "{")
		for i, m := range o.Members {
			if i > 0 {
				io.WriteString(w, ", ")
			}
			fmt.Fprint(w, jevent.Quote(m.Key), ": ")
			f.formatValue(w, m.Value, "", "")
		}
		io.WriteString(w, "}")
		return
	}

	fmt.Fprint(w, init, "{\n")
	mdent := indent + f.indent()
	prevBoring, curBoring := true, true
	for i, m := range o.Members {
		// Leave extra space before the next member if either it or its
		// predecessor was non-boring.
		prevBoring, curBoring = curBoring, f.isBoring(m.Value)
		if i != 0 && !(prevBoring && curBoring) {
			io.WriteString(w, "\n")
		}

		fmt.Fprint(w, mdent, jevent.Quote(m.Key), f.objSep(m.Value))
		f.formatValue(w, m.Value, "", mdent)
		if i+1 < len(o.Members) {
			io.WriteString(w, ",")
		}
		io.WriteString(w, "\n")
	}
	w.Flush()
	fmt.Fprint(w, indent, "}")
}

// objSep returns a key-value separator for the given value.
// Boring values get indented so they line up in columns;
// non-boring values are stapled directly to the key.
func (f Formatter) objSep(v Value) string {
	if f.isBoring(v) {
		return ":\t"
	}
	return ": "
}

// isBoring reports whether v has a simple enough structure that it can be
// rendered on one line.
func (f Formatter) isBoring(v Value) bool {
	switch t := v.(type) {
	case *Array:
		for i, v := range t.Values {
			if !f.isBoring(v) || i >= f.maxLineItems() {
				return false
			}
		}
		return true
	case *Object:
		if len(t.Members) == 1 {
			return f.isBoring(t.Members[0].Value)
		}
		return len(t.Members) == 0
	default:
		return true
	}
}
