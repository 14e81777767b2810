// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package digest computes a structural hash of a JSON document from the
// events of a parser. Documents that differ only in insignificant whitespace
// or in the spelling of equal numbers have the same digest.
package digest

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/creachadair/jevent"
)

// A Digest is a jevent.Observer that hashes the events it receives.
type Digest struct {
	h   *xxhash.Digest
	buf []byte
	n   int
}

// New constructs a new empty Digest.
func New() *Digest { return &Digest{h: xxhash.New()} }

// Handle implements the jevent.Observer interface.
func (d *Digest) Handle(e jevent.Event) error {
	d.n++
	d.buf = append(d.buf[:0], byte(e.Kind))
	switch e.Kind {
	case jevent.ObjectKey, jevent.StringValue:
		d.buf = binary.BigEndian.AppendUint64(d.buf, uint64(len(e.Text)))
		d.buf = append(d.buf, e.Text...)
	case jevent.IntegerValue:
		d.buf = binary.BigEndian.AppendUint64(d.buf, uint64(e.Int))
	case jevent.FloatValue:
		d.buf = binary.BigEndian.AppendUint64(d.buf, math.Float64bits(e.Float))
	case jevent.BoolValue:
		if e.Bool {
			d.buf = append(d.buf, 1)
		} else {
			d.buf = append(d.buf, 0)
		}
	}
	_, err := d.h.Write(d.buf)
	return err
}

// Sum64 returns the current digest value.
func (d *Digest) Sum64() uint64 { return d.h.Sum64() }

// Len reports the number of events hashed.
func (d *Digest) Len() int { return d.n }

// Reset discards all state in d.
func (d *Digest) Reset() { d.h.Reset(); d.n = 0 }

// Sum parses the JSON document read from r, with escape sequences decoded,
// and returns its digest and the number of events it contains.
func Sum(r io.Reader) (uint64, int, error) {
	p := jevent.NewParser(r)
	p.DecodeEscapes(true)
	d := New()
	p.Register(d)
	if err := p.ParseAll(); err != nil {
		return 0, 0, err
	}
	return d.Sum64(), d.Len(), nil
}
