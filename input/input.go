// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package input opens JSON input that may be compressed. The format is
// detected from the magic number at the start of the stream, so a caller can
// hand the result directly to a jevent.Parser.
package input

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// A Format identifies the encoding of an input stream.
type Format int

const (
	Plain Format = iota // uncompressed text
	Gzip                // gzip (RFC 1952)
	Zstd                // Zstandard frame
	LZ4                 // LZ4 frame
)

var formatStr = [...]string{
	Plain: "plain",
	Gzip:  "gzip",
	Zstd:  "zstd",
	LZ4:   "lz4",
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatStr) {
		return "unknown"
	}
	return formatStr[f]
}

var magic = []struct {
	format Format
	prefix []byte
}{
	{Gzip, []byte{0x1f, 0x8b}},
	{Zstd, []byte{0x28, 0xb5, 0x2f, 0xfd}},
	{LZ4, []byte{0x04, 0x22, 0x4d, 0x18}},
}

// Detect reports the format of the stream buffered by br, without consuming
// any of its input.
func Detect(br *bufio.Reader) (Format, error) {
	head, err := br.Peek(4)
	if err != nil && !errors.Is(err, io.EOF) {
		return Plain, err
	}
	for _, m := range magic {
		if bytes.HasPrefix(head, m.prefix) {
			return m.format, nil
		}
	}
	return Plain, nil
}

// A Reader is a decompressing reader for an input stream.
type Reader struct {
	io.Reader
	Format Format

	close func() error
}

// Close releases the resources of the decompressor. It does not close the
// underlying stream.
func (r *Reader) Close() error {
	if r.close == nil {
		return nil
	}
	return r.close()
}

// Open detects the format of r and returns a reader for its decompressed
// contents. If r is not in a recognized compressed format, its contents are
// returned unmodified.
func Open(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)
	f, err := Detect(br)
	if err != nil {
		return nil, fmt.Errorf("detect format: %w", err)
	}
	switch f {
	case Gzip:
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("open gzip: %w", err)
		}
		return &Reader{Reader: gz, Format: f, close: gz.Close}, nil

	case Zstd:
		dec, err := zstd.NewReader(br, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("open zstd: %w", err)
		}
		return &Reader{Reader: dec, Format: f, close: func() error { dec.Close(); return nil }}, nil

	case LZ4:
		return &Reader{Reader: lz4.NewReader(br), Format: f}, nil
	}
	return &Reader{Reader: br, Format: Plain}, nil
}

// OpenFile opens the named file and returns a reader for its decompressed
// contents. The name "-" denotes standard input. Closing the reader also
// closes the file.
func OpenFile(name string) (*Reader, error) {
	if name == "-" {
		return Open(os.Stdin)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	r, err := Open(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	dclose := r.close
	r.close = func() error {
		var derr error
		if dclose != nil {
			derr = dclose()
		}
		return errors.Join(derr, f.Close())
	}
	return r, nil
}
