// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of JSON string contents.
package escape

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

const hexDigit = "0123456789abcdef"

// Quote returns s as a JSON string literal, with double quotation marks and
// with control characters, quotes, and backslashes escaped.
func Quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	src := mem.S(s)
	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		switch {
		case r < ' ':
			if b := controlEsc[r]; b != 0 {
				sb.WriteByte('\\')
				sb.WriteByte(b)
			} else {
				sb.WriteString(`\u00`)
				sb.WriteByte(hexDigit[r>>4])
				sb.WriteByte(hexDigit[r&15])
			}
		case r == '\\' || r == '"':
			sb.WriteByte('\\')
			sb.WriteByte(byte(r))
		case r == '\u2028' || r == '\u2029' || r == utf8.RuneError:
			fmt.Fprintf(&sb, `\u%04x`, r)
		default:
			sb.WriteRune(r)
		}
		src = src.SliceFrom(n)
	}
	sb.WriteByte('"')
	return sb.String()
}

// Unquote decodes the contents of a JSON string literal, with the enclosing
// double quotation marks already removed. Escape sequences are replaced with
// the characters they denote, and UTF-16 surrogate pairs written as a pair of
// \u escapes are combined.
//
// Unquote reports an error for an incomplete or unknown escape sequence.
// An unpaired surrogate is replaced by the Unicode replacement rune.
func Unquote(s string) (string, error) {
	src := mem.S(s)
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		return s, nil // fast path: nothing to decode
	}

	var sb strings.Builder
	sb.Grow(len(s))
	for i >= 0 {
		sb.WriteString(src.SliceTo(i).StringCopy())
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return "", fmt.Errorf("incomplete escape sequence")
		}
		c := src.At(0)
		src = src.SliceFrom(1)
		switch c {
		case '"', '\\', '/':
			sb.WriteByte(c)
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'u':
			r, rest, err := decodeUnicode(src)
			if err != nil {
				return "", err
			}
			sb.WriteRune(r)
			src = rest
		default:
			return "", fmt.Errorf("invalid escape %q", "\\"+string(c))
		}
		i = mem.IndexByte(src, '\\')
	}
	sb.WriteString(src.StringCopy())
	return sb.String(), nil
}

// decodeUnicode decodes the hex digits of a \u escape at the front of src,
// including the low half of a surrogate pair if one follows.
func decodeUnicode(src mem.RO) (rune, mem.RO, error) {
	r1, err := parseHex4(src)
	if err != nil {
		return 0, src, err
	}
	src = src.SliceFrom(4)
	if !utf16.IsSurrogate(r1) {
		return r1, src, nil
	}
	if src.Len() >= 6 && src.At(0) == '\\' && src.At(1) == 'u' {
		if r2, err := parseHex4(src.SliceFrom(2)); err == nil {
			if r := utf16.DecodeRune(r1, r2); r != utf8.RuneError {
				return r, src.SliceFrom(6), nil
			}
		}
	}
	return utf8.RuneError, src, nil
}

func parseHex4(src mem.RO) (rune, error) {
	if src.Len() < 4 {
		return 0, fmt.Errorf("incomplete Unicode escape")
	}
	var v rune
	for i := range 4 {
		b := src.At(i)
		v <<= 4
		switch {
		case '0' <= b && b <= '9':
			v += rune(b - '0')
		case 'a' <= b && b <= 'f':
			v += rune(b - 'a' + 10)
		case 'A' <= b && b <= 'F':
			v += rune(b - 'A' + 10)
		default:
			return 0, fmt.Errorf("invalid hex digit %q in Unicode escape", b)
		}
	}
	return v, nil
}
