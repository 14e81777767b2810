// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jevent

import (
	"errors"
	"strings"

	"github.com/creachadair/jevent/internal/escape"
)

// Quote encodes src as a JSON string literal. The contents are escaped and
// double quotation marks are added.
func Quote(src string) string { return escape.Quote(src) }

// Unescape decodes the escape sequences in the text of a key or string event
// delivered by a parser that does not decode escapes.
func Unescape(text string) (string, error) { return escape.Unquote(text) }

// Unquote decodes a JSON string literal. Double quotation marks are removed,
// and escape sequences are replaced with their unescaped equivalents.
func Unquote(src string) (string, error) {
	if len(src) < 2 || !strings.HasPrefix(src, `"`) || !strings.HasSuffix(src, `"`) {
		return "", errors.New("missing quotations")
	}
	return escape.Unquote(src[1 : len(src)-1])
}
