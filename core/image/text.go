package image

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// lossy decodes b as UTF-8, replacing invalid sequences with U+FFFD.
// Trailing NUL padding and surrounding whitespace are dropped.
func lossy(b []byte) string {
	s, err := unicode.UTF8.NewDecoder().Bytes(bytes.TrimRight(b, "\x00"))
	if err != nil {
		return strings.ToValidUTF8(string(b), "�")
	}
	return clean(s)
}

func clean(b []byte) string {
	return strings.TrimSpace(strings.TrimRight(string(b), "\x00"))
}
