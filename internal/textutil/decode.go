package textutil

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

var utf8Replacement = []byte(string(utf8.RuneError))

// DecodeLossy interprets raw bytes as UTF-8, substituting U+FFFD for any
// invalid sequence. Valid input is converted without copying through the
// replacement path.
func DecodeLossy(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return string(bytes.ToValidUTF8(b, utf8Replacement))
}

// FlattenTabs substitutes a single space for each tab. Terminal cursor
// advancement on raw tabs depends on the emulator's tab stops, so rows are
// kept free of them.
func FlattenTabs(s string) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	return strings.ReplaceAll(s, "\t", " ")
}
