// Package textproc holds the pure text stages of the ingestion pipeline:
// sanitization and chunking. Nothing in here performs I/O.
package textproc

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	trailingSpaceBeforeNewline = regexp.MustCompile(`[ \t]+\n`)
	excessNewlines             = regexp.MustCompile(`\n{3,}`)
)

// Sanitize returns text safe for storage, indexing, and display. It
// strips surrogate code points, control characters (keeping tab, LF, CR),
// and Unicode non-characters, collapses whitespace noise, then normalizes
// to NFC. Total over its input domain and idempotent.
//
// NFC runs last: stripping a forbidden code point can juxtapose a base
// letter and a combining mark that only compose once they are adjacent,
// so normalizing first would leave the output one pass short of canonical
// form.
func Sanitize(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if !isAllowedRune(r) {
			continue
		}
		b.WriteRune(r)
	}
	text = b.String()

	text = trailingSpaceBeforeNewline.ReplaceAllString(text, "\n")
	text = excessNewlines.ReplaceAllString(text, "\n\n")
	return norm.NFC.String(text)
}

func isAllowedRune(r rune) bool {
	// surrogate range signals decode corruption
	if r >= 0xD800 && r <= 0xDFFF {
		return false
	}
	// C0 controls except tab, LF, CR
	if r < 0x20 && r != '\t' && r != '\n' && r != '\r' {
		return false
	}
	if r == 0x7F {
		return false
	}
	// C1 controls
	if r >= 0x80 && r <= 0x9F {
		return false
	}
	// non-character block
	if r >= 0xFDD0 && r <= 0xFDEF {
		return false
	}
	// last two code points of every plane
	if r&0xFFFE == 0xFFFE {
		return false
	}
	return true
}

// Truncate caps s at max code points, never splitting inside a code point.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
