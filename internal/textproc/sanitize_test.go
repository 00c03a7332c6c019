package textproc

import (
	"strings"
	"testing"
)

func TestSanitize_RemovesForbiddenCodePoints(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain text untouched", "hello world", "hello world"},
		{"keeps tab newline cr", "a\tb\nc\rd", "a\tb\nc\rd"},
		{"strips c0 controls", "a\x00b\x01c\x1Fd", "abcd"},
		{"strips delete and c1", "a\x7Fbc", "abc"},
		{"strips noncharacter block", "a﷐b﷯c", "abc"},
		{"strips plane noncharacters", "a￾b￿c", "abc"},
		{"collapses trailing ws before newline", "line one   \nline two", "line one\nline two"},
		{"collapses 3+ newlines to 2", "a\n\n\n\nb", "a\n\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitize_SurrogateRange(t *testing.T) {
	// string(rune(0xD800)) yields U+FFFD, so splice the raw WTF-8 bytes
	input := "before" + string([]byte{0xED, 0xA0, 0x80}) + "after"
	got := Sanitize(input)
	for _, r := range got {
		if r >= 0xD800 && r <= 0xDFFF {
			t.Fatalf("surrogate %U survived sanitization", r)
		}
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"a\x00b\n\n\n\nc   \nd",
		"unicode: café ﷑ end",
		// stripping the NUL puts the combining acute next to the e; the
		// pair must compose on the first pass, not the second
		"e\x00\u0301",
		strings.Repeat("p\n\n", 50),
	}
	for _, in := range inputs {
		once := Sanitize(in)
		twice := Sanitize(once)
		if once != twice {
			t.Errorf("Sanitize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestSanitize_NFCNormalization(t *testing.T) {
	// e + combining acute must compose to the single code point
	decomposed := "café"
	got := Sanitize(decomposed)
	if got != "café" {
		t.Errorf("expected NFC composition, got %q", got)
	}

	// a stripped control between base and mark must not block composition
	if got := Sanitize("e\x00\u0301"); got != "\u00E9" {
		t.Errorf("expected composed form after stripping, got %q", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"shorter than max", "abc", 10, "abc"},
		{"exact", "abc", 3, "abc"},
		{"cut", "abcdef", 3, "abc"},
		{"zero", "abc", 0, ""},
		{"multibyte not split", "日本語文", 2, "日本"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.in, tt.max); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}
