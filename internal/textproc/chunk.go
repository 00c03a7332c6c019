package textproc

import (
	"regexp"
	"strings"
)

// Chunk is a bounded span of sanitized document text, the unit of
// embedding and citation.
type Chunk struct {
	Idx     int
	Path    string
	Heading string
	Body    string
}

// RootPath is the flat-hierarchy placeholder carried by every chunk until
// heading-aware chunking lands.
const RootPath = "root"

var blankLine = regexp.MustCompile(`\n{2,}`)

// SplitChunks splits sanitized text into ordered chunks of at most maxChars
// code points. Paragraphs (blank-line separated) are accumulated greedily;
// a paragraph that alone exceeds the budget is hard-sliced into fixed
// windows stepping by maxChars-overlap so adjacent windows share overlap
// code points of context. Empty input yields zero chunks.
func SplitChunks(text string, maxChars, overlap int) []Chunk {
	if maxChars <= 0 {
		return nil
	}
	if overlap < 0 || overlap >= maxChars {
		overlap = maxChars / 4
	}

	var paragraphs []string
	for _, p := range blankLine.Split(text, -1) {
		p = strings.TrimSpace(p)
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
	}

	var bodies []string
	var buf strings.Builder
	bufRunes := 0

	flush := func() {
		if bufRunes == 0 {
			return
		}
		bodies = append(bodies, sliceWindows(buf.String(), maxChars, overlap)...)
		buf.Reset()
		bufRunes = 0
	}

	for _, p := range paragraphs {
		pRunes := len([]rune(p))
		if bufRunes > 0 && bufRunes+2+pRunes > maxChars {
			flush()
		}
		if bufRunes > 0 {
			buf.WriteString("\n\n")
			bufRunes += 2
		}
		buf.WriteString(p)
		bufRunes += pRunes

		// one pathological paragraph must not grow the buffer unboundedly
		if bufRunes > maxChars*3/2 {
			flush()
		}
	}
	flush()

	chunks := make([]Chunk, len(bodies))
	for i, body := range bodies {
		chunks[i] = Chunk{Idx: i, Path: RootPath, Body: body}
	}
	return chunks
}

// sliceWindows returns s unchanged when it fits the budget, otherwise
// fixed-size rune windows with the configured overlap.
func sliceWindows(s string, maxChars, overlap int) []string {
	runes := []rune(s)
	if len(runes) <= maxChars {
		return []string{s}
	}
	step := maxChars - overlap
	var out []string
	for start := 0; start < len(runes); start += step {
		end := start + maxChars
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return out
}
