// Package extract turns uploaded file bytes into plain text. Each format
// maps to an ordered list of strategies tried in sequence; the first
// strategy producing acceptable text wins, and only exhaustion of the whole
// list is an error.
package extract

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"docvoice/pkg/logx"
)

var logger = logx.New("extract")

// minAcceptableChars guards against extractors that "succeed" with
// near-empty output on scanned or garbled documents.
const minAcceptableChars = 24

type strategy struct {
	name string
	run  func(data []byte) (string, error)
	// gate decides whether a non-error result is acceptable; nil accepts
	// any output including empty
	gate func(text string) bool
}

func nonTrivial(text string) bool {
	return len(strings.TrimSpace(text)) > minAcceptableChars
}

// Text extracts plain text from data based on the lowercase
// filename-derived extension. Unknown extensions fall back to a UTF-8
// decode; undecodable bytes yield empty text, which the caller treats as a
// fatal "no text extracted" condition.
func Text(data []byte, ext string) (string, error) {
	strategies := strategiesFor(ext)

	var lastErr error
	for _, s := range strategies {
		text, err := s.run(data)
		if err != nil {
			logger.Warn("extraction strategy failed", "strategy", s.name, "ext", ext, "error", err)
			lastErr = err
			continue
		}
		if s.gate != nil && !s.gate(text) {
			logger.Warn("extraction strategy rejected", "strategy", s.name, "ext", ext, "chars", len(text))
			continue
		}
		return text, nil
	}
	if lastErr != nil {
		return "", fmt.Errorf("all extraction strategies exhausted for %q: %w", ext, lastErr)
	}
	return "", fmt.Errorf("all extraction strategies exhausted for %q", ext)
}

func strategiesFor(ext string) []strategy {
	switch ext {
	case "pdf":
		return []strategy{
			{name: "pdf_fast", run: pdfWholeDocument, gate: nonTrivial},
			{name: "pdf_pages", run: pdfPageByPage},
		}
	case "docx":
		return []strategy{
			{name: "docx", run: docxText},
		}
	case "html", "htm":
		return []strategy{
			{name: "html", run: htmlText},
		}
	default:
		return []strategy{
			{name: "plain", run: plainText},
		}
	}
}

func plainText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", nil
	}
	return strings.TrimSpace(string(data)), nil
}
