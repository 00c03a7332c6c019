package rag

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"docvoice/internal/rag/vectorindex"
)

const answerSystemPrompt = "You answer questions about a single document. " +
	"Use ONLY the numbered context blocks provided; do not use outside knowledge. " +
	"Cite your sources inline with the matching [#n] markers. " +
	"If the context does not contain the answer, say you don't know."

// buildContext concatenates ranked snippets into tagged blocks, dropping
// the lowest-ranked matches once the character cap is reached. The
// returned citations cover exactly the blocks that made it in, so tags
// align positionally with the [#n] markers.
func buildContext(matches []vectorindex.Match, maxChars int) (string, []Citation) {
	var b strings.Builder
	citations := make([]Citation, 0, len(matches))

	total := 0
	for i, m := range matches {
		block := fmt.Sprintf("[#%d] %s", i+1, m.Metadata.TextSnippet)
		cost := utf8.RuneCountInString(block)
		if i > 0 {
			cost += 2
		}
		if total+cost > maxChars && i > 0 {
			break
		}
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(block)
		total += cost

		citations = append(citations, Citation{
			Tag:     fmt.Sprintf("#%d", i+1),
			Idx:     m.Metadata.Idx,
			Path:    m.Metadata.Path,
			Excerpt: m.Metadata.TextSnippet,
			Score:   m.Score,
		})
	}
	return b.String(), citations
}

func buildUserPrompt(contextBlock, question string) string {
	return fmt.Sprintf("Context:\n%s\n\nQuestion: %s", contextBlock, question)
}
