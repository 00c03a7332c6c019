package textproc

import (
	"strings"
	"testing"
)

func TestSplitChunks_Empty(t *testing.T) {
	if got := SplitChunks("", 1800, 200); len(got) != 0 {
		t.Errorf("expected zero chunks for empty input, got %d", len(got))
	}
	if got := SplitChunks("\n\n  \n\n", 1800, 200); len(got) != 0 {
		t.Errorf("expected zero chunks for whitespace input, got %d", len(got))
	}
}

func TestSplitChunks_SmallInputSingleChunk(t *testing.T) {
	text := "para one\n\npara two\n\npara three"
	chunks := SplitChunks(text, 1800, 200)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Idx != 0 || chunks[0].Path != RootPath {
		t.Errorf("unexpected chunk metadata: %+v", chunks[0])
	}
	if chunks[0].Body != text {
		t.Errorf("chunk body mismatch: %q", chunks[0].Body)
	}
}

func TestSplitChunks_BudgetRespected(t *testing.T) {
	const maxChars, overlap = 100, 20
	paragraphs := []string{
		strings.Repeat("a", 40),
		strings.Repeat("b", 40),
		strings.Repeat("c", 40),
		strings.Repeat("d", 350), // forces hard slicing
		strings.Repeat("e", 10),
	}
	chunks := SplitChunks(strings.Join(paragraphs, "\n\n"), maxChars, overlap)
	if len(chunks) < 4 {
		t.Fatalf("expected several chunks, got %d", len(chunks))
	}
	for _, c := range chunks {
		if n := len([]rune(c.Body)); n > maxChars {
			t.Errorf("chunk %d has %d chars, budget is %d", c.Idx, n, maxChars)
		}
	}
	for i, c := range chunks {
		if c.Idx != i {
			t.Errorf("chunk index %d at position %d", c.Idx, i)
		}
	}
}

func TestSplitChunks_OversizedParagraphOverlap(t *testing.T) {
	const maxChars, overlap = 100, 20
	// one paragraph of exactly maxChars+1 must produce at least 2 chunks
	body := strings.Repeat("x", maxChars-1) + "yz"
	chunks := SplitChunks(body, maxChars, overlap)
	if len(chunks) < 2 {
		t.Fatalf("expected at least 2 chunks for a %d char paragraph, got %d", maxChars+1, len(chunks))
	}
	for i := 0; i < len(chunks)-1; i++ {
		cur := []rune(chunks[i].Body)
		next := []rune(chunks[i+1].Body)
		if len(cur) > maxChars {
			t.Errorf("chunk %d over budget: %d", i, len(cur))
		}
		n := overlap
		if len(next) < n {
			n = len(next)
		}
		tail := string(cur[len(cur)-n:])
		head := string(next[:n])
		if tail != head {
			t.Errorf("chunks %d/%d do not share %d chars of overlap: %q vs %q", i, i+1, n, tail, head)
		}
	}
}

func TestSplitChunks_ContentPreserved(t *testing.T) {
	paragraphs := []string{"alpha beta", "gamma delta", "epsilon"}
	chunks := SplitChunks(strings.Join(paragraphs, "\n\n"), 1800, 200)
	joined := ""
	for _, c := range chunks {
		joined += c.Body + "\n\n"
	}
	for _, p := range paragraphs {
		if !strings.Contains(joined, p) {
			t.Errorf("paragraph %q lost during chunking", p)
		}
	}
}

func TestSplitChunks_PathologicalParagraphFlushes(t *testing.T) {
	const maxChars = 100
	// a single paragraph far beyond 1.5x the budget must still yield
	// bounded chunks rather than one giant buffer
	chunks := SplitChunks(strings.Repeat("w", maxChars*10), maxChars, 20)
	if len(chunks) < 10 {
		t.Fatalf("expected many bounded chunks, got %d", len(chunks))
	}
	for _, c := range chunks {
		if len([]rune(c.Body)) > maxChars {
			t.Errorf("chunk %d exceeds budget", c.Idx)
		}
	}
}
