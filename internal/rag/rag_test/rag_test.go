package rag_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"docvoice/internal/pipeline"
	"docvoice/internal/rag"
	"docvoice/internal/rag/vectorindex"
)

func matchesOf(n int) []vectorindex.Match {
	out := make([]vectorindex.Match, n)
	for i := range out {
		out[i] = vectorindex.Match{
			Score: float32(n-i) / float32(n),
			Metadata: vectorindex.Metadata{
				DocumentID:   "doc-1",
				DocVersionID: "ver-1",
				Idx:          i,
				Path:         "root",
				TextSnippet:  fmt.Sprintf("snippet %d", i),
			},
		}
	}
	return out
}

func newTestService(index *mockIndex, provider *mockProvider) rag.Service {
	embedder := &mockEmbedder{
		EmbedQueryFunc: func(ctx context.Context, text string) ([]float32, error) {
			return []float32{0.1, 0.2, 0.3}, nil
		},
	}
	resolver := &mockResolver{surfaces: map[string][2]string{
		"handbook-4f2a": {"doc-1", "ver-1"},
	}}
	return rag.NewService(index, embedder, provider, resolver)
}

func TestRetrieveMapsMatches(t *testing.T) {
	index := &mockIndex{QueryFunc: func(ctx context.Context, ns string, vec []float32, topK int) ([]vectorindex.Match, error) {
		return matchesOf(3), nil
	}}
	svc := newTestService(index, &mockProvider{})

	hits, err := svc.Retrieve(context.Background(), rag.Target{DocumentID: "doc-1", DocVersionID: "ver-1"}, "what is this?", 3)
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if len(hits) != 3 {
		t.Fatalf("expected 3 hits, got %d", len(hits))
	}
	if hits[0].Idx != 0 || hits[0].Snippet != "snippet 0" || hits[0].Path != "root" {
		t.Errorf("unexpected first hit: %+v", hits[0])
	}
	if index.lastNamespace != vectorindex.Namespace("doc-1", "ver-1") {
		t.Errorf("queried wrong namespace %s", index.lastNamespace)
	}
}

func TestTopKClamping(t *testing.T) {
	index := &mockIndex{QueryFunc: func(ctx context.Context, ns string, vec []float32, topK int) ([]vectorindex.Match, error) {
		return nil, nil
	}}
	svc := newTestService(index, &mockProvider{CompleteFunc: func(ctx context.Context, system, user string) (string, error) {
		return "ok", nil
	}})
	target := rag.Target{DocumentID: "doc-1", DocVersionID: "ver-1"}

	if _, err := svc.Retrieve(context.Background(), target, "q", 50); err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if index.lastTopK != 10 {
		t.Errorf("expected retrieve topK clamped to 10, got %d", index.lastTopK)
	}

	if _, err := svc.Ask(context.Background(), target, "q", 50); err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if index.lastTopK != 8 {
		t.Errorf("expected answer topK clamped to 8, got %d", index.lastTopK)
	}

	if _, err := svc.Retrieve(context.Background(), target, "q", 0); err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if index.lastTopK != 5 {
		t.Errorf("expected default topK 5, got %d", index.lastTopK)
	}
}

func TestAskZeroMatchesSkipsModel(t *testing.T) {
	index := &mockIndex{QueryFunc: func(ctx context.Context, ns string, vec []float32, topK int) ([]vectorindex.Match, error) {
		return nil, nil
	}}
	provider := &mockProvider{CompleteFunc: func(ctx context.Context, system, user string) (string, error) {
		return "should not be called", nil
	}}
	svc := newTestService(index, provider)

	answer, err := svc.Ask(context.Background(), rag.Target{DocumentID: "doc-1", DocVersionID: "ver-1"}, "anything?", 5)
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if answer.Text != rag.InsufficientContextText {
		t.Errorf("expected insufficient-context text, got %q", answer.Text)
	}
	if answer.Citations == nil || len(answer.Citations) != 0 {
		t.Errorf("expected empty citations slice, got %v", answer.Citations)
	}
	if provider.calls != 0 {
		t.Errorf("completion model invoked %d times, want 0", provider.calls)
	}
}

func TestAskCitationsAlignWithContext(t *testing.T) {
	index := &mockIndex{QueryFunc: func(ctx context.Context, ns string, vec []float32, topK int) ([]vectorindex.Match, error) {
		return matchesOf(3), nil
	}}
	provider := &mockProvider{CompleteFunc: func(ctx context.Context, system, user string) (string, error) {
		return "grounded answer [#1]", nil
	}}
	svc := newTestService(index, provider)

	answer, err := svc.Ask(context.Background(), rag.Target{Slug: "handbook-4f2a"}, "what is this?", 3)
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if provider.calls != 1 {
		t.Fatalf("completion model invoked %d times, want 1", provider.calls)
	}
	if len(answer.Citations) != 3 {
		t.Fatalf("expected 3 citations, got %d", len(answer.Citations))
	}
	for i, c := range answer.Citations {
		wantTag := fmt.Sprintf("#%d", i+1)
		if c.Tag != wantTag {
			t.Errorf("citation %d tag = %q, want %q", i, c.Tag, wantTag)
		}
		if !strings.Contains(provider.lastUser, "["+wantTag+"] "+c.Excerpt) {
			t.Errorf("context missing block for tag %s", wantTag)
		}
	}
	if !strings.Contains(provider.lastUser, "what is this?") {
		t.Error("user prompt missing the question")
	}
}

func TestAskContextCapDropsLowestRanked(t *testing.T) {
	big := strings.Repeat("x", 2000)
	many := make([]vectorindex.Match, 8)
	for i := range many {
		many[i] = vectorindex.Match{
			Score:    1 - float32(i)*0.1,
			Metadata: vectorindex.Metadata{Idx: i, Path: "root", TextSnippet: big},
		}
	}
	index := &mockIndex{QueryFunc: func(ctx context.Context, ns string, vec []float32, topK int) ([]vectorindex.Match, error) {
		return many, nil
	}}
	provider := &mockProvider{CompleteFunc: func(ctx context.Context, system, user string) (string, error) {
		return "ok", nil
	}}

	svc := newTestService(index, provider)
	answer, err := svc.Ask(context.Background(), rag.Target{DocumentID: "doc-1", DocVersionID: "ver-1"}, "q", 8)
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	// 8 blocks of ~2005 chars exceed the 12000-char cap, only 5 fit.
	if len(answer.Citations) != 5 {
		t.Fatalf("expected 5 citations after cap, got %d", len(answer.Citations))
	}
	// Citations must cover a prefix of the ranking, highest scores first.
	for i, c := range answer.Citations {
		if c.Idx != i {
			t.Errorf("citation %d refers to chunk %d, ranking prefix broken", i, c.Idx)
		}
	}
}

func TestAskUnknownSlug(t *testing.T) {
	index := &mockIndex{QueryFunc: func(ctx context.Context, ns string, vec []float32, topK int) ([]vectorindex.Match, error) {
		return nil, nil
	}}
	svc := newTestService(index, &mockProvider{})

	_, err := svc.Ask(context.Background(), rag.Target{Slug: "does-not-exist"}, "q", 5)
	if err == nil {
		t.Fatal("expected error for unknown slug")
	}
	if pipeline.HTTPStatus(err) != http.StatusNotFound {
		t.Errorf("expected 404 mapping, got %d", pipeline.HTTPStatus(err))
	}
}

func TestRetrieveMissingQuestion(t *testing.T) {
	index := &mockIndex{QueryFunc: func(ctx context.Context, ns string, vec []float32, topK int) ([]vectorindex.Match, error) {
		return nil, nil
	}}
	svc := newTestService(index, &mockProvider{})

	_, err := svc.Retrieve(context.Background(), rag.Target{DocumentID: "doc-1", DocVersionID: "ver-1"}, "   ", 5)
	if err == nil {
		t.Fatal("expected error for blank question")
	}
	if pipeline.HTTPStatus(err) != http.StatusBadRequest {
		t.Errorf("expected 400 mapping, got %d", pipeline.HTTPStatus(err))
	}
}

func TestAskEmbeddingFailureIsFatal(t *testing.T) {
	index := &mockIndex{QueryFunc: func(ctx context.Context, ns string, vec []float32, topK int) ([]vectorindex.Match, error) {
		return nil, nil
	}}
	embedder := &mockEmbedder{EmbedQueryFunc: func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("quota exceeded")
	}}
	svc := rag.NewService(index, embedder, &mockProvider{}, &mockResolver{})

	_, err := svc.Ask(context.Background(), rag.Target{DocumentID: "doc-1", DocVersionID: "ver-1"}, "q", 5)
	if err == nil {
		t.Fatal("expected embedding failure to surface")
	}
	if pipeline.HTTPStatus(err) != http.StatusInternalServerError {
		t.Errorf("expected 500 mapping, got %d", pipeline.HTTPStatus(err))
	}
}
