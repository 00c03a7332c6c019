package rag_test

import (
	"context"

	"docvoice/internal/pipeline"
	"docvoice/internal/rag/vectorindex"
)

type mockIndex struct {
	QueryFunc func(ctx context.Context, namespace string, vector []float32, topK int) ([]vectorindex.Match, error)

	lastNamespace string
	lastTopK      int
}

func (m *mockIndex) ClearNamespace(ctx context.Context, namespace string) error {
	return nil
}

func (m *mockIndex) UpsertBatch(ctx context.Context, namespace string, records []vectorindex.Record) error {
	return nil
}

func (m *mockIndex) Query(ctx context.Context, namespace string, vector []float32, topK int) ([]vectorindex.Match, error) {
	m.lastNamespace = namespace
	m.lastTopK = topK
	return m.QueryFunc(ctx, namespace, vector, topK)
}

type mockEmbedder struct {
	EmbedQueryFunc func(ctx context.Context, text string) ([]float32, error)
}

func (m *mockEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return m.EmbedQueryFunc(ctx, text)
}

func (m *mockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		vec, err := m.EmbedQueryFunc(ctx, texts[i])
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

type mockProvider struct {
	CompleteFunc func(ctx context.Context, system string, user string) (string, error)

	calls      int
	lastSystem string
	lastUser   string
}

func (m *mockProvider) Complete(ctx context.Context, system string, user string) (string, error) {
	m.calls++
	m.lastSystem = system
	m.lastUser = user
	return m.CompleteFunc(ctx, system, user)
}

type mockResolver struct {
	surfaces map[string][2]string
}

func (m *mockResolver) ResolveSlug(ctx context.Context, slug string) (string, string, error) {
	ids, ok := m.surfaces[slug]
	if !ok {
		return "", "", pipeline.NotFound("Unknown slug")
	}
	return ids[0], ids[1], nil
}
