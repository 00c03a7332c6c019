package rag

import (
	"context"
	"strings"
	"time"

	"docvoice/internal/config"
	"docvoice/internal/metrics"
	"docvoice/internal/pipeline"
	"docvoice/internal/rag/embedding"
	"docvoice/internal/rag/llm"
	"docvoice/internal/rag/vectorindex"
	"docvoice/pkg/logx"
)

// InsufficientContextText is returned when the index has nothing relevant,
// the completion model is never invoked in that case.
const InsufficientContextText = "I don't have enough context from this document to answer that."

// SurfaceResolver maps a public slug to its document and live version.
type SurfaceResolver interface {
	ResolveSlug(ctx context.Context, slug string) (documentID string, versionID string, err error)
}

// Target names the document version to search: either explicit ids or a
// slug to resolve.
type Target struct {
	DocumentID   string
	DocVersionID string
	Slug         string
}

// Hit is one raw retrieval match.
type Hit struct {
	Score   float32
	Idx     int
	Path    string
	Snippet string
}

// Citation ties one answer tag back to its source chunk.
type Citation struct {
	Tag     string
	Idx     int
	Path    string
	Excerpt string
	Score   float32
}

// Answer is a grounded completion plus the citations its tags refer to.
type Answer struct {
	Text      string
	Citations []Citation
}

// Service answers questions about a single document version, or returns
// ranked raw snippets without the language-model step.
type Service interface {
	Retrieve(ctx context.Context, target Target, question string, topK int) ([]Hit, error)
	Ask(ctx context.Context, target Target, question string, topK int) (Answer, error)
}

type service struct {
	index    vectorindex.Index
	embedder embedding.Embedder
	provider llm.Provider
	resolver SurfaceResolver
	logger   *logx.Logger
}

func NewService(index vectorindex.Index, embedder embedding.Embedder, provider llm.Provider, resolver SurfaceResolver) Service {
	return &service{
		index:    index,
		embedder: embedder,
		provider: provider,
		resolver: resolver,
		logger:   logx.New("rag_service"),
	}
}

func (s *service) Retrieve(ctx context.Context, target Target, question string, topK int) ([]Hit, error) {
	log := s.logger.WithTrace(ctx, config.TraceIDKey)

	matches, err := s.search(ctx, log, target, question, clampTopK(topK, config.QueryTopKMax))
	if err != nil {
		return nil, err
	}

	hits := make([]Hit, len(matches))
	for i, m := range matches {
		hits[i] = Hit{
			Score:   m.Score,
			Idx:     m.Metadata.Idx,
			Path:    m.Metadata.Path,
			Snippet: m.Metadata.TextSnippet,
		}
	}
	return hits, nil
}

func (s *service) Ask(ctx context.Context, target Target, question string, topK int) (Answer, error) {
	log := s.logger.WithTrace(ctx, config.TraceIDKey)

	matches, err := s.search(ctx, log, target, question, clampTopK(topK, config.AnswerTopKMax))
	if err != nil {
		return Answer{}, err
	}
	if len(matches) == 0 {
		log.Info("no matches, skipping completion")
		return Answer{Text: InsufficientContextText, Citations: []Citation{}}, nil
	}

	contextBlock, citations := buildContext(matches, config.AnswerContextChars)

	start := time.Now()
	text, err := s.provider.Complete(ctx, answerSystemPrompt, buildUserPrompt(contextBlock, question))
	metrics.ObserveDependency("llm_generation", time.Since(start))
	if err != nil {
		log.Error("completion failed", "error", err.Error())
		return Answer{}, pipeline.Fatal("answer", err)
	}

	return Answer{Text: text, Citations: citations}, nil
}

// search resolves the target, embeds the question and queries the
// version's namespace.
func (s *service) search(ctx context.Context, log *logx.Logger, target Target, question string, topK int) ([]vectorindex.Match, error) {
	if strings.TrimSpace(question) == "" {
		return nil, pipeline.BadInput("question is required")
	}

	docID, verID := target.DocumentID, target.DocVersionID
	if docID == "" || verID == "" {
		if target.Slug == "" {
			return nil, pipeline.BadInput("either document_id and doc_version_id or slug is required")
		}
		var err error
		docID, verID, err = s.resolver.ResolveSlug(ctx, target.Slug)
		if err != nil {
			return nil, err
		}
	}

	start := time.Now()
	vector, err := s.embedder.EmbedQuery(ctx, question)
	metrics.ObserveDependency("embedding", time.Since(start))
	if err != nil {
		log.Error("query embedding failed", "error", err.Error())
		return nil, pipeline.Fatal("embed_query", err)
	}

	ns := vectorindex.Namespace(docID, verID)
	start = time.Now()
	matches, err := s.index.Query(ctx, ns, vector, topK)
	metrics.ObserveDependency("vector_search", time.Since(start))
	if err != nil {
		log.Error("vector query failed", "namespace", ns, "error", err.Error())
		return nil, pipeline.Fatal("vector_query", err)
	}

	log.Debug("vector query done", "namespace", ns, "matches", len(matches))
	return matches, nil
}

func clampTopK(k, max int) int {
	if k <= 0 {
		k = config.DefaultTopK
	}
	if k > max {
		return max
	}
	if k < 1 {
		return 1
	}
	return k
}
