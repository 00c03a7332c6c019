package googleEmbedding

import (
	"context"
	"fmt"

	"docvoice/internal/config"
	"docvoice/internal/rag/embedding"
	"docvoice/pkg/logx"
	"google.golang.org/genai"
)

type client struct {
	genAi     *genai.Client
	model     string
	dimension int32
	logger    *logx.Logger
}

// New builds a Gemini embedder. The dimensionality is pinned per index so
// query vectors always match what was stored at ingest time.
func New(ctx context.Context, model, apiKey string, dimension int) (embedding.Embedder, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("creating gemini embedding client: %w", err)
	}
	return &client{
		genAi:     c,
		model:     model,
		dimension: int32(dimension),
		logger:    logx.New("google_embedding"),
	}, nil
}

func (c *client) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	log := c.logger.WithTrace(ctx, config.TraceIDKey)

	result, err := c.doCall(ctx, genai.Text(text))
	if err != nil {
		log.Error("gemini query embedding failed", "error", err.Error())
		return nil, err
	}
	if len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("gemini returned no embeddings")
	}
	return result.Embeddings[0].Values, nil
}

func (c *client) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	log := c.logger.WithTrace(ctx, config.TraceIDKey)

	content := make([]*genai.Content, 0, len(texts))
	for _, t := range texts {
		content = append(content, genai.Text(t)...)
	}

	result, err := c.doCall(ctx, content)
	if err != nil {
		log.Error("gemini batch embedding failed", "error", err.Error())
		return nil, err
	}

	vectors := make([][]float32, 0, len(result.Embeddings))
	for _, e := range result.Embeddings {
		vectors = append(vectors, e.Values)
	}
	return vectors, nil
}

func (c *client) doCall(ctx context.Context, content []*genai.Content) (*genai.EmbedContentResponse, error) {
	return c.genAi.Models.EmbedContent(ctx, c.model, content, &genai.EmbedContentConfig{
		OutputDimensionality: &c.dimension,
		TaskType:             "RETRIEVAL_DOCUMENT",
	})
}
