package openaiEmbedding

import (
	"context"
	"fmt"

	"docvoice/internal/config"
	"docvoice/internal/rag/embedding"
	"docvoice/pkg/logx"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type client struct {
	openAi    openai.Client
	model     string
	dimension int
	logger    *logx.Logger
}

// New builds an OpenAI embedder with a pinned output dimensionality.
func New(model, apiKey string, dimension int) embedding.Embedder {
	return &client{
		openAi:    openai.NewClient(option.WithAPIKey(apiKey)),
		model:     model,
		dimension: dimension,
		logger:    logx.New("openai_embedding"),
	}
}

func (c *client) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (c *client) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	log := c.logger.WithTrace(ctx, config.TraceIDKey)

	resp, err := c.openAi.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input:      openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
		Model:      openai.EmbeddingModel(c.model),
		Dimensions: openai.Int(int64(c.dimension)),
	})
	if err != nil {
		log.Error("openai embedding call failed", "error", err.Error())
		return nil, err
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("openai returned %d embeddings for %d inputs", len(resp.Data), len(texts))
	}

	// Responses carry an explicit index, place each vector by it.
	vectors := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || int(d.Index) >= len(texts) {
			return nil, fmt.Errorf("openai embedding index %d out of range", d.Index)
		}
		vec := make([]float32, len(d.Embedding))
		for i, v := range d.Embedding {
			vec[i] = float32(v)
		}
		vectors[d.Index] = vec
	}
	return vectors, nil
}
