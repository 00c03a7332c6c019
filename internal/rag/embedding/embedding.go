package embedding

import (
	"context"
	"fmt"

	"docvoice/internal/config"
	"docvoice/internal/retry"
	"docvoice/internal/textproc"
	"docvoice/pkg/logx"
)

// Embedder is the raw embedding service: one model, fixed dimensionality.
// Retrieval must use the same model a version was ingested with, or the
// similarity scores are meaningless.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// ChunkVector pairs an embedding with its originating chunk index and a
// capped snippet carried into the vector index for citation display.
type ChunkVector struct {
	Values  []float32
	Idx     int
	Snippet string
}

// ChunkEmbedder batches chunk texts through an Embedder, wrapping every
// batch call in the retry policy. Output order matches input order:
// vector[i] corresponds to chunk[i].
type ChunkEmbedder struct {
	embedder  Embedder
	batchSize int
	policy    retry.Policy
	logger    *logx.Logger
}

func NewChunkEmbedder(e Embedder, batchSize int, policy retry.Policy) *ChunkEmbedder {
	if batchSize <= 0 {
		batchSize = config.EmbeddingBatchSize
	}
	return &ChunkEmbedder{
		embedder:  e,
		batchSize: batchSize,
		policy:    policy,
		logger:    logx.New("chunk_embedder"),
	}
}

func (ce *ChunkEmbedder) EmbedChunks(ctx context.Context, chunks []textproc.Chunk) ([]ChunkVector, error) {
	out := make([]ChunkVector, 0, len(chunks))

	for start := 0; start < len(chunks); start += ce.batchSize {
		end := start + ce.batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, c := range batch {
			texts[i] = c.Body
		}

		var vectors [][]float32
		err := ce.policy.Do(ctx, func(ctx context.Context) error {
			var callErr error
			vectors, callErr = ce.embedder.EmbedBatch(ctx, texts)
			return callErr
		})
		if err != nil {
			return nil, fmt.Errorf("embedding batch %d-%d: %w", start, end-1, err)
		}
		if len(vectors) != len(batch) {
			return nil, fmt.Errorf("embedding batch %d-%d: got %d vectors for %d inputs", start, end-1, len(vectors), len(batch))
		}

		for i, vec := range vectors {
			out = append(out, ChunkVector{
				Values:  vec,
				Idx:     batch[i].Idx,
				Snippet: textproc.Truncate(batch[i].Body, config.SnippetMaxChars),
			})
		}
		ce.logger.Debug("embedded batch", "from", start, "to", end-1)
	}
	return out, nil
}
