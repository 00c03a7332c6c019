package qdrantIndex

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"docvoice/internal/config"
	"docvoice/internal/rag/vectorindex"
	"docvoice/pkg/logx"
)

// Client implements vectorindex.Index on a single Qdrant collection.
// Namespaces map to a payload field plus a filter; logical record ids map
// to deterministic SHA1 UUIDs so re-ingesting a version overwrites points
// in place.
type Client struct {
	c          *qdrant.Client
	collection string
	dimension  uint64
	logger     *logx.Logger
}

type Config struct {
	Host       string
	Port       int
	Collection string
	Dimension  int
}

func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Collection == "" {
		return nil, errors.New("empty collection name")
	}
	c, err := qdrant.NewClient(&qdrant.Config{
		Host:     cfg.Host,
		Port:     cfg.Port,
		UseTLS:   config.QdrantUseTLS,
		PoolSize: uint(config.QdrantPoolSize),
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant client: %w", err)
	}

	client := &Client{
		c:          c,
		collection: cfg.Collection,
		dimension:  uint64(cfg.Dimension),
		logger:     logx.New("qdrant"),
	}
	if err := client.ensureCollection(ctx); err != nil {
		return nil, err
	}
	go client.closeOnDone(ctx)
	return client, nil
}

func (q *Client) ensureCollection(ctx context.Context) error {
	exists, err := q.c.CollectionExists(ctx, q.collection)
	if err != nil {
		return fmt.Errorf("collection lookup: %w", err)
	}
	if exists {
		return nil
	}
	err = q.c.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.dimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("create collection %s: %w", q.collection, err)
	}
	return nil
}

func (q *Client) closeOnDone(ctx context.Context) {
	<-ctx.Done()
	if err := q.c.Close(); err != nil {
		q.logger.Error("closing qdrant client", "error", err)
	}
}

func (q *Client) ClearNamespace(ctx context.Context, namespace string) error {
	_, err := q.c.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collection,
		Points: qdrant.NewPointsSelectorFilter(&qdrant.Filter{
			Must: []*qdrant.Condition{qdrant.NewMatch("namespace", namespace)},
		}),
		Wait: qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("clear namespace %s: %w", namespace, err)
	}
	return nil
}

func (q *Client) UpsertBatch(ctx context.Context, namespace string, records []vectorindex.Record) error {
	points := make([]*qdrant.PointStruct, len(records))
	for i, rec := range records {
		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(pointID(rec.ID)),
			Vectors: qdrant.NewVectors(rec.Values...),
			Payload: qdrant.NewValueMap(map[string]any{
				"namespace":      namespace,
				"record_id":      rec.ID,
				"document_id":    rec.Metadata.DocumentID,
				"doc_version_id": rec.Metadata.DocVersionID,
				"idx":            rec.Metadata.Idx,
				"path":           rec.Metadata.Path,
				"text_snippet":   rec.Metadata.TextSnippet,
			}),
		}
	}

	_, err := q.c.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collection,
		Points:         points,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("upsert %d points into %s: %w", len(points), namespace, err)
	}
	return nil
}

func (q *Client) Query(ctx context.Context, namespace string, vector []float32, topK int) ([]vectorindex.Match, error) {
	if topK < 1 {
		topK = 1
	}
	result, err := q.c.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collection,
		Query:          qdrant.NewQuery(vector...),
		Filter: &qdrant.Filter{
			Must: []*qdrant.Condition{qdrant.NewMatch("namespace", namespace)},
		},
		Limit:       qdrant.PtrOf(uint64(topK)),
		WithPayload: qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("query namespace %s: %w", namespace, err)
	}

	matches := make([]vectorindex.Match, 0, len(result))
	for _, hit := range result {
		matches = append(matches, vectorindex.Match{
			Score: hit.Score,
			Metadata: vectorindex.Metadata{
				DocumentID:   hit.Payload["document_id"].GetStringValue(),
				DocVersionID: hit.Payload["doc_version_id"].GetStringValue(),
				Idx:          int(hit.Payload["idx"].GetIntegerValue()),
				Path:         hit.Payload["path"].GetStringValue(),
				TextSnippet:  hit.Payload["text_snippet"].GetStringValue(),
			},
		})
	}
	return matches, nil
}

// pointID maps a logical record id to a stable UUID Qdrant accepts.
func pointID(recordID string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(recordID)).String()
}
