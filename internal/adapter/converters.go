package adapter

import (
	"context"

	"docvoice/internal/api"
	"docvoice/internal/domain/docmodel"
	"docvoice/internal/pipeline"
	"docvoice/internal/rag"
	"docvoice/internal/rag/ingest"
)

func ToIngestResponse(res ingest.Result) api.IngestResponse {
	return api.IngestResponse{
		OK:           true,
		DocumentID:   res.DocumentID,
		DocVersionID: res.DocVersionID,
		PageSlug:     res.PageSlug,
		PageURL:      res.PageURL,
		Chunks:       res.Chunks,
	}
}

func ToQueryResponse(hits []rag.Hit) api.QueryResponse {
	out := make([]api.Hit, len(hits))
	for i, h := range hits {
		out[i] = api.Hit{
			Score:   h.Score,
			Idx:     h.Idx,
			Path:    h.Path,
			Snippet: h.Snippet,
		}
	}
	return api.QueryResponse{OK: true, Hits: out}
}

func ToAnswerResponse(answer rag.Answer) api.AnswerResponse {
	citations := make([]api.Citation, len(answer.Citations))
	for i, c := range answer.Citations {
		citations[i] = api.Citation{
			Tag:     c.Tag,
			Idx:     c.Idx,
			Path:    c.Path,
			Excerpt: c.Excerpt,
			Score:   c.Score,
		}
	}
	return api.AnswerResponse{OK: true, Text: answer.Text, Citations: citations}
}

func ToDocumentResponse(surface docmodel.ShareSurface) api.DocumentResponse {
	return api.DocumentResponse{
		OK:            true,
		DocumentID:    surface.DocumentID,
		LiveVersionID: surface.LiveVersionID,
		PageSlug:      surface.PageSlug,
		PageURL:       surface.PageURL,
		Mode:          surface.Mode,
		Private:       surface.Private,
	}
}

// SurfaceLookup is the slice of the store (or its cache) slug resolution
// needs.
type SurfaceLookup interface {
	GetShareSurfaceBySlug(ctx context.Context, slug string) (docmodel.ShareSurface, bool, error)
}

// SlugResolver bridges the share-surface lookup to the retrieval service.
type SlugResolver struct {
	Surfaces SurfaceLookup
}

func (r SlugResolver) ResolveSlug(ctx context.Context, slug string) (string, string, error) {
	surface, found, err := r.Surfaces.GetShareSurfaceBySlug(ctx, slug)
	if err != nil {
		return "", "", pipeline.Fatal("resolve_slug", err)
	}
	if !found {
		return "", "", pipeline.NotFound("Unknown slug")
	}
	return surface.DocumentID, surface.LiveVersionID, nil
}
