package mcptools

import (
	"context"

	"docvoice/internal/rag"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SearchInput is the input schema for the search_document tool.
type SearchInput struct {
	Query        string `json:"query" jsonschema:"the question to search the document for"`
	Slug         string `json:"slug,omitempty" jsonschema:"public page slug of the document"`
	DocumentID   string `json:"document_id,omitempty" jsonschema:"explicit document id, requires doc_version_id"`
	DocVersionID string `json:"doc_version_id,omitempty" jsonschema:"explicit document version id"`
	TopK         int    `json:"top_k,omitempty" jsonschema:"maximum number of snippets to return"`
}

// SearchOutput is the output schema for the search_document tool.
type SearchOutput struct {
	Hits  []HitOutput `json:"hits"`
	Count int         `json:"count"`
}

type HitOutput struct {
	Score   float32 `json:"score"`
	Idx     int     `json:"idx"`
	Path    string  `json:"path"`
	Snippet string  `json:"snippet"`
}

// AskOutput is the output schema for the ask_document tool.
type AskOutput struct {
	Text      string           `json:"text"`
	Citations []CitationOutput `json:"citations"`
}

type CitationOutput struct {
	Tag     string  `json:"tag"`
	Idx     int     `json:"idx"`
	Path    string  `json:"path"`
	Excerpt string  `json:"excerpt"`
	Score   float32 `json:"score"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_document",
		Description: "Return score-ranked text snippets from one shared document",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask_document",
		Description: "Answer a question about one shared document with inline citations",
	}, s.handleAsk)
}

func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	hits, err := s.ragService.Retrieve(ctx, targetOf(input), input.Query, input.TopK)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Hits:  make([]HitOutput, len(hits)),
		Count: len(hits),
	}
	for i, h := range hits {
		output.Hits[i] = HitOutput{
			Score:   h.Score,
			Idx:     h.Idx,
			Path:    h.Path,
			Snippet: h.Snippet,
		}
	}
	return nil, output, nil
}

func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, AskOutput, error) {
	answer, err := s.ragService.Ask(ctx, targetOf(input), input.Query, input.TopK)
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Text:      answer.Text,
		Citations: make([]CitationOutput, len(answer.Citations)),
	}
	for i, c := range answer.Citations {
		output.Citations[i] = CitationOutput{
			Tag:     c.Tag,
			Idx:     c.Idx,
			Path:    c.Path,
			Excerpt: c.Excerpt,
			Score:   c.Score,
		}
	}
	return nil, output, nil
}

func targetOf(input SearchInput) rag.Target {
	return rag.Target{
		DocumentID:   input.DocumentID,
		DocVersionID: input.DocVersionID,
		Slug:         input.Slug,
	}
}
