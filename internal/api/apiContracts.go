package api

// requests---------------------

type IngestRequest struct {
	Title        string `json:"title,omitempty"`
	Slug         string `json:"slug,omitempty"`
	ObjectPath   string `json:"objectPath" validate:"required"`
	DocumentID   string `json:"document_id,omitempty"`
	DocVersionID string `json:"doc_version_id,omitempty"`
}

// QueryRequest targets one document version, either by explicit ids or by
// public slug. The question may arrive under any of three aliases.
type QueryRequest struct {
	Q            string `json:"q,omitempty"`
	Question     string `json:"question,omitempty"`
	Prompt       string `json:"prompt,omitempty"`
	TopK         int    `json:"topK,omitempty"`
	DocumentID   string `json:"document_id,omitempty"`
	DocVersionID string `json:"doc_version_id,omitempty"`
	Slug         string `json:"slug,omitempty"`
}

// QuestionText returns the first non-empty question alias.
func (r QueryRequest) QuestionText() string {
	if r.Q != "" {
		return r.Q
	}
	if r.Question != "" {
		return r.Question
	}
	return r.Prompt
}

// responses--------------------

type IngestResponse struct {
	OK           bool   `json:"ok"`
	DocumentID   string `json:"document_id"`
	DocVersionID string `json:"doc_version_id"`
	PageSlug     string `json:"page_slug"`
	PageURL      string `json:"page_url"`
	Chunks       int    `json:"chunks"`
}

type Hit struct {
	Score   float32 `json:"score"`
	Idx     int     `json:"idx"`
	Path    string  `json:"path"`
	Snippet string  `json:"snippet"`
}

type QueryResponse struct {
	OK   bool  `json:"ok"`
	Hits []Hit `json:"hits"`
}

type Citation struct {
	Tag     string  `json:"tag"`
	Idx     int     `json:"idx"`
	Path    string  `json:"path"`
	Excerpt string  `json:"excerpt"`
	Score   float32 `json:"score"`
}

type AnswerResponse struct {
	OK        bool       `json:"ok"`
	Text      string     `json:"text"`
	Citations []Citation `json:"citations"`
}

type DocumentResponse struct {
	OK            bool   `json:"ok"`
	DocumentID    string `json:"document_id"`
	LiveVersionID string `json:"live_version_id"`
	PageSlug      string `json:"page_slug"`
	PageURL       string `json:"page_url"`
	Mode          string `json:"mode"`
	Private       bool   `json:"private"`
}

type ErrorResponse struct {
	Error string `json:"error" example:"Unknown slug"`
}
