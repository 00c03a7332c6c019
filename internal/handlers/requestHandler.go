package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"docvoice/internal/adapter"
	"docvoice/internal/adapter/utils"
	"docvoice/internal/api"
	"docvoice/internal/config"
	"docvoice/internal/rag"
	"docvoice/internal/rag/ingest"
	"docvoice/pkg/logx"
)

// Handler carries the injected orchestrators every endpoint dispatches to.
type Handler struct {
	ingestor   *ingest.Orchestrator
	ragService rag.Service
	surfaces   adapter.SurfaceLookup
	logger     *logx.Logger
}

func New(ingestor *ingest.Orchestrator, ragService rag.Service, surfaces adapter.SurfaceLookup) *Handler {
	return &Handler{
		ingestor:   ingestor,
		ragService: ragService,
		surfaces:   surfaces,
		logger:     logx.New("handlers"),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// PostIngest godoc
// @Summary      Ingest an uploaded document
// @Description  Downloads the object, extracts and chunks its text, embeds the chunks and indexes them under a fresh document version.
// @Tags         Ingestion
// @Accept       json
// @Produce      json
// @Param        request  body      api.IngestRequest  true  "Object path plus optional identity overrides"
// @Success      200      {object}  api.IngestResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /ingest [post]
func (h *Handler) PostIngest(w http.ResponseWriter, r *http.Request) {
	log := h.logger.WithTrace(r.Context(), config.TraceIDKey)

	var req api.IngestRequest
	if !decodeBody(w, r, log, &req) {
		return
	}

	result, err := h.ingestor.Run(r.Context(), ingest.Input{
		Title:        req.Title,
		Slug:         req.Slug,
		ObjectPath:   req.ObjectPath,
		DocumentID:   req.DocumentID,
		DocVersionID: req.DocVersionID,
	})
	if err != nil {
		writePipelineError(w, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToIngestResponse(result))
}

// PostQuery godoc
// @Summary      Retrieve ranked snippets
// @Description  Embeds the question and returns score-ranked chunk matches from one document version, no language-model step.
// @Tags         Retrieval
// @Accept       json
// @Produce      json
// @Param        request  body      api.QueryRequest  true  "Question plus document target"
// @Success      200      {object}  api.QueryResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Router       /query [post]
func (h *Handler) PostQuery(w http.ResponseWriter, r *http.Request) {
	log := h.logger.WithTrace(r.Context(), config.TraceIDKey)

	var req api.QueryRequest
	if !decodeBody(w, r, log, &req) {
		return
	}

	hits, err := h.ragService.Retrieve(r.Context(), targetOf(req), req.QuestionText(), req.TopK)
	if err != nil {
		writePipelineError(w, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToQueryResponse(hits))
}

// PostAnswer godoc
// @Summary      Answer a question with citations
// @Description  Retrieves grounding context from one document version and produces a single cited completion.
// @Tags         Retrieval
// @Accept       json
// @Produce      json
// @Param        request  body      api.QueryRequest  true  "Question plus document target"
// @Success      200      {object}  api.AnswerResponse
// @Failure      401      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Router       /answer [post]
func (h *Handler) PostAnswer(w http.ResponseWriter, r *http.Request) {
	log := h.logger.WithTrace(r.Context(), config.TraceIDKey)

	var req api.QueryRequest
	if !decodeBody(w, r, log, &req) {
		return
	}

	answer, err := h.ragService.Ask(r.Context(), targetOf(req), req.QuestionText(), req.TopK)
	if err != nil {
		writePipelineError(w, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToAnswerResponse(answer))
}

// GetDocument godoc
// @Summary      Resolve a public slug
// @Description  Returns the share surface a slug points at, including the live version id.
// @Tags         Documents
// @Produce      json
// @Param        slug  path      string  true  "Page slug"
// @Success      200   {object}  api.DocumentResponse
// @Failure      404   {object}  api.ErrorResponse
// @Router       /documents/{slug} [get]
func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	log := h.logger.WithTrace(r.Context(), config.TraceIDKey)

	slug := strings.TrimSpace(utils.GetChiURLParam(r, "slug"))
	if slug == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	surface, found, err := h.surfaces.GetShareSurfaceBySlug(r.Context(), slug)
	if err != nil {
		log.Error("slug lookup failed", "slug", slug, "error", err.Error())
		WriteErrorResponse(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	if !found {
		WriteErrorResponse(w, http.StatusNotFound, "Unknown slug")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToDocumentResponse(surface))
}

func targetOf(req api.QueryRequest) rag.Target {
	return rag.Target{
		DocumentID:   req.DocumentID,
		DocVersionID: req.DocVersionID,
		Slug:         req.Slug,
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, log *logx.Logger, dst interface{}) bool {
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			log.Error("couldn't close request body", "error", err.Error())
		}
	}(r.Body)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.Warn("bad request body", "error", err.Error())
		WriteErrorResponse(w, http.StatusBadRequest, "Bad Request")
		return false
	}
	return true
}
