package ingest

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"docvoice/internal/config"
	"docvoice/internal/domain/docmodel"
	"docvoice/internal/extract"
	"docvoice/internal/metrics"
	"docvoice/internal/pipeline"
	"docvoice/internal/rag/embedding"
	"docvoice/internal/rag/vectorindex"
	"docvoice/internal/storage"
	"docvoice/internal/textproc"
	"docvoice/pkg/logx"
	"github.com/google/uuid"
)

// SlugInvalidator drops a cached slug binding after the live version moves.
type SlugInvalidator interface {
	Invalidate(ctx context.Context, slug string)
}

// Input is the caller-facing ingest request. ObjectPath is the only
// required field; ids and slug are generated when absent.
type Input struct {
	Title        string
	Slug         string
	ObjectPath   string
	DocumentID   string
	DocVersionID string
}

// Result reports what a successful run produced.
type Result struct {
	DocumentID   string
	DocVersionID string
	PageSlug     string
	PageURL      string
	Chunks       int
}

// Orchestrator runs the ingest pipeline: download, extract, sanitize,
// chunk, embed, index, persist, finalize. All external clients are
// injected; the orchestrator holds no mutable state between runs.
type Orchestrator struct {
	downloader storage.Downloader
	store      docmodel.Store
	index      vectorindex.Index
	embedder   *embedding.ChunkEmbedder
	cache      SlugInvalidator
	settings   config.Settings
	logger     *logx.Logger
}

func NewOrchestrator(
	downloader storage.Downloader,
	store docmodel.Store,
	index vectorindex.Index,
	embedder *embedding.ChunkEmbedder,
	cache SlugInvalidator,
	settings config.Settings,
) *Orchestrator {
	return &Orchestrator{
		downloader: downloader,
		store:      store,
		index:      index,
		embedder:   embedder,
		cache:      cache,
		settings:   settings,
		logger:     logx.New("ingest"),
	}
}

// Run drives one ingest request through every stage. Relational
// bookkeeping failures are warnings; download, extraction, chunking,
// embedding and indexing failures are fatal and mark the version as
// errored before returning.
func (o *Orchestrator) Run(ctx context.Context, in Input) (Result, error) {
	log := o.logger.WithTrace(ctx, config.TraceIDKey)

	if strings.TrimSpace(in.ObjectPath) == "" {
		return Result{}, pipeline.BadInput("objectPath is required")
	}
	if missing := o.settings.MissingForIngest(); len(missing) > 0 {
		return Result{}, pipeline.Config("missing configuration: %s", strings.Join(missing, ", "))
	}

	docID := in.DocumentID
	if docID == "" {
		docID = uuid.NewString()
	}
	verID := in.DocVersionID
	if verID == "" {
		verID = uuid.NewString()
	}
	slug := in.Slug
	if slug == "" {
		slug = deriveSlug(in.Title, in.ObjectPath)
	}
	pageURL := o.settings.PublicBaseURL + "/d/" + slug
	log = log.With("documentId", docID, "docVersionId", verID)

	// Relational rows first, all best-effort. Vectors are the
	// authoritative side effect; lagging bookkeeping is tolerated.
	stageStart := time.Now()
	o.warnOnErr(log, "upsert document", o.store.UpsertDocument(ctx, docmodel.Document{
		ID:    docID,
		Title: titleOrDefault(in.Title, in.ObjectPath),
		Slug:  slug,
	}))
	o.warnOnErr(log, "upsert version", o.store.UpsertVersion(ctx, docmodel.DocumentVersion{
		ID:         verID,
		DocumentID: docID,
		Status:     docmodel.StatusProcessing,
		SourceURI:  in.ObjectPath,
		Version:    1,
	}))
	o.warnOnErr(log, "upsert share surface", o.store.UpsertShareSurface(ctx, docmodel.ShareSurface{
		DocumentID:    docID,
		LiveVersionID: verID,
		PageSlug:      slug,
		PageURL:       pageURL,
		Mode:          "page",
	}))
	o.observeStage(log, "rows_initialized", stageStart)

	stageStart = time.Now()
	data, err := o.downloader.Download(ctx, in.ObjectPath)
	if err != nil {
		return Result{}, o.failRun(ctx, log, docID, verID, "download", err)
	}
	o.observeStage(log, "downloaded", stageStart, "bytes", len(data))

	stageStart = time.Now()
	text, err := extract.Text(data, extension(in.ObjectPath))
	if err != nil {
		return Result{}, o.failRun(ctx, log, docID, verID, "extract", err)
	}
	if strings.TrimSpace(text) == "" {
		return Result{}, o.failRun(ctx, log, docID, verID, "extract", fmt.Errorf("no text extracted from %q", in.ObjectPath))
	}
	o.observeStage(log, "extracted", stageStart, "chars", len(text))

	stageStart = time.Now()
	clean := textproc.Sanitize(text)
	chunks := textproc.SplitChunks(clean, config.MaxChunkChars, config.ChunkOverlapChars)
	if len(chunks) == 0 {
		return Result{}, o.failRun(ctx, log, docID, verID, "chunk", fmt.Errorf("no chunks produced"))
	}
	o.observeStage(log, "chunked", stageStart, "chunks", len(chunks))

	stageStart = time.Now()
	vectors, err := o.embedder.EmbedChunks(ctx, chunks)
	if err != nil {
		return Result{}, o.failRun(ctx, log, docID, verID, "embed", err)
	}
	for _, v := range vectors {
		if len(v.Values) != o.settings.IndexDimension {
			return Result{}, o.failRun(ctx, log, docID, verID, "embed",
				fmt.Errorf("vector for chunk %d has dimension %d, index expects %d", v.Idx, len(v.Values), o.settings.IndexDimension))
		}
	}
	o.observeStage(log, "embedded", stageStart, "vectors", len(vectors))

	stageStart = time.Now()
	if err := o.indexVectors(ctx, log, docID, verID, vectors); err != nil {
		return Result{}, o.failRun(ctx, log, docID, verID, "index", err)
	}
	o.observeStage(log, "indexed", stageStart, "records", len(vectors))

	stageStart = time.Now()
	o.warnOnErr(log, "persist sections", o.store.ReplaceSections(ctx, verID, sectionsFrom(verID, chunks)))
	o.observeStage(log, "sections_persisted", stageStart)

	stageStart = time.Now()
	o.warnOnErr(log, "finalize version", o.store.SetVersionStatus(ctx, verID, docmodel.StatusReady))
	o.warnOnErr(log, "finalize job", o.store.UpsertJob(ctx, docmodel.JobRecord{
		DocumentID:   docID,
		DocVersionID: verID,
		Type:         docmodel.JobTypeIngest,
		Status:       docmodel.JobSucceeded,
	}))
	if o.cache != nil {
		o.cache.Invalidate(ctx, slug)
	}
	o.observeStage(log, "finalized", stageStart)

	metrics.CountIngestRun("succeeded")
	return Result{
		DocumentID:   docID,
		DocVersionID: verID,
		PageSlug:     slug,
		PageURL:      pageURL,
		Chunks:       len(chunks),
	}, nil
}

// indexVectors clears the version's namespace best-effort, then upserts
// in batches. Deterministic record ids make re-ingest an overwrite even
// when clearing fails.
func (o *Orchestrator) indexVectors(ctx context.Context, log *logx.Logger, docID, verID string, vectors []embedding.ChunkVector) error {
	ns := vectorindex.Namespace(docID, verID)
	if err := o.index.ClearNamespace(ctx, ns); err != nil {
		log.Warn("clearing namespace failed, proceeding with upsert", "namespace", ns, "error", err.Error())
	}

	records := make([]vectorindex.Record, len(vectors))
	for i, v := range vectors {
		records[i] = vectorindex.Record{
			ID:     vectorindex.RecordID(docID, v.Idx),
			Values: v.Values,
			Metadata: vectorindex.Metadata{
				DocumentID:   docID,
				DocVersionID: verID,
				Idx:          v.Idx,
				Path:         textproc.RootPath,
				TextSnippet:  v.Snippet,
			},
		}
	}

	for start := 0; start < len(records); start += config.UpsertBatchSize {
		end := start + config.UpsertBatchSize
		if end > len(records) {
			end = len(records)
		}
		if err := o.index.UpsertBatch(ctx, ns, records[start:end]); err != nil {
			return fmt.Errorf("upserting records %d-%d: %w", start, end-1, err)
		}
	}
	return nil
}

// failRun marks the version errored and records a failed job. Bookkeeping
// errors here are swallowed so the original failure reaches the caller.
func (o *Orchestrator) failRun(ctx context.Context, log *logx.Logger, docID, verID, stage string, cause error) error {
	log.Error("ingest stage failed", "stage", stage, "error", cause.Error())

	if err := o.store.SetVersionStatus(ctx, verID, docmodel.StatusError); err != nil {
		log.Warn("marking version errored failed", "error", err.Error())
	}
	if err := o.store.UpsertJob(ctx, docmodel.JobRecord{
		DocumentID:   docID,
		DocVersionID: verID,
		Type:         docmodel.JobTypeIngest,
		Status:       docmodel.JobFailed,
		Error:        cause.Error(),
	}); err != nil {
		log.Warn("recording failed job failed", "error", err.Error())
	}

	metrics.CountIngestRun("failed")
	return pipeline.Fatal(stage, cause)
}

func (o *Orchestrator) warnOnErr(log *logx.Logger, what string, err error) {
	if err != nil {
		log.Warn(what+" failed", "error", err.Error())
	}
}

func (o *Orchestrator) observeStage(log *logx.Logger, stage string, start time.Time, kv ...any) {
	elapsed := time.Since(start)
	metrics.ObserveStage(stage, elapsed)
	args := append([]any{"stage", stage, "elapsedMs", elapsed.Milliseconds()}, kv...)
	log.Info("stage complete", args...)
}

func sectionsFrom(verID string, chunks []textproc.Chunk) []docmodel.Section {
	sections := make([]docmodel.Section, len(chunks))
	for i, c := range chunks {
		sections[i] = docmodel.Section{
			DocVersionID: verID,
			Idx:          c.Idx,
			Path:         c.Path,
			Heading:      c.Heading,
			Body:         c.Body,
		}
	}
	return sections
}

func titleOrDefault(title, objectPath string) string {
	if strings.TrimSpace(title) != "" {
		return title
	}
	return baseName(objectPath)
}

func extension(objectPath string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(objectPath), "."))
}

func baseName(objectPath string) string {
	base := path.Base(objectPath)
	return strings.TrimSuffix(base, path.Ext(base))
}

// deriveSlug builds a URL-safe slug from the title or filename plus a
// short random suffix so two documents with the same title never collide.
func deriveSlug(title, objectPath string) string {
	base := title
	if strings.TrimSpace(base) == "" {
		base = baseName(objectPath)
	}

	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(base) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	slug := strings.Trim(b.String(), "-")
	suffix := uuid.NewString()[:8]
	if slug == "" {
		return suffix
	}
	return slug + "-" + suffix
}
