package docmodel

import (
	"context"
	"time"
)

type VersionStatus string

const (
	StatusProcessing VersionStatus = "processing"
	StatusReady      VersionStatus = "ready"
	StatusError      VersionStatus = "error"
)

type JobStatus string

const (
	JobSucceeded JobStatus = "succeeded"
	JobFailed    JobStatus = "failed"
)

// JobTypeIngest is the only job type this subsystem writes today.
const JobTypeIngest = "ingest"

// Document is the stable identity of a logical source document.
type Document struct {
	ID    string `gorm:"primaryKey;size:64" json:"id"`
	Title string `gorm:"size:512" json:"title"`
	Slug  string `gorm:"size:256;uniqueIndex" json:"slug"`
}

func (Document) TableName() string { return "documents" }

// DocumentVersion is one ingested revision of a document's source content.
type DocumentVersion struct {
	ID         string        `gorm:"primaryKey;size:64" json:"id"`
	DocumentID string        `gorm:"size:64;index" json:"document_id"`
	Status     VersionStatus `gorm:"size:16" json:"status"`
	SourceURI  string        `gorm:"size:1024" json:"source_uri"`
	Version    int           `json:"version"`
}

func (DocumentVersion) TableName() string { return "doc_versions" }

// ShareSurface binds a public slug to a document and its live version.
// At most one row per document id.
type ShareSurface struct {
	DocumentID    string `gorm:"primaryKey;size:64" json:"document_id"`
	LiveVersionID string `gorm:"size:64" json:"live_version_id"`
	PageSlug      string `gorm:"size:256;uniqueIndex" json:"page_slug"`
	PageURL       string `gorm:"size:1024" json:"page_url"`
	Mode          string `gorm:"size:32" json:"mode"`
	Private       bool   `json:"private"`
}

func (ShareSurface) TableName() string { return "share_surfaces" }

// Section is the persisted copy of one chunk, insert-only per version.
type Section struct {
	ID           uint   `gorm:"primaryKey" json:"-"`
	DocVersionID string `gorm:"size:64;index" json:"doc_version_id"`
	Idx          int    `json:"idx"`
	Path         string `gorm:"size:256" json:"path"`
	Heading      string `gorm:"size:512" json:"heading"`
	Body         string `gorm:"type:text" json:"body"`
}

func (Section) TableName() string { return "doc_sections" }

// JobRecord is the ingest job status ledger, keyed by
// (document id, version id, job type). Observability only.
type JobRecord struct {
	DocumentID   string    `gorm:"primaryKey;size:64" json:"document_id"`
	DocVersionID string    `gorm:"primaryKey;size:64" json:"doc_version_id"`
	Type         string    `gorm:"primaryKey;size:32" json:"type"`
	Status       JobStatus `gorm:"size:16" json:"status"`
	Error        string    `gorm:"size:2048" json:"error"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (JobRecord) TableName() string { return "jobs" }

// Store is the relational system of record consumed by both orchestrators.
type Store interface {
	UpsertDocument(ctx context.Context, doc Document) error
	UpsertVersion(ctx context.Context, version DocumentVersion) error
	SetVersionStatus(ctx context.Context, versionID string, status VersionStatus) error
	UpsertShareSurface(ctx context.Context, surface ShareSurface) error
	GetShareSurfaceBySlug(ctx context.Context, slug string) (ShareSurface, bool, error)
	ReplaceSections(ctx context.Context, versionID string, sections []Section) error
	UpsertJob(ctx context.Context, job JobRecord) error
}
