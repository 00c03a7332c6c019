// Package vectorindex defines the contract the pipeline has with the
// external vector store, including the per-document-version namespace
// discipline that gives re-ingestion its replace semantics.
package vectorindex

import (
	"context"
	"fmt"
)

// Metadata travels with every record so retrieval can cite its source.
type Metadata struct {
	DocumentID   string
	DocVersionID string
	Idx          int
	Path         string
	TextSnippet  string
}

// Record is one embedded chunk ready for upsert. ID is the logical
// identifier `<document_id>-<idx>`; it is deterministic so re-ingesting the
// same version overwrites rather than duplicates.
type Record struct {
	ID       string
	Values   []float32
	Metadata Metadata
}

// Match is a scored query hit.
type Match struct {
	Score    float32
	Metadata Metadata
}

// Index isolates vectors per (document, version) namespace.
type Index interface {
	// ClearNamespace removes every record in the namespace. Callers treat
	// failure as a warning: deterministic record ids make the following
	// upsert overwrite colliding records anyway.
	ClearNamespace(ctx context.Context, namespace string) error
	UpsertBatch(ctx context.Context, namespace string, records []Record) error
	Query(ctx context.Context, namespace string, vector []float32, topK int) ([]Match, error)
}

// Namespace derives the isolation key for one document version.
func Namespace(documentID, versionID string) string {
	return fmt.Sprintf("doc:%s:v:%s", documentID, versionID)
}

// RecordID derives the deterministic logical id for one chunk.
func RecordID(documentID string, idx int) string {
	return fmt.Sprintf("%s-%d", documentID, idx)
}
