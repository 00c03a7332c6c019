// Package pipeline defines the shared error taxonomy of the ingest and
// retrieval orchestrators. Only bad input, not-found, and fatal pipeline
// failures ever reach a caller; best-effort bookkeeping failures are logged
// and swallowed at the stage that produced them.
package pipeline

import (
	"errors"
	"fmt"
	"net/http"
)

// BadInputError rejects a request before any store mutation.
type BadInputError struct {
	Msg string
}

func (e *BadInputError) Error() string { return e.Msg }

// NotFoundError reports an unknown document reference (typically a slug).
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

// ConfigError reports missing required configuration, surfaced before any
// external call is made.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return e.Msg }

// FatalError aborts the pipeline at a named stage. The version is marked
// errored and the job ledger records the failure before this propagates.
type FatalError struct {
	Stage string
	Err   error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *FatalError) Unwrap() error { return e.Err }

func BadInput(format string, args ...any) error {
	return &BadInputError{Msg: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) error {
	return &NotFoundError{Msg: fmt.Sprintf(format, args...)}
}

func Config(format string, args ...any) error {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}

func Fatal(stage string, err error) error {
	return &FatalError{Stage: stage, Err: err}
}

// HTTPStatus maps a pipeline error to the status code the API surfaces.
func HTTPStatus(err error) int {
	var badInput *BadInputError
	var notFound *NotFoundError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &badInput):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
