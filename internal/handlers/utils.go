package handlers

import (
	"encoding/json"
	"net/http"

	"docvoice/internal/api"
	"docvoice/internal/pipeline"
	"docvoice/pkg/logx"
)

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// status line already went out, nothing left to salvage
		logx.New("handlers").Error("error encoding response", "error", err.Error())
	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, message string) {
	writeJsonResponse(w, httpCode, api.ErrorResponse{Error: message})
}

// writePipelineError maps the error taxonomy onto status codes. The error
// text is user-facing for every class; internals stay in the server log.
func writePipelineError(w http.ResponseWriter, err error) {
	WriteErrorResponse(w, pipeline.HTTPStatus(err), err.Error())
}
