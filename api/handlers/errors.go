// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to appropriate HTTP responses

package handlers

import (
	"net/http"

	"kindle-press-api/api/dto/responses"
	"kindle-press-api/core/errors"
)

// writeError maps domain errors to HTTP status codes and writes the
// JSON error body.
func writeError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}

	status := http.StatusInternalServerError
	label := "internal server error"

	switch {
	case errors.IsValidation(err):
		status = http.StatusBadRequest
		label = "invalid request"
	case errors.IsDocumentFetch(err):
		// The upstream document could not be fetched; our service is fine.
		status = http.StatusBadGateway
		label = "document fetch failed"
	case errors.IsExtraction(err):
		status = http.StatusUnprocessableEntity
		label = "content extraction failed"
	}

	writeJSON(w, status, responses.ErrorResponse{
		Error:   label,
		Message: err.Error(),
	})
}
