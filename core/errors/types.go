// ABOUTME: Custom error types for the core business logic
// ABOUTME: Provides structured errors for the document-level failure tier

package errors

import (
	"errors"
	"fmt"
)

// DocumentFetchError indicates the top-level page fetch failed, either at
// the transport level or with a non-2xx status. It aborts the whole
// pipeline run, unlike individual image failures.
type DocumentFetchError struct {
	URL        string
	StatusCode int
	Err        error
}

// Error implements the error interface
func (e *DocumentFetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to fetch document %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("failed to fetch document %s: status %d", e.URL, e.StatusCode)
}

// Unwrap returns the underlying cause, if any
func (e *DocumentFetchError) Unwrap() error {
	return e.Err
}

// ExtractionError indicates the readability pass could not produce a
// readable document from the input HTML.
type ExtractionError struct {
	URL string
	Err error
}

// Error implements the error interface
func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract readable content from %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying cause
func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// IsDocumentFetch checks if an error is a DocumentFetchError
func IsDocumentFetch(err error) bool {
	var fetchErr *DocumentFetchError
	return errors.As(err, &fetchErr)
}

// IsExtraction checks if an error is an ExtractionError
func IsExtraction(err error) bool {
	var extractErr *ExtractionError
	return errors.As(err, &extractErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
