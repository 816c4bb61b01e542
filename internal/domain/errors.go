package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest signals malformed recommendation parameters.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrCatalogUnavailable signals that no catalog snapshot could be loaded.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	// ErrChannelUnavailable signals a retrieval channel failure.
	ErrChannelUnavailable = errors.New("channel unavailable")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
)

// InvalidRequestError wraps ErrInvalidRequest with the offending field.
type InvalidRequestError struct {
	Field  string
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidRequest.Error(), e.Field, e.Reason)
}

func (e *InvalidRequestError) Unwrap() error { return ErrInvalidRequest }

// NewInvalidRequest creates a validation error for a single request field.
func NewInvalidRequest(field, reason string) error {
	return &InvalidRequestError{Field: field, Reason: reason}
}
