package domain

import "errors"

var (
	// ErrInvalidArgument signals a client input error, reported before any
	// engine or model call.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound signals a missing document.
	ErrNotFound = errors.New("not found")
	// ErrSearchBackend signals a search engine failure.
	ErrSearchBackend = errors.New("search backend error")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
)

// InvalidArgument creates a client input error whose message is safe to
// return verbatim in a 4xx payload.
func InvalidArgument(msg string) error {
	return &invalidArgumentError{msg: msg}
}

type invalidArgumentError struct {
	msg string
}

func (e *invalidArgumentError) Error() string { return e.msg }
func (e *invalidArgumentError) Unwrap() error { return ErrInvalidArgument }
