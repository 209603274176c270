package domain

import "context"

// EmbeddingResult is a computed embedding plus provider token usage.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// Embedder vectorizes text into fixed-dimension embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// HealthChecker is optionally implemented by embedders that can probe
// provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
