package search

import (
	"context"

	"github.com/openmart/prodsearch/internal/domain"
)

// Repository defines the storage contract for the read operations.
type Repository interface {
	SearchByName(ctx context.Context, text, mainCategory string, size int) ([]domain.Hit, error)
	SearchSimilar(ctx context.Context, vector []float32, k int) ([]domain.Hit, error)
	SearchTop(ctx context.Context, mainCategory string, limit int) ([]domain.Hit, error)
}

// Embedder vectorizes query text. It must be the same model used at
// backfill time for scores to be meaningful.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
