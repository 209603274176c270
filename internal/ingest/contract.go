package ingest

import (
	"context"

	"github.com/openmart/prodsearch/internal/domain"
)

// ProductWriter is the storage contract for bulk catalog writes.
type ProductWriter interface {
	UpsertBatch(ctx context.Context, docs []domain.IdentifiedProduct) error
}

// EmbeddingWriter applies a partial update that sets only a document's
// embedding field, creating the document if absent.
type EmbeddingWriter interface {
	SetEmbedding(ctx context.Context, id string, vec []float32) error
}
