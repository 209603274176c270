// Package product maps catalog documents onto the store's flat hashes.
package product

import (
	"context"
	"fmt"
	"strings"

	"github.com/openmart/prodsearch/internal/catalog"
	"github.com/openmart/prodsearch/internal/db"
	"github.com/openmart/prodsearch/internal/domain"
)

// Repo is the hash-backed product repository.
type Repo struct {
	store db.HashStore
	cfg   catalog.Config
}

// New creates a Repo.
func New(store db.HashStore, cfg catalog.Config) *Repo {
	return &Repo{store: store, cfg: cfg}
}

// UpsertBatch writes documents in one pipelined round trip.
func (r *Repo) UpsertBatch(ctx context.Context, docs []domain.IdentifiedProduct) error {
	if len(docs) == 0 {
		return nil
	}
	items := make([]db.HashSetItem, len(docs))
	for i := range docs {
		items[i] = db.HashSetItem{
			Key:    r.cfg.DocKey(docs[i].ID),
			Fields: buildHashFields(&docs[i].Product),
		}
	}
	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSearchBackend, err)
	}
	return nil
}

// SetEmbedding overwrites only the embedding field of a document. HSET
// merges into the existing hash, or creates it when absent (upsert).
func (r *Repo) SetEmbedding(ctx context.Context, id string, vec []float32) error {
	if len(vec) != domain.EmbeddingDim {
		return fmt.Errorf("%w: embedding must have %d components, got %d",
			domain.ErrInvalidArgument, domain.EmbeddingDim, len(vec))
	}
	fields := map[string]string{fieldEmbedding: VectorToBytes(vec)}
	if err := r.store.HSet(ctx, r.cfg.DocKey(id), fields); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSearchBackend, err)
	}
	return nil
}

// Get fetches one document by ID.
func (r *Repo) Get(ctx context.Context, id string) (domain.Product, error) {
	m, err := r.store.HGetAll(ctx, r.cfg.DocKey(id))
	if err != nil {
		return domain.Product{}, fmt.Errorf("%w: %w", domain.ErrSearchBackend, err)
	}
	if len(m) == 0 {
		return domain.Product{}, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	return ParseHashFields(m), nil
}

// IDFromKey strips the storage prefix off a document key.
func (r *Repo) IDFromKey(key string) string {
	return strings.TrimPrefix(key, r.cfg.DocPrefix())
}
