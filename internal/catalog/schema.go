// Package catalog owns the product index schema and its lifecycle.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/openmart/prodsearch/internal/db"
	"github.com/openmart/prodsearch/internal/domain"
)

// Config describes the catalog's index placement and HNSW tuning.
type Config struct {
	IndexName       string
	KeyPrefix       string
	HNSWM           int
	HNSWEFConstruct int
}

// DocPrefix returns the key prefix under which product hashes live.
func (c Config) DocPrefix() string {
	return c.KeyPrefix + "products:"
}

// DocKey returns the storage key for a product ID.
func (c Config) DocKey(id string) string {
	return c.DocPrefix() + id
}

// IndexDefinition builds the FT schema for product documents: analyzed
// name, exact-match categoricals and references, numeric metrics with
// ratings sortable, and the fixed-width cosine vector field.
func IndexDefinition(cfg Config) *db.IndexDefinition {
	return db.NewIndex(cfg.IndexName).
		Prefix(cfg.DocPrefix()).
		Text("name").
		Tag("main_category").
		Tag("sub_category").
		Tag("image").
		Tag("link").
		NumericSortable("ratings").
		Numeric("no_of_ratings").
		Numeric("discount_price").
		Numeric("actual_price").
		VectorHNSW("embedding", domain.EmbeddingDim, db.DistanceCosine, cfg.HNSWM, cfg.HNSWEFConstruct).
		MustBuild()
}

// Manager drives index lifecycle against the store.
type Manager struct {
	store db.IndexManager
	cfg   Config
}

// NewManager creates a Manager.
func NewManager(store db.IndexManager, cfg Config) *Manager {
	return &Manager{store: store, cfg: cfg}
}

// Recreate drops the index and its documents if present, then creates it
// from the static schema. This loses all data; it exists for reproducible
// setup of the offline pipeline.
func (m *Manager) Recreate(ctx context.Context) error {
	exists, err := m.store.IndexExists(ctx, m.cfg.IndexName)
	if err != nil {
		return fmt.Errorf("probe index: %w", err)
	}
	if exists {
		if err := m.store.DropIndex(ctx, m.cfg.IndexName, true); err != nil {
			return fmt.Errorf("drop index: %w", err)
		}
	}
	if err := m.store.CreateIndex(ctx, IndexDefinition(m.cfg)); err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

// Ensure creates the index if it does not exist yet.
func (m *Manager) Ensure(ctx context.Context) error {
	err := m.store.CreateIndex(ctx, IndexDefinition(m.cfg))
	if err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}
