// Package search translates read operations into engine queries and
// reshapes entries into hit objects.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/openmart/prodsearch/internal/catalog"
	"github.com/openmart/prodsearch/internal/db"
	"github.com/openmart/prodsearch/internal/domain"
	productrepo "github.com/openmart/prodsearch/internal/repository/product"
)

// Repo executes catalog searches against the store.
type Repo struct {
	store db.Searcher
	cfg   catalog.Config
}

// New creates a Repo.
func New(store db.Searcher, cfg catalog.Config) *Repo {
	return &Repo{store: store, cfg: cfg}
}

// SearchByName runs a full-text match on name, with an optional exact
// main_category filter, ordered by ratings descending. An empty category
// adds no filter clause at all.
func (r *Repo) SearchByName(ctx context.Context, text, mainCategory string, size int) ([]domain.Hit, error) {
	q := &db.TextQuery{
		IndexName: r.cfg.IndexName,
		Field:     "name",
		Query:     text,
		Filters:   categoryFilter(mainCategory),
		SortBy:    "ratings",
		SortDesc:  true,
		Limit:     size,
	}

	res, err := r.store.SearchText(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSearchBackend, err)
	}
	return r.toHits(res), nil
}

// SearchSimilar runs KNN over the embedding field. Scores arrive already
// shifted to cosine_similarity + 1.0 by the driver.
func (r *Repo) SearchSimilar(ctx context.Context, vector []float32, k int) ([]domain.Hit, error) {
	q := &db.KNNQuery{
		IndexName: r.cfg.IndexName,
		Vector:    vector,
		K:         k,
	}

	res, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSearchBackend, err)
	}
	return r.toHits(res), nil
}

// SearchTop lists documents by ratings descending, with an optional exact
// main_category filter.
func (r *Repo) SearchTop(ctx context.Context, mainCategory string, limit int) ([]domain.Hit, error) {
	q := &db.ListQuery{
		IndexName: r.cfg.IndexName,
		Filters:   categoryFilter(mainCategory),
		SortBy:    "ratings",
		SortDesc:  true,
		Limit:     limit,
	}

	res, err := r.store.SearchList(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSearchBackend, err)
	}
	return r.toHits(res), nil
}

func categoryFilter(mainCategory string) []db.TagFilter {
	if mainCategory == "" {
		return nil
	}
	return []db.TagFilter{{Field: "main_category", Value: mainCategory}}
}

func (r *Repo) toHits(res *db.SearchResult) []domain.Hit {
	hits := make([]domain.Hit, 0, len(res.Entries))
	for _, e := range res.Entries {
		hits = append(hits, domain.Hit{
			ID:     strings.TrimPrefix(e.Key, r.cfg.DocPrefix()),
			Score:  e.Score,
			Source: productrepo.ParseHashFields(e.Fields),
		})
	}
	return hits
}
