// Package search implements the three read operations of the query
// service. Each call is a single stateless transaction: validate input,
// build a query, forward it, reshape the hits.
package search

import (
	"context"
	"fmt"

	"github.com/openmart/prodsearch/internal/domain"
)

// Config holds result-size settings.
type Config struct {
	SearchSize      int // hits returned by SearchByName
	SimilarTopK     int // hits returned by SimilarProducts
	DefaultTopLimit int // TopProducts limit when the caller passes none
}

// Service handles catalog read queries.
type Service struct {
	repo  Repository
	embed Embedder
	cfg   Config
}

// New creates a search service.
func New(repo Repository, embed Embedder, cfg Config) *Service {
	if cfg.SearchSize <= 0 {
		cfg.SearchSize = 10
	}
	if cfg.SimilarTopK <= 0 {
		cfg.SimilarTopK = 5
	}
	if cfg.DefaultTopLimit <= 0 {
		cfg.DefaultTopLimit = 10
	}
	return &Service{repo: repo, embed: embed, cfg: cfg}
}

// SearchByName matches searchBox against product names, optionally
// filtered to an exact main category, ordered by ratings descending.
// Relevance score plays no role in the final order.
func (s *Service) SearchByName(ctx context.Context, searchBox, mainCategory string) ([]domain.Hit, error) {
	hits, err := s.repo.SearchByName(ctx, searchBox, mainCategory, s.cfg.SearchSize)
	if err != nil {
		return nil, fmt.Errorf("search by name: %w", err)
	}
	return hits, nil
}

// SimilarProducts embeds productName and returns the top-K documents by
// cosine_similarity + 1.0. There is no minimum-similarity threshold; an
// unrelated query still yields K results.
func (s *Service) SimilarProducts(ctx context.Context, productName string) ([]domain.Hit, error) {
	if productName == "" {
		return nil, domain.InvalidArgument("product_name is required")
	}

	emb, err := s.embed.Embed(ctx, productName)
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}

	hits, err := s.repo.SearchSimilar(ctx, emb.Embedding, s.cfg.SimilarTopK)
	if err != nil {
		return nil, fmt.Errorf("search similar: %w", err)
	}
	return hits, nil
}

// TopProducts lists the best-rated documents, optionally restricted to an
// exact main category. limit <= 0 means the default.
func (s *Service) TopProducts(ctx context.Context, limit int, mainCategory string) ([]domain.Hit, error) {
	if limit < 0 {
		return nil, domain.InvalidArgument("limit must be non-negative")
	}
	if limit == 0 {
		limit = s.cfg.DefaultTopLimit
	}

	hits, err := s.repo.SearchTop(ctx, mainCategory, limit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	return hits, nil
}
