package search

import (
	"context"
	"errors"
	"testing"

	"github.com/openmart/prodsearch/internal/db"
	"github.com/openmart/prodsearch/internal/domain"
)

func TestSearchByName_QueryShape(t *testing.T) {
	repo, ms := newTestRepo(t)

	var captured *db.TextQuery
	ms.searchTextFn = func(_ context.Context, q *db.TextQuery) (*db.SearchResult, error) {
		captured = q
		return &db.SearchResult{}, nil
	}

	if _, err := repo.SearchByName(context.Background(), "shoes", "sports", 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if captured.IndexName != "products" || captured.Field != "name" || captured.Query != "shoes" {
		t.Errorf("unexpected query: %+v", captured)
	}
	if captured.SortBy != "ratings" || !captured.SortDesc {
		t.Errorf("expected ratings DESC ordering, got %+v", captured)
	}
	if captured.Limit != 10 {
		t.Errorf("expected limit 10, got %d", captured.Limit)
	}
	if len(captured.Filters) != 1 || captured.Filters[0].Field != "main_category" ||
		captured.Filters[0].Value != "sports" {
		t.Errorf("unexpected filters: %v", captured.Filters)
	}
}

func TestSearchByName_EmptyCategoryOmitsFilter(t *testing.T) {
	repo, ms := newTestRepo(t)

	var captured *db.TextQuery
	ms.searchTextFn = func(_ context.Context, q *db.TextQuery) (*db.SearchResult, error) {
		captured = q
		return &db.SearchResult{}, nil
	}

	if _, err := repo.SearchByName(context.Background(), "shoes", "", 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured.Filters != nil {
		t.Errorf("empty category must add no filter clause, got %v", captured.Filters)
	}
}

func TestSearchByName_HitShape(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.searchTextFn = func(context.Context, *db.TextQuery) (*db.SearchResult, error) {
		return &db.SearchResult{
			Total: 1,
			Entries: []db.SearchEntry{{
				Key:   "prodsearch:products:12",
				Score: 0.7,
				Fields: map[string]string{
					"name":    "running shoes",
					"ratings": "4.5",
				},
			}},
		}, nil
	}

	hits, err := repo.SearchByName(context.Background(), "shoes", "", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	if hits[0].ID != "12" {
		t.Errorf("expected stripped ID 12, got %s", hits[0].ID)
	}
	if hits[0].Score != 0.7 {
		t.Errorf("unexpected score: %v", hits[0].Score)
	}
	if hits[0].Source.Name != "running shoes" || hits[0].Source.Ratings != 4.5 {
		t.Errorf("unexpected source: %+v", hits[0].Source)
	}
}

func TestSearchByName_BackendError(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.searchTextFn = func(context.Context, *db.TextQuery) (*db.SearchResult, error) {
		return nil, errors.New("engine down")
	}

	_, err := repo.SearchByName(context.Background(), "shoes", "", 10)
	if !errors.Is(err, domain.ErrSearchBackend) {
		t.Fatalf("expected ErrSearchBackend, got %v", err)
	}
}

func TestSearchSimilar_QueryShape(t *testing.T) {
	repo, ms := newTestRepo(t)

	var captured *db.KNNQuery
	ms.searchKNNFn = func(_ context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
		captured = q
		return &db.SearchResult{}, nil
	}

	vec := []float32{0.1, 0.2, 0.3}
	if _, err := repo.SearchSimilar(context.Background(), vec, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if captured.IndexName != "products" || captured.K != 5 {
		t.Errorf("unexpected query: %+v", captured)
	}
	if len(captured.Vector) != 3 {
		t.Errorf("unexpected vector: %v", captured.Vector)
	}
	if captured.Filters != nil {
		t.Errorf("similarity search takes no filters, got %v", captured.Filters)
	}
}

func TestSearchTop_QueryShape(t *testing.T) {
	repo, ms := newTestRepo(t)

	var captured *db.ListQuery
	ms.searchListFn = func(_ context.Context, q *db.ListQuery) (*db.SearchResult, error) {
		captured = q
		return &db.SearchResult{}, nil
	}

	if _, err := repo.SearchTop(context.Background(), "appliances", 25); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if captured.SortBy != "ratings" || !captured.SortDesc {
		t.Errorf("expected ratings DESC ordering, got %+v", captured)
	}
	if captured.Limit != 25 {
		t.Errorf("expected limit 25, got %d", captured.Limit)
	}
	if len(captured.Filters) != 1 || captured.Filters[0].Value != "appliances" {
		t.Errorf("unexpected filters: %v", captured.Filters)
	}
}

func TestSearchTop_NoHitsIsEmptySlice(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.searchListFn = func(context.Context, *db.ListQuery) (*db.SearchResult, error) {
		return &db.SearchResult{}, nil
	}

	hits, err := repo.SearchTop(context.Background(), "", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hits == nil || len(hits) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", hits)
	}
}
