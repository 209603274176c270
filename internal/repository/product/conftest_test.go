package product

import (
	"context"
	"testing"

	"github.com/openmart/prodsearch/internal/catalog"
	"github.com/openmart/prodsearch/internal/db"
)

// mockStore implements db.HashStore for tests.
type mockStore struct {
	hsetFn      func(ctx context.Context, key string, fields map[string]string) error
	hsetMultiFn func(ctx context.Context, items []db.HashSetItem) error
	hgetAllFn   func(ctx context.Context, key string) (map[string]string, error)
}

func (m *mockStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	if m.hsetFn != nil {
		return m.hsetFn(ctx, key, fields)
	}
	return nil
}

func (m *mockStore) HSetMulti(ctx context.Context, items []db.HashSetItem) error {
	if m.hsetMultiFn != nil {
		return m.hsetMultiFn(ctx, items)
	}
	return nil
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hgetAllFn != nil {
		return m.hgetAllFn(ctx, key)
	}
	return map[string]string{}, nil
}

func (m *mockStore) Del(context.Context, string) error { return nil }

func (m *mockStore) Exists(context.Context, string) (bool, error) { return false, nil }

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	repo := New(ms, catalog.Config{IndexName: "products", KeyPrefix: "prodsearch:"})
	return repo, ms
}
