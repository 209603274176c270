package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/openmart/prodsearch/internal/domain"
	searchuc "github.com/openmart/prodsearch/internal/usecase/search"
)

// --- Mocks ---

type mockRepo struct {
	hits   []domain.Hit
	err    error
	called bool
}

func (m *mockRepo) SearchByName(context.Context, string, string, int) ([]domain.Hit, error) {
	m.called = true
	return m.hits, m.err
}

func (m *mockRepo) SearchSimilar(context.Context, []float32, int) ([]domain.Hit, error) {
	m.called = true
	return m.hits, m.err
}

func (m *mockRepo) SearchTop(context.Context, string, int) ([]domain.Hit, error) {
	m.called = true
	return m.hits, m.err
}

type mockEmbedder struct {
	err error
}

func (m *mockEmbedder) Embed(context.Context, string) (domain.EmbeddingResult, error) {
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: []float32{0.1, 0.2}}, nil
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(context.Context) error { return m.err }

func newTestServer(t *testing.T, repo *mockRepo, embed *mockEmbedder) *chi.Mux {
	t.Helper()
	svc := searchuc.New(repo, embed, searchuc.Config{})
	srv := NewServer(svc, &mockPinger{}, zap.NewNop())
	r := chi.NewRouter()
	srv.Mount(r)
	return r
}

func doRequest(t *testing.T, handler http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body %q: %v", w.Body.String(), err)
	}
	return body["error"]
}

// --- Tests ---

func TestSearch_OK(t *testing.T) {
	repo := &mockRepo{hits: []domain.Hit{{
		ID:    "7",
		Score: 0.5,
		Source: domain.Product{
			Name:    "running shoes",
			Ratings: 4.5,
		},
	}}}
	r := newTestServer(t, repo, &mockEmbedder{})

	w := doRequest(t, r, "/search?search_box=shoes&main_category=sports")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("unexpected content type: %s", ct)
	}

	var hits []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &hits); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	if hits[0]["_id"] != "7" {
		t.Errorf("unexpected _id: %v", hits[0]["_id"])
	}
	if hits[0]["_score"] != 0.5 {
		t.Errorf("unexpected _score: %v", hits[0]["_score"])
	}
	src, ok := hits[0]["_source"].(map[string]any)
	if !ok {
		t.Fatalf("missing _source: %v", hits[0])
	}
	if src["name"] != "running shoes" {
		t.Errorf("unexpected source name: %v", src["name"])
	}
}

func TestSearch_BackendError(t *testing.T) {
	repo := &mockRepo{err: fmt.Errorf("%w: engine down", domain.ErrSearchBackend)}
	r := newTestServer(t, repo, &mockEmbedder{})

	w := doRequest(t, r, "/search?search_box=shoes")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if msg := decodeError(t, w); msg == "" {
		t.Error("expected a non-empty error message")
	}
}

func TestSimilarProducts_OK(t *testing.T) {
	repo := &mockRepo{hits: []domain.Hit{{ID: "3", Score: 1.8}}}
	r := newTestServer(t, repo, &mockEmbedder{})

	w := doRequest(t, r, "/similar_products?product_name=wireless+mouse")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSimilarProducts_MissingName(t *testing.T) {
	repo := &mockRepo{}
	r := newTestServer(t, repo, &mockEmbedder{})

	w := doRequest(t, r, "/similar_products")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if msg := decodeError(t, w); msg != "product_name is required" {
		t.Errorf("unexpected message: %q", msg)
	}
	if repo.called {
		t.Error("repo should not be called")
	}
}

func TestSimilarProducts_EmbedderError(t *testing.T) {
	embed := &mockEmbedder{err: fmt.Errorf("embedding API error 503: overloaded: %w",
		domain.ErrEmbeddingProviderError)}
	r := newTestServer(t, &mockRepo{}, embed)

	w := doRequest(t, r, "/similar_products?product_name=mouse")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if msg := decodeError(t, w); msg == "" {
		t.Error("expected a non-empty error message")
	}
}

func TestTopProducts_OK(t *testing.T) {
	repo := &mockRepo{hits: []domain.Hit{}}
	r := newTestServer(t, repo, &mockEmbedder{})

	w := doRequest(t, r, "/top_products?limit=25&main_category=toys")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestTopProducts_NonIntegerLimit(t *testing.T) {
	repo := &mockRepo{}
	r := newTestServer(t, repo, &mockEmbedder{})

	w := doRequest(t, r, "/top_products?limit=abc")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if msg := decodeError(t, w); msg != "limit must be an integer" {
		t.Errorf("unexpected message: %q", msg)
	}
	if repo.called {
		t.Error("repo should not be called for a malformed limit")
	}
}

func TestTopProducts_NegativeLimit(t *testing.T) {
	repo := &mockRepo{}
	r := newTestServer(t, repo, &mockEmbedder{})

	w := doRequest(t, r, "/top_products?limit=-1")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if msg := decodeError(t, w); msg != "limit must be non-negative" {
		t.Errorf("unexpected message: %q", msg)
	}
}

func TestTopProducts_DefaultLimit(t *testing.T) {
	repo := &mockRepo{hits: []domain.Hit{}}
	r := newTestServer(t, repo, &mockEmbedder{})

	w := doRequest(t, r, "/top_products")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestHealthz(t *testing.T) {
	svc := searchuc.New(&mockRepo{}, &mockEmbedder{}, searchuc.Config{})

	t.Run("ok", func(t *testing.T) {
		srv := NewServer(svc, &mockPinger{}, zap.NewNop())
		r := chi.NewRouter()
		srv.Mount(r)

		w := doRequest(t, r, "/healthz")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("store down", func(t *testing.T) {
		srv := NewServer(svc, &mockPinger{err: errors.New("connection refused")}, zap.NewNop())
		r := chi.NewRouter()
		srv.Mount(r)

		w := doRequest(t, r, "/healthz")
		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", w.Code)
		}
	})
}
