// Package http exposes the read API over chi.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/openmart/prodsearch/internal/domain"
	"github.com/openmart/prodsearch/internal/logger"
	searchuc "github.com/openmart/prodsearch/internal/usecase/search"
)

// Pinger checks store connectivity for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server holds the request handlers for the query service.
type Server struct {
	search *searchuc.Service
	store  Pinger
	logger *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(search *searchuc.Service, store Pinger, logger *zap.Logger) *Server {
	return &Server{search: search, store: store, logger: logger}
}

// Mount registers all routes on the given router.
func (s *Server) Mount(r chi.Router) {
	r.Get("/search", s.handleSearch)
	r.Get("/similar_products", s.handleSimilarProducts)
	r.Get("/top_products", s.handleTopProducts)
	r.Get("/healthz", s.handleHealthz)
	r.Handle("/metrics", promhttp.Handler())
}

// handleSearch handles GET /search?search_box=&main_category=.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	searchBox := r.URL.Query().Get("search_box")
	mainCategory := r.URL.Query().Get("main_category")

	hits, err := s.search.SearchByName(r.Context(), searchBox, mainCategory)
	if err != nil {
		s.writeDomainError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, hits)
}

// handleSimilarProducts handles GET /similar_products?product_name=.
func (s *Server) handleSimilarProducts(w http.ResponseWriter, r *http.Request) {
	productName := r.URL.Query().Get("product_name")

	hits, err := s.search.SimilarProducts(r.Context(), productName)
	if err != nil {
		s.writeDomainError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, hits)
}

// handleTopProducts handles GET /top_products?limit=&main_category=.
func (s *Server) handleTopProducts(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}
	mainCategory := r.URL.Query().Get("main_category")

	hits, err := s.search.TopProducts(r.Context(), limit, mainCategory)
	if err != nil {
		s.writeDomainError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, hits)
}

// handleHealthz handles GET /healthz.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeDomainError maps a service error to a status. Client input errors
// become 400 with their own message; every collaborator failure collapses
// to one 500 shape carrying the error text.
func (s *Server) writeDomainError(ctx context.Context, w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrInvalidArgument) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	logger.FromContext(ctx).Error("query failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
