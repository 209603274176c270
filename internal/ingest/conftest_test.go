package ingest

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/openmart/prodsearch/internal/domain"
)

// --- Mocks ---

type mockProductWriter struct {
	batches [][]domain.IdentifiedProduct
	failAt  int // 1-based batch number to fail on, 0 = never
	err     error
}

func (m *mockProductWriter) UpsertBatch(_ context.Context, docs []domain.IdentifiedProduct) error {
	cp := make([]domain.IdentifiedProduct, len(docs))
	copy(cp, docs)
	m.batches = append(m.batches, cp)
	if m.failAt > 0 && len(m.batches) == m.failAt {
		if m.err != nil {
			return m.err
		}
		return fmt.Errorf("write refused")
	}
	return nil
}

type mockEmbeddingWriter struct {
	updates map[string][]float32
	order   []string
	failID  string
}

func (m *mockEmbeddingWriter) SetEmbedding(_ context.Context, id string, vec []float32) error {
	if id == m.failID {
		return fmt.Errorf("update refused for %s", id)
	}
	if m.updates == nil {
		m.updates = make(map[string][]float32)
	}
	m.updates[id] = vec
	m.order = append(m.order, id)
	return nil
}

type mockEmbedder struct {
	dim    int
	tokens int
	err    error
	calls  []string
}

func (m *mockEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	m.calls = append(m.calls, text)
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	dim := m.dim
	if dim == 0 {
		dim = domain.EmbeddingDim
	}
	return domain.EmbeddingResult{
		Embedding:   make([]float32, dim),
		TotalTokens: m.tokens,
	}, nil
}

// staticReader serves a fixed slice of rows.
type staticReader struct {
	rows []SourceRow
}

func (r *staticReader) ReadRows(cb rowCallback) error {
	for i := range r.rows {
		if err := cb(&r.rows[i], i); err != nil {
			return err
		}
	}
	return nil
}

func makeRows(n int) []SourceRow {
	rows := make([]SourceRow, n)
	for i := range rows {
		rows[i] = SourceRow{
			Name:    fmt.Sprintf("product %d", i),
			Ratings: "4.0",
		}
	}
	return rows
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
