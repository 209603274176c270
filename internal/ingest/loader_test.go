package ingest

import (
	"context"
	"strconv"
	"testing"

	"github.com/openmart/prodsearch/internal/domain"
)

func TestLoader_BatchesAndOrdinals(t *testing.T) {
	writer := &mockProductWriter{}
	loader := NewLoader(writer, 3, testLogger())

	res, err := loader.Run(context.Background(), &staticReader{rows: makeRows(7)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Loaded != 7 {
		t.Errorf("expected 7 loaded, got %d", res.Loaded)
	}
	if len(writer.batches) != 3 {
		t.Fatalf("expected 3 batches, got %d", len(writer.batches))
	}
	if len(writer.batches[0]) != 3 || len(writer.batches[1]) != 3 || len(writer.batches[2]) != 1 {
		t.Errorf("unexpected batch sizes: %d/%d/%d",
			len(writer.batches[0]), len(writer.batches[1]), len(writer.batches[2]))
	}

	// IDs are the 0-based source row ordinals, in order
	want := 0
	for _, batch := range writer.batches {
		for _, doc := range batch {
			if doc.ID != strconv.Itoa(want) {
				t.Fatalf("expected ID %d, got %s", want, doc.ID)
			}
			want++
		}
	}
}

func TestLoader_ZeroVectorPlaceholder(t *testing.T) {
	writer := &mockProductWriter{}
	loader := NewLoader(writer, 10, testLogger())

	if _, err := loader.Run(context.Background(), &staticReader{rows: makeRows(1)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc := writer.batches[0][0]
	if len(doc.Product.Embedding) != domain.EmbeddingDim {
		t.Fatalf("expected %d-component placeholder, got %d",
			domain.EmbeddingDim, len(doc.Product.Embedding))
	}
}

func TestLoader_WriteFailureIsFatal(t *testing.T) {
	writer := &mockProductWriter{failAt: 2}
	loader := NewLoader(writer, 2, testLogger())

	res, err := loader.Run(context.Background(), &staticReader{rows: makeRows(6)})
	if err == nil {
		t.Fatal("expected error")
	}
	// first batch landed, second failed, third never attempted
	if res.Loaded != 2 {
		t.Errorf("expected 2 loaded before failure, got %d", res.Loaded)
	}
	if len(writer.batches) != 2 {
		t.Errorf("expected 2 attempted batches, got %d", len(writer.batches))
	}
}

func TestLoader_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	writer := &mockProductWriter{}
	loader := NewLoader(writer, 2, testLogger())

	if _, err := loader.Run(ctx, &staticReader{rows: makeRows(4)}); err == nil {
		t.Fatal("expected error")
	}
	if len(writer.batches) != 0 {
		t.Errorf("expected no writes after cancellation, got %d batches", len(writer.batches))
	}
}
