package ingest

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/openmart/prodsearch/internal/domain"
)

// progressEvery is how often the backfill reports progress, in documents.
const progressEvery = 100

// Backfill computes a semantic embedding of each document's name and
// applies an upsert-style partial update of the embedding field, leaving
// other fields untouched. The first failed update halts the run.
type Backfill struct {
	embedder domain.Embedder
	products EmbeddingWriter
	logger   *zap.Logger
}

// NewBackfill creates a Backfill job.
func NewBackfill(embedder domain.Embedder, products EmbeddingWriter, logger *zap.Logger) *Backfill {
	return &Backfill{embedder: embedder, products: products, logger: logger}
}

// BackfillResult reports a completed backfill.
type BackfillResult struct {
	Updated  int
	Tokens   int
	Duration time.Duration
}

// Run re-reads the source in row order and fills vectors document by
// document. IDs are the same ordinals the loader assigned.
func (b *Backfill) Run(ctx context.Context, reader RowReader) (BackfillResult, error) {
	start := time.Now()

	updated := 0
	tokens := 0

	err := reader.ReadRows(func(row *SourceRow, seq int) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		emb, err := b.embedder.Embed(ctx, row.Name)
		if err != nil {
			return fmt.Errorf("embed doc %d: %w", seq, err)
		}
		if len(emb.Embedding) != domain.EmbeddingDim {
			return fmt.Errorf("embed doc %d: %w: got %d components, want %d",
				seq, domain.ErrEmbeddingProviderError, len(emb.Embedding), domain.EmbeddingDim)
		}

		if err := b.products.SetEmbedding(ctx, strconv.Itoa(seq), emb.Embedding); err != nil {
			return fmt.Errorf("update doc %d: %w", seq, err)
		}

		updated++
		tokens += emb.TotalTokens
		if updated%progressEvery == 0 {
			b.logger.Info("backfill progress", zap.Int("updated", updated))
		}
		return nil
	})

	res := BackfillResult{Updated: updated, Tokens: tokens, Duration: time.Since(start)}
	if err != nil {
		return res, err
	}

	b.logger.Info("backfill complete",
		zap.Int("updated", updated),
		zap.Duration("duration", res.Duration),
	)
	return res, nil
}
