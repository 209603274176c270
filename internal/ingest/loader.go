package ingest

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/openmart/prodsearch/internal/domain"
)

// Loader bulk-writes normalized product documents into the catalog.
// Document identifier = the row's 0-based ordinal in the source. Any batch
// write failure is fatal to the run; the job has no partial-success
// bookkeeping.
type Loader struct {
	products  ProductWriter
	batchSize int
	logger    *zap.Logger
}

// NewLoader creates a Loader.
func NewLoader(products ProductWriter, batchSize int, logger *zap.Logger) *Loader {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &Loader{products: products, batchSize: batchSize, logger: logger}
}

// LoadResult reports a completed bulk load.
type LoadResult struct {
	Loaded   int
	Duration time.Duration
}

// Run streams the source and writes documents in batches.
func (l *Loader) Run(ctx context.Context, reader RowReader) (LoadResult, error) {
	start := time.Now()

	batch := make([]domain.IdentifiedProduct, 0, l.batchSize)
	loaded := 0

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := l.products.UpsertBatch(ctx, batch); err != nil {
			return fmt.Errorf("bulk write at doc %s: %w", batch[0].ID, err)
		}
		loaded += len(batch)
		batch = batch[:0]

		if loaded%1000 < l.batchSize {
			l.logger.Info("bulk load progress", zap.Int("loaded", loaded))
		}
		return nil
	}

	err := reader.ReadRows(func(row *SourceRow, seq int) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		doc := domain.IdentifiedProduct{
			ID:      strconv.Itoa(seq),
			Product: row.Product(),
		}
		if err := doc.Product.Validate(); err != nil {
			return fmt.Errorf("row %d: %w", seq, err)
		}

		batch = append(batch, doc)
		if len(batch) >= l.batchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return LoadResult{Loaded: loaded, Duration: time.Since(start)}, err
	}

	if err := flush(); err != nil {
		return LoadResult{Loaded: loaded, Duration: time.Since(start)}, err
	}

	return LoadResult{Loaded: loaded, Duration: time.Since(start)}, nil
}
