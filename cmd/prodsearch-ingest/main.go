// Command prodsearch-ingest runs the offline catalog pipeline: recreate
// the index schema, bulk load a product dataset, then backfill name
// embeddings. Stages can be skipped individually for reruns.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/openmart/prodsearch/internal/catalog"
	"github.com/openmart/prodsearch/internal/config"
	"github.com/openmart/prodsearch/internal/db/valkey"
	"github.com/openmart/prodsearch/internal/ingest"
	logpkg "github.com/openmart/prodsearch/internal/logger"
	"github.com/openmart/prodsearch/internal/metrics"
	productrepo "github.com/openmart/prodsearch/internal/repository/product"
	openaiEmb "github.com/openmart/prodsearch/internal/transport/openai"
	"github.com/openmart/prodsearch/internal/version"
)

func main() {
	var (
		source       = flag.String("source", "", "path to the product dataset (.csv or .parquet)")
		keepIndex    = flag.Bool("keep-index", false, "keep the existing index instead of dropping and recreating it")
		skipLoad     = flag.Bool("skip-load", false, "skip the bulk load stage")
		skipBackfill = flag.Bool("skip-backfill", false, "skip the embedding backfill stage")
		batchSize    = flag.Int("batch-size", 0, "documents per bulk write (0 = config value)")
	)
	flag.Parse()

	env := config.GetEnv()
	cfg := config.MustLoad(env)

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	if *source == "" {
		logger.Fatal("-source is required")
	}
	if *batchSize <= 0 {
		*batchSize = cfg.Catalog.BatchSize
	}

	logger.Info("Starting catalog ingest",
		zap.String("version", version.Version),
		zap.String("env", env),
		zap.String("source", *source),
		zap.Bool("keep_index", *keepIndex),
		zap.Bool("skip_load", *skipLoad),
		zap.Bool("skip_backfill", *skipBackfill),
		zap.Int("batch_size", *batchSize),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := valkey.NewStore(valkey.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create store", zap.Error(err))
	}
	defer store.Close()

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Search engine not ready", zap.Error(err))
	}

	catCfg := catalog.Config{
		IndexName:       cfg.Catalog.IndexName,
		KeyPrefix:       cfg.Catalog.KeyPrefix,
		HNSWM:           cfg.Catalog.HNSWM,
		HNSWEFConstruct: cfg.Catalog.HNSWEFConstruct,
	}
	products := productrepo.New(store, catCfg)
	manager := catalog.NewManager(store, catCfg)

	start := time.Now()

	// Stage 1: schema.
	if *keepIndex {
		if err := manager.Ensure(ctx); err != nil {
			logger.Fatal("Ensure index failed", zap.Error(err))
		}
		logger.Info("Index ensured", zap.String("index", catCfg.IndexName))
	} else {
		if err := manager.Recreate(ctx); err != nil {
			logger.Fatal("Recreate index failed", zap.Error(err))
		}
		logger.Info("Index recreated", zap.String("index", catCfg.IndexName))
	}

	// Stage 2: bulk load.
	var loadRes ingest.LoadResult
	if !*skipLoad {
		reader, err := ingest.OpenSource(*source)
		if err != nil {
			logger.Fatal("Open source failed", zap.Error(err))
		}
		loader := ingest.NewLoader(products, *batchSize, logger)
		loadRes, err = loader.Run(ctx, reader)
		if err != nil {
			logger.Fatal("Bulk load failed",
				zap.Int("loaded", loadRes.Loaded),
				zap.Error(err),
			)
		}
		logger.Info("Bulk load complete",
			zap.Int("loaded", loadRes.Loaded),
			zap.Duration("duration", loadRes.Duration),
			zap.String("rate", rate(loadRes.Loaded, loadRes.Duration)),
		)
	}

	// Stage 3: embedding backfill.
	var backRes ingest.BackfillResult
	if !*skipBackfill {
		metrics.RegisterEmbeddingMetrics()
		embedder := openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:     cfg.Embedding.APIKey,
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
			Provider:   cfg.Embedding.Provider,
			Logger:     logger,
		})

		reader, err := ingest.OpenSource(*source)
		if err != nil {
			logger.Fatal("Open source failed", zap.Error(err))
		}
		backfill := ingest.NewBackfill(embedder, products, logger)
		backRes, err = backfill.Run(ctx, reader)
		if err != nil {
			logger.Fatal("Backfill failed",
				zap.Int("updated", backRes.Updated),
				zap.Error(err),
			)
		}
	}

	logger.Info("Ingest finished",
		zap.Int("loaded", loadRes.Loaded),
		zap.Int("embeddings_updated", backRes.Updated),
		zap.Int("embedding_tokens", backRes.Tokens),
		zap.Duration("total_duration", time.Since(start)),
	)
}

func rate(n int, d time.Duration) string {
	if d <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.0f docs/s", float64(n)/d.Seconds())
}
