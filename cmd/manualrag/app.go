package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"manualrag/internal/chunker"
	"manualrag/internal/config"
	"manualrag/internal/docstore"
	"manualrag/internal/docstore/cache"
	"manualrag/internal/docstore/dir"
	"manualrag/internal/scorer"
	"manualrag/internal/service"
)

// buildService assembles the retrieval pipeline from config. The returned
// stop function ends the directory watcher, if one was started. A directory
// that cannot be watched fails the build.
func buildService(ctx context.Context, cfg *config.AppConfig, log *zap.Logger) (*service.RetrievalService, func(), error) {
	stop := func() {}
	if err := cfg.Validate(); err != nil {
		return nil, stop, err
	}
	ch, err := chunker.NewFixedSizeChunker(cfg.Chunker.Size, cfg.Chunker.Overlap)
	if err != nil {
		return nil, stop, err
	}
	sc, err := scorer.New(cfg.Scorer.Type)
	if err != nil {
		return nil, stop, err
	}

	var store docstore.Storage = dir.NewStorage(cfg.Documents.Dir, cfg.Documents.Extensions...)
	if cfg.Cache.Enabled {
		cached := cache.NewStorage(store, cache.WithLogger(log))
		store = cached
		if cfg.Cache.Watch {
			watchCtx, cancel := context.WithCancel(ctx)
			done, err := cached.StartWatch(watchCtx, cfg.Documents.Dir)
			if err != nil {
				cancel()
				return nil, stop, fmt.Errorf("watch %s: %w", cfg.Documents.Dir, err)
			}
			stop = func() {
				cancel()
				<-done
			}
		}
	}

	svc, err := service.NewRetrievalService(store, ch, sc,
		service.WithTopK(cfg.Retrieval.TopK),
		service.WithLogger(log))
	if err != nil {
		stop()
		return nil, func() {}, err
	}
	log.Debug("retrieval service ready",
		zap.String("dir", cfg.Documents.Dir),
		zap.Strings("extensions", cfg.Documents.Extensions),
		zap.Int("chunk_size", cfg.Chunker.Size),
		zap.Int("chunk_overlap", cfg.Chunker.Overlap),
		zap.String("scorer", sc.Name()),
		zap.Int("top_k", cfg.Retrieval.TopK),
		zap.Bool("cache", cfg.Cache.Enabled))
	return svc, stop, nil
}
