package cache

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"manualrag/internal/docstore"
	"manualrag/internal/domain"
)

const loadKey = "documents"

// Storage is a read-through in-memory snapshot of another document store.
// The snapshot is replaced whole, so readers never observe a partial load.
type Storage struct {
	mu         sync.RWMutex
	inner      docstore.Storage
	documents  []domain.Document
	loaded     bool
	generation uint64
	group      singleflight.Group
	logger     *zap.Logger
}

// Option configures the cache.
type Option func(*Storage)

// WithLogger sets the logger used for reload and watch events.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Storage) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewStorage(inner docstore.Storage, opts ...Option) *Storage {
	s := &Storage{inner: inner, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadAll returns the cached documents, loading them on first use.
// Concurrent cold callers share a single load; failed loads are not cached.
// A load started before Invalidate is never shared with callers after it.
func (s *Storage) LoadAll() ([]domain.Document, error) {
	docs, gen, ok := s.snapshot()
	if ok {
		return docs, nil
	}
	key := fmt.Sprintf("%s-%d", loadKey, gen)
	v, err, shared := s.group.Do(key, func() (any, error) {
		if docs, _, ok := s.snapshot(); ok {
			return docs, nil
		}
		docs, err := s.inner.LoadAll()
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		// an Invalidate during the load makes this result stale
		if s.generation == gen {
			s.documents = docs
			s.loaded = true
		}
		s.mu.Unlock()
		s.logger.Debug("document cache populated",
			zap.Int("documents", len(docs)),
			zap.Uint64("generation", gen))
		return docs, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.Debug("document cache load shared")
	}
	return slices.Clone(v.([]domain.Document)), nil
}

// Invalidate drops the snapshot; the next LoadAll reloads from the inner store.
func (s *Storage) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.documents = nil
	s.loaded = false
}

// StartWatch registers dir with a filesystem watcher and invalidates the cache
// whenever a file in it changes. Registration errors are returned before any
// goroutine starts. The returned channel is closed once ctx is done and the
// watcher has been released.
func (s *Storage) StartWatch(ctx context.Context, dir string) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, &domain.IOError{Path: dir, Err: err}
	}
	s.logger.Info("watching document directory", zap.String("dir", dir))

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer watcher.Close()
		s.watch(ctx, watcher)
	}()
	return done, nil
}

func (s *Storage) watch(ctx context.Context, watcher *fsnotify.Watcher) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				s.Invalidate()
				s.logger.Debug("document cache invalidated",
					zap.String("path", event.Name),
					zap.String("op", event.Op.String()))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("document watcher error", zap.Error(err))
		}
	}
}

// snapshot reads the documents together with the generation they belong to.
func (s *Storage) snapshot() ([]domain.Document, uint64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return nil, s.generation, false
	}
	return slices.Clone(s.documents), s.generation, true
}
