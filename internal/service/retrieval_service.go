package service

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"manualrag/internal/docstore"
	"manualrag/internal/domain"
	"manualrag/internal/ranker"
)

// ContextSeparator is placed between passages when they are joined into prompt context.
const ContextSeparator = "\n---\n"

// RetrievalService loads, chunks and ranks the manuals for a query.
// It holds no per-request state and is safe for concurrent use.
type RetrievalService struct {
	store   docstore.Storage
	chunker domain.Chunker
	ranker  *ranker.Ranker
	topK    int
	logger  *zap.Logger
}

// Option configures the service.
type Option func(*RetrievalService)

// WithTopK sets the number of passages returned by Search.
func WithTopK(k int) Option {
	return func(s *RetrievalService) { s.topK = k }
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(s *RetrievalService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewRetrievalService wires the pipeline. Invalid parameters are reported here
// as ConfigurationError rather than on every request.
func NewRetrievalService(store docstore.Storage, chunker domain.Chunker, scorer domain.Scorer, opts ...Option) (*RetrievalService, error) {
	if store == nil {
		return nil, domain.NewConfigurationError("document store", "must not be nil")
	}
	if chunker == nil {
		return nil, domain.NewConfigurationError("chunker", "must not be nil")
	}
	if scorer == nil {
		return nil, domain.NewConfigurationError("scorer", "must not be nil")
	}
	s := &RetrievalService{
		store:   store,
		chunker: chunker,
		ranker:  ranker.New(scorer),
		topK:    ranker.DefaultTopK,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.topK < 0 {
		return nil, domain.NewConfigurationError("top k", "must not be negative, got %d", s.topK)
	}
	return s, nil
}

// Search returns the texts of the best matching passages, best first.
// Only document store failures are returned as errors.
func (s *RetrievalService) Search(query string) ([]string, error) {
	results, err := s.SearchScored(query)
	if err != nil {
		return nil, err
	}
	return ranker.Texts(results), nil
}

// SearchScored is Search with scores and chunk positions kept.
func (s *RetrievalService) SearchScored(query string) ([]domain.ScoredChunk, error) {
	documents, err := s.store.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}
	var chunks []domain.Chunk
	for order, d := range documents {
		docChunks, err := s.chunker.Chunk(d)
		if err != nil {
			return nil, fmt.Errorf("chunk %s: %w", d.ID, err)
		}
		for _, ch := range docChunks {
			ch.DocumentOrder = order
			chunks = append(chunks, ch)
		}
	}
	results := s.ranker.TopK(query, chunks, s.topK)
	s.logger.Debug("search completed",
		zap.String("scorer", s.ranker.Scorer().Name()),
		zap.Int("documents", len(documents)),
		zap.Int("chunks", len(chunks)),
		zap.Int("results", len(results)))
	return results, nil
}

// BuildContext joins the passages for query into one block of prompt context.
// Retrieval failures are logged and yield an empty context so that the chat
// request can still be answered without manual excerpts.
func (s *RetrievalService) BuildContext(query string) string {
	passages, err := s.Search(query)
	if err != nil {
		fields := []zap.Field{zap.Error(err)}
		var ioErr *domain.IOError
		if errors.As(err, &ioErr) {
			fields = append(fields, zap.String("path", ioErr.Path))
		}
		s.logger.Warn("manual retrieval failed, continuing without context", fields...)
		return ""
	}
	return strings.Join(passages, ContextSeparator)
}

// TopK returns the configured number of passages per search.
func (s *RetrievalService) TopK() int { return s.topK }

// Describe summarizes the active configuration for display.
func (s *RetrievalService) Describe() string {
	return fmt.Sprintf("scorer=%s top_k=%d", s.ranker.Scorer().Name(), s.topK)
}
