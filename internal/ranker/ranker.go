package ranker

import (
	"sort"

	"manualrag/internal/domain"
)

// DefaultTopK is the number of passages returned when none is configured.
const DefaultTopK = 3

// Ranker scores chunks against a query and keeps the best k.
type Ranker struct {
	scorer domain.Scorer
}

func New(scorer domain.Scorer) *Ranker {
	return &Ranker{scorer: scorer}
}

// Scorer returns the active scoring strategy.
func (r *Ranker) Scorer() domain.Scorer { return r.scorer }

// TopK returns at most k chunks ordered by descending score. Equal scores are
// ordered by document order and then chunk index, so results are reproducible.
// A non-positive k or an empty chunk list yields an empty result.
func (r *Ranker) TopK(query string, chunks []domain.Chunk, k int) []domain.ScoredChunk {
	if k <= 0 || len(chunks) == 0 {
		return []domain.ScoredChunk{}
	}
	scored := make([]domain.ScoredChunk, len(chunks))
	for i, ch := range chunks {
		scored[i] = domain.ScoredChunk{Chunk: ch, Score: r.scorer.Score(query, ch.Text)}
	}
	sort.SliceStable(scored, func(i, j int) bool { return less(scored[i], scored[j]) })
	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k:k]
}

func less(a, b domain.ScoredChunk) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Chunk.DocumentOrder != b.Chunk.DocumentOrder {
		return a.Chunk.DocumentOrder < b.Chunk.DocumentOrder
	}
	return a.Chunk.Index < b.Chunk.Index
}

// Texts extracts the passage texts in rank order.
func Texts(results []domain.ScoredChunk) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Chunk.Text
	}
	return out
}
