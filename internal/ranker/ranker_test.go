package ranker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"manualrag/internal/domain"
	"manualrag/internal/scorer"
)

// fixedScorer returns a preset score per chunk text.
type fixedScorer map[string]float64

func (fixedScorer) Name() string { return "fixed" }

func (f fixedScorer) Score(_, text string) float64 { return f[text] }

func chunk(order, index int, text string) domain.Chunk {
	return domain.Chunk{DocumentID: "doc", DocumentOrder: order, Index: index, Text: text}
}

func TestRanker_TopK(t *testing.T) {
	r := New(fixedScorer{"low": 1, "mid": 5, "high": 9})
	chunks := []domain.Chunk{
		chunk(0, 0, "low"),
		chunk(0, 1, "high"),
		chunk(1, 0, "mid"),
	}

	t.Run("sorted by descending score", func(t *testing.T) {
		got := r.TopK("q", chunks, 3)
		assert.Equal(t, []string{"high", "mid", "low"}, Texts(got))
		assert.Equal(t, []float64{9, 5, 1}, []float64{got[0].Score, got[1].Score, got[2].Score})
	})

	t.Run("truncated to k", func(t *testing.T) {
		assert.Equal(t, []string{"high"}, Texts(r.TopK("q", chunks, 1)))
	})

	t.Run("k larger than chunk count", func(t *testing.T) {
		assert.Len(t, r.TopK("q", chunks, 10), 3)
	})

	t.Run("k zero", func(t *testing.T) {
		got := r.TopK("q", chunks, 0)
		require.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("negative k", func(t *testing.T) {
		assert.Empty(t, r.TopK("q", chunks, -1))
	})

	t.Run("no chunks", func(t *testing.T) {
		got := r.TopK("q", nil, 3)
		require.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestRanker_TopK_TieBreak(t *testing.T) {
	r := New(fixedScorer{})
	// every chunk scores 0; input deliberately out of order
	chunks := []domain.Chunk{
		chunk(2, 0, "c0"),
		chunk(0, 1, "a1"),
		chunk(1, 0, "b0"),
		chunk(0, 0, "a0"),
		chunk(2, 1, "c1"),
	}

	got := r.TopK("q", chunks, 5)
	assert.Equal(t, []string{"a0", "a1", "b0", "c0", "c1"}, Texts(got))

	for i := 0; i < 10; i++ {
		assert.Equal(t, Texts(got), Texts(r.TopK("q", chunks, 5)))
	}
}

func TestRanker_TopK_DuplicateTexts(t *testing.T) {
	r := New(fixedScorer{"same": 2, "other": 1})
	chunks := []domain.Chunk{
		chunk(0, 0, "other"),
		chunk(0, 1, "same"),
		chunk(1, 0, "same"),
	}

	got := r.TopK("q", chunks, 2)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"same", "same"}, Texts(got))
	assert.Equal(t, 0, got[0].Chunk.DocumentOrder)
	assert.Equal(t, 1, got[1].Chunk.DocumentOrder)
}

func TestRanker_TopK_TokenOverlap(t *testing.T) {
	s, err := scorer.New(scorer.TypeTokenOverlap)
	require.NoError(t, err)
	r := New(s)

	chunks := []domain.Chunk{
		chunk(0, 0, "休憩時間は60分です。"),
		chunk(1, 0, "勤怠 の 打刻 は 専用端末 から"),
		chunk(2, 0, "打刻 の 修正"),
	}
	got := r.TopK("勤怠 打刻", chunks, 2)
	assert.Equal(t, []string{"勤怠 の 打刻 は 専用端末 から", "打刻 の 修正"}, Texts(got))
	assert.Equal(t, 2.0, got[0].Score)
	assert.Equal(t, 1.0, got[1].Score)
}

func TestTexts(t *testing.T) {
	assert.Equal(t, []string{}, Texts(nil))
}
