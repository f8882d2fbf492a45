package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"manualrag/internal/domain"
)

func TestNewFixedSizeChunker(t *testing.T) {
	t.Run("valid parameters", func(t *testing.T) {
		c, err := NewFixedSizeChunker(DefaultChunkSize, DefaultOverlap)
		require.NoError(t, err)
		assert.Equal(t, 300, c.Size())
		assert.Equal(t, 0, c.Overlap())
	})

	tests := []struct {
		name    string
		size    int
		overlap int
	}{
		{"zero size", 0, 0},
		{"negative size", -5, 0},
		{"negative overlap", 10, -1},
		{"overlap equal to size", 10, 10},
		{"overlap larger than size", 10, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewFixedSizeChunker(tt.size, tt.overlap)
			assert.Nil(t, c)
			assert.ErrorIs(t, err, domain.ErrConfiguration)
		})
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		text string
		size int
		want []string
	}{
		{"empty text", "", 300, nil},
		{"shorter than size", "abc", 300, []string{"abc"}},
		{"exactly size", "abcd", 4, []string{"abcd"}},
		{"last chunk shorter", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"size one", "abc", 1, []string{"a", "b", "c"}},
		{"whitespace is kept", "a b  c", 2, []string{"a ", "b ", " c"}},
		{"multibyte counted as characters", "勤怠の打刻は専用端末", 4, []string{"勤怠の打", "刻は専用", "端末"}},
		{"non-positive size", "abc", 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.text, tt.size))
		})
	}
}

func TestSplit_Properties(t *testing.T) {
	texts := []string{
		"",
		"x",
		strings.Repeat("x", 299),
		strings.Repeat("x", 300),
		strings.Repeat("x", 301),
		strings.Repeat("勤怠の打刻は専用端末から行います。", 37),
		"mixed 日本語 and ascii\n\twith\r\nline breaks " + strings.Repeat("é", 50),
	}
	sizes := []int{1, 2, 3, 7, 50, 300, 1000}

	for _, text := range texts {
		for _, size := range sizes {
			chunks := Split(text, size)

			assert.Equal(t, text, strings.Join(chunks, ""), "size=%d", size)
			for i, c := range chunks {
				n := utf8.RuneCountInString(c)
				assert.NotZero(t, n, "chunk %d must not be empty", i)
				assert.LessOrEqual(t, n, size)
				if i < len(chunks)-1 {
					assert.Equal(t, size, n, "only the last chunk may be shorter")
				}
			}
		}
	}
}

func TestFixedSizeChunker_Chunk(t *testing.T) {
	c, err := NewFixedSizeChunker(4, 0)
	require.NoError(t, err)

	t.Run("empty document", func(t *testing.T) {
		chunks, err := c.Chunk(domain.Document{ID: "empty.txt"})
		require.NoError(t, err)
		assert.Empty(t, chunks)
	})

	t.Run("indexes and document id", func(t *testing.T) {
		chunks, err := c.Chunk(domain.Document{ID: "a.txt", Content: "abcdefghij"})
		require.NoError(t, err)
		require.Len(t, chunks, 3)
		for i, ch := range chunks {
			assert.Equal(t, "a.txt", ch.DocumentID)
			assert.Equal(t, i, ch.Index)
		}
		assert.Equal(t, "ij", chunks[2].Text)
	})
}

func TestFixedSizeChunker_Overlap(t *testing.T) {
	c, err := NewFixedSizeChunker(4, 2)
	require.NoError(t, err)

	chunks, err := c.Chunk(domain.Document{ID: "a.txt", Content: "abcdefgh"})
	require.NoError(t, err)

	var texts []string
	for _, ch := range chunks {
		texts = append(texts, ch.Text)
	}
	assert.Equal(t, []string{"abcd", "cdef", "efgh"}, texts)
}
