package chunker

import (
	"unicode/utf8"

	"manualrag/internal/domain"
)

const (
	// DefaultChunkSize is the default number of characters per chunk.
	DefaultChunkSize = 300

	// DefaultOverlap is the default number of characters shared by adjacent chunks.
	DefaultOverlap = 0
)

// FixedSizeChunker splits text positionally into runs of at most size characters.
// It does not look at word or sentence boundaries.
type FixedSizeChunker struct {
	size    int
	overlap int
}

// NewFixedSizeChunker validates size and overlap. Overlap must be smaller than size.
func NewFixedSizeChunker(size, overlap int) (*FixedSizeChunker, error) {
	if size <= 0 {
		return nil, domain.NewConfigurationError("chunk size", "must be positive, got %d", size)
	}
	if overlap < 0 {
		return nil, domain.NewConfigurationError("chunk overlap", "must not be negative, got %d", overlap)
	}
	if overlap >= size {
		return nil, domain.NewConfigurationError("chunk overlap", "must be smaller than chunk size %d, got %d", size, overlap)
	}
	return &FixedSizeChunker{size: size, overlap: overlap}, nil
}

// Size returns the maximum chunk length in characters.
func (c *FixedSizeChunker) Size() int { return c.size }

// Overlap returns the configured overlap in characters.
func (c *FixedSizeChunker) Overlap() int { return c.overlap }

// Chunk splits the document content. An empty document yields no chunks.
func (c *FixedSizeChunker) Chunk(document domain.Document) ([]domain.Chunk, error) {
	texts := split(document.Content, c.size, c.overlap)
	if len(texts) == 0 {
		return nil, nil
	}
	chunks := make([]domain.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = domain.Chunk{
			DocumentID: document.ID,
			Index:      i,
			Text:       text,
		}
	}
	return chunks, nil
}

// Split cuts text into consecutive, non-overlapping segments of at most size
// characters (runes). Concatenating the result reproduces text exactly.
// Empty text, or a non-positive size, yields nil.
func Split(text string, size int) []string {
	return split(text, size, 0)
}

func split(text string, size, overlap int) []string {
	if text == "" || size <= 0 {
		return nil
	}
	if utf8.RuneCountInString(text) <= size {
		return []string{text}
	}
	// byte offset of every rune start, plus len(text) as sentinel
	offsets := make([]int, 0, len(text)+1)
	for i := range text {
		offsets = append(offsets, i)
	}
	runes := len(offsets)
	offsets = append(offsets, len(text))

	step := size - overlap
	var out []string
	for start := 0; start < runes; start += step {
		end := start + size
		if end > runes {
			end = runes
		}
		out = append(out, text[offsets[start]:offsets[end]])
		if end == runes {
			break
		}
	}
	return out
}
