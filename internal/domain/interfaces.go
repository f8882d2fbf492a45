package domain

// Document represents a single text file loaded from the manual directory.
type Document struct {
	ID      string
	Path    string
	Content string
}

// Chunk is a contiguous span of one document used as the unit of retrieval.
// DocumentOrder is the position of the owning document in the load order
// and is assigned by the caller that knows that order.
type Chunk struct {
	DocumentID    string
	DocumentOrder int
	Index         int
	Text          string
}

// ScoredChunk is a chunk with its relevance score for one query.
type ScoredChunk struct {
	Chunk Chunk
	Score float64
}

// Chunker splits documents into chunks suitable for retrieval.
type Chunker interface {
	Chunk(document Document) ([]Chunk, error)
}

// Scorer computes the relevance of a text to a query.
// Implementations must be safe for concurrent use.
type Scorer interface {
	Name() string
	Score(query, text string) float64
}
