package domain

import "errors"

// ErrEmptyQuery is returned for empty or whitespace-only queries. The
// engine rejects such queries before any chunk is scored.
var ErrEmptyQuery = errors.New("empty query")

// Chunker splits documents into chunks suitable for retrieval. Calling
// Chunk twice on the same document must yield identical chunks.
type Chunker interface {
	Chunk(document Document) ([]Chunk, error)
}

// Scorer computes a relevance score >= 0 for a (query, text) pair. Higher
// means more relevant. Implementations may require a preparation phase
// over the corpus, after which Score must be a pure function of the pair.
type Scorer interface {
	Name() string
	Prepare(corpus []string) error
	Score(query, text string) float64
}

// Router maps a query to a bounded recursion depth.
type Router interface {
	Route(query string) (Decision, error)
}

// Summarizer selects and orders the most relevant sentences from the
// narrowed chunk set and renders them as a cited answer.
type Summarizer interface {
	Summarize(results []ScoredChunk, query string) (Answer, error)
}
