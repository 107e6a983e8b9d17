package domain

// Document represents a single text file loaded into the system.
type Document struct {
	ID      string
	Path    string
	Content string
}

// Chunk is a contiguous slice of one document's text, the atomic unit of
// retrieval. Chunks are immutable once built; Ord is the position in the
// corpus insertion order and is used for deterministic tie-breaking.
type Chunk struct {
	DocumentID string
	Source     string
	ChunkID    string
	Text       string
	Index      int
	Start      int
	End        int
	Ord        int
}

// ScoredChunk pairs a chunk with its relevance score for one pass.
type ScoredChunk struct {
	Chunk Chunk
	Score float64
}

// Decision is the routing outcome for one query: how many refinement
// passes to run and the complexity signal that justified it.
type Decision struct {
	Depth      int
	Tokens     int
	LongTokens int
	Analytical bool
	Complexity int
	Reasoning  string
}

// Citation links one selected sentence back to its source chunk.
type Citation struct {
	Sentence string
	Source   string
	ChunkID  string
	Score    float64
}

// NoAnswerReason distinguishes why an answer carries no citations.
type NoAnswerReason int

const (
	// AnswerFound means at least one sentence cleared the relevance floor.
	AnswerFound NoAnswerReason = iota
	// NoAnswerEmptyCorpus means the corpus held no chunks at all.
	NoAnswerEmptyCorpus
	// NoAnswerNoMatch means the corpus had chunks but nothing scored
	// above the minimum relevance floor for this query.
	NoAnswerNoMatch
)

// Answer is the rendered result of one query: the selected sentences with
// their citations plus the display text. It is not retained by the engine.
type Answer struct {
	Citations []Citation
	Text      string
	Reason    NoAnswerReason
	Routing   Decision
}

// Found reports whether the answer contains relevant cited content.
func (a Answer) Found() bool { return a.Reason == AnswerFound }
