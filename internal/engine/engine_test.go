package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recurag/internal/config"
	"recurag/internal/domain"
	"recurag/internal/logger"
	"recurag/internal/scorer"
)

func newEngine(cfg config.EngineConfig) *Engine {
	return New(scorer.NewOverlapScorer(), cfg, logger.Nop())
}

func mkChunks(texts ...string) []domain.Chunk {
	chunks := make([]domain.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = domain.Chunk{
			DocumentID: "d1",
			Source:     "doc1.txt",
			ChunkID:    fmt.Sprintf("d1:%d", i),
			Text:       text,
			Index:      i,
			Ord:        i,
		}
	}
	return chunks
}

func TestRetrieve_EmptyQueryRejected(t *testing.T) {
	e := newEngine(config.Default().Engine)
	_, err := e.Retrieve(mkChunks("The cat sat."), "   ", 1)
	assert.ErrorIs(t, err, domain.ErrEmptyQuery)
}

func TestRetrieve_EmptyCorpusReturnsEmptySet(t *testing.T) {
	e := newEngine(config.Default().Engine)
	res, err := e.Retrieve(nil, "any query", 3)
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestRetrieve_NoMatchReturnsEmptySet(t *testing.T) {
	e := newEngine(config.Default().Engine)
	res, err := e.Retrieve(mkChunks("Dogs bark loudly.", "Birds sing."), "submarine propulsion", 2)
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestRetrieve_SinglePassRanksRelevantChunkFirst(t *testing.T) {
	e := newEngine(config.Default().Engine)
	corpus := mkChunks("The cat sat on the mat.", "Dogs bark loudly.")
	res, err := e.Retrieve(corpus, "What does the cat do?", 1)
	require.NoError(t, err)
	require.Len(t, res, 1) // the dog chunk scores zero and is dropped
	assert.Equal(t, "The cat sat on the mat.", res[0].Chunk.Text)
}

func TestRetrieve_Deterministic(t *testing.T) {
	e := newEngine(config.Default().Engine)
	corpus := mkChunks(
		"The cat sat on the mat.",
		"A cat chased the mouse.",
		"Dogs bark loudly at cats.",
	)
	first, err := e.Retrieve(corpus, "where does the cat sit", 3)
	require.NoError(t, err)
	second, err := e.Retrieve(corpus, "where does the cat sit", 3)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRetrieve_TiesBreakByInsertionOrder(t *testing.T) {
	e := newEngine(config.EngineConfig{TopK: []int{4}, EarlyStopEpsilon: 1e-3, RefineFromTop: 3})
	corpus := mkChunks("cat here", "cat there", "cat everywhere")
	res, err := e.Retrieve(corpus, "cat", 1)
	require.NoError(t, err)
	require.Len(t, res, 3)
	for i := 1; i < len(res); i++ {
		assert.Equal(t, res[i-1].Score, res[i].Score)
		assert.Less(t, res[i-1].Chunk.Ord, res[i].Chunk.Ord)
	}
}

func TestRetrieve_ResultsOrderedByDescendingScore(t *testing.T) {
	e := newEngine(config.Default().Engine)
	corpus := mkChunks(
		"cat mat sat nap",
		"cat mat sat",
		"cat mat",
		"cat",
	)
	res, err := e.Retrieve(corpus, "cat mat sat nap", 1)
	require.NoError(t, err)
	require.Len(t, res, 4)
	for i := 1; i < len(res); i++ {
		assert.GreaterOrEqual(t, res[i-1].Score, res[i].Score)
	}
}

func TestRetrieve_NarrowsAcrossPasses(t *testing.T) {
	// A negative epsilon disables early stopping so every pass runs.
	cfg := config.EngineConfig{TopK: []int{4, 2, 1}, EarlyStopEpsilon: -1, RefineFromTop: 2}
	e := newEngine(cfg)
	texts := make([]string, 10)
	for i := range texts {
		texts[i] = fmt.Sprintf("The cat topic number %d is covered here.", i)
	}
	res, err := e.Retrieve(mkChunks(texts...), "cat topic", 3)
	require.NoError(t, err)
	assert.Len(t, res, 1)
}

func TestRetrieve_EarlyStopWhenScoresPlateau(t *testing.T) {
	cfg := config.EngineConfig{TopK: []int{4, 2, 1}, EarlyStopEpsilon: 1e-3, RefineFromTop: 2}
	e := newEngine(cfg)
	// Pass 1 scores the bare query at its maximum; the refined sub-query
	// cannot improve on it, so the loop stops after pass 2.
	corpus := mkChunks("cat.", "cat.", "cat.", "cat.", "cat.", "cat.")
	res, err := e.Retrieve(corpus, "cat", 3)
	require.NoError(t, err)
	assert.Len(t, res, 2)
}

func TestRetrieve_DepthBelowOneIsClamped(t *testing.T) {
	e := newEngine(config.Default().Engine)
	res, err := e.Retrieve(mkChunks("The cat sat."), "cat", 0)
	require.NoError(t, err)
	require.Len(t, res, 1)
}
