package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recurag/internal/chunker"
	"recurag/internal/config"
	"recurag/internal/domain"
	"recurag/internal/engine"
	"recurag/internal/logger"
	"recurag/internal/router"
	"recurag/internal/scorer"
	"recurag/internal/summarizer"
)

func newService(t *testing.T, documents ...domain.Document) *Service {
	t.Helper()
	cfg := config.Default()
	sc := scorer.NewOverlapScorer()
	svc := New(
		chunker.NewSentenceChunker(1, 0),
		sc,
		router.New(cfg.Router, cfg.Engine.MaxDepth),
		engine.New(sc, cfg.Engine, logger.Nop()),
		summarizer.NewExtractive(sc, cfg.Summarizer),
		logger.Nop(),
	)
	require.NoError(t, svc.BuildCorpus(documents))
	return svc
}

func TestAnswer_CatScenario(t *testing.T) {
	svc := newService(t, domain.Document{
		ID:      "doc1",
		Path:    "doc1.txt",
		Content: "The cat sat on the mat. Dogs bark loudly.",
	})
	require.Equal(t, 2, svc.CorpusSize())

	answer, err := svc.Answer("What does the cat do?")
	require.NoError(t, err)
	assert.Equal(t, 1, answer.Routing.Depth, "short query routes to a single pass")
	require.True(t, answer.Found())
	require.NotEmpty(t, answer.Citations)
	assert.Equal(t, "The cat sat on the mat.", answer.Citations[0].Sentence)
	assert.Equal(t, "doc1.txt", answer.Citations[0].Source)
}

func TestAnswer_EmptyQueryRejected(t *testing.T) {
	svc := newService(t, domain.Document{ID: "doc1", Path: "doc1.txt", Content: "Some text."})
	_, err := svc.Answer("   ")
	assert.ErrorIs(t, err, domain.ErrEmptyQuery)
}

func TestAnswer_EmptyCorpus(t *testing.T) {
	svc := newService(t)
	require.Equal(t, 0, svc.CorpusSize())

	answer, err := svc.Answer("any question at all")
	require.NoError(t, err)
	assert.False(t, answer.Found())
	assert.Equal(t, domain.NoAnswerEmptyCorpus, answer.Reason)
}

func TestAnswer_NoRelevantMatch(t *testing.T) {
	svc := newService(t, domain.Document{ID: "doc1", Path: "doc1.txt", Content: "Dogs bark loudly."})
	answer, err := svc.Answer("submarine propulsion")
	require.NoError(t, err)
	assert.False(t, answer.Found())
	assert.Equal(t, domain.NoAnswerNoMatch, answer.Reason)
}

func TestAnswer_Deterministic(t *testing.T) {
	docs := []domain.Document{
		{ID: "a", Path: "a.txt", Content: "The router decides recursion depth. Depth grows with complexity."},
		{ID: "b", Path: "b.txt", Content: "The engine narrows chunks each pass. Narrowing keeps top scores."},
		{ID: "c", Path: "c.txt", Content: "The summarizer cites sources. Citations point at chunks."},
	}
	svc := newService(t, docs...)
	q := "how does the engine narrow chunks and why does depth grow"
	first, err := svc.Answer(q)
	require.NoError(t, err)
	second, err := svc.Answer(q)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBuildCorpus_RebuildReplacesCorpus(t *testing.T) {
	svc := newService(t, domain.Document{ID: "doc1", Path: "doc1.txt", Content: "The cat sat."})
	require.Equal(t, 1, svc.CorpusSize())

	require.NoError(t, svc.BuildCorpus([]domain.Document{
		{ID: "doc2", Path: "doc2.txt", Content: "One fish. Two fish. Red fish."},
	}))
	assert.Equal(t, 3, svc.CorpusSize())

	answer, err := svc.Answer("which fish")
	require.NoError(t, err)
	for _, c := range answer.Citations {
		assert.Equal(t, "doc2.txt", c.Source)
	}
}

func TestBuildCorpus_EmptyDocumentContributesNothing(t *testing.T) {
	svc := newService(t,
		domain.Document{ID: "doc1", Path: "doc1.txt", Content: "   "},
		domain.Document{ID: "doc2", Path: "doc2.txt", Content: "Real content here."},
	)
	assert.Equal(t, 1, svc.CorpusSize())
}
