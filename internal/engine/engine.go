// Package engine implements the recursive retrieval loop: repeated
// score-and-narrow passes over the chunk corpus, with the pass count
// chosen by the complexity router.
package engine

import (
	"regexp"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"recurag/internal/config"
	"recurag/internal/domain"
)

var sentenceRe = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)

// Engine runs up to depth score-and-narrow passes over the active chunk
// set. Later passes score against a refined sub-query derived from the
// previous pass's top chunks. "Recursion" is an explicit bounded loop, so
// the depth ceiling and the narrowing invariant are directly inspectable.
type Engine struct {
	scorer        domain.Scorer
	topK          []int
	epsilon       float64
	refineFromTop int
	log           zerolog.Logger
}

func New(scorer domain.Scorer, cfg config.EngineConfig, log zerolog.Logger) *Engine {
	topK := cfg.TopK
	if len(topK) == 0 {
		topK = []int{8, 4, 2}
	}
	refine := cfg.RefineFromTop
	if refine <= 0 {
		refine = 3
	}
	return &Engine{
		scorer:        scorer,
		topK:          topK,
		epsilon:       cfg.EarlyStopEpsilon,
		refineFromTop: refine,
		log:           log,
	}
}

// Retrieve narrows the corpus to the chunks most relevant to the query,
// ordered by descending score, running at most depth passes. An empty
// result is not an error: it means no chunk matched the query at all.
func (e *Engine) Retrieve(corpus []domain.Chunk, query string, depth int) ([]domain.ScoredChunk, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrEmptyQuery
	}
	if depth < 1 {
		depth = 1
	}
	if len(corpus) == 0 {
		return nil, nil
	}

	active := corpus
	current := query
	prevTop := 0.0
	prevKeep := len(corpus)
	var narrowed []domain.ScoredChunk

	for pass := 1; pass <= depth; pass++ {
		scored := e.scorePass(active, current)
		keep := e.keepCount(pass)
		if keep > prevKeep {
			keep = prevKeep
		}
		if keep < len(scored) {
			scored = scored[:keep]
		}
		if len(scored) == 0 {
			e.log.Debug().Int("pass", pass).Msg("no chunk matched, stopping")
			return nil, nil
		}

		top := scored[0].Score
		e.log.Debug().
			Int("pass", pass).
			Int("active", len(active)).
			Int("kept", len(scored)).
			Float64("top_score", top).
			Msg("retrieval pass")

		narrowed = scored
		if pass > 1 && top-prevTop <= e.epsilon {
			e.log.Debug().Int("pass", pass).Float64("gain", top-prevTop).Msg("early stop")
			return narrowed, nil
		}
		prevTop = top
		prevKeep = len(scored)

		if pass < depth {
			active = chunksOf(scored)
			current = refineQuery(query, scored, e.refineFromTop)
		}
	}
	return narrowed, nil
}

// scorePass scores every active chunk against the current query and
// returns the positive-scoring chunks ordered by descending score, with
// ties broken by corpus insertion order.
func (e *Engine) scorePass(active []domain.Chunk, query string) []domain.ScoredChunk {
	scored := make([]domain.ScoredChunk, 0, len(active))
	for _, ch := range active {
		s := e.scorer.Score(query, ch.Text)
		if s <= 0 {
			continue
		}
		scored = append(scored, domain.ScoredChunk{Chunk: ch, Score: s})
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Chunk.Ord < scored[j].Chunk.Ord
	})
	return scored
}

func (e *Engine) keepCount(pass int) int {
	idx := pass - 1
	if idx >= len(e.topK) {
		idx = len(e.topK) - 1
	}
	k := e.topK[idx]
	if k < 1 {
		k = 1
	}
	return k
}

// refineQuery derives a focused sub-query for the next pass from the
// leading sentences of the current top chunks.
func refineQuery(query string, scored []domain.ScoredChunk, fromTop int) string {
	if fromTop > len(scored) {
		fromTop = len(scored)
	}
	var leads []string
	for _, sc := range scored[:fromTop] {
		if lead := leadingSentence(sc.Chunk.Text); lead != "" {
			leads = append(leads, lead)
		}
	}
	if len(leads) == 0 {
		return query
	}
	return query + " Focus on: " + strings.Join(leads, " ")
}

func leadingSentence(text string) string {
	if s := sentenceRe.FindString(text); s != "" {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(text)
}

func chunksOf(scored []domain.ScoredChunk) []domain.Chunk {
	chunks := make([]domain.Chunk, len(scored))
	for i, sc := range scored {
		chunks[i] = sc.Chunk
	}
	return chunks
}
