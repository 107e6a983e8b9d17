// Package service wires the chunker, scorer, router, engine, and
// summarizer into the question-answering core.
package service

import (
	"github.com/rs/zerolog"

	"recurag/internal/domain"
	"recurag/internal/engine"
)

// Service holds the corpus and answers queries against it. The corpus is
// built once and read-only afterwards, so concurrent Answer calls are
// safe without locking; all per-query state is local to the call.
type Service struct {
	chunker    domain.Chunker
	scorer     domain.Scorer
	router     domain.Router
	engine     *engine.Engine
	summarizer domain.Summarizer
	log        zerolog.Logger

	corpus []domain.Chunk
}

func New(chunker domain.Chunker, scorer domain.Scorer, router domain.Router, eng *engine.Engine, summarizer domain.Summarizer, log zerolog.Logger) *Service {
	return &Service{
		chunker:    chunker,
		scorer:     scorer,
		router:     router,
		engine:     eng,
		summarizer: summarizer,
		log:        log,
	}
}

// BuildCorpus chunks the documents and prepares the scorer's corpus
// statistics. Calling it again replaces the corpus entirely, which is the
// rebuild entry point tests use. Empty documents contribute no chunks and
// an empty document set is not an error.
func (s *Service) BuildCorpus(documents []domain.Document) error {
	var chunks []domain.Chunk
	var texts []string
	for _, doc := range documents {
		docChunks, err := s.chunker.Chunk(doc)
		if err != nil {
			return err
		}
		for _, ch := range docChunks {
			ch.Ord = len(chunks)
			chunks = append(chunks, ch)
			texts = append(texts, ch.Text)
		}
	}
	if len(texts) > 0 {
		if err := s.scorer.Prepare(texts); err != nil {
			return err
		}
	}
	s.corpus = chunks
	s.log.Info().
		Int("documents", len(documents)).
		Int("chunks", len(chunks)).
		Str("scorer", s.scorer.Name()).
		Msg("corpus built")
	return nil
}

// CorpusSize returns the number of chunks in the corpus.
func (s *Service) CorpusSize() int { return len(s.corpus) }

// Answer routes the query to a recursion depth, runs the retrieval
// passes, and renders the cited answer. Expected outcomes (empty corpus,
// nothing relevant) come back as a normal answer, not an error.
func (s *Service) Answer(query string) (domain.Answer, error) {
	decision, err := s.router.Route(query)
	if err != nil {
		return domain.Answer{}, err
	}
	s.log.Info().
		Int("depth", decision.Depth).
		Int("complexity", decision.Complexity).
		Str("reasoning", decision.Reasoning).
		Msg("query routed")

	narrowed, err := s.engine.Retrieve(s.corpus, query, decision.Depth)
	if err != nil {
		return domain.Answer{}, err
	}
	answer, err := s.summarizer.Summarize(narrowed, query)
	if err != nil {
		return domain.Answer{}, err
	}
	answer.Routing = decision
	if !answer.Found() && len(s.corpus) == 0 {
		answer.Reason = domain.NoAnswerEmptyCorpus
	}

	s.log.Info().
		Int("narrowed", len(narrowed)).
		Int("citations", len(answer.Citations)).
		Bool("found", answer.Found()).
		Msg("query answered")
	return answer, nil
}
