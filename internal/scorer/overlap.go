package scorer

import (
	"errors"
	"math"
)

// OverlapScorer scores a (query, text) pair by IDF-weighted term coverage:
// the fraction of the query's significant terms found in the text, each
// term weighted by its rarity in the corpus. Scores are in [0, 1]: zero
// for disjoint vocabularies, 1 when every query term appears in the text.
type OverlapScorer struct {
	idf      map[string]float64
	oovIDF   float64
	prepared bool
}

func NewOverlapScorer() *OverlapScorer {
	return &OverlapScorer{idf: make(map[string]float64)}
}

func (s *OverlapScorer) Name() string { return "overlap" }

// Prepare computes document frequencies over the corpus texts. It may be
// called once; Score is a pure function of the pair afterwards.
func (s *OverlapScorer) Prepare(corpus []string) error {
	if len(corpus) == 0 {
		return errors.New("empty corpus for overlap scorer prepare")
	}
	df := make(map[string]int)
	for _, text := range corpus {
		for term := range TokenSet(text) {
			df[term]++
		}
	}
	n := float64(len(corpus))
	s.idf = make(map[string]float64, len(df))
	for term, count := range df {
		// Smoothed IDF
		s.idf[term] = math.Log((1+n)/(1+float64(count))) + 1.0
	}
	s.oovIDF = math.Log(1+n) + 1.0
	s.prepared = true
	return nil
}

func (s *OverlapScorer) Score(query, text string) float64 {
	queryTerms := TokenSet(query)
	if len(queryTerms) == 0 {
		return 0
	}
	textTerms := TokenSet(text)
	var hit, total float64
	for term := range queryTerms {
		w := s.weight(term)
		total += w
		if _, ok := textTerms[term]; ok {
			hit += w
		}
	}
	if total == 0 {
		return 0
	}
	return hit / total
}

// weight falls back to uniform weighting when Prepare has not run, so the
// scorer stays usable on ad-hoc text (sentence-level scoring, tests).
func (s *OverlapScorer) weight(term string) float64 {
	if !s.prepared {
		return 1.0
	}
	if w, ok := s.idf[term]; ok {
		return w
	}
	return s.oovIDF
}
