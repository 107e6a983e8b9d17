package scorer

import (
	"errors"
	"math"
)

const (
	bm25K1 = 1.2
	bm25B  = 0.75
)

// BM25Scorer ranks texts with the Okapi BM25 formula using corpus-level
// document frequencies and average length collected during Prepare.
type BM25Scorer struct {
	df       map[string]int
	docs     float64
	avgLen   float64
	prepared bool
}

func NewBM25Scorer() *BM25Scorer {
	return &BM25Scorer{df: make(map[string]int)}
}

func (s *BM25Scorer) Name() string { return "bm25" }

func (s *BM25Scorer) Prepare(corpus []string) error {
	if len(corpus) == 0 {
		return errors.New("empty corpus for bm25 scorer prepare")
	}
	totalLen := 0
	for _, text := range corpus {
		tokens := Tokenize(text)
		totalLen += len(tokens)
		seen := make(map[string]struct{}, len(tokens))
		for _, t := range tokens {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			s.df[t]++
		}
	}
	s.docs = float64(len(corpus))
	s.avgLen = float64(totalLen) / s.docs
	if s.avgLen == 0 {
		s.avgLen = 1
	}
	s.prepared = true
	return nil
}

func (s *BM25Scorer) Score(query, text string) float64 {
	queryTerms := TokenSet(query)
	if len(queryTerms) == 0 {
		return 0
	}
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return 0
	}
	tf := make(map[string]int, len(tokens))
	for _, t := range tokens {
		tf[t]++
	}
	dl := float64(len(tokens))
	norm := bm25K1 * (1 - bm25B + bm25B*dl/s.avg())
	score := 0.0
	for term := range queryTerms {
		freq := float64(tf[term])
		if freq == 0 {
			continue
		}
		score += s.idf(term) * freq * (bm25K1 + 1) / (freq + norm)
	}
	return score
}

func (s *BM25Scorer) avg() float64 {
	if !s.prepared {
		return 1
	}
	return s.avgLen
}

func (s *BM25Scorer) idf(term string) float64 {
	if !s.prepared {
		return 1
	}
	df := float64(s.df[term])
	// Clamped to stay non-negative for very common terms
	return math.Max(0, math.Log(1+(s.docs-df+0.5)/(df+0.5)))
}
