package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBM25Scorer_Basics(t *testing.T) {
	s := NewBM25Scorer()
	require.NoError(t, s.Prepare([]string{
		"the cat sat on the mat",
		"dogs bark loudly outside",
		"cats and dogs coexist",
	}))

	assert.Zero(t, s.Score("submarine", "the cat sat on the mat"))
	assert.Greater(t, s.Score("cat", "the cat sat on the mat"), 0.0)
}

func TestBM25Scorer_RareTermOutweighsCommon(t *testing.T) {
	s := NewBM25Scorer()
	require.NoError(t, s.Prepare([]string{
		"alpha beta", "alpha gamma", "alpha delta",
	}))
	rare := s.Score("beta", "beta something")
	common := s.Score("alpha", "alpha something")
	assert.Greater(t, rare, common)
}

func TestBM25Scorer_PrepareRejectsEmptyCorpus(t *testing.T) {
	s := NewBM25Scorer()
	assert.Error(t, s.Prepare([]string{}))
}
