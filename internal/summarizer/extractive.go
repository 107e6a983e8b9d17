package summarizer

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"recurag/internal/config"
	"recurag/internal/domain"
)

// NoInformationText is the sentinel answer used when nothing relevant is
// found. The engine never fabricates content.
const NoInformationText = "I could not find relevant information in the local context."

var sentenceRe = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)

// Extractive selects the sentences most relevant to the query from the
// narrowed chunk set and renders them with their source citations.
type Extractive struct {
	scorer       domain.Scorer
	maxSentences int
	floor        float64
}

func NewExtractive(scorer domain.Scorer, cfg config.SummarizerConfig) *Extractive {
	maxSentences := cfg.MaxSentences
	if maxSentences <= 0 {
		maxSentences = 4
	}
	return &Extractive{scorer: scorer, maxSentences: maxSentences, floor: cfg.RelevanceFloor}
}

type candidate struct {
	sentence string
	chunkOrd int
	position int
	source   string
	chunkID  string
	score    float64
}

// Summarize scores every sentence of the narrowed chunks against the
// query and returns the top ones as a cited answer. When no sentence
// clears the relevance floor it returns the no-information sentinel
// rather than inventing an answer.
func (s *Extractive) Summarize(results []domain.ScoredChunk, query string) (domain.Answer, error) {
	if strings.TrimSpace(query) == "" {
		return domain.Answer{}, domain.ErrEmptyQuery
	}
	if len(results) == 0 {
		return domain.Answer{Text: NoInformationText, Reason: domain.NoAnswerNoMatch}, nil
	}

	// Overlapping chunks repeat sentences; keep the first occurrence only.
	seen := make(map[string]struct{})
	var candidates []candidate
	for _, res := range results {
		for pos, sentence := range splitSentences(res.Chunk.Text) {
			if _, ok := seen[sentence]; ok {
				continue
			}
			seen[sentence] = struct{}{}
			score := s.scorer.Score(query, sentence)
			if score <= s.floor {
				continue
			}
			candidates = append(candidates, candidate{
				sentence: sentence,
				chunkOrd: res.Chunk.Ord,
				position: pos,
				source:   res.Chunk.Source,
				chunkID:  res.Chunk.ChunkID,
				score:    score,
			})
		}
	}
	if len(candidates) == 0 {
		return domain.Answer{Text: NoInformationText, Reason: domain.NoAnswerNoMatch}, nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		if candidates[i].chunkOrd != candidates[j].chunkOrd {
			return candidates[i].chunkOrd < candidates[j].chunkOrd
		}
		return candidates[i].position < candidates[j].position
	})
	if len(candidates) > s.maxSentences {
		candidates = candidates[:s.maxSentences]
	}

	citations := make([]domain.Citation, len(candidates))
	for i, c := range candidates {
		citations[i] = domain.Citation{
			Sentence: c.sentence,
			Source:   c.source,
			ChunkID:  c.chunkID,
			Score:    c.score,
		}
	}
	return domain.Answer{
		Citations: citations,
		Text:      render(citations),
		Reason:    domain.AnswerFound,
	}, nil
}

func render(citations []domain.Citation) string {
	var b strings.Builder
	b.WriteString("Key findings:\n")
	for _, c := range citations {
		fmt.Fprintf(&b, "- %s [%s, %s]\n", c.Sentence, c.Source, c.ChunkID)
	}
	return strings.TrimRight(b.String(), "\n")
}

func splitSentences(text string) []string {
	raw := sentenceRe.FindAllString(text, -1)
	if len(raw) == 0 {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return nil
		}
		return []string{trimmed}
	}
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
