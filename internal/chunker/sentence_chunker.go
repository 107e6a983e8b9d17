package chunker

import (
	"regexp"
	"strconv"
	"strings"

	"recurag/internal/domain"
)

var sentenceRe = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)

// SentenceChunker splits text into sentence-aligned chunks with overlap.
// Chunk boundaries never fall inside a sentence.
type SentenceChunker struct {
	sentencesPerChunk int
	overlapSentences  int
}

func NewSentenceChunker(sentencesPerChunk, overlapSentences int) *SentenceChunker {
	if sentencesPerChunk <= 0 {
		sentencesPerChunk = 5
	}
	if overlapSentences < 0 {
		overlapSentences = 0
	}
	if overlapSentences >= sentencesPerChunk {
		overlapSentences = sentencesPerChunk - 1
	}
	return &SentenceChunker{
		sentencesPerChunk: sentencesPerChunk,
		overlapSentences:  overlapSentences,
	}
}

func (c *SentenceChunker) Chunk(document domain.Document) ([]domain.Chunk, error) {
	locs := sentenceRe.FindAllStringIndex(document.Content, -1)
	type span struct {
		text       string
		start, end int
	}
	var sentences []span
	for _, loc := range locs {
		text := strings.TrimSpace(document.Content[loc[0]:loc[1]])
		if text == "" {
			continue
		}
		sentences = append(sentences, span{text: text, start: loc[0], end: loc[1]})
	}
	if len(sentences) == 0 {
		trimmed := strings.TrimSpace(document.Content)
		if trimmed == "" {
			return nil, nil
		}
		sentences = []span{{text: trimmed, start: 0, end: len(document.Content)}}
	}

	var chunks []domain.Chunk
	i := 0
	idx := 0
	for i < len(sentences) {
		end := i + c.sentencesPerChunk
		if end > len(sentences) {
			end = len(sentences)
		}
		parts := make([]string, 0, end-i)
		for _, s := range sentences[i:end] {
			parts = append(parts, s.text)
		}
		chunks = append(chunks, domain.Chunk{
			DocumentID: document.ID,
			Source:     document.Path,
			ChunkID:    document.ID + ":" + strconv.Itoa(idx),
			Text:       strings.Join(parts, " "),
			Index:      idx,
			Start:      sentences[i].start,
			End:        sentences[end-1].end,
		})
		if end == len(sentences) {
			break
		}
		i = end - c.overlapSentences
		idx++
	}
	return chunks, nil
}
