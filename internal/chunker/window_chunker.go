package chunker

import (
	"regexp"
	"strconv"
	"strings"

	"recurag/internal/domain"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// WindowChunker splits whitespace-normalized text into fixed-size,
// non-overlapping character windows. Windows are measured in runes so a
// multibyte character never straddles a boundary. The windows cover the
// normalized text with no gaps; Start/End are rune offsets into it.
type WindowChunker struct {
	windowChars int
}

func NewWindowChunker(windowChars int) *WindowChunker {
	if windowChars <= 0 {
		windowChars = 1600
	}
	return &WindowChunker{windowChars: windowChars}
}

func (c *WindowChunker) Chunk(document domain.Document) ([]domain.Chunk, error) {
	normalized := []rune(whitespaceRe.ReplaceAllString(strings.TrimSpace(document.Content), " "))
	if len(normalized) == 0 {
		return nil, nil
	}
	var chunks []domain.Chunk
	idx := 0
	for start := 0; start < len(normalized); start += c.windowChars {
		end := start + c.windowChars
		if end > len(normalized) {
			end = len(normalized)
		}
		chunks = append(chunks, domain.Chunk{
			DocumentID: document.ID,
			Source:     document.Path,
			ChunkID:    document.ID + ":" + strconv.Itoa(idx),
			Text:       string(normalized[start:end]),
			Index:      idx,
			Start:      start,
			End:        end,
		})
		idx++
	}
	return chunks, nil
}
