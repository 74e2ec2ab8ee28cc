package rag

import (
	"unicode"

	"docqa/internal/config"
	"docqa/internal/model"
)

const (
	defaultChunkSize    = 400
	defaultChunkOverlap = 150

	// How far a cut may back off in search of a natural break.
	boundaryLookback = 80
)

// Chunker splits document text into overlapping rune windows. Cuts prefer
// natural boundaries (paragraph break, newline, sentence end, space) over
// hard mid-word cuts, best effort within a bounded lookback.
type Chunker struct {
	size    int
	overlap int
}

func NewChunker(cfg config.ChunkingConfig) *Chunker {
	size := cfg.Size
	if size <= 0 {
		size = defaultChunkSize
	}
	overlap := cfg.Overlap
	if overlap < 0 {
		overlap = defaultChunkOverlap
	}
	if overlap >= size {
		overlap = size / 2
	}
	return &Chunker{size: size, overlap: overlap}
}

// Split chunks every document independently; chunks never span two source
// documents. Identical input always yields an identical chunk sequence.
func (c *Chunker) Split(docs []model.Document) []model.Chunk {
	var chunks []model.Chunk
	for _, doc := range docs {
		for i, content := range c.splitText(doc.Text) {
			chunks = append(chunks, model.Chunk{
				DocumentID: doc.ID,
				Index:      i,
				Content:    content,
			})
		}
	}
	return chunks
}

func (c *Chunker) splitText(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	if len(runes) <= c.size {
		return []string{text}
	}

	var out []string
	start := 0
	for {
		end := start + c.size
		if end >= len(runes) {
			out = append(out, string(runes[start:]))
			break
		}
		end = adjustCut(runes, start, end)
		out = append(out, string(runes[start:end]))

		next := end - c.overlap
		if next <= start {
			next = end
		}
		start = next
	}
	return out
}

// adjustCut moves the cut position end back to the nearest natural break
// within boundaryLookback runes, preferring paragraph breaks over newlines
// over sentence ends over plain spaces. Returns end unchanged when the cut
// already falls on whitespace or no break is in reach.
func adjustCut(runes []rune, start, end int) int {
	if unicode.IsSpace(runes[end]) || unicode.IsSpace(runes[end-1]) {
		return end
	}
	lo := end - boundaryLookback
	if lo <= start {
		lo = start + 1
	}
	for j := end - 1; j >= lo; j-- {
		if runes[j] == '\n' && j > start && runes[j-1] == '\n' {
			return j + 1
		}
	}
	for j := end - 1; j >= lo; j-- {
		if runes[j] == '\n' {
			return j + 1
		}
	}
	for j := end - 1; j >= lo; j-- {
		if (runes[j] == '.' || runes[j] == '!' || runes[j] == '?') && unicode.IsSpace(runes[j+1]) {
			return j + 1
		}
	}
	for j := end - 1; j >= lo; j-- {
		if runes[j] == ' ' {
			return j + 1
		}
	}
	return end
}
