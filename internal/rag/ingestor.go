package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"docqa/internal/model"
	"docqa/internal/pkg/pdfextract"
)

// Indexer is the write side of the vector index.
type Indexer interface {
	Add(ctx context.Context, chunks []model.Chunk) error
}

// Ingestor turns uploaded PDF bytes into indexed chunks: one document per
// page with extractable text, chunked in a single batch so per-document
// boundaries are preserved.
type Ingestor struct {
	chunker *Chunker
	index   Indexer
	extract func(data []byte) ([]string, error)
}

func NewIngestor(chunker *Chunker, index Indexer) *Ingestor {
	return &Ingestor{
		chunker: chunker,
		index:   index,
		extract: pdfextract.Pages,
	}
}

// Ingest processes one uploaded PDF and returns the number of chunks
// stored. Pages without extractable text (e.g. scanned images) are
// skipped silently; a PDF with no extractable text at all stores nothing
// and is not an error. Malformed input returns ErrExtraction.
func (ing *Ingestor) Ingest(ctx context.Context, pdfBytes []byte, filename string) (int, error) {
	pages, err := ing.extract(pdfBytes)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	var docs []model.Document
	for i, page := range pages {
		if strings.TrimSpace(page) == "" {
			continue
		}
		docs = append(docs, model.Document{
			ID:       uuid.NewString(),
			Filename: filename,
			Page:     i + 1,
			Text:     page,
		})
	}

	chunks := ing.chunker.Split(docs)
	if len(chunks) == 0 {
		return 0, nil
	}
	if err := ing.index.Add(ctx, chunks); err != nil {
		return 0, err
	}
	return len(chunks), nil
}
