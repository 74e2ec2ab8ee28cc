package rag

import (
	"context"
	"errors"
	"sync"

	"docqa/internal/model"
)

// memStore is an in-memory RecordStore for tests.
type memStore struct {
	mu      sync.Mutex
	records []model.EmbeddingRecord
	failAll bool
}

func (s *memStore) CreateBatch(records []model.EmbeddingRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll {
		return errors.New("store is unwritable")
	}
	for i := range records {
		records[i].ID = uint(len(s.records) + i + 1)
	}
	s.records = append(s.records, records...)
	return nil
}

func (s *memStore) ListAll() ([]model.EmbeddingRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll {
		return nil, errors.New("store is unreadable")
	}
	out := make([]model.EmbeddingRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

// stubEmbedder maps exact texts to fixed vectors; unknown texts get a
// constant fallback so tests stay deterministic.
type stubEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (e *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	if v, ok := e.vectors[text]; ok {
		return v, nil
	}
	return []float32{1, 0, 0}, nil
}

func (e *stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := e.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// stubRetriever returns canned chunks or a canned error.
type stubRetriever struct {
	chunks []model.Chunk
	err    error

	lastQuery     string
	lastK         int
	lastDiversity float64
}

func (r *stubRetriever) Query(_ context.Context, text string, k int, diversity float64) ([]model.Chunk, error) {
	r.lastQuery = text
	r.lastK = k
	r.lastDiversity = diversity
	if r.err != nil {
		return nil, r.err
	}
	return r.chunks, nil
}

// stubGenerator records the prompt it was given.
type stubGenerator struct {
	answer     string
	err        error
	lastPrompt string
}

func (g *stubGenerator) Complete(_ context.Context, prompt string) (string, error) {
	g.lastPrompt = prompt
	if g.err != nil {
		return "", g.err
	}
	return g.answer, nil
}

// stubIndexer records added chunks.
type stubIndexer struct {
	added [][]model.Chunk
	err   error
}

func (s *stubIndexer) Add(_ context.Context, chunks []model.Chunk) error {
	if s.err != nil {
		return s.err
	}
	s.added = append(s.added, chunks)
	return nil
}

func unitVector(dim, axis int) []float32 {
	v := make([]float32, dim)
	v[axis] = 1
	return v
}
