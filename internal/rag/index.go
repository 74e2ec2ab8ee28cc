package rag

import (
	"context"
	"fmt"
	"sync"

	"docqa/internal/ai"
	"docqa/internal/model"
)

const (
	DefaultTopK      = 3
	DefaultDiversity = 0.5

	// DashScope and similar APIs often limit batch size.
	embeddingBatchSize = 10
)

// RecordStore is the durable backing store for embedding records.
// CreateBatch must persist a batch atomically: a concurrent reader sees
// either the whole batch or none of it.
type RecordStore interface {
	CreateBatch(records []model.EmbeddingRecord) error
	ListAll() ([]model.EmbeddingRecord, error)
}

// VectorIndex embeds chunks and stores them durably, and answers
// similarity queries with diversity-aware (maximal marginal relevance)
// selection. Writes are serialized; reads never observe a partial batch.
type VectorIndex struct {
	store    RecordStore
	embedder ai.EmbeddingService

	mu sync.Mutex // serializes Add
}

func NewVectorIndex(store RecordStore, embedder ai.EmbeddingService) *VectorIndex {
	return &VectorIndex{store: store, embedder: embedder}
}

// Add embeds every chunk's content and persists the (content, vector)
// pairs as one batch. Returns ErrIndexWrite when the backing store
// rejects the write.
func (x *VectorIndex) Add(ctx context.Context, chunks []model.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Content
	}

	var embeddings [][]float32
	for i := 0; i < len(texts); i += embeddingBatchSize {
		end := i + embeddingBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := x.embedder.EmbedBatch(ctx, texts[i:end])
		if err != nil {
			return err
		}
		embeddings = append(embeddings, batch...)
	}
	if len(embeddings) != len(chunks) {
		return fmt.Errorf("%w: embedding count mismatch", ErrIndexWrite)
	}

	records := make([]model.EmbeddingRecord, len(chunks))
	for i := range chunks {
		records[i] = model.EmbeddingRecord{
			DocumentID: chunks[i].DocumentID,
			ChunkIndex: chunks[i].Index,
			Content:    chunks[i].Content,
		}
		records[i].SetEmbedding(embeddings[i])
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	if err := x.store.CreateBatch(records); err != nil {
		return fmt.Errorf("%w: %v", ErrIndexWrite, err)
	}
	return nil
}

// Query returns up to k chunks for the text, ranked by maximal marginal
// relevance with the given diversity weight in [0,1] (1 = pure relevance,
// 0 = maximum spread). Returns ErrIndexEmpty when nothing has ever been
// added.
func (x *VectorIndex) Query(ctx context.Context, text string, k int, diversity float64) ([]model.Chunk, error) {
	if k <= 0 {
		k = DefaultTopK
	}

	records, err := x.store.ListAll()
	if err != nil {
		return nil, fmt.Errorf("load index records failed: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrIndexEmpty
	}

	queryVec, err := x.embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	vectors := make([][]float32, len(records))
	for i := range records {
		vectors[i] = records[i].EmbeddingVector()
	}

	picks := maximalMarginalRelevance(queryVec, vectors, k, diversity)
	chunks := make([]model.Chunk, len(picks))
	for i, p := range picks {
		chunks[i] = records[p].Chunk()
	}
	return chunks, nil
}
