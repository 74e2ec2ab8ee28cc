package rag

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/internal/model"
)

func TestVectorIndex_AddStoresEmbeddedChunks(t *testing.T) {
	store := &memStore{}
	embedder := &stubEmbedder{vectors: map[string][]float32{
		"first chunk":  unitVector(3, 0),
		"second chunk": unitVector(3, 1),
	}}
	index := NewVectorIndex(store, embedder)

	err := index.Add(context.Background(), []model.Chunk{
		{DocumentID: "d1", Index: 0, Content: "first chunk"},
		{DocumentID: "d1", Index: 1, Content: "second chunk"},
	})
	require.NoError(t, err)

	records, err := store.ListAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "first chunk", records[0].Content)
	assert.Equal(t, []float32{1, 0, 0}, records[0].EmbeddingVector())
	assert.Equal(t, "second chunk", records[1].Content)
	assert.Equal(t, []float32{0, 1, 0}, records[1].EmbeddingVector())
}

func TestVectorIndex_AddEmptyBatchIsNoop(t *testing.T) {
	store := &memStore{}
	index := NewVectorIndex(store, &stubEmbedder{})

	require.NoError(t, index.Add(context.Background(), nil))
	records, err := store.ListAll()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestVectorIndex_AddUnwritableStore(t *testing.T) {
	store := &memStore{failAll: true}
	index := NewVectorIndex(store, &stubEmbedder{})

	err := index.Add(context.Background(), []model.Chunk{{Content: "x"}})
	assert.ErrorIs(t, err, ErrIndexWrite)
}

func TestVectorIndex_QueryEmptyIndex(t *testing.T) {
	index := NewVectorIndex(&memStore{}, &stubEmbedder{})

	_, err := index.Query(context.Background(), "anything", 3, 0.5)
	assert.ErrorIs(t, err, ErrIndexEmpty)
}

func TestVectorIndex_QueryReturnsMostRelevantChunk(t *testing.T) {
	store := &memStore{}
	embedder := &stubEmbedder{vectors: map[string][]float32{
		"Paris is the capital of France.": {1, 0, 0},
		"Bananas are rich in potassium.":  {0, 1, 0},
		"The Seine flows through Paris.":  {0.9, 0.1, 0},
		"capital of France":               {1, 0, 0},
	}}
	index := NewVectorIndex(store, embedder)

	ctx := context.Background()
	require.NoError(t, index.Add(ctx, []model.Chunk{
		{DocumentID: "d1", Index: 0, Content: "Paris is the capital of France."},
		{DocumentID: "d1", Index: 1, Content: "Bananas are rich in potassium."},
		{DocumentID: "d2", Index: 0, Content: "The Seine flows through Paris."},
	}))

	chunks, err := index.Query(ctx, "capital of France", 1, 1.0)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "Paris is the capital of France.", chunks[0].Content)
	assert.Equal(t, "d1", chunks[0].DocumentID)
}

func TestVectorIndex_QueryCapsAtStoredCount(t *testing.T) {
	store := &memStore{}
	index := NewVectorIndex(store, &stubEmbedder{})

	ctx := context.Background()
	require.NoError(t, index.Add(ctx, []model.Chunk{{Content: "only one"}}))

	chunks, err := index.Query(ctx, "q", 5, 0.5)
	require.NoError(t, err)
	assert.Len(t, chunks, 1)
}

func TestVectorIndex_QueryDefaultsK(t *testing.T) {
	store := &memStore{}
	embedder := &stubEmbedder{vectors: map[string][]float32{}}
	index := NewVectorIndex(store, embedder)

	ctx := context.Background()
	var chunks []model.Chunk
	for _, content := range []string{"a", "b", "c", "d", "e"} {
		chunks = append(chunks, model.Chunk{Content: content})
	}
	require.NoError(t, index.Add(ctx, chunks))

	got, err := index.Query(ctx, "q", 0, 0.5)
	require.NoError(t, err)
	assert.Len(t, got, DefaultTopK)
}
