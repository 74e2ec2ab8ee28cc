package model

import (
	"encoding/json"
	"time"
)

// EmbeddingRecord stores a chunk and its embedding vector in the index's
// backing store. The vector is stored as a JSON array of float32 for
// portability. Records are written once and never mutated.
type EmbeddingRecord struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	DocumentID string    `gorm:"size:64;index" json:"document_id"`
	ChunkIndex int       `json:"chunk_index"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Embedding  string    `gorm:"type:text" json:"-"` // JSON array of float32
	CreatedAt  time.Time `json:"created_at"`
}

// EmbeddingVector returns the parsed embedding slice; empty on parse error.
func (r *EmbeddingRecord) EmbeddingVector() []float32 {
	if r.Embedding == "" {
		return nil
	}
	var v []float32
	_ = json.Unmarshal([]byte(r.Embedding), &v)
	return v
}

// SetEmbedding stores the embedding as JSON.
func (r *EmbeddingRecord) SetEmbedding(vec []float32) {
	if len(vec) == 0 {
		r.Embedding = "[]"
		return
	}
	b, _ := json.Marshal(vec)
	r.Embedding = string(b)
}

// Chunk converts the stored record back into its retrieval form.
func (r *EmbeddingRecord) Chunk() Chunk {
	return Chunk{DocumentID: r.DocumentID, Index: r.ChunkIndex, Content: r.Content}
}
