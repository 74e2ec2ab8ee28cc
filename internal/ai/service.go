package ai

import (
	"context"
	"errors"
)

var (
	ErrEmbeddingService  = errors.New("embedding service failed")
	ErrGenerationService = errors.New("generative text service failed")
)

// EmbeddingService turns text into a fixed-dimensionality vector.
// Deterministic for a fixed model version.
type EmbeddingService interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// GenerativeTextService produces a completion for an assembled prompt.
type GenerativeTextService interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
