package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"docqa/internal/ai"
	"docqa/internal/model"
)

// Retriever is the read side of the vector index.
type Retriever interface {
	Query(ctx context.Context, text string, k int, diversity float64) ([]model.Chunk, error)
}

// AnswerGenerator answers a question from retrieved document context and
// the supplied conversation history.
type AnswerGenerator struct {
	retriever Retriever
	generator ai.GenerativeTextService
	topK      int
	diversity float64
}

func NewAnswerGenerator(retriever Retriever, generator ai.GenerativeTextService, topK int, diversity float64) *AnswerGenerator {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if diversity <= 0 || diversity > 1 {
		diversity = DefaultDiversity
	}
	return &AnswerGenerator{
		retriever: retriever,
		generator: generator,
		topK:      topK,
		diversity: diversity,
	}
}

// Answer retrieves relevant chunks, builds the grounded prompt, and
// returns the completion verbatim. An empty index is not an error: the
// prompt goes out with empty context and the model answers that it does
// not know. A failed generation call returns ErrGeneration; retrying is
// the caller's decision.
func (g *AnswerGenerator) Answer(ctx context.Context, question string, history []model.ConversationTurn) (string, error) {
	chunks, err := g.retriever.Query(ctx, question, g.topK, g.diversity)
	if err != nil && !errors.Is(err, ErrIndexEmpty) {
		return "", err
	}

	contents := make([]string, len(chunks))
	for i := range chunks {
		contents[i] = chunks[i].Content
	}
	contextBlock := strings.Join(contents, "\n\n")

	prompt := BuildPrompt(history, contextBlock, question)
	answer, err := g.generator.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	return answer, nil
}
