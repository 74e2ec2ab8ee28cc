package eval

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"docqa/internal/ai"
	"docqa/internal/model"
	"docqa/internal/rag"
)

const (
	defaultFaithfulnessThreshold = 0.6
)

// Answerer is the answer-generation contract the harness scores.
type Answerer interface {
	Answer(ctx context.Context, question string, history []model.ConversationTurn) (string, error)
}

// Harness runs a labeled question set through retrieval and answer
// generation and aggregates quality metrics.
type Harness struct {
	retriever rag.Retriever
	answerer  Answerer
	embedder  ai.EmbeddingService
	topK      int
	threshold float64
}

func NewHarness(retriever rag.Retriever, answerer Answerer, embedder ai.EmbeddingService, topK int, faithfulnessThreshold float64) *Harness {
	if topK <= 0 {
		topK = rag.DefaultTopK
	}
	if faithfulnessThreshold <= 0 {
		faithfulnessThreshold = defaultFaithfulnessThreshold
	}
	return &Harness{
		retriever: retriever,
		answerer:  answerer,
		embedder:  embedder,
		topK:      topK,
		threshold: faithfulnessThreshold,
	}
}

// SampleResult holds the per-question scores.
type SampleResult struct {
	Question       string  `json:"question"`
	Answer         string  `json:"answer"`
	ContextRecall  float64 `json:"context_recall"`
	Similarity     float64 `json:"similarity"`
	Faithfulness   float64 `json:"faithfulness"`
	LatencySeconds float64 `json:"latency_seconds"`
}

// Report is the aggregate over all samples (arithmetic means; the
// hallucination rate is the fraction of samples whose faithfulness fell
// below the configured threshold).
type Report struct {
	Samples             int     `json:"samples"`
	ContextRecallAvg    float64 `json:"context_recall_avg"`
	AnswerSimilarityAvg float64 `json:"answer_similarity_avg"`
	FaithfulnessAvg     float64 `json:"faithfulness_avg"`
	HallucinationRate   float64 `json:"hallucination_rate"`
	AvgLatencySeconds   float64 `json:"avg_latency_seconds"`
}

// Evaluate scores every sample sequentially. Samples are read-only with
// respect to the index, so a failure on one sample aborts the run with
// the index untouched.
func (h *Harness) Evaluate(ctx context.Context, samples []Sample) (*Report, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: no samples", ErrDataset)
	}

	results := make([]SampleResult, 0, len(samples))
	for i, sample := range samples {
		res, err := h.evaluateSample(ctx, sample)
		if err != nil {
			return nil, fmt.Errorf("evaluate sample %d failed: %w", i, err)
		}
		results = append(results, res)
	}

	report := &Report{Samples: len(results)}
	hallucinations := 0
	for _, r := range results {
		report.ContextRecallAvg += r.ContextRecall
		report.AnswerSimilarityAvg += r.Similarity
		report.FaithfulnessAvg += r.Faithfulness
		report.AvgLatencySeconds += r.LatencySeconds
		if r.Faithfulness < h.threshold {
			hallucinations++
		}
	}
	n := float64(len(results))
	report.ContextRecallAvg /= n
	report.AnswerSimilarityAvg /= n
	report.FaithfulnessAvg /= n
	report.AvgLatencySeconds /= n
	report.HallucinationRate = float64(hallucinations) / n
	return report, nil
}

func (h *Harness) evaluateSample(ctx context.Context, sample Sample) (SampleResult, error) {
	chunks, err := h.retriever.Query(ctx, sample.Question, h.topK, rag.DefaultDiversity)
	if err != nil && !errors.Is(err, rag.ErrIndexEmpty) {
		return SampleResult{}, err
	}

	contents := make([]string, len(chunks))
	for i := range chunks {
		contents[i] = chunks[i].Content
	}
	contextText := strings.Join(contents, "\n")

	start := time.Now()
	answer, err := h.answerer.Answer(ctx, sample.Question, nil)
	if err != nil {
		return SampleResult{}, err
	}
	latency := time.Since(start).Seconds()

	similarity, err := h.semanticSimilarity(ctx, answer, sample.GroundTruth)
	if err != nil {
		return SampleResult{}, err
	}
	faithfulness, err := h.semanticSimilarity(ctx, answer, contextText)
	if err != nil {
		return SampleResult{}, err
	}

	return SampleResult{
		Question:       sample.Question,
		Answer:         answer,
		ContextRecall:  contextRecall(chunks, sample.GroundTruth),
		Similarity:     similarity,
		Faithfulness:   faithfulness,
		LatencySeconds: latency,
	}, nil
}

// contextRecall is 1 when the ground truth occurs verbatim
// (case-insensitive) in any retrieved chunk. A lexical containment
// heuristic: paraphrased ground truths score 0 even when the retrieval
// was semantically right.
func contextRecall(chunks []model.Chunk, groundTruth string) float64 {
	needle := strings.ToLower(groundTruth)
	for _, c := range chunks {
		if strings.Contains(strings.ToLower(c.Content), needle) {
			return 1
		}
	}
	return 0
}

// semanticSimilarity is the cosine similarity between the embeddings of
// two texts; 0 when either side is blank (nothing to embed).
func (h *Harness) semanticSimilarity(ctx context.Context, a, b string) (float64, error) {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return 0, nil
	}
	vecA, err := h.embedder.Embed(ctx, a)
	if err != nil {
		return 0, err
	}
	vecB, err := h.embedder.Embed(ctx, b)
	if err != nil {
		return 0, err
	}
	return rag.CosineSimilarity(vecA, vecB), nil
}
