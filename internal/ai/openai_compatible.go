package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Options holds API settings for an OpenAI-compatible endpoint.
type Options struct {
	BaseURL        string
	APIKey         string
	Model          string
	EmbeddingModel string
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// OpenAICompatibleClient implements EmbeddingService and
// GenerativeTextService against any OpenAI-compatible HTTP API.
type OpenAICompatibleClient struct {
	opts       Options
	httpClient *http.Client
}

func NewOpenAICompatibleClient(opts Options) *OpenAICompatibleClient {
	return &OpenAICompatibleClient{
		opts:       opts,
		httpClient: &http.Client{Timeout: 90 * time.Second},
	}
}

// Embed returns the embedding vector for the given text.
func (c *OpenAICompatibleClient) Embed(ctx context.Context, text string) ([]float32, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: embedding input is empty", ErrEmbeddingService)
	}
	vectors, err := c.embed(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return nil, fmt.Errorf("%w: empty embedding in response", ErrEmbeddingService)
	}
	return vectors[0], nil
}

// EmbedBatch returns embeddings for multiple texts using array input.
func (c *OpenAICompatibleClient) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	vectors, err := c.embed(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("%w: expected %d embeddings, got %d", ErrEmbeddingService, len(texts), len(vectors))
	}
	return vectors, nil
}

func (c *OpenAICompatibleClient) embed(ctx context.Context, input interface{}) ([][]float32, error) {
	reqBody := map[string]interface{}{
		"model": c.opts.EmbeddingModel,
		"input": input,
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal request failed: %v", ErrEmbeddingService, err)
	}

	url := strings.TrimRight(c.opts.BaseURL, "/") + "/embeddings"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: build request failed: %v", ErrEmbeddingService, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingService, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response failed: %v", ErrEmbeddingService, err)
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d: %s", ErrEmbeddingService, resp.StatusCode, string(raw))
	}

	var parsed struct {
		Data []struct {
			Embedding []float32 `json:"embedding"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("%w: parse json failed: %v", ErrEmbeddingService, err)
	}
	result := make([][]float32, len(parsed.Data))
	for i := range parsed.Data {
		result[i] = parsed.Data[i].Embedding
	}
	return result, nil
}

// Complete submits the prompt as a single user message and returns the
// completion text verbatim.
func (c *OpenAICompatibleClient) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody := map[string]interface{}{
		"model":    c.opts.Model,
		"messages": []chatMessage{{Role: "user", Content: prompt}},
		"stream":   false,
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("%w: marshal request failed: %v", ErrGenerationService, err)
	}

	url := strings.TrimRight(c.opts.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("%w: build request failed: %v", ErrGenerationService, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationService, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response failed: %v", ErrGenerationService, err)
	}
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status %d: %s", ErrGenerationService, resp.StatusCode, string(raw))
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("%w: parse json failed: %v", ErrGenerationService, err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", ErrGenerationService)
	}
	return parsed.Choices[0].Message.Content, nil
}
