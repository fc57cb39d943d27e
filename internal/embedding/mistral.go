package embedding

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// Embedder turns texts into fixed-length vectors, one per input text and in
// input order. An empty input yields an empty output, not an error.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	Name() string
}

// MistralEmbedder is the primary remote provider. Mistral's embedding
// endpoint is OpenAI-compatible, so the go-openai client is pointed at it
// with a custom base URL.
type MistralEmbedder struct {
	client *openai.Client
	model  string
}

func NewMistralEmbedder(apiKey, baseURL, model string) *MistralEmbedder {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = "mistral-embed"
	}
	return &MistralEmbedder{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (e *MistralEmbedder) Name() string { return "mistral" }

func (e *MistralEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, classify(e.Name(), err)
	}

	vectors := make([][]float32, len(resp.Data))
	for i, d := range resp.Data {
		vectors[i] = d.Embedding
	}
	return vectors, nil
}
