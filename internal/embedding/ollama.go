package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// OllamaEmbedder computes embeddings on a local Ollama daemon. The daemon
// loads the model into memory on the first call; that cost is paid once per
// process and amortized afterwards.
type OllamaEmbedder struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewOllamaEmbedder(baseURL, model string) *OllamaEmbedder {
	if model == "" {
		model = "nomic-embed-text"
	}
	return &OllamaEmbedder{
		baseURL: baseURL,
		model:   model,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

func (e *OllamaEmbedder) Name() string { return "ollama" }

type ollamaEmbedReq struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type ollamaEmbedResp struct {
	Embeddings [][]float32 `json:"embeddings"`
}

func (e *OllamaEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	body, _ := json.Marshal(ollamaEmbedReq{Model: e.model, Input: texts})
	httpReq, err := http.NewRequestWithContext(ctx, "POST", e.baseURL+"/api/embed", bytes.NewReader(body))
	if err != nil {
		return nil, &ProviderError{Provider: e.Name(), Kind: KindBadRequest, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return nil, &ProviderError{Provider: e.Name(), Kind: KindUnavailable, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		kind := KindCapacity
		if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusBadRequest {
			kind = KindBadRequest
		}
		return nil, &ProviderError{
			Provider: e.Name(),
			Kind:     kind,
			Err:      fmt.Errorf("status %d", resp.StatusCode),
		}
	}

	var oResp ollamaEmbedResp
	if err := json.NewDecoder(resp.Body).Decode(&oResp); err != nil {
		return nil, &ProviderError{Provider: e.Name(), Kind: KindUnknown, Err: err}
	}

	if len(oResp.Embeddings) != len(texts) {
		return nil, &ProviderError{
			Provider: e.Name(),
			Kind:     KindUnknown,
			Err:      fmt.Errorf("got %d embeddings for %d texts", len(oResp.Embeddings), len(texts)),
		}
	}
	return oResp.Embeddings, nil
}
