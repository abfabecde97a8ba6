// Package ollama adapts the Ollama embeddings API to the retrieval
// Embedder interface. The same model must serve index builds and query
// embedding; mixing models silently ruins retrieval.
package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ollama/ollama/api"
)

const DefaultModel = "nomic-embed-text"

// Embedder generates embeddings through a running Ollama instance.
type Embedder struct {
	client *api.Client
	model  string
}

// NewEmbedder creates an embedder talking to the Ollama server at
// baseURL using the given model.
func NewEmbedder(baseURL, model string, httpClient *http.Client) (*Embedder, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama url %q: %w", baseURL, err)
	}
	if model == "" {
		model = DefaultModel
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Embedder{
		client: api.NewClient(u, httpClient),
		model:  model,
	}, nil
}

// Embed returns one vector per input text, in input order.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := e.client.Embed(ctx, &api.EmbedRequest{
		Model: e.model,
		Input: texts,
	})
	if err != nil {
		return nil, fmt.Errorf("ollama embed request failed: %w", err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("ollama returned %d embeddings for %d inputs", len(resp.Embeddings), len(texts))
	}
	return resp.Embeddings, nil
}

// Model returns the embedding model name, recorded for diagnostics.
func (e *Embedder) Model() string {
	return e.model
}
