package openai

import (
	"context"

	"maichat/internal/domain"
)

// Embedder adapts the embeddings API to the single-query embedding need of
// the menu vector store.
type Embedder struct {
	client *Client
	model  string
}

// NewEmbedder creates an embedder bound to one embedding model.
func NewEmbedder(client *Client, model string) *Embedder {
	return &Embedder{
		client: client,
		model:  model,
	}
}

// EmbedQuery returns the embedding vector for a single text query.
func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.client.CreateEmbedding(ctx, &EmbeddingRequest{
		Model: e.model,
		Input: []string{text},
	})
	if err != nil {
		return nil, &domain.UpstreamError{Op: "embedding", Err: err}
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, &domain.InvalidModelResponseError{Message: "embedding response contains no vector"}
	}
	return resp.Data[0].Embedding, nil
}
