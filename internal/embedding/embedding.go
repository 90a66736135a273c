// Package embedding wires langchaingo embedding clients into the ingestion
// pipeline and the vector store. Ingestion and query must go through the same
// embedder: mixing embedding models silently ruins retrieval, nothing errors.
package embedding

import (
	"context"
	"fmt"
	"math"

	"github.com/philippgille/chromem-go"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"simplegpt/internal/config"
)

// Embedder is the minimal surface the pipeline and query service need. The
// langchaingo EmbedderImpl satisfies it; tests use stubs.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// New builds the embedder selected by the configured provider.
func New(env config.Env) (*embeddings.EmbedderImpl, error) {
	switch env.EmbeddingProvider {
	case "openai":
		return NewOpenAIEmbedder(env.OpenAIBaseURL, env.OpenAIKey, env.EmbeddingModel)
	case "ollama":
		return NewOllamaEmbedder(env.OllamaBaseURL, env.EmbeddingModel)
	default:
		return nil, fmt.Errorf("unknown embedding provider: %q", env.EmbeddingProvider)
	}
}

// NewOpenAIEmbedder creates an embedder backed by an OpenAI-compatible API.
func NewOpenAIEmbedder(baseURL, token, model string) (*embeddings.EmbedderImpl, error) {
	llm, err := openai.New(
		openai.WithBaseURL(baseURL),
		openai.WithToken(token),
		openai.WithModel(model),
		openai.WithEmbeddingModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("initializing openai client: %w", err)
	}
	return embeddings.NewEmbedder(llm)
}

// NewOllamaEmbedder creates an embedder backed by a local Ollama server.
func NewOllamaEmbedder(serverURL, model string) (*embeddings.EmbedderImpl, error) {
	llm, err := ollama.New(
		ollama.WithServerURL(serverURL),
		ollama.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("initializing ollama client: %w", err)
	}
	return embeddings.NewEmbedder(llm)
}

// NormalizeVector scales v to unit length so dot-product similarity behaves
// like cosine similarity. Zero vectors are returned unchanged.
func NormalizeVector(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}
	norm := float32(math.Sqrt(sum))
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}

// ChromemFunc adapts an Embedder into the vector store's embedding function,
// keeping text queries in the same embedding space as ingested chunks.
func ChromemFunc(e Embedder) chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		vec, err := e.EmbedQuery(ctx, text)
		if err != nil {
			return nil, err
		}
		return NormalizeVector(vec), nil
	}
}
