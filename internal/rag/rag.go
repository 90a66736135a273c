// Package rag answers questions against an ingested collection: embed the
// question, retrieve the nearest chunks, stuff them into a prompt, ask the
// chat model.
package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/philippgille/chromem-go"
	"github.com/rs/zerolog"
	"github.com/tmc/langchaingo/llms"

	"simplegpt/internal/embedding"
	"simplegpt/internal/models"
	"simplegpt/internal/prompt"
)

const systemMessage = "You are a helpful assistant answering questions using only the provided context."

// Searcher is the retrieval slice of the vector store.
type Searcher interface {
	Search(ctx context.Context, collection string, queryEmbedding []float32, k int) ([]chromem.Result, error)
}

// ChatModel is the completion slice of the langchaingo model interface.
type ChatModel interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

// Request is one retrieval-augmented question.
type Request struct {
	Question   string `json:"question"`
	Collection string `json:"collection"`
	// Prompt names the template to use; empty selects the default.
	Prompt string `json:"prompt"`
}

// Service ties retrieval and generation together.
type Service struct {
	embedder embedding.Embedder
	store    Searcher
	chat     ChatModel
	prompts  *prompt.Registry
	k        int
	log      zerolog.Logger
}

func NewService(embedder embedding.Embedder, store Searcher, chat ChatModel, prompts *prompt.Registry, k int, log zerolog.Logger) *Service {
	return &Service{
		embedder: embedder,
		store:    store,
		chat:     chat,
		prompts:  prompts,
		k:        k,
		log:      log,
	}
}

// Query answers req against its collection. Sources lists the origin of every
// retrieved chunk in retrieval order; the same source appears once per chunk.
func (s *Service) Query(ctx context.Context, req Request) (*models.QueryResult, error) {
	if strings.TrimSpace(req.Question) == "" {
		return nil, errors.New("question must not be empty")
	}
	if req.Collection == "" {
		return nil, errors.New("collection must not be empty")
	}

	vec, err := s.embedder.EmbedQuery(ctx, req.Question)
	if err != nil {
		return nil, fmt.Errorf("embedding question: %w", err)
	}

	results, err := s.store.Search(ctx, req.Collection, embedding.NormalizeVector(vec), s.k)
	if err != nil {
		return nil, err
	}
	s.log.Debug().Int("results", len(results)).Str("collection", req.Collection).Msg("retrieved chunks")

	contexts := make([]string, 0, len(results))
	sources := make([]string, 0, len(results))
	for _, r := range results {
		contexts = append(contexts, r.Content)
		sources = append(sources, r.Metadata["source"])
	}

	rendered, err := s.prompts.Render(req.Prompt, strings.Join(contexts, "\n\n"), req.Question)
	if err != nil {
		return nil, err
	}

	messages := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextContent{Text: systemMessage}},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextContent{Text: rendered}},
		},
	}

	resp, err := s.chat.GenerateContent(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("generating answer: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("chat model returned no choices")
	}

	return &models.QueryResult{
		Answer:  resp.Choices[0].Content,
		Sources: sources,
	}, nil
}
