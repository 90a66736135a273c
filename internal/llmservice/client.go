// Package llmservice constructs the chat model used to answer questions.
package llmservice

import (
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"simplegpt/internal/config"
)

// NewChatModel creates the chat completion client from the configured
// OpenAI-compatible endpoint. Any server speaking the OpenAI API works,
// including local runtimes behind a compatible proxy.
func NewChatModel(env config.Env) (llms.Model, error) {
	llm, err := openai.New(
		openai.WithBaseURL(env.OpenAIBaseURL),
		openai.WithToken(env.OpenAIKey),
		openai.WithModel(env.ChatModel),
	)
	if err != nil {
		return nil, fmt.Errorf("initializing chat model: %w", err)
	}
	return llm, nil
}
