package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultK            = 5
	DefaultChunkSize    = 600
	DefaultChunkOverlap = 150
)

// Prompt is a named template from config.yaml. Templates use the
// {{.context}} and {{.question}} placeholders.
type Prompt struct {
	Name     string `yaml:"name"`
	Template string `yaml:"template"`
}

// Config holds the static configuration from config.yaml plus the
// environment-provided model and server settings.
type Config struct {
	K       int      `yaml:"k"`
	Prompts []Prompt `yaml:"prompts"`

	RAG RAGConfig `yaml:"rag"`

	Env Env `yaml:"-"`
}

type RAGConfig struct {
	ChunkSize    int `yaml:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`
}

// Env holds settings read from the environment (or a .env file). API keys never
// live in config.yaml.
type Env struct {
	OpenAIKey     string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	ChatModel     string `env:"CHAT_MODEL" envDefault:"gpt-3.5-turbo-16k"`

	// EmbeddingProvider selects which client backs the embedder: "openai" or
	// "ollama". Ingestion and query must use the same provider and model, or
	// retrieval quality silently degrades.
	EmbeddingProvider string `env:"EMBEDDING_PROVIDER" envDefault:"openai"`
	EmbeddingModel    string `env:"EMBEDDING_MODEL" envDefault:"text-embedding-ada-002"`
	OllamaBaseURL     string `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`

	ServerAddr string `env:"SERVER_ADDR" envDefault:":8501"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads config.yaml from path and the environment. A missing config file
// is not an error: the defaults cover everything but custom prompts.
func Load(path string) (*Config, error) {
	// Missing .env is fine, variables may be set externally.
	_ = godotenv.Load()

	// Defaults are seeded before unmarshalling so an explicit zero in the
	// file survives; chunk_overlap: 0 is a legal no-overlap configuration.
	cfg := &Config{
		K: DefaultK,
		RAG: RAGConfig{
			ChunkSize:    DefaultChunkSize,
			ChunkOverlap: DefaultChunkOverlap,
		},
	}
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if cfg.K <= 0 {
		cfg.K = DefaultK
	}
	if cfg.RAG.ChunkSize <= 0 {
		cfg.RAG.ChunkSize = DefaultChunkSize
	}
	if cfg.RAG.ChunkOverlap < 0 {
		cfg.RAG.ChunkOverlap = 0
	}

	if err := env.Parse(&cfg.Env); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	return cfg, nil
}
