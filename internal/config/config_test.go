package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultK, cfg.K)
	assert.Equal(t, DefaultChunkSize, cfg.RAG.ChunkSize)
	assert.Equal(t, DefaultChunkOverlap, cfg.RAG.ChunkOverlap)
	assert.Empty(t, cfg.Prompts)

	assert.Equal(t, "https://api.openai.com/v1", cfg.Env.OpenAIBaseURL)
	assert.Equal(t, "openai", cfg.Env.EmbeddingProvider)
	assert.Equal(t, ":8501", cfg.Env.ServerAddr)
	assert.Equal(t, "info", cfg.Env.LogLevel)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
k: 3
rag:
  chunk_size: 400
  chunk_overlap: 100
prompts:
  - name: concise
    template: "{{.context}} {{.question}}"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.K)
	assert.Equal(t, 400, cfg.RAG.ChunkSize)
	assert.Equal(t, 100, cfg.RAG.ChunkOverlap)
	require.Len(t, cfg.Prompts, 1)
	assert.Equal(t, "concise", cfg.Prompts[0].Name)
}

func TestLoadZeroChunkOverlap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
rag:
  chunk_overlap: 0
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	// An explicit zero is a legal no-overlap setting, not "unset".
	assert.Zero(t, cfg.RAG.ChunkOverlap)
	assert.Equal(t, DefaultChunkSize, cfg.RAG.ChunkSize)
}

func TestLoadNegativeChunkOverlapClamped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
rag:
  chunk_overlap: -10
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Zero(t, cfg.RAG.ChunkOverlap)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("EMBEDDING_PROVIDER", "ollama")
	t.Setenv("EMBEDDING_MODEL", "nomic-embed-text")
	t.Setenv("SERVER_ADDR", ":9000")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "ollama", cfg.Env.EmbeddingProvider)
	assert.Equal(t, "nomic-embed-text", cfg.Env.EmbeddingModel)
	assert.Equal(t, ":9000", cfg.Env.ServerAddr)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("k: [not an int"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
