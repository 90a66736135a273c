package ingest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simplegpt/internal/models"
)

func TestSplitterSplitsLongDocument(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 100; i++ {
		sb.WriteString("the quick brown fox jumps over the lazy dog. ")
	}
	doc := models.Document{Content: sb.String(), Source: "long.txt"}

	s := NewSplitter(600, 150)
	chunks, err := s.Split(doc)
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	for i, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk.Content), 600)
		assert.NotEmpty(t, chunk.Content)
		assert.Equal(t, "long.txt", chunk.Source)
		assert.Equal(t, i, chunk.Index)
	}
}

func TestSplitterOverlapAndCoverage(t *testing.T) {
	// Unique tokens so every chunk has exactly one position in the original.
	var sb strings.Builder
	for i := 0; sb.Len() < 1500; i++ {
		fmt.Fprintf(&sb, "word%04d ", i)
	}
	text := strings.TrimSpace(sb.String())

	s := NewSplitter(600, 150)
	chunks, err := s.Split(models.Document{Content: text, Source: "long.txt"})
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	prevEnd := 0
	for i, chunk := range chunks {
		start := strings.Index(text, chunk.Content)
		require.GreaterOrEqual(t, start, 0, "chunk %d must be a substring of the original", i)
		end := start + len(chunk.Content)

		if i == 0 {
			assert.Zero(t, start, "first chunk must start the document")
		} else {
			assert.LessOrEqual(t, start, prevEnd, "chunk %d must not leave a gap", i)
			assert.LessOrEqual(t, prevEnd-start, 150, "adjacent chunks share at most the configured overlap")
			assert.Greater(t, end, prevEnd, "chunk %d must advance past its predecessor", i)
		}
		prevEnd = end
	}
	assert.Equal(t, len(text), prevEnd, "last chunk must end the document")
}

func TestSplitterShortDocumentSingleChunk(t *testing.T) {
	doc := models.Document{Content: "short text", Source: "short.txt"}

	s := NewSplitter(600, 150)
	chunks, err := s.Split(doc)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "short text", chunks[0].Content)
	assert.Equal(t, 0, chunks[0].Index)
}
