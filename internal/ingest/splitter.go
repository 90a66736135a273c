package ingest

import (
	"fmt"

	"github.com/tmc/langchaingo/textsplitter"

	"simplegpt/internal/models"
)

// Splitter cuts documents into overlapping chunks sized for embedding.
type Splitter struct {
	inner textsplitter.RecursiveCharacter
}

// NewSplitter builds a recursive character splitter with the given chunk size
// and overlap, both measured in characters.
func NewSplitter(chunkSize, chunkOverlap int) *Splitter {
	return &Splitter{
		inner: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(chunkSize),
			textsplitter.WithChunkOverlap(chunkOverlap),
		),
	}
}

// Split cuts doc into chunks that inherit the document's source. The index
// records each chunk's position within its parent.
func (s *Splitter) Split(doc models.Document) ([]models.Chunk, error) {
	parts, err := s.inner.SplitText(doc.Content)
	if err != nil {
		return nil, fmt.Errorf("splitting %s: %w", doc.Source, err)
	}

	chunks := make([]models.Chunk, 0, len(parts))
	for i, part := range parts {
		chunks = append(chunks, models.Chunk{
			Content: part,
			Source:  doc.Source,
			Index:   i,
		})
	}
	return chunks, nil
}
