// Package ingest feeds documents from disk into a vector store collection:
// load, optionally split, embed, upsert.
package ingest

import (
	"context"
	"fmt"

	"github.com/philippgille/chromem-go"
	"github.com/rs/zerolog"

	"simplegpt/internal/embedding"
	"simplegpt/internal/models"
)

// Storer is the slice of the vector store the pipeline needs.
type Storer interface {
	AddDocuments(ctx context.Context, collection string, docs []chromem.Document) error
}

// Options controls one feed run.
type Options struct {
	// FromPath is the directory holding the files to ingest.
	FromPath string
	// Collection names the target collection, created on first use.
	Collection string
	// DataType selects which files to load, "pdf" or "txt".
	DataType string
	// SplitDocuments enables chunking; when false each file becomes a single
	// chunk regardless of size.
	SplitDocuments bool
}

// Pipeline runs feeds end to end.
type Pipeline struct {
	store    Storer
	embedder embedding.Embedder
	splitter *Splitter
	log      zerolog.Logger
}

func NewPipeline(store Storer, embedder embedding.Embedder, splitter *Splitter, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		store:    store,
		embedder: embedder,
		splitter: splitter,
		log:      log,
	}
}

// Feed loads the directory, chunks the documents if requested, embeds every
// chunk and upserts the batch into the collection. The data type is validated
// before anything else runs, so an invalid feed never creates a collection.
// Returns the number of chunks stored.
func (p *Pipeline) Feed(ctx context.Context, opts Options) (int, error) {
	if !SupportedDataType(opts.DataType) {
		return 0, fmt.Errorf("%w: %s", ErrInvalidDataType, opts.DataType)
	}

	docs, err := LoadDir(opts.FromPath, opts.DataType)
	if err != nil {
		return 0, err
	}
	p.log.Info().Int("documents", len(docs)).Str("path", opts.FromPath).Msg("loaded documents")
	if len(docs) == 0 {
		return 0, nil
	}

	chunks, err := p.chunk(docs, opts.SplitDocuments)
	if err != nil {
		return 0, err
	}

	records := make([]chromem.Document, 0, len(chunks))
	for _, chunk := range chunks {
		vec, err := p.embedder.EmbedQuery(ctx, chunk.Content)
		if err != nil {
			return 0, fmt.Errorf("embedding chunk %d of %s: %w", chunk.Index, chunk.Source, err)
		}
		records = append(records, chromem.Document{
			ID:        fmt.Sprintf("%s-%d", chunk.Source, chunk.Index),
			Content:   chunk.Content,
			Embedding: embedding.NormalizeVector(vec),
			Metadata: map[string]string{
				"source": chunk.Source,
				"chunk":  fmt.Sprintf("%d", chunk.Index),
			},
		})
	}

	if err := p.store.AddDocuments(ctx, opts.Collection, records); err != nil {
		return 0, err
	}
	p.log.Info().
		Int("chunks", len(records)).
		Str("collection", opts.Collection).
		Msg("stored chunks")
	return len(records), nil
}

func (p *Pipeline) chunk(docs []models.Document, split bool) ([]models.Chunk, error) {
	var chunks []models.Chunk
	for _, doc := range docs {
		if !split {
			chunks = append(chunks, models.Chunk{Content: doc.Content, Source: doc.Source})
			continue
		}
		parts, err := p.splitter.Split(doc)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, parts...)
	}
	return chunks, nil
}
