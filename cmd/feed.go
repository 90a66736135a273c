package cmd

import (
	"github.com/spf13/cobra"

	"simplegpt/internal/chromemdb"
	"simplegpt/internal/embedding"
	"simplegpt/internal/ingest"
)

var feedOpts struct {
	fromPath       string
	collectionName string
	dataType       string
	splitDocuments bool
	dbPath         string
	chunkSize      int
	chunkOverlap   int
}

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Ingest documents from a directory into a collection",
	RunE: func(cmd *cobra.Command, _ []string) error {
		embedder, err := embedding.New(cfg.Env)
		if err != nil {
			return err
		}

		store, err := chromemdb.NewStore(feedOpts.dbPath, embedding.ChromemFunc(embedder))
		if err != nil {
			return err
		}

		splitter := ingest.NewSplitter(feedOpts.chunkSize, feedOpts.chunkOverlap)
		pipeline := ingest.NewPipeline(store, embedder, splitter, log)

		stored, err := pipeline.Feed(cmd.Context(), ingest.Options{
			FromPath:       feedOpts.fromPath,
			Collection:     feedOpts.collectionName,
			DataType:       feedOpts.dataType,
			SplitDocuments: feedOpts.splitDocuments,
		})
		if err != nil {
			return err
		}

		log.Info().
			Int("chunks", stored).
			Str("collection", feedOpts.collectionName).
			Msg("feed complete")
		return nil
	},
}

func init() {
	feedCmd.Flags().StringVar(&feedOpts.fromPath, "from-path", "", "directory holding the documents to ingest")
	feedCmd.Flags().StringVar(&feedOpts.collectionName, "collection-name", "", "target collection")
	feedCmd.Flags().StringVar(&feedOpts.dataType, "data-type", "pdf", "document type to load: pdf or txt")
	feedCmd.Flags().BoolVar(&feedOpts.splitDocuments, "split-documents", false, "split documents into chunks before embedding")
	feedCmd.Flags().StringVar(&feedOpts.dbPath, "chromadb-persitent-path", "db", "vector database directory")
	feedCmd.Flags().IntVar(&feedOpts.chunkSize, "chunk-size", 600, "chunk size in characters")
	feedCmd.Flags().IntVar(&feedOpts.chunkOverlap, "chunk-overlap", 150, "chunk overlap in characters")

	_ = feedCmd.MarkFlagRequired("from-path")
	_ = feedCmd.MarkFlagRequired("collection-name")

	rootCmd.AddCommand(feedCmd)
}
