package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"simplegpt/internal/api"
	"simplegpt/internal/chromemdb"
	"simplegpt/internal/embedding"
	"simplegpt/internal/ingest"
	"simplegpt/internal/llmservice"
	"simplegpt/internal/prompt"
	"simplegpt/internal/rag"
)

var appOpts struct {
	dbPath string
}

var appCmd = &cobra.Command{
	Use:   "app",
	Short: "Run the question answering HTTP server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		embedder, err := embedding.New(cfg.Env)
		if err != nil {
			return err
		}

		store, err := chromemdb.NewStore(appOpts.dbPath, embedding.ChromemFunc(embedder))
		if err != nil {
			return err
		}

		chat, err := llmservice.NewChatModel(cfg.Env)
		if err != nil {
			return err
		}

		prompts := prompt.NewRegistry(cfg.Prompts)
		splitter := ingest.NewSplitter(cfg.RAG.ChunkSize, cfg.RAG.ChunkOverlap)
		pipeline := ingest.NewPipeline(store, embedder, splitter, log)
		service := rag.NewService(embedder, store, chat, prompts, cfg.K, log)

		server := api.NewServer(cfg.Env.ServerAddr, pipeline, service, store, prompts, log)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return server.ListenAndServe(ctx)
	},
}

func init() {
	appCmd.Flags().StringVar(&appOpts.dbPath, "chromadb-persitent-path", "db", "vector database directory")

	rootCmd.AddCommand(appCmd)
}
