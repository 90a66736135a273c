// Package cmd defines the command line interface: feed documents into the
// vector store, scrape source sites into PDFs, and run the HTTP app.
package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"simplegpt/internal/config"
)

var (
	cfg *config.Config
	log zerolog.Logger

	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "simplegpt",
	Short: "Question answering over scraped documentation",
	Long: `simplegpt scrapes documentation sites into PDFs, feeds documents
into a local vector database, and answers questions against them with a
retrieval-augmented chat model.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		level, err := zerolog.ParseLevel(cfg.Env.LogLevel)
		if err != nil {
			level = zerolog.InfoLevel
		}
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()
		return nil
	},
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to the configuration file")
}
