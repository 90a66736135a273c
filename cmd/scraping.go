package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"simplegpt/internal/scraper"
)

const (
	awsBaseURL = "https://aws.amazon.com"
	bg3BaseURL = "https://bg3.wiki/"
)

var scrapingOpts struct {
	target    string
	outputDir string
}

var scrapingCmd = &cobra.Command{
	Use:   "scraping",
	Short: "Scrape a documentation site into PDFs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		switch scrapingOpts.target {
		case "aws":
			s, err := scraper.NewAWSFAQScraper(awsBaseURL, scrapingOpts.outputDir, log)
			if err != nil {
				return err
			}
			return s.Run(cmd.Context())
		case "bg3":
			s, err := scraper.NewBG3Scraper(bg3BaseURL, scrapingOpts.outputDir, log)
			if err != nil {
				return err
			}
			return s.Run(cmd.Context())
		default:
			return fmt.Errorf("unknown scraping target: %q (supported: aws, bg3)", scrapingOpts.target)
		}
	},
}

func init() {
	scrapingCmd.Flags().StringVar(&scrapingOpts.target, "target", "", "site to scrape: aws or bg3")
	scrapingCmd.Flags().StringVar(&scrapingOpts.outputDir, "output-dir", "docs", "directory for the rendered PDFs")

	_ = scrapingCmd.MarkFlagRequired("target")

	rootCmd.AddCommand(scrapingCmd)
}
