package scraper

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

// Selectors for the AWS FAQ listing and content pages. Markup changes on the
// site only need edits here.
const (
	awsFAQIndexPath     = "/faqs/"
	awsLinkContainerSel = "div.aws-text-box"
	awsBreadcrumbSel    = "div.lb-breadcrumbs.lb-breadcrumbs-dropTitle"
	awsNoPadGridSel     = "div.lb-none-pad.lb-grid"
	awsContentColSel    = "div.lb-col.lb-tiny-24.lb-mid-24"
)

// faqLink pairs a discovered FAQ page URL with its display name, which becomes
// the PDF filename.
type faqLink struct {
	Name string
	URL  string
}

// AWSFAQScraper walks the paginated AWS FAQ listing and renders each FAQ page
// to a PDF in the output directory.
type AWSFAQScraper struct {
	baseURL   string
	outputDir string
	fetcher   *Fetcher
	writer    *PDFWriter
	log       zerolog.Logger
}

// NewAWSFAQScraper creates the scraper and ensures the output directory
// exists, so rendering never fails on a missing directory.
func NewAWSFAQScraper(baseURL, outputDir string, log zerolog.Logger) (*AWSFAQScraper, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}
	return &AWSFAQScraper{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		outputDir: outputDir,
		fetcher:   NewFetcher(log),
		writer:    NewPDFWriter(),
		log:       log,
	}, nil
}

// Run discovers every FAQ link and renders one PDF per page. Fetch and
// extraction failures skip the affected link; only rendering errors abort.
func (s *AWSFAQScraper) Run(ctx context.Context) error {
	links := s.discoverLinks(ctx)
	s.log.Info().Int("links", len(links)).Msg("discovered faq links")

	for _, link := range links {
		content, ok := s.extractContent(ctx, link.URL)
		if !ok {
			s.log.Warn().Str("name", link.Name).Msg("failed to extract content")
			continue
		}
		path := filepath.Join(s.outputDir, link.Name+".pdf")
		if err := s.writer.Write(content, path); err != nil {
			return fmt.Errorf("rendering %s: %w", path, err)
		}
		s.log.Info().Str("file", path).Msg("rendered faq page")
	}
	return nil
}

// discoverLinks parses the FAQ index. Per container the first anchor whose
// href contains "faqs" wins; the rest are ignored. An index fetch failure
// yields an empty set, which ends the run without error.
func (s *AWSFAQScraper) discoverLinks(ctx context.Context) []faqLink {
	var links []faqLink

	body := s.fetcher.fetchPage(ctx, s.baseURL+awsFAQIndexPath)
	if body == "" {
		return links
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		s.log.Warn().Err(err).Msg("parsing faq index failed")
		return links
	}

	doc.Find(awsLinkContainerSel).Each(func(_ int, container *goquery.Selection) {
		container.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
			href, _ := a.Attr("href")
			if !strings.Contains(href, "faqs") {
				return true
			}
			links = append(links, faqLink{
				Name: strings.TrimSpace(a.Text()),
				URL:  s.baseURL + href,
			})
			return false
		})
	})

	return links
}

// extractContent pulls the FAQ body out of a content page: decorative blocks
// are cleared, then every content column is normalized and kept as its own
// paragraph. Zero content columns means the page layout changed; the link is
// reported as failed.
func (s *AWSFAQScraper) extractContent(ctx context.Context, url string) (string, bool) {
	body := s.fetcher.fetchPage(ctx, url)
	if body == "" {
		return "", false
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		s.log.Warn().Err(err).Str("url", url).Msg("parsing faq page failed")
		return "", false
	}

	doc.Find(awsBreadcrumbSel).Empty()
	doc.Find(awsNoPadGridSel).Empty()

	var paragraphs []string
	doc.Find(awsContentColSel).Each(func(_ int, col *goquery.Selection) {
		paragraphs = append(paragraphs, Normalize(col.Text()))
	})
	if len(paragraphs) == 0 {
		return "", false
	}

	return strings.Join(paragraphs, "\n\n"), true
}
