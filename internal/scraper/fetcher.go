// Package scraper turns the AWS FAQ site and the BG3 wiki into PDF files that
// the ingestion pipeline can feed into a collection. The shared pieces (HTTP
// fetch, text normalization, PDF rendering) live here next to the two
// site-specific scrapers.
package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const (
	fetchTimeout = 10 * time.Second

	// Some of the scraped sites refuse requests without a browser-looking
	// User-Agent.
	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/116.0.0.0 Safari/537.36"
)

// StatusError reports a fetch that reached the server but got a non-OK status,
// so callers can tell it apart from transport failures.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetching %s: status %d", e.URL, e.Code)
}

// Fetcher performs single-page GETs with a fixed timeout. One fetch per call,
// no retries: a transient failure is a permanent skip for that page.
type Fetcher struct {
	client *http.Client
	log    zerolog.Logger
}

func NewFetcher(log zerolog.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: fetchTimeout},
		log:    log,
	}
}

// Fetch retrieves the body of url. A non-200 response is returned as
// *StatusError; transport failures come back wrapped.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{URL: url, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading body of %s: %w", url, err)
	}
	return string(body), nil
}

// fetchPage is the best-effort variant the scrapers use: any failure is logged
// and collapsed into an empty result so a single bad page never aborts a run.
func (f *Fetcher) fetchPage(ctx context.Context, url string) string {
	body, err := f.Fetch(ctx, url)
	if err != nil {
		f.log.Warn().Err(err).Str("url", url).Msg("fetch failed, skipping page")
		return ""
	}
	return body
}
