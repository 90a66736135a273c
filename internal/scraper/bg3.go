package scraper

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

// Selectors for the BG3 wiki. The wiki is MediaWiki-flavored, so the main
// content container and edit-section markers are the usual suspects.
const (
	bg3ContentSel     = "div.mw-parser-output"
	bg3EditSectionSel = "span.mw-editsection"
	bg3ImageSel       = "div.floatright img"
	bg3SpellColSel    = "div.div-col"
	bg3FeatsTableSel  = "table.wikitable"
)

// bg3ItemCategories are the category index pages whose tables link to
// individual item pages.
var bg3ItemCategories = []string{
	"wiki/Clothing",
	"wiki/Armor",
	"wiki/Shields",
	"wiki/Headwear",
	"wiki/Cloaks",
	"wiki/Handwear",
	"wiki/Footwear",
	"wiki/Amulets",
	"wiki/Rings",
	"wiki/Arrows",
	"wiki/List_of_Weapons",
}

// BG3Scraper renders the wiki's items, spells, feats and locations into PDFs.
type BG3Scraper struct {
	baseURL   string
	outputDir string
	fetcher   *Fetcher
	writer    *PDFWriter
	log       zerolog.Logger
}

// NewBG3Scraper creates the scraper and ensures the output directory exists.
func NewBG3Scraper(baseURL, outputDir string, log zerolog.Logger) (*BG3Scraper, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &BG3Scraper{
		baseURL:   baseURL,
		outputDir: outputDir,
		fetcher:   NewFetcher(log),
		writer:    NewPDFWriter(),
		log:       log,
	}, nil
}

// Run executes the four sub-runs in sequence. Each sub-run is independent: a
// failure in one does not stop the others, the errors are joined at the end.
func (s *BG3Scraper) Run(ctx context.Context) error {
	return errors.Join(
		s.scrapeItems(ctx),
		s.scrapeSpells(ctx),
		s.scrapeFeats(ctx),
		s.scrapeLocations(ctx),
	)
}

// scrapeItems walks the category index pages, collects each table row's
// first-cell link, and renders every unique item page. The same item can be
// listed under several categories, so links are deduplicated globally.
func (s *BG3Scraper) scrapeItems(ctx context.Context) error {
	links := NewWorklist()
	for _, category := range bg3ItemCategories {
		body := s.fetcher.fetchPage(ctx, s.baseURL+category)
		if body == "" {
			continue
		}
		for _, link := range extractItemLinks(body) {
			links.Add(link)
		}
	}

	s.log.Info().Int("items", links.Seen()).Msg("discovered item links")
	for links.HasNext() {
		if err := s.scrapePage(ctx, links.Next(), nil); err != nil {
			return err
		}
	}
	return nil
}

// extractItemLinks pulls the href of the anchor in each table row's first
// cell. Rows without a cell or without an anchor are skipped.
func extractItemLinks(body string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil
	}

	var links []string
	doc.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		href, ok := row.Find("td").First().Find("a").First().Attr("href")
		if ok {
			links = append(links, href)
		}
	})
	return links
}

// scrapeSpells drains a self-extending worklist: the "All Spells" index seeds
// it, and every processed spell page may enqueue the links under its Variants
// section. Deduplication in the worklist guarantees termination.
func (s *BG3Scraper) scrapeSpells(ctx context.Context) error {
	spells := NewWorklist()

	body := s.fetcher.fetchPage(ctx, s.baseURL+"wiki/Spells#All_Spells")
	if body != "" {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
		if err == nil {
			doc.Find(bg3SpellColSel).Find("a").Each(func(_ int, a *goquery.Selection) {
				if href, ok := a.Attr("href"); ok {
					spells.Add(href)
				}
			})
		}
	}

	s.log.Info().Int("spells", spells.Seen()).Msg("discovered spell links")
	for spells.HasNext() {
		if err := s.scrapePage(ctx, spells.Next(), spells); err != nil {
			return err
		}
	}
	return nil
}

// scrapeFeats renders one PDF per row of the feats table, named after the
// feat in the row's first cell.
func (s *BG3Scraper) scrapeFeats(ctx context.Context) error {
	body := s.fetcher.fetchPage(ctx, s.baseURL+"wiki/Feats")
	if body == "" {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		s.log.Warn().Err(err).Msg("parsing feats page failed")
		return nil
	}

	content := doc.Find(bg3ContentSel).First()
	if content.Length() == 0 {
		return nil
	}
	content.Find(bg3EditSectionSel).Remove()

	table := content.Find(bg3FeatsTableSel).First()
	if table.Length() == 0 {
		return nil
	}

	var renderErr error
	table.Find("tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		if i == 0 {
			return true // header row
		}
		cells := row.Find("td")
		if cells.Length() < 2 {
			return true
		}
		name := strings.TrimSpace(cells.Eq(0).Text())
		description := strings.TrimSpace(cells.Eq(1).Text())

		path := filepath.Join(s.outputDir, "feats-"+name+".pdf")
		if err := s.writer.Write(Normalize(name+": "+description), path); err != nil {
			renderErr = fmt.Errorf("rendering %s: %w", path, err)
			return false
		}
		s.log.Info().Str("file", path).Msg("rendered feat")
		return true
	})
	return renderErr
}

// scrapeLocations collects every list-item link in the locations index and
// renders each unique location page.
func (s *BG3Scraper) scrapeLocations(ctx context.Context) error {
	locations := NewWorklist()

	body := s.fetcher.fetchPage(ctx, s.baseURL+"wiki/List_of_Locations")
	if body != "" {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
		if err == nil {
			doc.Find(bg3ContentSel).First().Find("ul li a").Each(func(_ int, a *goquery.Selection) {
				if href, ok := a.Attr("href"); ok {
					locations.Add(href)
				}
			})
		}
	}

	s.log.Info().Int("locations", locations.Seen()).Msg("discovered location links")
	for locations.HasNext() {
		if err := s.scrapePage(ctx, locations.Next(), nil); err != nil {
			return err
		}
	}
	return nil
}

// scrapePage runs the shared wiki page pipeline: fetch, strip edit-section
// markers, extract the main content text, append the lead image reference if
// present, normalize, and render a PDF named after the link's last path
// segment. When variants is non-nil, links under the page's Variants section
// are enqueued for processing in the same run.
//
// Pages that fail to fetch or that lack the main content container are
// skipped; only rendering errors propagate.
func (s *BG3Scraper) scrapePage(ctx context.Context, link string, variants *Worklist) error {
	url := s.baseURL + strings.TrimPrefix(link, "/")
	s.log.Debug().Str("url", url).Msg("fetching page")

	body := s.fetcher.fetchPage(ctx, url)
	if body == "" {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		s.log.Warn().Err(err).Str("url", url).Msg("parsing page failed")
		return nil
	}

	content := doc.Find(bg3ContentSel).First()
	if content.Length() == 0 {
		s.log.Warn().Str("url", url).Msg("page has no content container, skipping")
		return nil
	}
	content.Find(bg3EditSectionSel).Remove()

	if variants != nil {
		s.collectVariants(content, variants)
	}

	text := content.Text()
	if src, ok := content.Find(bg3ImageSel).First().Attr("src"); ok {
		text += "\n\n image: " + s.baseURL + strings.TrimPrefix(src, "/")
	}

	segments := strings.Split(link, "/")
	name := segments[len(segments)-1]
	path := filepath.Join(s.outputDir, name+".pdf")
	if err := s.writer.Write(Normalize(text), path); err != nil {
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	s.log.Info().Str("file", path).Msg("rendered page")
	return nil
}

// collectVariants enqueues the links of the list that follows the Variants
// heading, if the page has one.
func (s *BG3Scraper) collectVariants(content *goquery.Selection, worklist *Worklist) {
	heading := content.Find("span#Variants").First()
	if heading.Length() == 0 {
		return
	}
	list := heading.Parent().NextAllFiltered("ul").First()
	list.Find("a").Each(func(_ int, a *goquery.Selection) {
		if href, ok := a.Attr("href"); ok {
			worklist.Add(href)
		}
	})
}
