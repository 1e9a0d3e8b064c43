package goquery

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webclip"
)

// NoReadableContent is the sentinel emitted when every fallback tier
// yields nothing. Empty output is never a silent success.
const NoReadableContent = "No readable content found."

// contentSelectors is the cascade of generic content-container selectors
// tried before the paragraph scrape.
var contentSelectors = []string{
	"article",
	"main",
	"[role=\"main\"]",
	".post",
	".content",
	"#content",
	".article-body",
	".entry-content",
}

const (
	// minContainerChars is the text length below which a matched
	// container is considered trivial and the cascade continues.
	minContainerChars = 140

	// minParagraphChars filters boilerplate in the paragraph scrape.
	minParagraphChars = 50

	// maxParagraphs caps the paragraph scrape.
	maxParagraphs = 20
)

// Ensure extractors implement webclip.Extractor at compile time.
var (
	_ webclip.Extractor = (*FallbackExtractor)(nil)
	_ webclip.Extractor = (*FullPageExtractor)(nil)
)

// FallbackExtractor locates the page's primary readable region without
// prior knowledge of its markup: a selector cascade first, then the
// long-paragraph scrape, then the sentinel. It never fails; partial
// content with a warning always beats an error.
type FallbackExtractor struct{}

// NewFallbackExtractor creates a new FallbackExtractor.
func NewFallbackExtractor() *FallbackExtractor {
	return &FallbackExtractor{}
}

// Name returns the extractor's identifier.
func (e *FallbackExtractor) Name() string { return "fallback" }

// Domains returns nil; the fallback is not hostname-scoped.
func (e *FallbackExtractor) Domains() []string { return nil }

// Extract locates and converts the main content region.
func (e *FallbackExtractor) Extract(_ context.Context, page *webclip.Page) (*webclip.Result, error) {
	result := &webclip.Result{
		Title:    page.Title,
		Metadata: webclip.Metadata{"type": webclip.TypeFallbackExtraction},
	}

	doc, err := Parse(page)
	if err != nil {
		result.Content = NoReadableContent
		result.Warn("parse failed: %s", webclip.ErrorMessage(err))
		return result, nil
	}

	base := page.Base()

	for _, sel := range contentSelectors {
		container := doc.Find(sel).First()
		if container.Length() == 0 {
			continue
		}
		if len(strings.TrimSpace(container.Text())) < minContainerChars {
			continue
		}
		result.Content = convertTree(container, base)
		if strings.TrimSpace(result.Content) != "" {
			return result, nil
		}
	}
	result.Warn("no content container matched, scraping paragraphs")

	if content := scrapeParagraphs(doc); content != "" {
		result.Content = content
		return result, nil
	}
	result.Warn("no paragraphs above threshold")

	result.Content = NoReadableContent
	return result, nil
}

// scrapeParagraphs joins the first maxParagraphs paragraphs exceeding
// minParagraphChars, in document order.
func scrapeParagraphs(doc *goquery.Document) string {
	var parts []string
	doc.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		text := strings.TrimSpace(FlattenText(p))
		if len(text) >= minParagraphChars {
			parts = append(parts, text)
		}
		return len(parts) < maxParagraphs
	})
	if len(parts) == 0 {
		return ""
	}
	return Normalize(strings.Join(parts, "\n\n"))
}

// FullPageExtractor converts the whole page: the first matching content
// container when one exists, otherwise the entire body.
type FullPageExtractor struct{}

// NewFullPageExtractor creates a new FullPageExtractor.
func NewFullPageExtractor() *FullPageExtractor {
	return &FullPageExtractor{}
}

// Name returns the extractor's identifier.
func (e *FullPageExtractor) Name() string { return "fullpage" }

// Domains returns nil; full-page conversion is not hostname-scoped.
func (e *FullPageExtractor) Domains() []string { return nil }

// Extract converts the page's main container, or the whole body.
func (e *FullPageExtractor) Extract(_ context.Context, page *webclip.Page) (*webclip.Result, error) {
	result := &webclip.Result{
		Title:    page.Title,
		Metadata: webclip.Metadata{"type": webclip.TypeGeneric},
	}

	doc, err := Parse(page)
	if err != nil {
		result.Content = NoReadableContent
		result.Warn("parse failed: %s", webclip.ErrorMessage(err))
		return result, nil
	}

	base := page.Base()

	for _, sel := range contentSelectors {
		container := doc.Find(sel).First()
		if container.Length() == 0 {
			continue
		}
		if content := convertTree(container, base); strings.TrimSpace(content) != "" {
			result.Content = content
			return result, nil
		}
	}

	result.Content = convertTree(doc.Find("body"), base)
	if strings.TrimSpace(result.Content) == "" {
		result.Content = NoReadableContent
		result.Warn("body conversion yielded nothing")
	}
	return result, nil
}
