// Package readability implements article extraction on top of
// go-shiori's readability port. It is the preferred fallback for pages
// no site extractor claims; the dispatcher degrades to the selector
// cascade when it fails.
package readability

import (
	"context"
	"strings"

	"github.com/fwojciec/webclip"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements webclip.Extractor at compile time.
var _ webclip.Extractor = (*Extractor)(nil)

// minContentChars is the rendered length below which the extraction is
// considered to have missed the article.
const minContentChars = 80

// Extractor wraps go-readability to locate the main article and render
// it to Markdown through the injected converter.
type Extractor struct {
	converter webclip.Converter
}

// NewExtractor creates a new Extractor.
func NewExtractor(converter webclip.Converter) *Extractor {
	return &Extractor{converter: converter}
}

// Name returns the extractor's identifier.
func (e *Extractor) Name() string { return "readability" }

// Domains returns nil; readability is not hostname-scoped.
func (e *Extractor) Domains() []string { return nil }

// Extract locates the main article and converts it to Markdown.
func (e *Extractor) Extract(_ context.Context, page *webclip.Page) (*webclip.Result, error) {
	if strings.TrimSpace(page.HTML) == "" {
		return nil, webclip.Errorf(webclip.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(page.HTML), page.Base())
	if err != nil {
		return nil, webclip.Errorf(webclip.EINTERNAL, "readability failed: %v", err)
	}
	if strings.TrimSpace(article.Content) == "" {
		return nil, webclip.Errorf(webclip.ENOTFOUND, "no article content identified")
	}

	content, err := e.converter.Convert(article.Content, page.URL)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(content)) < minContentChars {
		return nil, webclip.Errorf(webclip.ENOTFOUND, "article content too thin")
	}

	result := &webclip.Result{
		Title:    article.Title,
		Content:  content,
		Metadata: webclip.Metadata{"type": webclip.TypeReadabilityArticle},
	}
	if result.Title == "" {
		result.Title = page.Title
		result.Warn("no article title, using document title")
	}
	if article.Byline != "" {
		result.Metadata["author"] = article.Byline
	}
	if article.SiteName != "" {
		result.Metadata["siteName"] = article.SiteName
	}
	if article.Excerpt != "" {
		result.Metadata["excerpt"] = article.Excerpt
	}
	return result, nil
}
