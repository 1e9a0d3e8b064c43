package goquery

import (
	"context"
	"strings"

	"github.com/fwojciec/webclip"
)

// Ensure MediumExtractor implements webclip.Extractor at compile time.
var _ webclip.Extractor = (*MediumExtractor)(nil)

// MediumExtractor handles Medium long-form articles: the article element
// rendered through the generic converter, plus byline metadata.
type MediumExtractor struct{}

// NewMediumExtractor creates a new MediumExtractor.
func NewMediumExtractor() *MediumExtractor {
	return &MediumExtractor{}
}

// Name returns the extractor's identifier.
func (e *MediumExtractor) Name() string { return "medium" }

// Domains returns the hostname patterns this extractor handles.
func (e *MediumExtractor) Domains() []string { return []string{"medium.com"} }

// Extract reads the article.
func (e *MediumExtractor) Extract(_ context.Context, page *webclip.Page) (*webclip.Result, error) {
	doc, err := Parse(page)
	if err != nil {
		return nil, err
	}

	result := &webclip.Result{
		Metadata: webclip.Metadata{"type": webclip.TypeMediumArticle},
	}

	result.Title = firstText(doc, "h1")
	if result.Title == "" {
		result.Title = page.Title
		result.Warn("no h1, using document title")
	}

	if author := firstText(doc, `a[rel="author"]`); author != "" {
		result.Metadata["author"] = author
	}
	if published := firstAttr(doc, "datetime", "time"); published != "" {
		result.Metadata["publishDate"] = published
	}

	article := doc.Find("article").First()
	if article.Length() == 0 {
		result.Content = "Could not extract article content"
		result.Warn("no article element")
		return result, nil
	}

	result.Content = convertTree(article, page.Base())
	if strings.TrimSpace(result.Content) == "" {
		result.Content = "Could not extract article content"
		result.Warn("article conversion yielded nothing")
	}
	return result, nil
}
