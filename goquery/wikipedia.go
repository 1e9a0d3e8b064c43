package goquery

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webclip"
	"golang.org/x/net/html"
)

// Ensure WikipediaExtractor implements webclip.Extractor at compile time.
var _ webclip.Extractor = (*WikipediaExtractor)(nil)

// skippedSections are housekeeping headings excluded from the clip.
var skippedSections = map[string]bool{
	"Contents":       true,
	"References":     true,
	"External links": true,
	"See also":       true,
	"Notes":          true,
}

// maxSectionParagraphs caps how much of each section is clipped.
const maxSectionParagraphs = 3

// WikipediaExtractor handles encyclopedia articles: the lead paragraphs,
// then each section up to a paragraph cap, with reference markers
// stripped and the infobox captured as metadata.
type WikipediaExtractor struct{}

// NewWikipediaExtractor creates a new WikipediaExtractor.
func NewWikipediaExtractor() *WikipediaExtractor {
	return &WikipediaExtractor{}
}

// Name returns the extractor's identifier.
func (e *WikipediaExtractor) Name() string { return "wikipedia" }

// Domains returns the hostname patterns this extractor handles.
func (e *WikipediaExtractor) Domains() []string { return []string{"wikipedia.org"} }

// Extract reads the article.
func (e *WikipediaExtractor) Extract(_ context.Context, page *webclip.Page) (*webclip.Result, error) {
	doc, err := Parse(page)
	if err != nil {
		return nil, err
	}

	result := &webclip.Result{
		Metadata: webclip.Metadata{"type": webclip.TypeWikipediaArticle, "url": page.URL},
	}

	result.Title = firstText(doc, "#firstHeading", "h1")
	if result.Title == "" {
		result.Title = webclip.StripTitleSuffix(page.Title, " - Wikipedia")
		result.Warn("no heading element, using document title")
	}

	if infobox := infoboxData(doc); len(infobox) > 0 {
		result.Metadata["infobox"] = infobox
	}

	article := doc.Find("#mw-content-text .mw-parser-output").First()
	if article.Length() == 0 {
		result.Content = "Could not extract article content"
		result.Warn("no parser output container")
		return result, nil
	}

	var content strings.Builder
	content.WriteString("# " + result.Title + "\n\n")

	if intro := leadParagraphs(article); len(intro) > 0 {
		content.WriteString("## Summary\n\n" + strings.Join(intro, "\n\n") + "\n\n")
	} else {
		result.Warn("no lead paragraphs")
	}

	article.Find("h2, h3").Each(func(_ int, heading *goquery.Selection) {
		headline := heading.Find(".mw-headline").First()
		title := strings.TrimSpace(headline.Text())
		if title == "" {
			// Newer skins drop the headline span.
			title = strings.TrimSpace(heading.Text())
		}
		if title == "" || skippedSections[title] {
			return
		}

		prefix := "## "
		if goquery.NodeName(heading) == "h3" {
			prefix = "### "
		}

		paras := sectionParagraphs(heading)
		if len(paras) == 0 {
			return
		}
		content.WriteString(prefix + title + "\n\n")
		content.WriteString(strings.Join(paras, "\n\n") + "\n\n")
	})

	result.Content = Normalize(content.String())
	return result, nil
}

// leadParagraphs collects the paragraphs before the first section
// heading, with reference markers removed.
func leadParagraphs(article *goquery.Selection) []string {
	var paras []string
	article.Children().EachWithBreak(func(_ int, child *goquery.Selection) bool {
		switch goquery.NodeName(child) {
		case "h1", "h2", "h3":
			return false
		case "p":
			if text := paragraphText(child); text != "" {
				paras = append(paras, text)
			}
		}
		return true
	})
	return paras
}

// sectionParagraphs collects the paragraphs following a heading, up to
// the next heading or the per-section cap.
func sectionParagraphs(heading *goquery.Selection) []string {
	var paras []string
	for n := nextElement(heading); n != nil; n = nextElementNode(n) {
		if n.Data == "h2" || n.Data == "h3" {
			break
		}
		if n.Data == "p" {
			sel := goquery.NewDocumentFromNode(n).Selection
			if text := paragraphText(sel); text != "" {
				paras = append(paras, text)
			}
			if len(paras) >= maxSectionParagraphs {
				break
			}
		}
	}
	return paras
}

// paragraphText returns the paragraph's text with citation references
// and superscripts stripped.
func paragraphText(p *goquery.Selection) string {
	clone := p.Clone()
	clone.Find(".reference, sup").Remove()
	return strings.TrimSpace(clone.Text())
}

// infoboxData captures the infobox's label/value rows.
func infoboxData(doc *goquery.Document) map[string]string {
	data := map[string]string{}
	doc.Find(".infobox tr").Each(func(_ int, row *goquery.Selection) {
		label := strings.TrimSpace(row.Find("th").First().Text())
		value := strings.TrimSpace(row.Find("td").First().Text())
		if label != "" && value != "" {
			data[escapeTableCell(label)] = escapeTableCell(value)
		}
	})
	return data
}

// nextElement returns the first following element sibling node.
func nextElement(sel *goquery.Selection) *html.Node {
	if len(sel.Nodes) == 0 {
		return nil
	}
	return nextElementNode(sel.Nodes[0])
}

func nextElementNode(n *html.Node) *html.Node {
	for c := n.NextSibling; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}
