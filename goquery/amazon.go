package goquery

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webclip"
)

// Ensure AmazonExtractor implements webclip.Extractor at compile time.
var _ webclip.Extractor = (*AmazonExtractor)(nil)

// minAplusChars filters decorative snippets out of A+ marketing blocks.
const minAplusChars = 20

// maxAplusParagraphs caps how much A+ content is clipped.
const maxAplusParagraphs = 5

// AmazonExtractor handles product pages. The price is assembled from the
// split whole/fraction nodes; the description resolves through four
// sources in fixed priority order (product description, book
// description, A+ content, below-the-fold bullets).
type AmazonExtractor struct{}

// NewAmazonExtractor creates a new AmazonExtractor.
func NewAmazonExtractor() *AmazonExtractor {
	return &AmazonExtractor{}
}

// Name returns the extractor's identifier.
func (e *AmazonExtractor) Name() string { return "amazon" }

// Domains returns the hostname patterns this extractor handles.
func (e *AmazonExtractor) Domains() []string { return []string{"amazon.com"} }

// Extract reads the product page.
func (e *AmazonExtractor) Extract(_ context.Context, page *webclip.Page) (*webclip.Result, error) {
	doc, err := Parse(page)
	if err != nil {
		return nil, err
	}

	result := &webclip.Result{
		Metadata: webclip.Metadata{"type": webclip.TypeAmazonProduct},
	}

	result.Title = firstText(doc, "#productTitle", "h1.product-title")
	if result.Title == "" {
		result.Title = page.Title
		result.Warn("no product title element, using document title")
	}

	var content strings.Builder
	content.WriteString("# " + result.Title + "\n\n")

	// Price arrives split across two nodes.
	if whole := firstText(doc, ".a-price-whole"); whole != "" {
		price := strings.TrimSuffix(whole, ".")
		if fraction := firstText(doc, ".a-price-fraction"); fraction != "" {
			price += "." + fraction
		}
		content.WriteString("**Price:** $" + price + "\n\n")
		result.Metadata["price"] = price
	}

	if rating := firstText(doc, `[data-hook="rating-out-of-text"]`, ".a-icon-alt"); rating != "" {
		content.WriteString("**Rating:** " + rating + "\n\n")
		result.Metadata["rating"] = rating
	}

	if img := firstAttr(doc, "src", "#landingImage", "#imgBlkFront"); img != "" {
		content.WriteString("![Product Image](" + img + ")\n\n")
	}

	if features := doc.Find("#feature-bullets ul, #feature-bullets-btf ul").First(); features.Length() > 0 {
		var items []string
		features.Find("li span.a-list-item").Each(func(_ int, item *goquery.Selection) {
			if text := strings.TrimSpace(cellSpaceRe.ReplaceAllString(item.Text(), " ")); text != "" {
				items = append(items, "- "+text)
			}
		})
		if len(items) > 0 {
			content.WriteString("## Key Features\n\n" + strings.Join(items, "\n") + "\n\n")
		}
	}

	if desc := amazonDescription(doc, result); desc != "" {
		content.WriteString("## Description\n\n" + desc + "\n\n")
	}

	// Specification tables.
	tables := doc.Find("#productDetails_detailBullets_sections table, #productDetails table, .technical-details table")
	if tables.Length() > 0 {
		content.WriteString("## Product Details\n")
		tables.Each(func(_ int, table *goquery.Selection) {
			content.WriteString(RenderTable(table))
		})
	}

	if details := amazonDetails(doc); len(details) > 0 {
		result.Metadata["details"] = details
		if asin, ok := details["ASIN"]; ok {
			result.Metadata["asin"] = asin
		}
	}

	result.Content = Normalize(content.String())
	return result, nil
}

// amazonDescription tries the four description sources in priority order,
// short-circuiting on the first non-empty result.
func amazonDescription(doc *goquery.Document, result *webclip.Result) string {
	if desc := paragraphsText(doc.Find("#productDescription p"), 0, 0); desc != "" {
		return desc
	}
	if desc := strings.TrimSpace(FlattenText(doc.Find("#productDescription").First())); desc != "" {
		return desc
	}
	result.Warn("no product description section")

	if desc := strings.TrimSpace(FlattenText(doc.Find("#bookDescription_feature_div").First())); desc != "" {
		return desc
	}

	if desc := paragraphsText(doc.Find("#aplus p, #aplus_feature_div p, #aplus .aplus-p1, #aplus .aplus-p2, #aplus .aplus-p3"), minAplusChars, maxAplusParagraphs); desc != "" {
		result.Warn("description from A+ content")
		return desc
	}

	if desc := paragraphsText(doc.Find("#feature-bullets-btf p"), 0, 0); desc != "" {
		return desc
	}
	result.Warn("no description in any source")
	return ""
}

// paragraphsText flattens a paragraph set to text, filtering short
// entries and optionally capping the count. Zero means no limit.
func paragraphsText(paras *goquery.Selection, minChars, limit int) string {
	var parts []string
	paras.EachWithBreak(func(_ int, p *goquery.Selection) bool {
		text := strings.TrimSpace(FlattenText(p))
		if len(text) > minChars {
			parts = append(parts, text)
		}
		return limit == 0 || len(parts) < limit
	})
	return strings.Join(parts, "\n\n")
}

// amazonDetails scrapes the bullet/table detail rows into a map.
func amazonDetails(doc *goquery.Document) map[string]string {
	details := map[string]string{}
	doc.Find("#detailBullets_feature_div li, #prodDetails tr").Each(func(_ int, row *goquery.Selection) {
		label := strings.TrimSpace(row.Find(".a-text-bold, th").First().Text())
		value := strings.TrimSpace(row.Find("span:not(.a-text-bold), td").First().Text())
		if label == "" || value == "" {
			return
		}
		label = strings.TrimSuffix(strings.TrimSpace(cellSpaceRe.ReplaceAllString(label, " ")), ":")
		details[strings.TrimSpace(label)] = cellSpaceRe.ReplaceAllString(value, " ")
	})
	return details
}
