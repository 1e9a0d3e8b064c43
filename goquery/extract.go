// Package goquery implements webclip extraction on top of CSS selection:
// the Markdown primitives, the generic HTML-to-Markdown converter, the
// main-content fallback, and the per-site extractors.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webclip"
)

// Parse builds a detached document from a page snapshot. Extraction
// operates on this copy only; the snapshot itself is never changed.
func Parse(page *webclip.Page) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		return nil, webclip.Errorf(webclip.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// ResolveURL resolves href against base and returns an absolute URL.
// Returns "" for empty, unparseable, or non-HTTP targets.
func ResolveURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || isNonHTTPLink(href) {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base == nil {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}

// firstText returns the trimmed text of the first element matching any of
// the selectors, in selector order.
func firstText(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		if text := strings.TrimSpace(doc.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// firstAttr returns the named attribute from the first element matching
// any of the selectors.
func firstAttr(doc *goquery.Document, name string, selectors ...string) string {
	for _, sel := range selectors {
		if v, ok := doc.Find(sel).First().Attr(name); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// nonContentURLMarkers flag media URLs that decorate the page rather than
// belong to the content (icons, avatars, emoji, navigation thumbnails).
var nonContentURLMarkers = []string{"icon", "avatar", "emoji", "sprite", "logo"}

// isNonContentMedia reports whether a media URL matches a known
// non-content pattern.
func isNonContentMedia(src string) bool {
	lower := strings.ToLower(src)
	for _, marker := range nonContentURLMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// mediaSet deduplicates media references within one extraction.
type mediaSet map[string]bool

// Admit reports whether the URL is content media not seen before, and
// records it.
func (m mediaSet) Admit(src string) bool {
	if src == "" || m[src] || isNonContentMedia(src) {
		return false
	}
	m[src] = true
	return true
}
