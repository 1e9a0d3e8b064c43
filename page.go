package webclip

import (
	"context"
	"net/url"
	"strings"
)

// Page is the snapshot of a document an extraction runs against.
// Extractors parse HTML into their own detached trees; the snapshot
// itself is never mutated.
type Page struct {
	// URL is the page address. Used for hostname dispatch and for
	// resolving relative links during conversion.
	URL string

	// Title is the document title (the <title> text).
	Title string

	// HTML is the serialized document.
	HTML string

	// Interactor, when non-nil, grants the bounded page-interaction
	// capability (a single expand click). Nil pages are strictly
	// read-only.
	Interactor Interactor
}

// Hostname returns the page's hostname, or "" for unparseable URLs.
func (p *Page) Hostname() string {
	u, err := url.Parse(p.URL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// Base returns the page URL parsed for relative link resolution.
// Returns nil when the URL cannot be parsed.
func (p *Page) Base() *url.URL {
	u, err := url.Parse(p.URL)
	if err != nil {
		return nil
	}
	return u
}

// Expand performs at most one bounded interaction to reveal hidden
// content and returns the refreshed document HTML. Returns ("", false)
// when the page has no interaction capability or nothing changed.
func (p *Page) Expand(ctx context.Context, selector string) (string, bool) {
	if p.Interactor == nil {
		return "", false
	}
	html, err := p.Interactor.Expand(ctx, selector)
	if err != nil || strings.TrimSpace(html) == "" {
		return "", false
	}
	return html, true
}

// Interactor is the injected page-interaction capability. The only
// permitted interaction is a single expand click followed by a fixed
// short settle delay; implementations own that delay and must respect
// context cancellation.
type Interactor interface {
	// Expand clicks the element matching selector and returns the
	// refreshed document HTML. Returns "" when the element is absent
	// or the click changed nothing.
	Expand(ctx context.Context, selector string) (string, error)
}

// Selection is a captured user text selection: the raw selection string
// with visual line breaks preserved, plus the serialized cloned range for
// Markdown conversion.
type Selection struct {
	Text string
	HTML string
}
