package webclip

// Converter converts an HTML fragment to Markdown.
type Converter interface {
	// Convert transforms HTML content into normalized Markdown.
	// The baseURL, when non-empty, is used to resolve relative link and
	// image targets to absolute URLs.
	Convert(html string, baseURL string) (string, error)
}
