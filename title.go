package webclip

import "strings"

// TitleLimit is the maximum length of a title derived from source text.
const TitleLimit = 100

// TruncateTitle derives a title from free-form text: the first line only,
// capped at TitleLimit characters with an ellipsis suffix when truncated.
func TruncateTitle(text string) string {
	text = strings.TrimSpace(text)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = strings.TrimSpace(text[:i])
	}
	runes := []rune(text)
	if len(runes) <= TitleLimit {
		return text
	}
	return string(runes[:TitleLimit]) + "..."
}

// StripTitleSuffix removes a site-specific suffix (e.g. " - YouTube")
// from a document title.
func StripTitleSuffix(title, suffix string) string {
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(title), suffix))
}
