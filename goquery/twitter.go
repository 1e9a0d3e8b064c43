package goquery

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webclip"
)

// Ensure TwitterExtractor implements webclip.Extractor at compile time.
var _ webclip.Extractor = (*TwitterExtractor)(nil)

// TwitterExtractor handles single-tweet pages on both twitter.com and
// x.com. The tweet text doubles as the title, truncated at the usual
// 100-character cap.
type TwitterExtractor struct{}

// NewTwitterExtractor creates a new TwitterExtractor.
func NewTwitterExtractor() *TwitterExtractor {
	return &TwitterExtractor{}
}

// Name returns the extractor's identifier.
func (e *TwitterExtractor) Name() string { return "twitter" }

// Domains returns the hostname patterns this extractor handles.
func (e *TwitterExtractor) Domains() []string { return []string{"twitter.com", "x.com"} }

// Extract reads the tweet.
func (e *TwitterExtractor) Extract(_ context.Context, page *webclip.Page) (*webclip.Result, error) {
	doc, err := Parse(page)
	if err != nil {
		return nil, err
	}

	result := &webclip.Result{
		Metadata: webclip.Metadata{"type": webclip.TypeTweet},
	}

	var content strings.Builder
	if tweet := doc.Find(`[data-testid="tweetText"]`).First(); tweet.Length() > 0 {
		text := strings.TrimSpace(FlattenText(tweet))
		content.WriteString(text)
		result.Title = webclip.TruncateTitle(text)
	} else {
		result.Warn("no tweet text element")
	}

	seen := mediaSet{}
	idx := 0
	doc.Find(`[data-testid="tweetPhoto"] img`).Each(func(_ int, img *goquery.Selection) {
		src := img.AttrOr("src", "")
		if !seen.Admit(src) {
			return
		}
		idx++
		fmt.Fprintf(&content, "\n\n![Image %d](%s)", idx, src)
	})

	if author := firstText(doc, `[data-testid="User-Name"] span`); author != "" {
		result.Metadata["author"] = author
	}

	result.Content = content.String()
	if strings.TrimSpace(result.Content) == "" {
		result.Content = "Could not extract tweet content"
		result.Warn("tweet empty")
	}
	if result.Title == "" {
		result.Title = page.Title
	}
	return result, nil
}
