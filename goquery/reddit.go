package goquery

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webclip"
)

// Ensure RedditExtractor implements webclip.Extractor at compile time.
var _ webclip.Extractor = (*RedditExtractor)(nil)

// RedditExtractor handles Reddit posts across the modern (shreddit) and
// old layouts. Posts may be text, image, video, or external links; every
// section is optional and extracted independently.
type RedditExtractor struct{}

// NewRedditExtractor creates a new RedditExtractor.
func NewRedditExtractor() *RedditExtractor {
	return &RedditExtractor{}
}

// Name returns the extractor's identifier.
func (e *RedditExtractor) Name() string { return "reddit" }

// Domains returns the hostname patterns this extractor handles.
func (e *RedditExtractor) Domains() []string { return []string{"reddit.com"} }

// Extract reads the post.
func (e *RedditExtractor) Extract(_ context.Context, page *webclip.Page) (*webclip.Result, error) {
	doc, err := Parse(page)
	if err != nil {
		return nil, err
	}

	result := &webclip.Result{
		Metadata: webclip.Metadata{"type": webclip.TypeRedditPost},
	}

	result.Title = firstText(doc, `shreddit-post h1`, `h1[slot="title"]`, "h1")
	if result.Title == "" {
		result.Title = page.Title
		result.Warn("no post title element, using document title")
	}

	base := page.Base()
	seen := mediaSet{}
	var content strings.Builder

	// Thumbnail first, linked back to the post. Animated thumbnails that
	// Reddit converted to static previews get the raw-HTML video escape
	// hatch so the animation survives in Markdown viewers that allow it.
	if thumb := redditThumbnail(doc); thumb != "" {
		seen.Admit(thumb)
		if redditAnimatedPreview(thumb) {
			content.WriteString("## Post Thumbnail (Animated GIF)\n\n")
			content.WriteString(redditVideoEmbed(thumb))
			content.WriteString("**[Direct Link to Post](" + page.URL + ")**\n\n")
		} else {
			content.WriteString("## Post Thumbnail\n\n")
			content.WriteString("[![Post Thumbnail](" + thumb + ")](" + page.URL + ")\n\n")
		}
	}

	// Post body, by layout generation.
	body := redditBody(doc, base)
	if body != "" {
		content.WriteString("## Post Content\n\n" + body + "\n\n")
	} else {
		result.Warn("no post body found")
	}

	// Content images hosted on Reddit's media domains.
	doc.Find(`img[src*="redd.it"], img[src*="imgur"], img[src*="preview.redd.it"]`).Each(func(_ int, img *goquery.Selection) {
		src := img.AttrOr("src", "")
		if strings.Contains(src, "thumbnail") || img.ParentsFiltered(`[data-testid="sidebar"], .side, .thumbnail`).Length() > 0 {
			return
		}
		if seen.Admit(src) {
			content.WriteString("![Image](" + src + ")\n\n")
		}
	})

	// Hosted video.
	if src := firstAttr(doc, "src", `shreddit-player video source`, `video[src*="redd.it"]`, `video source[src*="redd.it"]`); src != "" {
		if seen.Admit(src) {
			content.WriteString("**Video:** [Watch Video](" + src + ")\n\n")
		}
	}

	// External link posts.
	if href := firstAttr(doc, "href", `a[slot="full-post-link"]`, `shreddit-post a[data-click-id="timestamp"]`); href != "" {
		if resolved := ResolveURL(base, href); resolved != "" && !strings.Contains(resolved, "reddit.com") {
			content.WriteString("**Link:** [" + resolved + "](" + resolved + ")\n\n")
		}
	}

	if author := firstText(doc, `shreddit-post [slot="authorName"] a`, `a[author]`); author != "" {
		result.Metadata["author"] = strings.TrimPrefix(author, "u/")
	}
	if sub := firstText(doc, `shreddit-post [slot="subreddit"] a`, `a[slot="subreddit-name"]`); sub != "" {
		result.Metadata["subreddit"] = strings.TrimPrefix(sub, "r/")
	}
	if ts := firstAttr(doc, "datetime", `shreddit-post time`, "time"); ts != "" {
		result.Metadata["timestamp"] = ts
	}

	result.Content = strings.TrimSpace(content.String())
	if result.Content == "" {
		result.Content = "Could not extract post content"
		result.Warn("every section empty")
	}
	return result, nil
}

// redditBody resolves the post body across layout generations: shreddit
// text body, then the post-content container, then old Reddit.
func redditBody(doc *goquery.Document, base *url.URL) string {
	for _, sel := range []string{
		`div[slot="text-body"]`,
		`[data-test-id="post-content"]`,
		`.usertext-body .md`,
	} {
		el := doc.Find(sel).First()
		if el.Length() == 0 {
			continue
		}
		if body := strings.TrimSpace(convertTree(el, base)); body != "" {
			return body
		}
	}
	return ""
}

// redditThumbnail finds the post thumbnail image, if any.
func redditThumbnail(doc *goquery.Document) string {
	selectors := []string{
		`img[alt="Post thumbnail"]`,
		`shreddit-post img[src*="preview.redd.it"]`,
		`shreddit-post img[src*="i.redd.it"]`,
		`.post-thumbnail img`,
	}
	for _, sel := range selectors {
		if src := firstAttr(doc, "src", sel); src != "" && !isNonContentMedia(src) {
			return src
		}
	}
	return ""
}

// redditAnimatedPreview reports whether the thumbnail URL is an animated
// GIF or Reddit's static PNG conversion of one.
func redditAnimatedPreview(src string) bool {
	lower := strings.ToLower(src)
	if strings.Contains(lower, ".gif") {
		return true
	}
	return strings.Contains(lower, ".png") &&
		(strings.Contains(lower, "format=png") || strings.Contains(lower, "v0-"))
}

// redditVideoEmbed builds the documented raw-HTML escape hatch for
// animated previews: a video element with MP4 and GIF source fallbacks
// plus a static image for viewers that strip HTML.
func redditVideoEmbed(thumb string) string {
	if !strings.Contains(thumb, "preview.redd.it") || !strings.Contains(strings.ToLower(thumb), ".png") {
		return "![Post Thumbnail - Animated GIF](" + thumb + ")\n\n"
	}

	baseURL := thumb
	if i := strings.IndexByte(baseURL, '?'); i >= 0 {
		baseURL = baseURL[:i]
	}
	baseURL = strings.TrimSuffix(baseURL, ".png")
	mp4 := baseURL + ".gif?width=640&format=mp4&auto=webp&s=auto"
	gif := baseURL + ".gif?width=640&format=gif&auto=webp&s=auto"

	var b strings.Builder
	b.WriteString("<video controls autoplay muted loop style=\"max-width: 100%; height: auto;\">\n")
	b.WriteString("  <source src=\"" + mp4 + "\" type=\"video/mp4\">\n")
	b.WriteString("  <source src=\"" + gif + "\" type=\"image/gif\">\n")
	b.WriteString("  <img src=\"" + thumb + "\" alt=\"Post Thumbnail - Static preview\">\n")
	b.WriteString("</video>\n\n")
	return b.String()
}
