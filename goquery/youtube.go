package goquery

import (
	"context"
	"encoding/json"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webclip"
)

// Ensure YouTubeExtractor implements webclip.Extractor at compile time.
var _ webclip.Extractor = (*YouTubeExtractor)(nil)

// descriptionNoiseRes match metadata lines that precede the actual
// description text in the scraped expander.
var descriptionNoiseRes = []*regexp.Regexp{
	regexp.MustCompile(`^[\d,]+ views`),
	regexp.MustCompile(`^(Streamed|Premiered|Published)`),
	regexp.MustCompile(`^#\d+ on Trending`),
	regexp.MustCompile(`^\.\.\.more$`),
}

// minDescriptionChars is the length below which a description tier is
// considered insufficient and the next tier is tried.
const minDescriptionChars = 20

// YouTubeExtractor handles YouTube watch pages. The description resolves
// through three tiers in fixed priority order: the ytInitialData JSON
// island, a single bounded expand click followed by a DOM scrape, and
// LD+JSON structured metadata. The first sufficiently long result wins.
type YouTubeExtractor struct{}

// NewYouTubeExtractor creates a new YouTubeExtractor.
func NewYouTubeExtractor() *YouTubeExtractor {
	return &YouTubeExtractor{}
}

// Name returns the extractor's identifier.
func (e *YouTubeExtractor) Name() string { return "youtube" }

// Domains returns the hostname patterns this extractor handles.
func (e *YouTubeExtractor) Domains() []string { return []string{"youtube.com"} }

// Extract reads the watch page.
func (e *YouTubeExtractor) Extract(ctx context.Context, page *webclip.Page) (*webclip.Result, error) {
	doc, err := Parse(page)
	if err != nil {
		return nil, err
	}

	result := &webclip.Result{
		Metadata: webclip.Metadata{"type": webclip.TypeYouTubeVideo},
	}

	result.Title = firstText(doc,
		"h1.ytd-watch-metadata yt-formatted-string",
		"h1 yt-formatted-string.ytd-watch-metadata",
	)
	if result.Title == "" {
		result.Title = webclip.StripTitleSuffix(page.Title, " - YouTube")
		result.Warn("no title element, using document title")
	}

	channel := firstText(doc, "ytd-channel-name#channel-name a", "#owner a")
	videoID := youtubeVideoID(page.URL)

	description := e.resolveDescription(ctx, page, doc, result)

	var content strings.Builder
	content.WriteString("# " + result.Title + "\n\n")
	if channel != "" {
		content.WriteString("**Channel:** " + channel + "\n")
	}
	content.WriteString("**Video URL:** [Watch on YouTube](" + page.URL + ")\n\n")

	if description != "" {
		content.WriteString("## Description\n\n" + description + "\n")
	} else {
		content.WriteString("## Description\n\n*No description available*\n")
	}

	// The thumbnail URL format is derivable from the video ID and more
	// reliable than anything in the DOM.
	if videoID != "" {
		content.WriteString("\n![Video Thumbnail](https://img.youtube.com/vi/" + videoID + "/maxresdefault.jpg)\n")
		result.Metadata["videoId"] = videoID
	}
	if channel != "" {
		result.Metadata["channel"] = channel
	}

	result.Content = content.String()
	return result, nil
}

// resolveDescription runs the three-tier state machine. It always
// terminates; a tier failing for any reason falls through to the next.
func (e *YouTubeExtractor) resolveDescription(ctx context.Context, page *webclip.Page, doc *goquery.Document, result *webclip.Result) string {
	if desc := descriptionFromInitialData(doc); len(desc) >= minDescriptionChars {
		return desc
	}
	result.Warn("ytInitialData description unavailable")

	if desc := e.expandAndScrape(ctx, page, doc); len(desc) >= minDescriptionChars {
		result.Warn("description scraped from expander")
		return desc
	}

	if desc := descriptionFromLDJSON(doc); desc != "" {
		result.Warn("description from LD+JSON")
		return desc
	}
	result.Warn("no description in any tier")
	return ""
}

// descriptionFromInitialData pulls the attributed description out of the
// ytInitialData JSON island. Malformed JSON is not an error, just an
// empty tier.
func descriptionFromInitialData(doc *goquery.Document) string {
	var raw string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		if !strings.Contains(text, "ytInitialData") {
			return true
		}
		start := strings.IndexByte(text, '{')
		end := strings.LastIndexByte(text, '}')
		if start < 0 || end <= start {
			return true
		}
		raw = text[start : end+1]
		return false
	})
	if raw == "" {
		return ""
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return ""
	}

	contents, ok := dig(data, "contents", "twoColumnWatchNextResults", "results", "results", "contents").([]any)
	if !ok {
		return ""
	}
	for _, c := range contents {
		m, ok := c.(map[string]any)
		if !ok {
			continue
		}
		if desc, ok := dig(m, "videoSecondaryInfoRenderer", "attributedDescription", "content").(string); ok {
			return strings.TrimSpace(desc)
		}
	}
	return ""
}

// expandAndScrape performs the single bounded expand interaction and
// scrapes the description expander, filtering metadata noise lines.
func (e *YouTubeExtractor) expandAndScrape(ctx context.Context, page *webclip.Page, doc *goquery.Document) string {
	scrape := doc
	if html, ok := page.Expand(ctx, "tp-yt-paper-button#expand, #expand"); ok {
		refreshed, err := Parse(&webclip.Page{HTML: html})
		if err == nil {
			scrape = refreshed
		}
	}

	el := scrape.Find("ytd-text-inline-expander#description-inline-expander yt-attributed-string span").First()
	if el.Length() > 0 {
		return strings.TrimSpace(FlattenText(el))
	}

	el = scrape.Find("#description-inline-expander yt-formatted-string, ytd-text-inline-expander #content").First()
	if el.Length() == 0 {
		return ""
	}

	var lines []string
	for line := range strings.Lines(FlattenText(el)) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || isDescriptionNoise(trimmed) {
			continue
		}
		lines = append(lines, trimmed)
	}
	return strings.Join(lines, "\n")
}

func isDescriptionNoise(line string) bool {
	for _, re := range descriptionNoiseRes {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// descriptionFromLDJSON is the last-resort tier: the page's structured
// metadata block.
func descriptionFromLDJSON(doc *goquery.Document) string {
	var desc string
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var data map[string]any
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			return true
		}
		if d, ok := data["description"].(string); ok && strings.TrimSpace(d) != "" {
			desc = strings.TrimSpace(d)
			return false
		}
		return true
	})
	return desc
}

// youtubeVideoID extracts the v query parameter from a watch URL.
func youtubeVideoID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Query().Get("v")
}

// dig walks nested maps by key and returns the value at the end of the
// path, or nil when any step is missing.
func dig(m map[string]any, path ...string) any {
	var cur any = m
	for _, key := range path {
		node, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = node[key]
	}
	return cur
}
