package goquery

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webclip"
)

// Ensure IMDbExtractor implements webclip.Extractor at compile time.
var _ webclip.Extractor = (*IMDbExtractor)(nil)

// maxCastMembers caps the cast list at the top billing.
const maxCastMembers = 10

// IMDbExtractor handles title pages for films and series.
type IMDbExtractor struct{}

// NewIMDbExtractor creates a new IMDbExtractor.
func NewIMDbExtractor() *IMDbExtractor {
	return &IMDbExtractor{}
}

// Name returns the extractor's identifier.
func (e *IMDbExtractor) Name() string { return "imdb" }

// Domains returns the hostname patterns this extractor handles.
func (e *IMDbExtractor) Domains() []string { return []string{"imdb.com"} }

// Extract reads the title page.
func (e *IMDbExtractor) Extract(_ context.Context, page *webclip.Page) (*webclip.Result, error) {
	doc, err := Parse(page)
	if err != nil {
		return nil, err
	}

	result := &webclip.Result{
		Metadata: webclip.Metadata{"type": webclip.TypeIMDbTitle},
	}

	result.Title = firstText(doc, `[data-testid="hero__primary-text"]`, "h1")
	if result.Title == "" {
		result.Title = webclip.StripTitleSuffix(page.Title, " - IMDb")
		result.Warn("no hero title element, using document title")
	}

	var content strings.Builder
	content.WriteString("# " + result.Title + "\n\n")

	// Year, rating certificate and runtime share one subtitle list.
	var info []string
	doc.Find(`[data-testid="hero__subtitle-list"] li, ul[data-testid="hero-title-block__metadata"] li`).Each(func(_ int, item *goquery.Selection) {
		if text := strings.TrimSpace(item.Text()); text != "" {
			info = append(info, text)
		}
	})
	if len(info) > 0 {
		content.WriteString("**Info:** " + strings.Join(info, " • ") + "\n\n")
	}

	if rating := firstText(doc, `[data-testid="hero-rating-bar__aggregate-rating__score"] span`); rating != "" {
		content.WriteString("**Rating:** " + rating + "/10\n\n")
		result.Metadata["rating"] = rating
	}

	if poster := firstAttr(doc, "src", `[data-testid="hero-media__poster"] img`, ".ipc-poster img"); poster != "" {
		content.WriteString("![Poster](" + poster + ")\n\n")
	}

	if plot := firstText(doc, `[data-testid="plot-xl"]`, `[data-testid="plot"] span`); plot != "" {
		content.WriteString("## Plot\n\n" + plot + "\n\n")
	}

	if directors := imdbCredits(doc, "Director"); len(directors) > 0 {
		content.WriteString("**Director:** " + strings.Join(directors, ", ") + "\n\n")
		result.Metadata["directors"] = directors
	}

	var cast []string
	doc.Find(`[data-testid="title-cast-item__actor"]`).EachWithBreak(func(_ int, actor *goquery.Selection) bool {
		if name := strings.TrimSpace(actor.Text()); name != "" {
			cast = append(cast, name)
		}
		return len(cast) < maxCastMembers
	})
	if len(cast) > 0 {
		content.WriteString("## Cast\n\n")
		for _, name := range cast {
			content.WriteString("- " + name + "\n")
		}
		content.WriteString("\n")
	}

	var genres []string
	doc.Find(`[data-testid="genres"] a, .ipc-chip-list a.ipc-chip`).Each(func(_ int, genre *goquery.Selection) {
		if text := strings.TrimSpace(genre.Text()); text != "" {
			genres = append(genres, text)
		}
	})
	if len(genres) > 0 {
		content.WriteString("**Genres:** " + strings.Join(genres, ", ") + "\n\n")
		result.Metadata["genres"] = genres
	}

	result.Content = Normalize(content.String())
	return result, nil
}

// imdbCredits reads a principal-credit row by its label prefix.
func imdbCredits(doc *goquery.Document, label string) []string {
	var names []string
	doc.Find(`[data-testid="title-pc-principal-credit"]`).Each(func(_ int, row *goquery.Selection) {
		rowLabel := strings.TrimSpace(row.Find("span, a").First().Text())
		if !strings.HasPrefix(rowLabel, label) {
			return
		}
		row.Find("ul li a").Each(func(_ int, a *goquery.Selection) {
			if name := strings.TrimSpace(a.Text()); name != "" && name != rowLabel {
				names = append(names, name)
			}
		})
	})
	return names
}
