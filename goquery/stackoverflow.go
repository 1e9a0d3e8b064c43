package goquery

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webclip"
)

// Ensure StackOverflowExtractor implements webclip.Extractor at compile time.
var _ webclip.Extractor = (*StackOverflowExtractor)(nil)

// StackOverflowExtractor handles question pages: the question body
// followed by every answer with its vote count, the accepted answer
// marked and listed first by the site's own ordering.
type StackOverflowExtractor struct{}

// NewStackOverflowExtractor creates a new StackOverflowExtractor.
func NewStackOverflowExtractor() *StackOverflowExtractor {
	return &StackOverflowExtractor{}
}

// Name returns the extractor's identifier.
func (e *StackOverflowExtractor) Name() string { return "stackoverflow" }

// Domains returns the hostname patterns this extractor handles.
func (e *StackOverflowExtractor) Domains() []string { return []string{"stackoverflow.com"} }

// Extract reads the question page.
func (e *StackOverflowExtractor) Extract(_ context.Context, page *webclip.Page) (*webclip.Result, error) {
	doc, err := Parse(page)
	if err != nil {
		return nil, err
	}

	result := &webclip.Result{
		Metadata: webclip.Metadata{"type": webclip.TypeStackOverflowQuestion},
	}

	result.Title = firstText(doc, "#question-header h1")
	if result.Title == "" {
		result.Title = page.Title
		result.Warn("no question header, using document title")
	}

	base := page.Base()
	var content strings.Builder
	content.WriteString("# " + result.Title + "\n\n")

	// Tags before any conversion mutates the tree.
	var tags []string
	doc.Find(".post-tag").Each(func(_ int, tag *goquery.Selection) {
		if t := strings.TrimSpace(tag.Text()); t != "" {
			tags = append(tags, t)
		}
	})
	if len(tags) > 0 {
		result.Metadata["tags"] = tags
	}

	// Collect answer bodies up front for the same reason.
	type answer struct {
		votes    string
		accepted bool
		body     string
	}
	var answers []answer
	doc.Find(".answer").Each(func(_ int, a *goquery.Selection) {
		body := a.Find(".js-post-body").First()
		if body.Length() == 0 {
			return
		}
		votes := strings.TrimSpace(a.Find(".js-vote-count").First().Text())
		if votes == "" {
			votes = "0"
		}
		answers = append(answers, answer{
			votes:    votes,
			accepted: a.HasClass("accepted-answer"),
			body:     convertTree(body, base),
		})
	})

	if q := doc.Find(".question .js-post-body").First(); q.Length() > 0 {
		content.WriteString("## Question\n\n" + convertTree(q, base) + "\n")
	} else {
		result.Warn("no question body")
	}

	if len(answers) > 0 {
		fmt.Fprintf(&content, "---\n\n## Answers (%d)\n\n", len(answers))
		for i, a := range answers {
			if a.accepted {
				fmt.Fprintf(&content, "### Answer (%s votes) - Accepted\n\n", a.votes)
			} else {
				fmt.Fprintf(&content, "### Answer %d (%s votes)\n\n", i+1, a.votes)
			}
			content.WriteString(a.body + "\n")
		}
	} else {
		result.Warn("no answers found")
	}

	result.Content = content.String()
	return result, nil
}
