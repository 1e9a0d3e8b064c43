package goquery

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webclip"
)

// Ensure GitHubExtractor implements webclip.Extractor at compile time.
var _ webclip.Extractor = (*GitHubExtractor)(nil)

// GitHubExtractor handles repository READMEs, issues, and pull requests.
// The page kind is decided from the URL path, not the DOM.
type GitHubExtractor struct{}

// NewGitHubExtractor creates a new GitHubExtractor.
func NewGitHubExtractor() *GitHubExtractor {
	return &GitHubExtractor{}
}

// Name returns the extractor's identifier.
func (e *GitHubExtractor) Name() string { return "github" }

// Domains returns the hostname patterns this extractor handles.
func (e *GitHubExtractor) Domains() []string { return []string{"github.com"} }

// Extract reads the repository page, issue, or pull request.
func (e *GitHubExtractor) Extract(_ context.Context, page *webclip.Page) (*webclip.Result, error) {
	doc, err := Parse(page)
	if err != nil {
		return nil, err
	}

	path := ""
	if u, perr := url.Parse(page.URL); perr == nil {
		path = u.Path
	}

	if strings.Contains(path, "/issues/") || strings.Contains(path, "/pull/") {
		return e.extractIssue(doc, page, path)
	}
	return e.extractRepo(doc, page)
}

func (e *GitHubExtractor) extractRepo(doc *goquery.Document, page *webclip.Page) (*webclip.Result, error) {
	result := &webclip.Result{
		Metadata: webclip.Metadata{"type": webclip.TypeGitHubRepo},
	}

	result.Title = firstText(doc, "h1 strong a", "h1 a strong")
	if result.Title == "" {
		result.Title = page.Title
		result.Warn("no repo name element, using document title")
	}
	result.Metadata["repository"] = result.Title

	if desc := firstText(doc, `[data-pjax="#repo-content-pjax-container"] p`, ".my-3 p", "p.f4"); desc != "" {
		result.Metadata["description"] = desc
	}

	readme := doc.Find("#readme article, .markdown-body").First()
	if readme.Length() == 0 {
		result.Content = "Could not extract README content"
		result.Warn("no README element")
		return result, nil
	}

	result.Content = convertTree(readme, page.Base())
	if strings.TrimSpace(result.Content) == "" {
		result.Content = "Could not extract README content"
		result.Warn("README conversion yielded nothing")
	}
	return result, nil
}

func (e *GitHubExtractor) extractIssue(doc *goquery.Document, page *webclip.Page, path string) (*webclip.Result, error) {
	kind := webclip.TypeGitHubIssue
	if strings.Contains(path, "/pull/") {
		kind = webclip.TypeGitHubPR
	}
	result := &webclip.Result{
		Metadata: webclip.Metadata{"type": kind},
	}

	result.Title = firstText(doc, ".js-issue-title")
	if result.Title == "" {
		result.Title = page.Title
		result.Warn("no issue title element, using document title")
	}

	body := doc.Find(".comment-body").First()
	if body.Length() == 0 {
		result.Content = "Could not extract issue content"
		result.Warn("no comment body")
		return result, nil
	}

	result.Content = convertTree(body, page.Base())
	if strings.TrimSpace(result.Content) == "" {
		result.Content = "Could not extract issue content"
		result.Warn("body conversion yielded nothing")
	}
	return result, nil
}
