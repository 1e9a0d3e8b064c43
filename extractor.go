package webclip

import (
	"context"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Result type values identifying which extraction path produced a Result.
// Every Result carries exactly one of these in Metadata["type"].
const (
	TypeRedditPost            = "reddit-post"
	TypeYouTubeVideo          = "youtube-video"
	TypeTweet                 = "tweet"
	TypeMediumArticle         = "medium-article"
	TypeGitHubRepo            = "github-repo"
	TypeGitHubIssue           = "github-issue"
	TypeGitHubPR              = "github-pr"
	TypeStackOverflowQuestion = "stackoverflow-question"
	TypeWikipediaArticle      = "wikipedia-article"
	TypeAmazonProduct         = "amazon-product"
	TypeIMDbTitle             = "imdb-title"
	TypeReadabilityArticle    = "readability-article"
	TypeFallbackExtraction    = "fallback-extraction"
	TypeSelection             = "selection"
	TypeGeneric               = "generic"
)

// Metadata is an open mapping of extraction metadata, semantically
// namespaced per extractor family (author, subreddit, channel, price, ...).
// The "type" key is mandatory and identifies the code path taken.
type Metadata map[string]any

// Type returns the mandatory extraction type, or "" if unset.
func (m Metadata) Type() string {
	t, _ := m["type"].(string)
	return t
}

// Result is the normalized record produced by every extraction path.
// It is constructed fresh per request and holds no references to the
// page it was extracted from.
type Result struct {
	// Title is plain text, never empty after dispatcher normalization.
	// Titles derived from long source text are capped at 100 characters
	// with an ellipsis suffix.
	Title string `json:"title"`

	// Content is Markdown. Raw HTML may appear only for constructs
	// Markdown cannot express losslessly (e.g. inline video with source
	// fallbacks); this is a documented escape hatch, not an error.
	Content string `json:"content"`

	// Metadata carries per-family fields plus the mandatory "type".
	Metadata Metadata `json:"metadata"`

	// Warnings records which fallback tiers fired and what was skipped,
	// so callers and tests can reason about fidelity without log parsing.
	Warnings []string `json:"warnings,omitempty"`
}

// Warn appends a diagnostic message to the result.
func (r *Result) Warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Checksum returns a hash of the result content. Two extractions of the
// same DOM snapshot produce the same checksum.
func (r *Result) Checksum() string {
	h := xxhash.Sum64String(r.Content)
	return fmt.Sprintf("%016x", h)
}

// Validate returns an error if the result violates the record invariants.
func (r *Result) Validate() error {
	if r.Title == "" {
		return Errorf(EINVALID, "result title required")
	}
	if r.Metadata.Type() == "" {
		return Errorf(EINVALID, "result metadata type required")
	}
	return nil
}

// Extractor produces a Result from the current page. Implementations are
// stateless aside from the page they read; every internal failure degrades
// to a lower-fidelity section or tier rather than aborting the extraction.
type Extractor interface {
	// Name returns the extractor's identifier (e.g. "reddit", "youtube").
	Name() string

	// Domains returns the hostname patterns this extractor handles.
	// Nil means the extractor is not hostname-scoped (fallback paths).
	Domains() []string

	// Extract reads the page and returns the normalized record.
	// The context bounds any page interaction the extractor performs.
	Extract(ctx context.Context, page *Page) (*Result, error)
}

// Registry resolves hostnames to site extractors. Registries are
// constructed once at startup from an explicit extractor list; lookup
// prefers an exact domain match, then the longest suffix/substring match.
type Registry interface {
	// Lookup returns the extractor for a hostname, or false when no
	// registered domain matches.
	Lookup(hostname string) (Extractor, bool)

	// List returns all registered extractors in registration order.
	List() []Extractor
}
