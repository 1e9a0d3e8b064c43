// Package clip provides clipping orchestration: the extractor registry,
// the message dispatcher with its fallback tiers, selection capture, and
// batch clipping.
package clip

import (
	"strings"

	"github.com/fwojciec/webclip"
)

// Ensure Registry implements webclip.Registry at compile time.
var _ webclip.Registry = (*Registry)(nil)

// Registry maps hostnames to site extractors. Lookup prefers an exact
// domain match, then the longest registered domain contained in the
// hostname, so "news.ycombinator.com" never accidentally matches a
// registration for "ycombinator.org".
type Registry struct {
	extractors []webclip.Extractor
	byDomain   map[string]webclip.Extractor
}

// NewRegistry creates a Registry over the given extractors.
// Registration order breaks ties between equally specific domains.
func NewRegistry(extractors ...webclip.Extractor) *Registry {
	r := &Registry{
		extractors: extractors,
		byDomain:   make(map[string]webclip.Extractor),
	}
	for _, e := range extractors {
		for _, d := range e.Domains() {
			d = strings.ToLower(d)
			if _, exists := r.byDomain[d]; !exists {
				r.byDomain[d] = e
			}
		}
	}
	return r
}

// Lookup returns the extractor registered for the hostname.
func (r *Registry) Lookup(hostname string) (webclip.Extractor, bool) {
	hostname = strings.ToLower(strings.TrimSpace(hostname))
	if hostname == "" {
		return nil, false
	}

	if e, ok := r.byDomain[hostname]; ok {
		return e, true
	}
	if e, ok := r.byDomain[strings.TrimPrefix(hostname, "www.")]; ok {
		return e, true
	}

	// Longest containing match wins: "old.reddit.com" hits "reddit.com"
	// before any shorter registration could.
	var best webclip.Extractor
	bestLen := 0
	for _, e := range r.extractors {
		for _, d := range e.Domains() {
			d = strings.ToLower(d)
			if len(d) > bestLen && strings.Contains(hostname, d) {
				best = e
				bestLen = len(d)
			}
		}
	}
	return best, best != nil
}

// List returns the registered extractors in registration order.
func (r *Registry) List() []webclip.Extractor {
	return r.extractors
}
