package mock

import (
	"context"

	"github.com/fwojciec/webclip"
)

var _ webclip.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of webclip.Extractor.
type Extractor struct {
	NameFn    func() string
	DomainsFn func() []string
	ExtractFn func(ctx context.Context, page *webclip.Page) (*webclip.Result, error)
}

func (e *Extractor) Name() string {
	return e.NameFn()
}

func (e *Extractor) Domains() []string {
	return e.DomainsFn()
}

func (e *Extractor) Extract(ctx context.Context, page *webclip.Page) (*webclip.Result, error) {
	return e.ExtractFn(ctx, page)
}

var _ webclip.Registry = (*Registry)(nil)

// Registry is a mock implementation of webclip.Registry.
type Registry struct {
	LookupFn func(hostname string) (webclip.Extractor, bool)
	ListFn   func() []webclip.Extractor
}

func (r *Registry) Lookup(hostname string) (webclip.Extractor, bool) {
	return r.LookupFn(hostname)
}

func (r *Registry) List() []webclip.Extractor {
	return r.ListFn()
}
