package mock

import (
	"context"

	"github.com/fwojciec/webclip"
)

var _ webclip.Interactor = (*Interactor)(nil)

// Interactor is a mock implementation of webclip.Interactor.
type Interactor struct {
	ExpandFn func(ctx context.Context, selector string) (string, error)
}

func (i *Interactor) Expand(ctx context.Context, selector string) (string, error) {
	return i.ExpandFn(ctx, selector)
}
