package mock

import (
	"context"

	"github.com/fwojciec/webclip"
)

var _ webclip.Dispatcher = (*Dispatcher)(nil)

// Dispatcher is a mock implementation of webclip.Dispatcher.
type Dispatcher struct {
	HandleFn  func(ctx context.Context, page *webclip.Page, req *webclip.Request) *webclip.Response
	ExtractFn func(ctx context.Context, page *webclip.Page, mode webclip.Mode, sel *webclip.Selection) *webclip.Result
}

func (d *Dispatcher) Handle(ctx context.Context, page *webclip.Page, req *webclip.Request) *webclip.Response {
	return d.HandleFn(ctx, page, req)
}

func (d *Dispatcher) Extract(ctx context.Context, page *webclip.Page, mode webclip.Mode, sel *webclip.Selection) *webclip.Result {
	return d.ExtractFn(ctx, page, mode, sel)
}
