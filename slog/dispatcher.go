package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/webclip"
)

// Ensure LoggingDispatcher implements webclip.Dispatcher.
var _ webclip.Dispatcher = (*LoggingDispatcher)(nil)

// LoggingDispatcher wraps a Dispatcher with debug logging.
type LoggingDispatcher struct {
	next   webclip.Dispatcher
	logger *slog.Logger
}

// NewLoggingDispatcher creates a new LoggingDispatcher.
func NewLoggingDispatcher(next webclip.Dispatcher, logger *slog.Logger) *LoggingDispatcher {
	return &LoggingDispatcher{next: next, logger: logger}
}

// Handle delegates to the wrapped dispatcher and logs the operation.
func (d *LoggingDispatcher) Handle(ctx context.Context, page *webclip.Page, req *webclip.Request) (resp *webclip.Response) {
	defer func(begin time.Time) {
		d.logger.Info("message handled",
			"action", req.Action,
			"url", page.URL,
			"success", resp.Success,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return d.next.Handle(ctx, page, req)
}

// Extract delegates to the wrapped dispatcher and logs the operation.
func (d *LoggingDispatcher) Extract(ctx context.Context, page *webclip.Page, mode webclip.Mode, sel *webclip.Selection) (result *webclip.Result) {
	defer func(begin time.Time) {
		d.logger.Info("extraction dispatched",
			"mode", mode,
			"url", page.URL,
			"type", result.Metadata.Type(),
			"warnings", len(result.Warnings),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return d.next.Extract(ctx, page, mode, sel)
}
