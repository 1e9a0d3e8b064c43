// Package slog provides logging decorators for the webclip service
// interfaces, built on the standard structured logger.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/webclip"
)

// Ensure LoggingExtractor implements webclip.Extractor.
var _ webclip.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   webclip.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next webclip.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Name delegates to the wrapped extractor.
func (e *LoggingExtractor) Name() string {
	return e.next.Name()
}

// Domains delegates to the wrapped extractor.
func (e *LoggingExtractor) Domains() []string {
	return e.next.Domains()
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) Extract(ctx context.Context, page *webclip.Page) (result *webclip.Result, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"extractor", e.next.Name(),
			"url", page.URL,
			"duration", time.Since(begin),
			"err", err,
		}
		if result != nil {
			attrs = append(attrs,
				"type", result.Metadata.Type(),
				"bytes", len(result.Content),
				"warnings", len(result.Warnings),
			)
		}
		e.logger.Info("extraction", attrs...)
	}(time.Now())
	return e.next.Extract(ctx, page)
}
