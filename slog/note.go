package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/webclip"
)

// Ensure LoggingNoteService implements webclip.NoteService.
var _ webclip.NoteService = (*LoggingNoteService)(nil)

// LoggingNoteService wraps a NoteService with debug logging.
type LoggingNoteService struct {
	next   webclip.NoteService
	logger *slog.Logger
}

// NewLoggingNoteService creates a new LoggingNoteService.
func NewLoggingNoteService(next webclip.NoteService, logger *slog.Logger) *LoggingNoteService {
	return &LoggingNoteService{next: next, logger: logger}
}

// CreateNote delegates to the wrapped service and logs the operation.
func (s *LoggingNoteService) CreateNote(ctx context.Context, note *webclip.Note) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("note saved",
			"title", note.Title,
			"category", note.Category,
			"bytes", len(note.Content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateNote(ctx, note)
}

// ListCategories delegates to the wrapped service and logs the operation.
func (s *LoggingNoteService) ListCategories(ctx context.Context) (categories []webclip.Category, err error) {
	defer func(begin time.Time) {
		s.logger.Info("categories listed",
			"count", len(categories),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ListCategories(ctx)
}
