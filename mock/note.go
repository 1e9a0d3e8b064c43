package mock

import (
	"context"

	"github.com/fwojciec/webclip"
)

var _ webclip.NoteService = (*NoteService)(nil)

// NoteService is a mock implementation of webclip.NoteService.
type NoteService struct {
	CreateNoteFn     func(ctx context.Context, note *webclip.Note) error
	ListCategoriesFn func(ctx context.Context) ([]webclip.Category, error)
}

func (s *NoteService) CreateNote(ctx context.Context, note *webclip.Note) error {
	return s.CreateNoteFn(ctx, note)
}

func (s *NoteService) ListCategories(ctx context.Context) ([]webclip.Category, error) {
	return s.ListCategoriesFn(ctx)
}
