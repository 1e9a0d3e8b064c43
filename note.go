package webclip

import "context"

// Note is the outbound record assembled for the save collaborator.
// Title and Category may override what extraction produced.
type Note struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category,omitempty"`
}

// Validate returns an error if the note contains invalid fields.
func (n *Note) Validate() error {
	if n.Title == "" {
		return Errorf(EINVALID, "note title required")
	}
	if n.Content == "" {
		return Errorf(EINVALID, "note content required")
	}
	return nil
}

// Category is a note category exposed by the note-taking service.
type Category struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// NoteService saves notes to the external note-taking service.
type NoteService interface {
	// CreateNote persists a note. Returns EUNAVAILABLE when the service
	// cannot be reached and EINVALID when it rejects the payload.
	CreateNote(ctx context.Context, note *Note) error

	// ListCategories returns the categories available for filing notes.
	ListCategories(ctx context.Context) ([]Category, error)
}

// Fetcher retrieves HTML content from URLs.
type Fetcher interface {
	// Fetch retrieves the document at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}
