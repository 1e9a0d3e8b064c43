package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/fwojciec/webclip"
	"github.com/google/uuid"
)

// Ensure NoteService implements webclip.NoteService at compile time.
var _ webclip.NoteService = (*NoteService)(nil)

// NoteService is the HTTP client for the note-taking save API.
// Requests carry the API key and a fresh request id for tracing.
type NoteService struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewNoteService creates a NoteService for the API at baseURL.
func NewNoteService(baseURL, apiKey string) *NoteService {
	return &NoteService{
		client:  &http.Client{Timeout: DefaultFetchTimeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

// CreateNote persists a note through the save API.
func (s *NoteService) CreateNote(ctx context.Context, note *webclip.Note) error {
	if err := note.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(note)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/notes", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	s.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return webclip.Errorf(webclip.EUNAVAILABLE, "note service unreachable: %v", err)
	}
	defer resp.Body.Close()

	return checkStatus(resp)
}

// ListCategories returns the categories available for filing notes.
func (s *NoteService) ListCategories(ctx context.Context) ([]webclip.Category, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/categories", nil)
	if err != nil {
		return nil, err
	}
	s.setHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, webclip.Errorf(webclip.EUNAVAILABLE, "note service unreachable: %v", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var categories []webclip.Category
	if err := json.NewDecoder(resp.Body).Decode(&categories); err != nil {
		return nil, webclip.Errorf(webclip.EINTERNAL, "malformed category response: %v", err)
	}
	return categories, nil
}

func (s *NoteService) setHeaders(req *http.Request) {
	if s.apiKey != "" {
		req.Header.Set("x-api-key", s.apiKey)
	}
	req.Header.Set("X-Request-Id", uuid.NewString())
}

// checkStatus maps HTTP response codes onto application error codes.
func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return webclip.Errorf(webclip.EINVALID, "note service rejected the API key")
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return webclip.Errorf(webclip.EINVALID, "note service rejected the request: HTTP %d %s", resp.StatusCode, strings.TrimSpace(string(body)))
	default:
		return webclip.Errorf(webclip.EUNAVAILABLE, "note service error: HTTP %d", resp.StatusCode)
	}
}
