package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/webclip"
	"github.com/fwojciec/webclip/mock"
	webslog "github.com/fwojciec/webclip/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs extraction with type and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			NameFn:    func() string { return "reddit" },
			DomainsFn: func() []string { return []string{"reddit.com"} },
			ExtractFn: func(_ context.Context, _ *webclip.Page) (*webclip.Result, error) {
				return &webclip.Result{
					Title:    "Post",
					Content:  "content",
					Metadata: webclip.Metadata{"type": webclip.TypeRedditPost},
				}, nil
			},
		}

		e := webslog.NewLoggingExtractor(inner, logger)
		result, err := e.Extract(context.Background(), &webclip.Page{URL: "https://reddit.com/r/golang"})

		require.NoError(t, err)
		assert.Equal(t, "Post", result.Title)
		output := buf.String()
		assert.Contains(t, output, "extraction")
		assert.Contains(t, output, "extractor=reddit")
		assert.Contains(t, output, "type=reddit-post")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			NameFn:    func() string { return "broken" },
			DomainsFn: func() []string { return nil },
			ExtractFn: func(_ context.Context, _ *webclip.Page) (*webclip.Result, error) {
				return nil, webclip.Errorf(webclip.EINTERNAL, "markup changed")
			},
		}

		e := webslog.NewLoggingExtractor(inner, logger)
		_, err := e.Extract(context.Background(), &webclip.Page{URL: "https://example.com/"})

		require.Error(t, err)
		assert.Contains(t, buf.String(), "markup changed")
	})
}

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with bytes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "<html>content</html>", nil
			},
		}

		f := webslog.NewLoggingFetcher(inner, logger)
		html, err := f.Fetch(context.Background(), "https://example.com/post")

		require.NoError(t, err)
		assert.Equal(t, "<html>content</html>", html)
		output := buf.String()
		assert.Contains(t, output, "fetch")
		assert.Contains(t, output, "url=https://example.com/post")
		assert.Contains(t, output, "bytes=20")
	})

	t.Run("close delegates to the inner fetcher", func(t *testing.T) {
		t.Parallel()

		closed := false
		inner := &mock.Fetcher{CloseFn: func() error { closed = true; return nil }}

		f := webslog.NewLoggingFetcher(inner, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

		require.NoError(t, f.Close())
		assert.True(t, closed)
	})
}

func TestLoggingNoteService_CreateNote(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.NoteService{
		CreateNoteFn: func(_ context.Context, _ *webclip.Note) error { return nil },
	}

	s := webslog.NewLoggingNoteService(inner, logger)
	err := s.CreateNote(context.Background(), &webclip.Note{Title: "T", Content: "C", Category: "inbox"})

	require.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, "note saved")
	assert.Contains(t, output, "category=inbox")
}
