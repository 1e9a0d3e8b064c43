package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/webclip"
	"github.com/fwojciec/webclip/clip"
	main "github.com/fwojciec/webclip/cmd/webclip"
	"github.com/fwojciec/webclip/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClipper wires a Clipper from mocks so command tests can control
// every stage of the pipeline.
func testClipper(fetcher *mock.Fetcher, dispatcher *mock.Dispatcher, notes *mock.NoteService) *clip.Clipper {
	return &clip.Clipper{
		Fetcher:    fetcher,
		Dispatcher: dispatcher,
		Notes:      notes,
	}
}

func TestClipCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints titled markdown for each URL", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "<html><body>irrelevant</body></html>", nil
			},
		}
		dispatcher := &mock.Dispatcher{
			ExtractFn: func(_ context.Context, page *webclip.Page, _ webclip.Mode, _ *webclip.Selection) *webclip.Result {
				return &webclip.Result{
					Title:    "Page " + page.URL,
					Content:  "Body of " + page.URL + "\n",
					Metadata: webclip.Metadata{"type": webclip.TypeGeneric},
				}
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  stderr,
			Clipper: testClipper(fetcher, dispatcher, nil),
		}

		cmd := &main.ClipCmd{URLs: []string{"https://a.example", "https://b.example"}}

		err := cmd.Run(deps)
		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "# Page https://a.example")
		assert.Contains(t, output, "Body of https://a.example")
		assert.Contains(t, output, "# Page https://b.example")
		assert.Empty(t, stderr.String())
	})

	t.Run("prints warnings to stderr", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) { return "<html></html>", nil },
		}
		dispatcher := &mock.Dispatcher{
			ExtractFn: func(_ context.Context, _ *webclip.Page, _ webclip.Mode, _ *webclip.Selection) *webclip.Result {
				return &webclip.Result{
					Title:    "Untitled",
					Content:  "No readable content found.",
					Metadata: webclip.Metadata{"type": webclip.TypeFallbackExtraction},
					Warnings: []string{"no main content container found"},
				}
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  stderr,
			Clipper: testClipper(fetcher, dispatcher, nil),
		}

		cmd := &main.ClipCmd{URLs: []string{"https://a.example"}}

		err := cmd.Run(deps)
		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "warning: no main content container found")
	})

	t.Run("save reports batch summary and progress", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) { return "<html></html>", nil },
		}
		dispatcher := &mock.Dispatcher{
			ExtractFn: func(_ context.Context, page *webclip.Page, _ webclip.Mode, _ *webclip.Selection) *webclip.Result {
				return &webclip.Result{
					Title:    "Note for " + page.URL,
					Content:  "Content for " + page.URL,
					Metadata: webclip.Metadata{"type": webclip.TypeGeneric},
				}
			},
		}

		var saved []*webclip.Note
		notes := &mock.NoteService{
			CreateNoteFn: func(_ context.Context, note *webclip.Note) error {
				saved = append(saved, note)
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  stderr,
			Clipper: testClipper(fetcher, dispatcher, notes),
		}

		cmd := &main.ClipCmd{
			URLs:     []string{"https://a.example", "https://b.example"},
			Save:     true,
			Category: "inbox",
		}

		err := cmd.Run(deps)
		require.NoError(t, err)

		assert.Len(t, saved, 2)
		for _, n := range saved {
			assert.Equal(t, "inbox", n.Category)
		}
		output := stdout.String()
		assert.Contains(t, output, "Clipping 2 URLs")
		assert.Contains(t, output, "Saved 2 notes (0 failed, 0 duplicates)")
	})

	t.Run("save reports failed URLs without aborting", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				if url == "https://down.example" {
					return "", webclip.Errorf(webclip.EUNAVAILABLE, "request failed")
				}
				return "<html></html>", nil
			},
		}
		dispatcher := &mock.Dispatcher{
			ExtractFn: func(_ context.Context, page *webclip.Page, _ webclip.Mode, _ *webclip.Selection) *webclip.Result {
				return &webclip.Result{
					Title:    "Note",
					Content:  "Content for " + page.URL,
					Metadata: webclip.Metadata{"type": webclip.TypeGeneric},
				}
			},
		}
		notes := &mock.NoteService{
			CreateNoteFn: func(_ context.Context, _ *webclip.Note) error { return nil },
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  stderr,
			Clipper: testClipper(fetcher, dispatcher, notes),
		}

		cmd := &main.ClipCmd{
			URLs: []string{"https://up.example", "https://down.example"},
			Save: true,
		}

		err := cmd.Run(deps)
		require.NoError(t, err)

		assert.Contains(t, stderr.String(), "skip https://down.example")
		assert.Contains(t, stdout.String(), "Saved 1 notes (1 failed, 0 duplicates)")
	})

	t.Run("print returns error when a fetch fails", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "", webclip.Errorf(webclip.EUNAVAILABLE, "request failed")
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  stderr,
			Clipper: testClipper(fetcher, &mock.Dispatcher{}, nil),
		}

		cmd := &main.ClipCmd{URLs: []string{"https://down.example"}}

		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}
