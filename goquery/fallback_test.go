package goquery_test

import (
	"context"
	"strings"
	"testing"

	"github.com/fwojciec/webclip"
	"github.com/fwojciec/webclip/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure extractors implement webclip.Extractor at compile time.
var (
	_ webclip.Extractor = (*goquery.FallbackExtractor)(nil)
	_ webclip.Extractor = (*goquery.FullPageExtractor)(nil)
)

// filler returns readable prose long enough to pass the container and
// paragraph thresholds.
func filler(n int) string {
	return strings.TrimSpace(strings.Repeat("Readable prose for threshold purposes. ", n))
}

func TestFallbackExtractor(t *testing.T) {
	t.Parallel()

	e := goquery.NewFallbackExtractor()

	t.Run("prefers an article container", func(t *testing.T) {
		t.Parallel()

		page := &webclip.Page{
			URL:   "https://example.com/post",
			Title: "A Post",
			HTML: `<html><body>
<nav>Home | About</nav>
<article><h2>Heading</h2><p>` + filler(5) + `</p></article>
</body></html>`,
		}

		result, err := e.Extract(context.Background(), page)

		require.NoError(t, err)
		assert.Equal(t, "A Post", result.Title)
		assert.Contains(t, result.Content, "## Heading")
		assert.Contains(t, result.Content, "Readable prose")
		assert.NotContains(t, result.Content, "Home")
		assert.Equal(t, webclip.TypeFallbackExtraction, result.Metadata.Type())
		assert.Empty(t, result.Warnings)
	})

	t.Run("skips trivial containers and keeps cascading", func(t *testing.T) {
		t.Parallel()

		page := &webclip.Page{
			URL: "https://example.com/",
			HTML: `<html><body>
<article>too short</article>
<main><p>` + filler(5) + `</p></main>
</body></html>`,
		}

		result, err := e.Extract(context.Background(), page)

		require.NoError(t, err)
		assert.Contains(t, result.Content, "Readable prose")
		assert.NotContains(t, result.Content, "too short")
	})

	t.Run("falls back to the paragraph scrape", func(t *testing.T) {
		t.Parallel()

		page := &webclip.Page{
			URL: "https://example.com/",
			HTML: `<html><body>
<div><p>` + filler(3) + `</p></div>
<div><p>short</p></div>
<div><p>` + filler(3) + `</p></div>
</body></html>`,
		}

		result, err := e.Extract(context.Background(), page)

		require.NoError(t, err)
		assert.Equal(t, 2, strings.Count(result.Content, "Readable prose"))
		assert.NotContains(t, result.Content, "short")
		require.NotEmpty(t, result.Warnings)
		assert.Contains(t, result.Warnings[0], "scraping paragraphs")
	})

	t.Run("emits the sentinel when nothing is readable", func(t *testing.T) {
		t.Parallel()

		page := &webclip.Page{
			URL:  "https://example.com/",
			HTML: `<html><body><span>hi</span></body></html>`,
		}

		result, err := e.Extract(context.Background(), page)

		require.NoError(t, err)
		assert.Equal(t, goquery.NoReadableContent, result.Content)
		assert.Len(t, result.Warnings, 2)
	})

	t.Run("never errors on an empty document", func(t *testing.T) {
		t.Parallel()

		result, err := e.Extract(context.Background(), &webclip.Page{URL: "https://example.com/"})

		require.NoError(t, err)
		assert.Equal(t, goquery.NoReadableContent, result.Content)
	})
}

func TestFullPageExtractor(t *testing.T) {
	t.Parallel()

	e := goquery.NewFullPageExtractor()

	t.Run("converts the main container when present", func(t *testing.T) {
		t.Parallel()

		page := &webclip.Page{
			URL:   "https://example.com/",
			Title: "Full",
			HTML:  `<html><body><nav>menu</nav><main><h1>Title</h1><p>Body text.</p></main></body></html>`,
		}

		result, err := e.Extract(context.Background(), page)

		require.NoError(t, err)
		assert.Equal(t, webclip.TypeGeneric, result.Metadata.Type())
		assert.Contains(t, result.Content, "# Title")
		assert.NotContains(t, result.Content, "menu")
	})

	t.Run("converts the whole body without a container", func(t *testing.T) {
		t.Parallel()

		page := &webclip.Page{
			URL:  "https://example.com/",
			HTML: `<html><body><h2>Loose</h2><p>Page text.</p></body></html>`,
		}

		result, err := e.Extract(context.Background(), page)

		require.NoError(t, err)
		assert.Contains(t, result.Content, "## Loose")
		assert.Contains(t, result.Content, "Page text.")
	})
}
