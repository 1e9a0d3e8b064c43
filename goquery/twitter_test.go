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

func TestTwitterExtractor_Extract(t *testing.T) {
	t.Parallel()

	e := goquery.NewTwitterExtractor()

	t.Run("tweet text doubles as the title", func(t *testing.T) {
		t.Parallel()

		page := &webclip.Page{
			URL: "https://x.com/gopher/status/123",
			HTML: `<html><body>
<article>
	<div data-testid="User-Name"><span>Gopher</span></div>
	<div data-testid="tweetText">Generics landed in Go 1.18.</div>
</article>
</body></html>`,
		}

		result, err := e.Extract(context.Background(), page)

		require.NoError(t, err)
		assert.Equal(t, "Generics landed in Go 1.18.", result.Title)
		assert.Equal(t, "Generics landed in Go 1.18.", result.Content)
		assert.Equal(t, webclip.TypeTweet, result.Metadata.Type())
		assert.Equal(t, "Gopher", result.Metadata["author"])
	})

	t.Run("long tweets truncate the title but not the content", func(t *testing.T) {
		t.Parallel()

		text := strings.Repeat("word ", 40)
		page := &webclip.Page{
			URL:  "https://x.com/gopher/status/124",
			HTML: `<html><body><div data-testid="tweetText">` + text + `</div></body></html>`,
		}

		result, err := e.Extract(context.Background(), page)

		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(result.Title, "..."))
		assert.LessOrEqual(t, len([]rune(result.Title)), webclip.TitleLimit+3)
		assert.Equal(t, strings.TrimSpace(text), strings.TrimSpace(result.Content))
	})

	t.Run("photos are numbered and deduplicated", func(t *testing.T) {
		t.Parallel()

		page := &webclip.Page{
			URL: "https://twitter.com/gopher/status/125",
			HTML: `<html><body>
<div data-testid="tweetText">Two photos.</div>
<div data-testid="tweetPhoto"><img src="https://pbs.twimg.com/media/a.jpg"></div>
<div data-testid="tweetPhoto"><img src="https://pbs.twimg.com/media/a.jpg"></div>
<div data-testid="tweetPhoto"><img src="https://pbs.twimg.com/media/b.jpg"></div>
</body></html>`,
		}

		result, err := e.Extract(context.Background(), page)

		require.NoError(t, err)
		assert.Contains(t, result.Content, "![Image 1](https://pbs.twimg.com/media/a.jpg)")
		assert.Contains(t, result.Content, "![Image 2](https://pbs.twimg.com/media/b.jpg)")
		assert.Equal(t, 1, strings.Count(result.Content, "media/a.jpg"))
	})

	t.Run("empty page yields the placeholder", func(t *testing.T) {
		t.Parallel()

		page := &webclip.Page{
			URL:   "https://x.com/gone/status/1",
			Title: "X",
			HTML:  `<html><body></body></html>`,
		}

		result, err := e.Extract(context.Background(), page)

		require.NoError(t, err)
		assert.Equal(t, "Could not extract tweet content", result.Content)
		assert.Equal(t, "X", result.Title)
	})
}
