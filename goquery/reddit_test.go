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

// Ensure RedditExtractor implements webclip.Extractor at compile time.
var _ webclip.Extractor = (*goquery.RedditExtractor)(nil)

func TestRedditExtractor_Extract(t *testing.T) {
	t.Parallel()

	e := goquery.NewRedditExtractor()

	t.Run("extracts a text post with metadata", func(t *testing.T) {
		t.Parallel()

		page := &webclip.Page{
			URL:   "https://www.reddit.com/r/golang/comments/abc/post/",
			Title: "doc title",
			HTML: `<html><body>
<shreddit-post>
	<h1>How do goroutines work?</h1>
	<span slot="authorName"><a>u/gopher</a></span>
	<span slot="subreddit"><a>r/golang</a></span>
	<time datetime="2024-03-01T10:00:00Z">Mar 1</time>
	<div slot="text-body"><p>They are cheap.</p><p>Very cheap.</p></div>
</shreddit-post>
</body></html>`,
		}

		result, err := e.Extract(context.Background(), page)

		require.NoError(t, err)
		assert.Equal(t, "How do goroutines work?", result.Title)
		assert.Contains(t, result.Content, "## Post Content")
		assert.Contains(t, result.Content, "They are cheap.")
		assert.Equal(t, webclip.TypeRedditPost, result.Metadata.Type())
		assert.Equal(t, "gopher", result.Metadata["author"])
		assert.Equal(t, "golang", result.Metadata["subreddit"])
		assert.Equal(t, "2024-03-01T10:00:00Z", result.Metadata["timestamp"])
	})

	t.Run("thumbnail links back to the post", func(t *testing.T) {
		t.Parallel()

		page := &webclip.Page{
			URL: "https://www.reddit.com/r/pics/comments/xyz/photo/",
			HTML: `<html><body>
<h1>A photo</h1>
<img alt="Post thumbnail" src="https://preview.redd.it/abc123.jpeg?width=640">
</body></html>`,
		}

		result, err := e.Extract(context.Background(), page)

		require.NoError(t, err)
		assert.Contains(t, result.Content, "## Post Thumbnail")
		assert.Contains(t, result.Content, "[![Post Thumbnail](https://preview.redd.it/abc123.jpeg?width=640)]("+page.URL+")")
	})

	t.Run("animated preview gets the video embed", func(t *testing.T) {
		t.Parallel()

		page := &webclip.Page{
			URL: "https://www.reddit.com/r/gifs/comments/xyz/loop/",
			HTML: `<html><body>
<h1>A loop</h1>
<img alt="Post thumbnail" src="https://preview.redd.it/abc123.png?format=png&width=640">
</body></html>`,
		}

		result, err := e.Extract(context.Background(), page)

		require.NoError(t, err)
		assert.Contains(t, result.Content, "## Post Thumbnail (Animated GIF)")
		assert.Contains(t, result.Content, `<video controls autoplay muted loop`)
		assert.Contains(t, result.Content, "https://preview.redd.it/abc123.gif?width=640&format=mp4")
		assert.Contains(t, result.Content, "**[Direct Link to Post]("+page.URL+")**")
	})

	t.Run("duplicate media appears once", func(t *testing.T) {
		t.Parallel()

		img := `<img src="https://i.redd.it/photo1.jpg">`
		page := &webclip.Page{
			URL:  "https://www.reddit.com/r/pics/comments/xyz/dup/",
			HTML: `<html><body><h1>Dup</h1>` + strings.Repeat(img, 5) + `</body></html>`,
		}

		result, err := e.Extract(context.Background(), page)

		require.NoError(t, err)
		assert.Equal(t, 1, strings.Count(result.Content, "https://i.redd.it/photo1.jpg"))
	})

	t.Run("avatar and icon media are excluded", func(t *testing.T) {
		t.Parallel()

		page := &webclip.Page{
			URL: "https://www.reddit.com/r/pics/comments/xyz/icons/",
			HTML: `<html><body>
<h1>Icons</h1>
<img src="https://i.redd.it/avatar-user.png">
<img src="https://i.redd.it/snoo-icon.png">
<img src="https://i.redd.it/real-photo.jpg">
</body></html>`,
		}

		result, err := e.Extract(context.Background(), page)

		require.NoError(t, err)
		assert.NotContains(t, result.Content, "avatar-user")
		assert.NotContains(t, result.Content, "snoo-icon")
		assert.Contains(t, result.Content, "real-photo.jpg")
	})

	t.Run("external link post", func(t *testing.T) {
		t.Parallel()

		page := &webclip.Page{
			URL: "https://www.reddit.com/r/news/comments/xyz/link/",
			HTML: `<html><body>
<h1>Link post</h1>
<a slot="full-post-link" href="https://example.org/story">story</a>
</body></html>`,
		}

		result, err := e.Extract(context.Background(), page)

		require.NoError(t, err)
		assert.Contains(t, result.Content, "**Link:** [https://example.org/story](https://example.org/story)")
	})

	t.Run("empty page yields the placeholder without an error", func(t *testing.T) {
		t.Parallel()

		page := &webclip.Page{
			URL:   "https://www.reddit.com/r/empty/comments/xyz/gone/",
			Title: "deleted post",
			HTML:  `<html><body></body></html>`,
		}

		result, err := e.Extract(context.Background(), page)

		require.NoError(t, err)
		assert.Equal(t, "deleted post", result.Title)
		assert.Equal(t, "Could not extract post content", result.Content)
		assert.NotEmpty(t, result.Warnings)
	})
}
