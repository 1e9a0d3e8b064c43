package clip

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"sync/atomic"

	"github.com/fwojciec/webclip"
	"golang.org/x/sync/errgroup"
)

// titleRe pulls the document title out of fetched HTML so extractors see
// the same page shape an interactive capture would produce.
var titleRe = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)

// Clipper orchestrates clipping one or many URLs: fetch, dispatch,
// deduplicate, save.
type Clipper struct {
	Fetcher     webclip.Fetcher
	Dispatcher  webclip.Dispatcher
	Notes       webclip.NoteService
	RateLimiter webclip.DomainLimiter
	Concurrency int

	// Mode selects the extraction strategy. Empty means ModeAuto.
	Mode webclip.Mode
}

// BatchResult holds the outcome of a batch clip.
type BatchResult struct {
	Saved      int
	Failed     int
	Duplicates int
}

// ProgressEvent reports progress during a batch clip.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Title     string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// clipResult holds the outcome of processing a single URL.
type clipResult struct {
	position int
	url      string
	result   *webclip.Result
	err      error
}

// ClipURL fetches a page and runs the extraction pipeline on it.
func (c *Clipper) ClipURL(ctx context.Context, rawURL string) (*webclip.Result, error) {
	if c.RateLimiter != nil {
		if err := c.RateLimiter.Wait(ctx, hostnameOf(rawURL)); err != nil {
			return nil, err
		}
	}

	html, err := c.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}

	page := &webclip.Page{
		URL:   rawURL,
		Title: documentTitle(html),
		HTML:  html,
	}
	mode := c.Mode
	if mode == "" {
		mode = webclip.ModeAuto
	}
	return c.Dispatcher.Extract(ctx, page, mode, nil), nil
}

// ClipAll clips every URL concurrently and saves each result as a note
// under category. Results whose content checksum was already saved in
// this batch are skipped as duplicates. The progress callback, if
// provided, receives events as clipping proceeds.
func (c *Clipper) ClipAll(ctx context.Context, urls []string, category string, progress ProgressFunc) (*BatchResult, error) {
	if len(urls) == 0 {
		return &BatchResult{}, nil
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	resultCh := make(chan clipResult, len(urls))

	var completed atomic.Int64
	total := len(urls)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, u := range urls {
			g.Go(func() error {
				result, err := c.ClipURL(gctx, u)
				resultCh <- clipResult{position: i, url: u, result: result, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Collect in arrival order, report progress, then save in input
	// order so note creation is deterministic.
	results := make([]clipResult, len(urls))
	for r := range resultCh {
		completed.Add(1)
		results[r.position] = r

		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Completed: int(completed.Load()),
			Total:     total,
			URL:       r.url,
		}
		if r.err != nil {
			event.Type = ProgressFailed
			event.Error = r.err
		} else {
			event.Type = ProgressCompleted
			event.Title = r.result.Title
		}
		progress(event)
	}

	batch := &BatchResult{}
	seen := make(map[string]bool)
	for _, r := range results {
		if r.err != nil {
			batch.Failed++
			continue
		}

		sum := r.result.Checksum()
		if seen[sum] {
			batch.Duplicates++
			continue
		}
		seen[sum] = true

		if c.Notes != nil {
			note := &webclip.Note{
				Title:    r.result.Title,
				Content:  r.result.Content,
				Category: category,
			}
			if err := c.Notes.CreateNote(ctx, note); err != nil {
				batch.Failed++
				continue
			}
		}
		batch.Saved++
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return batch, nil
}

// documentTitle extracts the <title> text from raw HTML, or "".
func documentTitle(html string) string {
	m := titleRe.FindStringSubmatch(html)
	if m == nil {
		return ""
	}
	return webclip.TruncateTitle(m[1])
}

// hostnameOf returns the URL's hostname, or "" when unparseable.
func hostnameOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
