package main

import (
	"fmt"

	"github.com/fwojciec/webclip"
	"github.com/fwojciec/webclip/clip"
)

// Run executes the clip command.
func (c *ClipCmd) Run(deps *Dependencies) error {
	if c.Save {
		return c.save(deps)
	}
	return c.print(deps)
}

// save clips every URL concurrently and files the results as notes.
func (c *ClipCmd) save(deps *Dependencies) error {
	progress := func(event clip.ProgressEvent) {
		switch event.Type {
		case clip.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Clipping %d URLs\n", event.Total)
		case clip.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s\n", event.Completed, event.Total, event.Title)
		case clip.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", event.URL, webclip.ErrorMessage(event.Error))
		case clip.ProgressFinished:
			// Summary printed after the batch completes
		}
	}

	result, err := deps.Clipper.ClipAll(deps.Ctx, c.URLs, c.Category, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webclip.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d notes (%d failed, %d duplicates)\n",
		result.Saved, result.Failed, result.Duplicates)
	return nil
}

// print clips URLs one at a time and writes the Markdown to stdout.
func (c *ClipCmd) print(deps *Dependencies) error {
	for i, u := range c.URLs {
		result, err := deps.Clipper.ClipURL(deps.Ctx, u)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", webclip.ErrorMessage(err))
			return err
		}

		if i > 0 {
			fmt.Fprintln(deps.Stdout)
		}
		fmt.Fprintf(deps.Stdout, "# %s\n\n", result.Title)
		fmt.Fprint(deps.Stdout, result.Content)

		for _, w := range result.Warnings {
			fmt.Fprintf(deps.Stderr, "warning: %s\n", w)
		}
	}
	return nil
}
