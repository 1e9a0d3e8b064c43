package main

import (
	"fmt"

	"github.com/fwojciec/webclip"
)

// Run executes the categories command.
func (c *CategoriesCmd) Run(deps *Dependencies) error {
	categories, err := deps.Notes.ListCategories(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webclip.ErrorMessage(err))
		return err
	}

	if len(categories) == 0 {
		fmt.Fprintln(deps.Stdout, "No categories found.")
		return nil
	}

	for _, cat := range categories {
		fmt.Fprintln(deps.Stdout, cat.Path)
	}

	return nil
}
