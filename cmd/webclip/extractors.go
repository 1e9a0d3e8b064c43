package main

import (
	"fmt"
	"strings"
)

// Run executes the extractors command.
func (c *ExtractorsCmd) Run(deps *Dependencies) error {
	extractors := deps.Registry.List()
	if len(extractors) == 0 {
		fmt.Fprintln(deps.Stdout, "No site extractors registered.")
		return nil
	}

	for _, e := range extractors {
		fmt.Fprintf(deps.Stdout, "%-16s%s\n", e.Name(), strings.Join(e.Domains(), ", "))
	}

	return nil
}
