package main

import (
	"fmt"

	"github.com/fwojciec/ecolocator/fs"
)

// Run executes the directory command.
func (c *DirectoryCmd) Run(deps *Dependencies) error {
	entries := deps.Directory.Entries()

	if c.Format == "yaml" {
		return fs.EncodeDirectory(deps.Stdout, entries)
	}

	for _, e := range entries {
		fmt.Fprintf(deps.Stdout, "%s: %s (%d)\n", e.City, e.Zone, len(e.Points))
		for _, p := range e.Points {
			fmt.Fprintf(deps.Stdout, "  - %s, %s\n", p.Name, p.Address)
		}
	}
	return nil
}
