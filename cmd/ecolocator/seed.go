package main

import (
	"fmt"

	"github.com/fwojciec/ecolocator"
	"github.com/fwojciec/ecolocator/fs"
	"github.com/fwojciec/ecolocator/sqlite"
)

// Run executes the seed command.
func (c *SeedCmd) Run(deps *Dependencies) error {
	entries := ecolocator.DefaultEntries()
	if c.From != "" {
		var err error
		if entries, err = fs.LoadDirectory(c.From); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", ecolocator.ErrorMessage(err))
			return err
		}
	}

	db := sqlite.NewDB(c.DB)
	if err := db.Open(); err != nil {
		return fmt.Errorf("failed to open database at %q: %w", c.DB, err)
	}
	defer db.Close()

	if err := sqlite.NewDirectoryService(db).ReplaceEntries(deps.Ctx, entries); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ecolocator.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Seeded %d entries into %s\n", len(entries), c.DB)
	return nil
}
