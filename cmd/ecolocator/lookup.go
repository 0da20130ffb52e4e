package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/ecolocator"
)

// Run executes the lookup command.
func (c *LookupCmd) Run(deps *Dependencies) error {
	result, err := deps.Resolver.Resolve(deps.Ctx, strings.Join(c.Query, " "))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ecolocator.ErrorMessage(err))
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprintln(deps.Stdout, result.Body)
	if len(result.Sources) > 0 {
		fmt.Fprintln(deps.Stdout, "\nFuentes:")
		for _, s := range result.Sources {
			fmt.Fprintf(deps.Stdout, "  %s\n", s)
		}
	}
	return nil
}
