package main

import "encoding/json"

// Run executes the health command.
func (c *HealthCmd) Run(deps *Dependencies) error {
	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(deps.Resolver.Health())
}
