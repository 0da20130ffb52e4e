package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/ecolocator"
	"github.com/fwojciec/ecolocator/config"
	"github.com/prometheus/client_golang/prometheus"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Config    *config.Config
	Logger    *slog.Logger
	Directory *ecolocator.StaticDirectory
	Resolver  ecolocator.Resolver
	Registry  *prometheus.Registry
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config string `short:"c" type:"path" help:"Path to config file (default: ./config.yaml if present)"`

	Serve     ServeCmd     `cmd:"" help:"Serve the web front end and JSON API"`
	Lookup    LookupCmd    `cmd:"" help:"Find drop-off points for a place"`
	Directory DirectoryCmd `cmd:"" help:"List the loaded directory"`
	Seed      SeedCmd      `cmd:"" help:"Write directory entries into a SQLite database"`
	Health    HealthCmd    `cmd:"" help:"Show external lookup and directory status"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `short:"a" help:"Listen address (default: :port from config)"`
}

// LookupCmd is the "lookup" subcommand.
type LookupCmd struct {
	Query []string `arg:"" help:"Place name, e.g. Vicente López"`
	JSON  bool     `short:"j" help:"Print the full result as JSON"`
}

// DirectoryCmd is the "directory" subcommand.
type DirectoryCmd struct {
	Format string `short:"f" enum:"text,yaml" default:"text" help:"Output format (text, yaml)"`
}

// SeedCmd is the "seed" subcommand.
type SeedCmd struct {
	DB   string `arg:"" type:"path" help:"SQLite database path"`
	From string `type:"existingfile" help:"YAML directory file (default: built-in entries)"`
}

// HealthCmd is the "health" subcommand.
type HealthCmd struct{}
