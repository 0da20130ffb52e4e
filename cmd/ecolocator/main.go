package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/ecolocator"
	"github.com/fwojciec/ecolocator/config"
	"github.com/fwojciec/ecolocator/fs"
	"github.com/fwojciec/ecolocator/gemini"
	locprom "github.com/fwojciec/ecolocator/prometheus"
	"github.com/fwojciec/ecolocator/resolve"
	locslog "github.com/fwojciec/ecolocator/slog"
	"github.com/fwojciec/ecolocator/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config overrides file and environment loading when set. Set before
	// calling Run().
	Config *config.Config

	// Generator replaces the Gemini client when set.
	Generator gemini.Generator

	// SQLite database, open only when the directory source is sqlite.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("ecolocator"),
		kong.Description("Find drop-off points for Botellas de Amor and Ecoladrillos."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'ecolocator --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg := m.Config
	if cfg == nil {
		if cfg, err = config.Load(cli.Config); err != nil {
			fmt.Fprintln(stderr, "Hint: check config.yaml and ECOLOCATOR_* environment variables")
			return err
		}
	}
	deps.Config = cfg
	deps.Logger = cfg.NewLogger(stderr)

	// seed writes the directory; it never reads one.
	if strings.HasPrefix(kongCtx.Command(), "seed") {
		return kongCtx.Run(deps)
	}

	defer m.Close()
	entries, err := m.loadEntries(ctx, cfg.Directory)
	if err != nil {
		fmt.Fprintf(stderr, "Hint: check the %s directory source at %q\n", cfg.Directory.Source, cfg.Directory.Path)
		return fmt.Errorf("failed to load directory: %w", err)
	}

	directory, err := ecolocator.NewStaticDirectory(entries)
	if err != nil {
		return fmt.Errorf("invalid directory: %w", err)
	}
	deps.Directory = directory

	deps.Registry = prometheus.NewRegistry()
	deps.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := locprom.NewMetrics(deps.Registry)

	external, err := m.newExternalResolver(ctx, cfg.Gemini)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: check that GEMINI_API_KEY is valid")
		return fmt.Errorf("failed to connect to Gemini API: %w", err)
	}
	if external == nil {
		deps.Logger.Warn("GEMINI_API_KEY not set, unknown places get the default message")
	}

	deps.Resolver = newResolver(directory, external, cfg.Gemini.Sentinel, metrics, deps.Logger)

	return kongCtx.Run(deps)
}

// loadEntries reads directory entries from the configured source.
func (m *Main) loadEntries(ctx context.Context, cfg config.DirectoryConfig) ([]ecolocator.DirectoryEntry, error) {
	switch cfg.Source {
	case config.SourceYAML:
		return fs.LoadDirectory(cfg.Path)
	case config.SourceSQLite:
		m.DB = sqlite.NewDB(cfg.Path)
		if err := m.DB.Open(); err != nil {
			return nil, err
		}
		return sqlite.NewDirectoryService(m.DB).LoadEntries(ctx)
	default:
		return ecolocator.DefaultEntries(), nil
	}
}

// newExternalResolver returns nil when no API key is configured and no
// Generator was injected.
func (m *Main) newExternalResolver(ctx context.Context, cfg config.GeminiConfig) (*gemini.Resolver, error) {
	gen := m.Generator
	if gen == nil {
		if cfg.APIKey == "" {
			return nil, nil
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, err
		}
		gen = client.Models
	}

	return gemini.NewResolver(gen, gemini.Params{
		Model:           cfg.Model,
		Temperature:     float32(cfg.Temperature),
		MaxOutputTokens: int32(cfg.MaxOutputTokens),
		Timeout:         cfg.Timeout,
		Sentinel:        cfg.Sentinel,
		Grounding:       true,
		RetryDelays:     cfg.RetryDelays,
		Fallback:        gemini.Fallback(cfg.Fallback),
	}), nil
}

// newResolver stacks the metrics and logging decorators around the core
// resolver. A nil external resolver leaves the lookup local-only.
func newResolver(directory ecolocator.Directory, external *gemini.Resolver, sentinel string, metrics *locprom.Metrics, logger *slog.Logger) ecolocator.Resolver {
	core := &resolve.Resolver{
		Directory: directory,
		Sentinel:  sentinel,
	}
	if external != nil {
		core.External = locslog.NewLoggingExternalResolver(
			locprom.NewMetricsExternalResolver(external, metrics),
			logger,
		)
	}
	return locslog.NewLoggingResolver(locprom.NewMetricsResolver(core, metrics), logger)
}
