package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	lochttp "github.com/fwojciec/ecolocator/http"
	"github.com/gin-gonic/gin"
)

// Run executes the serve command. It blocks until interrupted.
func (c *ServeCmd) Run(deps *Dependencies) error {
	ctx, stop := signal.NotifyContext(deps.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return c.serve(ctx, deps)
}

func (c *ServeCmd) serve(ctx context.Context, deps *Dependencies) error {
	cfg := deps.Config
	gin.SetMode(cfg.Server.GinMode)

	addr := c.Addr
	if addr == "" {
		addr = cfg.ServerAddr()
	}

	server, err := lochttp.NewServer(deps.Resolver,
		lochttp.WithLogger(deps.Logger),
		lochttp.WithRateLimit(cfg.Server.RateLimit, cfg.Server.Burst),
		lochttp.WithTrustedProxies(cfg.Server.TrustedProxies),
		lochttp.WithGatherer(deps.Registry),
		lochttp.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
	)
	if err != nil {
		return err
	}

	health := deps.Resolver.Health()
	deps.Logger.Info("starting server",
		"addr", addr,
		"hasApiKey", health.ExternalConfigured,
		"directoryEntries", health.DirectoryEntries,
	)
	return server.Run(ctx, addr)
}
