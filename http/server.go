// Package http provides the web front end for ecolocator: the search form,
// the JSON lookup API, health and metrics endpoints.
package http

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/ecolocator"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

// DefaultShutdownTimeout bounds graceful shutdown when none is configured.
const DefaultShutdownTimeout = 10 * time.Second

//go:embed templates/*.html
var templateFS embed.FS

// Server serves the ecolocator web front end.
type Server struct {
	router          *gin.Engine
	resolver        ecolocator.Resolver
	logger          *slog.Logger
	limiter         *ClientLimiter
	gatherer        prometheus.Gatherer
	trustedProxies  []string
	shutdownTimeout time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithRateLimit limits resolve requests per client IP. A non-positive rps
// disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Server) {
		if rps <= 0 {
			s.limiter = nil
			return
		}
		s.limiter = NewClientLimiter(rps, burst)
	}
}

// WithGatherer exposes metrics from g on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithTrustedProxies lists the proxy addresses or CIDRs whose forwarding
// headers are believed when resolving the client IP. By default none are,
// and the client IP is the peer address.
func WithTrustedProxies(proxies []string) Option {
	return func(s *Server) {
		s.trustedProxies = proxies
	}
}

// WithShutdownTimeout sets how long Run waits for in-flight requests.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.shutdownTimeout = d
	}
}

// NewServer creates a Server answering lookups with resolver. It fails
// only when a trusted proxy entry is not an IP address or CIDR.
func NewServer(resolver ecolocator.Resolver, opts ...Option) (*Server, error) {
	s := &Server{
		resolver:        resolver,
		logger:          slog.Default(),
		shutdownTimeout: DefaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	tmpl := template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))

	s.router = gin.New()
	if err := s.router.SetTrustedProxies(s.trustedProxies); err != nil {
		return nil, ecolocator.Errorf(ecolocator.EINVALID, "invalid trusted proxy: %v", err)
	}
	s.router.SetHTMLTemplate(tmpl)
	s.router.Use(gin.Recovery(), s.logRequests())
	s.registerRoutes()

	return s, nil
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		s.logger.Info("server shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) registerRoutes() {
	limited := s.router.Group("/")
	if s.limiter != nil {
		limited.Use(s.rateLimit())
	}

	s.router.GET("/", s.handleIndex)
	limited.POST("/", s.handleSearch)
	limited.GET("/api/resolve", s.handleResolve)

	s.router.GET("/health", s.handleHealth)
	if s.gatherer != nil {
		s.router.GET("/metrics", s.handleMetrics())
	}
}

// logRequests logs one line per request once it completes.
func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func(begin time.Time) {
			s.logger.Info("http request",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"status", c.Writer.Status(),
				"client", c.ClientIP(),
				"duration", time.Since(begin),
			)
		}(time.Now())
		c.Next()
	}
}

// rateLimit rejects clients that exceed their request budget.
func (s *Server) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "demasiadas consultas, intenta de nuevo en unos segundos",
			})
			return
		}
		c.Next()
	}
}
