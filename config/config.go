// Package config loads ecolocator settings from a YAML file, a .env file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/fwojciec/ecolocator"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. ECOLOCATOR_LOG_LEVEL.
const EnvPrefix = "ECOLOCATOR"

// MaxTemperature is the highest sampling temperature Gemini models accept.
const MaxTemperature = 2.0

// Directory sources.
const (
	SourceBuiltin = "builtin"
	SourceYAML    = "yaml"
	SourceSQLite  = "sqlite"
)

// Config holds all configuration for the application.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Gemini    GeminiConfig
	Directory DirectoryConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int
	GinMode         string  // debug, release, test
	RateLimit       float64 // requests per second per client, 0 disables
	Burst           int
	ShutdownTimeout time.Duration
	TrustedProxies  []string // addresses or CIDRs allowed to set X-Forwarded-For
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// GeminiConfig holds external lookup settings. An empty APIKey disables
// the external lookup.
type GeminiConfig struct {
	APIKey          string
	Model           string
	Temperature     float64
	MaxOutputTokens int
	Timeout         time.Duration
	Sentinel        string
	RetryDelays     []time.Duration
	Fallback        string // none, ungrounded
}

// DirectoryConfig selects where directory entries come from.
type DirectoryConfig struct {
	Source string // builtin, yaml, sqlite
	Path   string
}

// Load reads configuration. When path is empty it looks for config.yaml in
// the working directory and ./config; a missing file is not an error.
// Variables from .env are loaded first without overriding the environment.
func Load(path string) (*Config, error) {
	if err := LoadEnvFile(".env"); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Unprefixed names set by hosting platforms and the Gemini tooling.
	_ = v.BindEnv("gemini.apikey", EnvPrefix+"_GEMINI_APIKEY", "GEMINI_API_KEY")
	_ = v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT", "PORT")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadEnvFile loads variables from a dotenv file if it exists. Variables
// already present in the environment are kept.
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load %s: %w", path, err)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.ginmode", "release")
	v.SetDefault("server.ratelimit", 2.0)
	v.SetDefault("server.burst", 5)
	v.SetDefault("server.shutdowntimeout", 10*time.Second)
	v.SetDefault("server.trustedproxies", []string{})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("gemini.apikey", "")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("gemini.temperature", 0.0)
	v.SetDefault("gemini.maxoutputtokens", 1024)
	v.SetDefault("gemini.timeout", 15*time.Second)
	v.SetDefault("gemini.sentinel", ecolocator.DefaultSentinel)
	v.SetDefault("gemini.retrydelays", []time.Duration{})
	v.SetDefault("gemini.fallback", "none")

	v.SetDefault("directory.source", SourceBuiltin)
	v.SetDefault("directory.path", "")
}

// Validate returns an error if the configuration cannot be used.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return ecolocator.Errorf(ecolocator.EINVALID, "server port %d out of range", c.Server.Port)
	}
	switch c.Server.GinMode {
	case "", "debug", "release", "test":
	default:
		return ecolocator.Errorf(ecolocator.EINVALID, "unknown gin mode %q", c.Server.GinMode)
	}
	if c.Server.RateLimit < 0 {
		return ecolocator.Errorf(ecolocator.EINVALID, "server rate limit must not be negative")
	}
	if c.Gemini.Temperature < 0 || c.Gemini.Temperature > MaxTemperature {
		return ecolocator.Errorf(ecolocator.EINVALID, "gemini temperature %g outside [0, %g]", c.Gemini.Temperature, MaxTemperature)
	}
	if c.Gemini.MaxOutputTokens <= 0 || c.Gemini.MaxOutputTokens > math.MaxInt32 {
		return ecolocator.Errorf(ecolocator.EINVALID, "gemini max output tokens %d out of range", c.Gemini.MaxOutputTokens)
	}
	if c.Gemini.Timeout <= 0 {
		return ecolocator.Errorf(ecolocator.EINVALID, "gemini timeout must be positive")
	}
	switch c.Gemini.Fallback {
	case "none", "ungrounded":
	default:
		return ecolocator.Errorf(ecolocator.EINVALID, "unknown gemini fallback %q", c.Gemini.Fallback)
	}
	switch c.Directory.Source {
	case SourceBuiltin:
	case SourceYAML, SourceSQLite:
		if c.Directory.Path == "" {
			return ecolocator.Errorf(ecolocator.EINVALID, "directory path required for %s source", c.Directory.Source)
		}
	default:
		return ecolocator.Errorf(ecolocator.EINVALID, "unknown directory source %q", c.Directory.Source)
	}
	return nil
}

// ServerAddr returns the listen address in the format ":port".
func (c *Config) ServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// NewLogger creates a slog.Logger writing to w at the configured level
// and format.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(c.Log.Level)}

	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
