package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultEnvFile         = ".env"
	defaultPort            = "8080"
	defaultLogLevel        = "info"
	defaultTripDays        = 4
	defaultMaxTripDays     = 30
	defaultDraftTTL        = 30 * time.Minute
	defaultDraftSweepEvery = time.Minute
	defaultShutdownTimeout = 10 * time.Second
)

type CatalogSource string

const (
	CatalogSourceSeed     CatalogSource = "seed"
	CatalogSourcePostgres CatalogSource = "postgres"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	Catalog CatalogConfig
	Trip    TripConfig
}

type ServerConfig struct {
	Port               string
	GinMode            string
	CORSAllowedOrigins []string
	ShutdownTimeout    time.Duration
}

type LogConfig struct {
	Level string
}

type CatalogConfig struct {
	Source      CatalogSource
	PostgresURL string
}

// TripConfig tunes extraction defaults and draft lifetime.
type TripConfig struct {
	DefaultDestination  string
	DestinationFallback string
	DefaultDays         int
	MaxDays             int
	DraftTTL            time.Duration
	DraftSweepInterval  time.Duration
}

// ValidationError is returned when configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path. An empty path disables dotenv loading.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects explicit values. They take precedence over the system environment.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv ignores os.Environ, mostly for tests.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load resolves configuration with precedence dotenv < OS env < explicit env map.
// A missing .env file is not an error.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	values, err := environment(options)
	if err != nil {
		return Config{}, err
	}
	get := func(key string) string { return strings.TrimSpace(values[key]) }

	var invalid []string

	cfg := Config{
		Server: ServerConfig{
			Port:               firstNonEmpty(get("PORT"), defaultPort),
			GinMode:            get("GIN_MODE"),
			CORSAllowedOrigins: splitList(get("CORS_ALLOWED_ORIGINS")),
		},
		Log: LogConfig{
			Level: strings.ToLower(firstNonEmpty(get("LOG_LEVEL"), defaultLogLevel)),
		},
		Catalog: CatalogConfig{
			Source:      CatalogSource(strings.ToLower(firstNonEmpty(get("CATALOG_SOURCE"), string(CatalogSourceSeed)))),
			PostgresURL: get("POSTGRES_URL"),
		},
		Trip: TripConfig{
			DefaultDestination:  get("DEFAULT_DESTINATION"),
			DestinationFallback: strings.ToLower(firstNonEmpty(get("DESTINATION_FALLBACK"), "default")),
		},
	}

	if cfg.Server.ShutdownTimeout, err = parseDuration(get("SHUTDOWN_TIMEOUT"), defaultShutdownTimeout); err != nil {
		invalid = append(invalid, "SHUTDOWN_TIMEOUT")
	}
	if cfg.Trip.DefaultDays, err = parsePositiveInt(get("DEFAULT_TRIP_DAYS"), defaultTripDays); err != nil {
		invalid = append(invalid, "DEFAULT_TRIP_DAYS")
	}
	if cfg.Trip.MaxDays, err = parsePositiveInt(get("MAX_TRIP_DAYS"), defaultMaxTripDays); err != nil {
		invalid = append(invalid, "MAX_TRIP_DAYS")
	}
	if cfg.Trip.DraftTTL, err = parseDuration(get("DRAFT_TTL"), defaultDraftTTL); err != nil {
		invalid = append(invalid, "DRAFT_TTL")
	}
	if cfg.Trip.DraftSweepInterval, err = parseDuration(get("DRAFT_SWEEP_INTERVAL"), defaultDraftSweepEvery); err != nil {
		invalid = append(invalid, "DRAFT_SWEEP_INTERVAL")
	}

	switch cfg.Catalog.Source {
	case CatalogSourceSeed:
	case CatalogSourcePostgres:
		if cfg.Catalog.PostgresURL == "" {
			invalid = append(invalid, "POSTGRES_URL")
		}
	default:
		invalid = append(invalid, "CATALOG_SOURCE")
	}

	switch cfg.Trip.DestinationFallback {
	case "default", "random":
	default:
		invalid = append(invalid, "DESTINATION_FALLBACK")
	}

	if len(invalid) > 0 {
		return Config{}, &ValidationError{fields: invalid}
	}
	return cfg, nil
}

func environment(options loaderOptions) (map[string]string, error) {
	values := make(map[string]string)

	if options.envFile != "" {
		dotEnv, err := godotenv.Read(options.envFile)
		switch {
		case err == nil:
			for k, v := range dotEnv {
				values[k] = v
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("config: read %s: %w", options.envFile, err)
		}
	}

	if options.useSystemEnv {
		for _, entry := range os.Environ() {
			key, value, ok := strings.Cut(entry, "=")
			if !ok || strings.TrimSpace(key) == "" {
				continue
			}
			values[key] = value
		}
	}

	for k, v := range options.envMap {
		values[k] = v
	}
	return values, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parsePositiveInt(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("must be positive, got %d", n)
	}
	return n, nil
}

func parseDuration(raw string, fallback time.Duration) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", d)
	}
	return d, nil
}
