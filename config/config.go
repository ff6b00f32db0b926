package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"indash/pkg/query/repository"
)

const (
	BackendHTTP   = "http"
	BackendSQLite = "sqlite"
)

type AppConfig struct {
	Port          string
	Timezone      string
	QueryBackend  string
	MonitoringURL string
	PlanningURL   string
	OptimizeURL   string
	QueryTimeout  time.Duration
	SQLitePath    string
	SourcesFile   string
	LogLevel      string
	LogFormat     string
	SeedDemo      bool
}

// sourcesFile is the optional YAML override for the three query endpoints.
type sourcesFile struct {
	Sources struct {
		Monitoring   string `yaml:"monitoring"`
		Planning     string `yaml:"planning"`
		Optimization string `yaml:"optimization"`
	} `yaml:"sources"`
}

func Load() (AppConfig, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[cfg] error loading .env: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	cfg := AppConfig{
		Port:          get("PORT", "8080"),
		Timezone:      get("TZ", "Asia/Jakarta"),
		QueryBackend:  get("QUERY_BACKEND", BackendHTTP),
		MonitoringURL: get("MONITORING_URL", "https://scs1.brmpkementan.id/api.php"),
		PlanningURL:   get("PLANNING_URL", "https://siaptanam.brmpkementan.id/api.php"),
		OptimizeURL:   get("OPTIMIZATION_URL", "https://sifortuna.brmpkementan.id/api.php"),
		SQLitePath:    get("SQLITE_PATH", "indash.db"),
		SourcesFile:   get("SOURCES_FILE", ""),
		LogLevel:      get("LOG_LEVEL", "info"),
		LogFormat:     get("LOG_FORMAT", "json"),
	}

	timeout, err := time.ParseDuration(get("QUERY_TIMEOUT", "20s"))
	if err != nil {
		return cfg, fmt.Errorf("QUERY_TIMEOUT: %w", err)
	}
	cfg.QueryTimeout = timeout

	if cfg.SeedDemo, err = strconv.ParseBool(get("SEED_DEMO", "false")); err != nil {
		return cfg, fmt.Errorf("SEED_DEMO: %w", err)
	}

	switch cfg.QueryBackend {
	case BackendHTTP, BackendSQLite:
	default:
		return cfg, fmt.Errorf("QUERY_BACKEND %q: want %s or %s", cfg.QueryBackend, BackendHTTP, BackendSQLite)
	}

	if cfg.SourcesFile != "" {
		if err := cfg.applySources(cfg.SourcesFile); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func (c *AppConfig) applySources(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read sources file: %w", err)
	}
	var f sourcesFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parse sources file %s: %w", path, err)
	}
	if f.Sources.Monitoring != "" {
		c.MonitoringURL = f.Sources.Monitoring
	}
	if f.Sources.Planning != "" {
		c.PlanningURL = f.Sources.Planning
	}
	if f.Sources.Optimization != "" {
		c.OptimizeURL = f.Sources.Optimization
	}
	return nil
}

func (c AppConfig) SourceURLs() map[repository.Source]string {
	return map[repository.Source]string{
		repository.SourceMonitoring:   c.MonitoringURL,
		repository.SourcePlanning:     c.PlanningURL,
		repository.SourceOptimization: c.OptimizeURL,
	}
}

// Location returns the configured time zone, UTC when it is unknown.
func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
