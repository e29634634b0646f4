// Package config provides application configuration management with support for
// TOML files, environment variable overrides, and configuration overlays.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/JaimeStill/doc-archive/pkg/database"
	"github.com/JaimeStill/doc-archive/pkg/logging"
	"github.com/JaimeStill/doc-archive/pkg/openapi"
	"github.com/JaimeStill/doc-archive/pkg/pagination"
	"github.com/JaimeStill/doc-archive/pkg/storage"
	"github.com/pelletier/go-toml/v2"
)

const (
	// BaseConfigFile is the primary configuration file name.
	BaseConfigFile = "config.toml"

	// OverlayConfigPattern is the file name pattern for environment-specific overlays.
	OverlayConfigPattern = "config.%s.toml"

	// EnvArchiveEnv specifies the environment name for configuration overlays.
	EnvArchiveEnv = "ARCHIVE_ENV"

	// EnvShutdownTimeout overrides the process shutdown timeout.
	EnvShutdownTimeout = "ARCHIVE_SHUTDOWN_TIMEOUT"
)

var databaseEnv = &database.Env{
	Driver:          "ARCHIVE_DATABASE_DRIVER",
	Path:            "ARCHIVE_DATABASE_PATH",
	Host:            "ARCHIVE_DATABASE_HOST",
	Port:            "ARCHIVE_DATABASE_PORT",
	Name:            "ARCHIVE_DATABASE_NAME",
	User:            "ARCHIVE_DATABASE_USER",
	Password:        "ARCHIVE_DATABASE_PASSWORD",
	MaxOpenConns:    "ARCHIVE_DATABASE_MAX_OPEN_CONNS",
	MaxIdleConns:    "ARCHIVE_DATABASE_MAX_IDLE_CONNS",
	ConnMaxLifetime: "ARCHIVE_DATABASE_CONN_MAX_LIFETIME",
	ConnTimeout:     "ARCHIVE_DATABASE_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	BasePath:    "ARCHIVE_STORAGE_BASE_PATH",
	MaxFileSize: "ARCHIVE_STORAGE_MAX_FILE_SIZE",
}

var loggingEnv = &logging.Env{
	Level:  "ARCHIVE_LOG_LEVEL",
	Format: "ARCHIVE_LOG_FORMAT",
	Output: "ARCHIVE_LOG_OUTPUT",
}

var openAPIEnv = &openapi.Env{
	Title:       "ARCHIVE_OPENAPI_TITLE",
	Description: "ARCHIVE_OPENAPI_DESCRIPTION",
	Version:     "ARCHIVE_OPENAPI_VERSION",
}

var paginationEnv = &pagination.Env{
	DefaultPageSize: "ARCHIVE_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "ARCHIVE_PAGINATION_MAX_PAGE_SIZE",
}

// Config represents the root archive configuration.
type Config struct {
	Server          ServerConfig      `toml:"server"`
	Database        database.Config   `toml:"database"`
	Storage         storage.Config    `toml:"storage"`
	Logging         logging.Config    `toml:"logging"`
	Pagination      pagination.Config `toml:"pagination"`
	Import          ImportConfig      `toml:"import"`
	OpenAPI         openapi.Config    `toml:"openapi"`
	ShutdownTimeout string            `toml:"shutdown_timeout"`
}

// ShutdownTimeoutDuration parses and returns the shutdown timeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base configuration file and applies any environment-specific overlay.
// A missing base file yields an empty configuration so defaults and environment
// variables alone can drive the process.
func Load() (*Config, error) {
	cfg, err := load(BaseConfigFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		cfg = &Config{}
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}
	return cfg, nil
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Logging.Finalize(loggingEnv); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.Import.Finalize(); err != nil {
		return fmt.Errorf("import: %w", err)
	}
	if err := c.OpenAPI.Finalize(openAPIEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.Logging.Merge(&overlay.Logging)
	c.Pagination.Merge(&overlay.Pagination)
	c.Import.Merge(&overlay.Import)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvArchiveEnv); env != "" {
		overlayPath := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(overlayPath); err == nil {
			return overlayPath
		}
	}
	return ""
}
