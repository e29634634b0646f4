// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, database, storage) that domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"

	"github.com/JaimeStill/doc-archive/internal/config"
	"github.com/JaimeStill/doc-archive/internal/migrations"
	"github.com/JaimeStill/doc-archive/pkg/database"
	"github.com/JaimeStill/doc-archive/pkg/lifecycle"
	"github.com/JaimeStill/doc-archive/pkg/logging"
	"github.com/JaimeStill/doc-archive/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := logging.New(&cfg.Logging)

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Storage:   store,
	}, nil
}

// Migrate applies pending schema migrations to the configured database.
func (i *Infrastructure) Migrate() error {
	if err := migrations.Up(i.Database.Connection(), i.Database.Driver()); err != nil {
		return fmt.Errorf("migrate failed: %w", err)
	}

	v, _, err := migrations.Version(i.Database.Connection(), i.Database.Driver())
	if err != nil {
		return fmt.Errorf("migrate failed: %w", err)
	}
	i.Logger.Info("schema ready", "version", v)
	return nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	return nil
}
