// Package archivetest provides migrated SQLite databases and temporary
// storage for package tests.
package archivetest

import (
	"database/sql"
	"image/color"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/JaimeStill/doc-archive/internal/migrations"
	"github.com/JaimeStill/doc-archive/pkg/database"
	"github.com/JaimeStill/doc-archive/pkg/storage"
)

// Logger discards everything below error level.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// DB opens a fresh migrated SQLite database under t.TempDir.
func DB(t testing.TB) *sql.DB {
	t.Helper()

	cfg := &database.Config{Path: filepath.Join(t.TempDir(), "archive.db")}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("database config: %v", err)
	}

	db, err := database.Open(cfg)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := migrations.Up(db, database.DriverSQLite); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// Storage creates filesystem storage rooted in t.TempDir.
func Storage(t testing.TB) storage.System {
	t.Helper()

	cfg := &storage.Config{BasePath: filepath.Join(t.TempDir(), "images")}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("storage config: %v", err)
	}

	store, err := storage.New(cfg, Logger())
	if err != nil {
		t.Fatalf("storage: %v", err)
	}
	return store
}

// WriteImage saves a small solid image at dir/name, creating parent
// directories. The format follows the file extension.
func WriteImage(t testing.TB, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	img := imaging.New(300, 400, color.NRGBA{R: 240, G: 235, B: 220, A: 255})
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("write image %s: %v", name, err)
	}
	return path
}

// WriteFile writes raw bytes at dir/name, for corrupt or non-image inputs.
func WriteFile(t testing.TB, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}
