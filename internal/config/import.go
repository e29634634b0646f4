package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	// EnvImportYear overrides the default archive year of imported documents.
	EnvImportYear = "ARCHIVE_IMPORT_YEAR"

	// EnvImportIncludeUnrecognized overrides whether unparseable files are imported.
	EnvImportIncludeUnrecognized = "ARCHIVE_IMPORT_INCLUDE_UNRECOGNIZED"

	// EnvImportInbox registers a directory source named "inbox".
	EnvImportInbox = "ARCHIVE_IMPORT_INBOX"

	// InboxSource is the source name bound to EnvImportInbox.
	InboxSource = "inbox"
)

// SourceConfig names a directory that imports may read from.
type SourceConfig struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
}

// ImportConfig contains batch import defaults and the department vocabulary.
type ImportConfig struct {
	Year                string            `toml:"year"`
	IncludeUnrecognized bool              `toml:"include_unrecognized"`
	Departments         map[string]string `toml:"departments"`
	Sources             []SourceConfig    `toml:"sources"`
}

// Finalize loads environment overrides and validates the import configuration.
func (c *ImportConfig) Finalize() error {
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
// Overlay departments are added to the base map; overlay sources replace the base list.
func (c *ImportConfig) Merge(overlay *ImportConfig) {
	if overlay.Year != "" {
		c.Year = overlay.Year
	}
	if overlay.IncludeUnrecognized {
		c.IncludeUnrecognized = true
	}
	if len(overlay.Departments) > 0 {
		if c.Departments == nil {
			c.Departments = make(map[string]string, len(overlay.Departments))
		}
		for abbrev, name := range overlay.Departments {
			c.Departments[abbrev] = name
		}
	}
	if len(overlay.Sources) > 0 {
		c.Sources = overlay.Sources
	}
}

func (c *ImportConfig) loadEnv() {
	if v := os.Getenv(EnvImportYear); v != "" {
		c.Year = v
	}
	if v := os.Getenv(EnvImportIncludeUnrecognized); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.IncludeUnrecognized = b
		}
	}
	if v := os.Getenv(EnvImportInbox); v != "" {
		c.setSource(InboxSource, v)
	}
}

func (c *ImportConfig) setSource(name, path string) {
	for i := range c.Sources {
		if c.Sources[i].Name == name {
			c.Sources[i].Path = path
			return
		}
	}
	c.Sources = append(c.Sources, SourceConfig{Name: name, Path: path})
}

func (c *ImportConfig) validate() error {
	if c.Year != "" {
		if _, err := strconv.Atoi(c.Year); err != nil {
			return fmt.Errorf("invalid year %q", c.Year)
		}
	}

	for abbrev, name := range c.Departments {
		if strings.TrimSpace(abbrev) == "" || strings.TrimSpace(name) == "" {
			return fmt.Errorf("department abbreviation and name required")
		}
	}

	seen := make(map[string]bool, len(c.Sources))
	for _, s := range c.Sources {
		if s.Name == "" || s.Path == "" {
			return fmt.Errorf("source name and path required")
		}
		if seen[s.Name] {
			return fmt.Errorf("duplicate source %q", s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}
