package openapi

import "os"

// Config holds the document metadata.
type Config struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
	Version     string `toml:"version"`
}

// Env maps environment variable names for OpenAPI configuration.
type Env struct {
	Title       string
	Description string
	Version     string
}

// Finalize applies defaults and loads environment overrides.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.Description != "" {
		c.Description = overlay.Description
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
}

func (c *Config) loadDefaults() {
	if c.Title == "" {
		c.Title = "Document Archive API"
	}
	if c.Description == "" {
		c.Description = "Scanned correspondence archive: batch import, page storage, and search."
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv(env *Env) {
	for _, kv := range []struct {
		name string
		dst  *string
	}{
		{env.Title, &c.Title},
		{env.Description, &c.Description},
		{env.Version, &c.Version},
	} {
		if kv.name == "" {
			continue
		}
		if v := os.Getenv(kv.name); v != "" {
			*kv.dst = v
		}
	}
}
