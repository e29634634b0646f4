// Package sources supplies the files an import runs over. A Provider
// reports whether it can currently deliver files, which replaces checking
// for a scanner at start-up.
package sources

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/JaimeStill/doc-archive/internal/images"
)

// ErrNotFound is returned for a missing source path or provider.
var ErrNotFound = errors.New("source not found")

// Provider delivers page files for import.
type Provider interface {
	Name() string
	// Available reports whether the provider can deliver files now.
	Available(ctx context.Context) bool
	// Files lists the files currently offered, in a stable order.
	Files(ctx context.Context) ([]string, error)
}

// Info describes a provider for listing.
type Info struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

// Registry holds the configured providers by name.
type Registry struct {
	providers []Provider
}

// NewRegistry creates a Registry over providers.
func NewRegistry(providers ...Provider) *Registry {
	return &Registry{providers: providers}
}

// Get returns the provider named name.
func (r *Registry) Get(name string) (Provider, error) {
	for _, p := range r.providers {
		if p.Name() == name {
			return p, nil
		}
	}
	return nil, ErrNotFound
}

// List describes every provider.
func (r *Registry) List(ctx context.Context) []Info {
	out := make([]Info, 0, len(r.providers))
	for _, p := range r.providers {
		out = append(out, Info{Name: p.Name(), Available: p.Available(ctx)})
	}
	return out
}

// CollectFiles expands paths into a flat file list. Directories are walked
// recursively and contribute only supported image files, sorted by path.
// Plain file paths are kept as given, in order.
func CollectFiles(ctx context.Context, paths []string) ([]string, error) {
	var out []string

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, errors.Join(ErrNotFound, err)
			}
			return nil, err
		}

		if !info.IsDir() {
			out = append(out, p)
			continue
		}

		found, err := walkImages(ctx, p)
		if err != nil {
			return nil, err
		}
		out = append(out, found...)
	}

	return out, nil
}

func walkImages(ctx context.Context, root string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.Type().IsRegular() && images.IsImageFile(d.Name()) {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(found)
	return found, nil
}
