package sources

import (
	"context"
	"os"
)

// Directory offers the image files under a folder, such as a scanner's
// output inbox.
type Directory struct {
	name string
	root string
}

// NewDirectory creates a Directory provider rooted at root.
func NewDirectory(name, root string) *Directory {
	return &Directory{name: name, root: root}
}

func (d *Directory) Name() string { return d.name }

// Root returns the folder the provider reads.
func (d *Directory) Root() string { return d.root }

// Available reports whether the root exists and is a directory.
func (d *Directory) Available(ctx context.Context) bool {
	if d.root == "" {
		return false
	}
	info, err := os.Stat(d.root)
	return err == nil && info.IsDir()
}

func (d *Directory) Files(ctx context.Context) ([]string, error) {
	if !d.Available(ctx) {
		return nil, ErrNotFound
	}
	return walkImages(ctx, d.root)
}
