package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/JaimeStill/doc-archive/internal/imports"
	"github.com/JaimeStill/doc-archive/internal/sources"
)

func init() {
	registerCommand(&importCommand{})
	registerCommand(&previewCommand{})
}

type importCommand struct{}

func (c *importCommand) Name() string { return "import" }

func (c *importCommand) Description() string {
	return "import page files from paths or a configured source"
}

func (c *importCommand) Run(ctx context.Context, app *App, args []string) error {
	opts := app.Domain.ImportDefaults

	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	year := fs.String("year", opts.Year, "archive year used in storage keys")
	unrecognized := fs.Bool("unrecognized", opts.IncludeUnrecognized, "import unparsable files into fallback documents")
	source := fs.String("source", "", "configured source to read instead of paths")
	verbose := fs.Bool("v", false, "print every file outcome")
	if err := fs.Parse(args); err != nil {
		return err
	}

	files, err := resolveFiles(ctx, app, *source, fs.Args())
	if err != nil {
		return err
	}

	opts.Year = *year
	opts.IncludeUnrecognized = *unrecognized

	result, err := app.Domain.Imports.Import(ctx, files, opts)
	if err != nil {
		return err
	}

	if *verbose {
		for _, item := range result.Items {
			if item.Error != "" {
				fmt.Printf("%-8s %s: %s\n", item.Status, item.File, item.Error)
				continue
			}
			fmt.Printf("%-8s %s\n", item.Status, item.File)
		}
	}
	fmt.Println(result.Summary())
	return nil
}

type previewCommand struct{}

func (c *previewCommand) Name() string { return "preview" }

func (c *previewCommand) Description() string {
	return "show how page files would be grouped without importing"
}

func (c *previewCommand) Run(ctx context.Context, app *App, args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	source := fs.String("source", "", "configured source to read instead of paths")
	if err := fs.Parse(args); err != nil {
		return err
	}

	files, err := resolveFiles(ctx, app, *source, fs.Args())
	if err != nil {
		return err
	}

	return printJSON(app.Domain.Imports.Plan(files))
}

func resolveFiles(ctx context.Context, app *App, source string, paths []string) ([]string, error) {
	if source != "" {
		p, err := app.Domain.Sources.Get(source)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", imports.ErrSourceNotFound, source)
		}
		return p.Files(ctx)
	}

	if len(paths) == 0 {
		return nil, imports.ErrNoFiles
	}
	return sources.CollectFiles(ctx, paths)
}
