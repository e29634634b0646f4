package main

import (
	"context"
	"fmt"

	"github.com/JaimeStill/doc-archive/internal/migrations"
)

func init() {
	registerCommand(&migrateNotesCommand{})
	registerCommand(&sourcesCommand{})
	registerCommand(&schemaCommand{})
}

type migrateNotesCommand struct{}

func (c *migrateNotesCommand) Name() string { return "migrate-notes" }

func (c *migrateNotesCommand) Description() string {
	return "convert structured page notes into attachments"
}

func (c *migrateNotesCommand) Run(ctx context.Context, app *App, args []string) error {
	result, err := app.Domain.Legacy.Import(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("scanned %d notes, created %d attachments, skipped %d\n",
		result.Scanned, result.Created, result.Skipped)
	return nil
}

type sourcesCommand struct{}

func (c *sourcesCommand) Name() string { return "sources" }

func (c *sourcesCommand) Description() string {
	return "list configured import sources"
}

func (c *sourcesCommand) Run(ctx context.Context, app *App, args []string) error {
	for _, info := range app.Domain.Sources.List(ctx) {
		state := "unavailable"
		if info.Available {
			state = "available"
		}
		fmt.Printf("%-16s %s\n", info.Name, state)
	}
	return nil
}

type schemaCommand struct{}

func (c *schemaCommand) Name() string { return "schema" }

func (c *schemaCommand) Description() string {
	return "report the applied schema version"
}

func (c *schemaCommand) Run(ctx context.Context, app *App, args []string) error {
	db := app.Infra.Database
	v, dirty, err := migrations.Version(db.Connection(), db.Driver())
	if err != nil {
		return err
	}

	fmt.Printf("%s schema version %d", db.Driver(), v)
	if dirty {
		fmt.Print(" (dirty)")
	}
	fmt.Println()
	return nil
}
