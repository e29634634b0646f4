package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/JaimeStill/doc-archive/internal/documents"
	"github.com/JaimeStill/doc-archive/internal/history"
)

func init() {
	registerCommand(&searchCommand{})
	registerCommand(&historyCommand{})
}

type searchCommand struct{}

func (c *searchCommand) Name() string { return "search" }

func (c *searchCommand) Description() string {
	return "search documents and attachments by a field"
}

func (c *searchCommand) Run(ctx context.Context, app *App, args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	fieldName := fs.String("field", string(documents.FieldName), "name, date, title, department, or classification")
	asJSON := fs.Bool("json", false, "print full results as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	field, err := documents.ParseField(*fieldName)
	if err != nil {
		return err
	}

	results, err := app.Domain.Search.Search(ctx, strings.Join(fs.Args(), " "), field)
	if err != nil {
		return err
	}

	if *asJSON {
		return printJSON(results)
	}

	for _, r := range results {
		fmt.Printf("%-10s %-8s %s", r.Source, r.MatchedNumber, r.Document.Name)
		if r.Document.Title != "" {
			fmt.Printf("  %s", r.Document.Title)
		}
		fmt.Println()
	}
	fmt.Printf("%d results\n", len(results))
	return nil
}

type historyCommand struct{}

func (c *historyCommand) Name() string { return "history" }

func (c *historyCommand) Description() string {
	return "list recent search terms"
}

func (c *historyCommand) Run(ctx context.Context, app *App, args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	limit := fs.Int("limit", history.DefaultLimit, "maximum entries to list")
	if err := fs.Parse(args); err != nil {
		return err
	}

	entries, err := app.Domain.History.Recent(ctx, *limit)
	if err != nil {
		return err
	}

	for _, e := range entries {
		fmt.Printf("%s  %-14s %s\n", e.CreatedAt.Local().Format("2006-01-02 15:04"), e.Field, e.Term)
	}
	return nil
}
