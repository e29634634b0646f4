package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/JaimeStill/doc-archive/internal/api"
	"github.com/JaimeStill/doc-archive/internal/config"
	"github.com/JaimeStill/doc-archive/internal/infrastructure"
)

// Command is one archive subcommand. Commands self-register via init().
type Command interface {
	// Name is the subcommand word given on the command line.
	Name() string

	// Description is a one-line summary for usage output.
	Description() string

	// Run executes the command with the arguments that follow its name.
	Run(ctx context.Context, app *App, args []string) error
}

var commands = map[string]Command{}

func registerCommand(c Command) {
	commands[c.Name()] = c
}

func getCommand(name string) (Command, bool) {
	c, ok := commands[name]
	return c, ok
}

func listCommands() []Command {
	result := make([]Command, 0, len(commands))
	for _, c := range commands {
		result = append(result, c)
	}
	return result
}

// App carries the started infrastructure and domain systems a command uses.
type App struct {
	Config *config.Config
	Infra  *infrastructure.Infrastructure
	Domain *api.Domain
}

func newApp(cfg *config.Config) (*App, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	if err := infra.Migrate(); err != nil {
		return nil, err
	}

	if err := infra.Start(); err != nil {
		return nil, err
	}
	infra.Lifecycle.WaitForStartup()

	return &App{
		Config: cfg,
		Infra:  infra,
		Domain: api.NewDomain(api.NewRuntime(cfg, infra)),
	}, nil
}

// Close runs the shutdown hooks, closing the database connection.
func (a *App) Close(timeout time.Duration) error {
	return a.Infra.Lifecycle.Shutdown(timeout)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
