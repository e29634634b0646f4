// Package main provides the archive command for running imports, searches,
// and maintenance tasks against the configured archive without the HTTP server.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/JaimeStill/doc-archive/internal/config"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd, ok := getCommand(os.Args[1])
	if !ok {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config load failed:", err)
	}

	if err := cfg.Finalize(); err != nil {
		log.Fatal("config finalize failed:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApp(cfg)
	if err != nil {
		log.Fatal("archive init failed:", err)
	}

	runErr := cmd.Run(ctx, app, os.Args[2:])

	if err := app.Close(cfg.ShutdownTimeoutDuration()); err != nil {
		log.Println("shutdown failed:", err)
	}
	if runErr != nil {
		log.Fatalf("%s failed: %v", cmd.Name(), runErr)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: archive <command> [flags] [args]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "commands:")

	cmds := listCommands()
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name() < cmds[j].Name() })
	for _, c := range cmds {
		fmt.Fprintf(os.Stderr, "  %-14s %s\n", c.Name(), c.Description())
	}
}
