// Package main is the entry point for the finito CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/hamilton-i7/finito-sub001/internal/app"
	"github.com/hamilton-i7/finito-sub001/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Create dependency injection container
	container, err := app.New(ctx, "")
	if err != nil {
		// Allow help and version without a usable data directory
		if canRunWithoutStore(os.Args[1:]) {
			return cli.NewRootCommand(nil, version).ExecuteContext(ctx)
		}
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer func() { _ = container.Close() }()

	rootCmd := cli.NewRootCommand(container, version)
	return rootCmd.ExecuteContext(ctx)
}

func canRunWithoutStore(args []string) bool {
	if len(args) == 0 {
		return true
	}
	switch args[0] {
	case "help", "completion":
		return true
	}
	for _, arg := range args {
		if arg == "--version" || arg == "-v" || arg == "--help" || arg == "-h" || strings.HasPrefix(arg, "--help=") {
			return true
		}
	}
	return false
}
