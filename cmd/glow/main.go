// Package main is the entry point for the glow CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/glow/cmd/glow/commands"
	"go.trai.ch/glow/internal/adapters/config"
	"go.trai.ch/glow/internal/app"
	_ "go.trai.ch/glow/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed.
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}
	defer func() {
		_ = components.Telemetry.Close()
	}()

	cli := commands.New(components.App)
	cli.SetConfigHook(func(path string) {
		components.App.SetConfigLoader(config.NewLoader(path))
	})

	if err := cli.Execute(ctx); err != nil {
		// zerr prints a full error report with stack trace and metadata with %+v
		_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err)
		return 1
	}
	return 0
}
