// Package main is the entry point for the surok-build tool.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/difrex/surok-build/cmd/surok-build/commands"
	"github.com/difrex/surok-build/internal/app"
	"github.com/difrex/surok-build/internal/core/domain"
	_ "github.com/difrex/surok-build/internal/wiring"
	"github.com/grindlemire/graft"
)

func main() {
	os.Exit(run())
}

func run(opts ...func(*app.App)) int {
	// 0. Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 1. Initialize application components
	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		// Write directly to stderr
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}

	// Apply options
	for _, opt := range opts {
		opt(components.App)
	}

	// 2. Interface - CLI
	cli := commands.New(components.App)

	// 3. Execution
	if err := cli.Execute(ctx); err != nil {
		components.Logger.Error(err)
		// Failed package builds carry the exit status of the build command.
		return domain.ExitStatus(err)
	}
	return 0
}
