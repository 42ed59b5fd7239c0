// Package commands implements the CLI commands for surok-build.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/difrex/surok-build/internal/build"
	"github.com/spf13/cobra"
)

// CLI represents the command line interface for surok-build.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the build routines the router dispatches to.
type Application interface {
	Clean(ctx context.Context) error
	BuildBuilder(ctx context.Context) error
	BuildPackage(ctx context.Context) error
	BuildBase(ctx context.Context, rebuild bool) error
	BuildAlpine(ctx context.Context) error
	BuildCentos(ctx context.Context) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "surok-build <action>",
		Short:         "Build and package Surok",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		// An unrecognized action falls through to the root command,
		// which prints usage and exits cleanly.
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newBuildPackageCmd())
	rootCmd.AddCommand(c.newBuildDebCmd())
	rootCmd.AddCommand(c.newSurokImageCmd())
	rootCmd.AddCommand(c.newSurokImageNoRebuildCmd())
	rootCmd.AddCommand(c.newAlpineCmd())
	rootCmd.AddCommand(c.newCentosCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
