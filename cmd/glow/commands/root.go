// Package commands implements the CLI commands for the glow compiler.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/glow/internal/app"
	"go.trai.ch/glow/internal/build"
)

// CLI represents the command line interface for glow.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	rootCmd := &cobra.Command{
		Use:           "glow",
		Short:         "A lazy graph compiler with snapshot caching",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", "glow.yaml", "Path to configuration file")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newShowCmd())
	rootCmd.AddCommand(c.newCompileCmd())
	rootCmd.AddCommand(c.newStatusCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetConfigHook installs a PersistentPreRun function that reads the
// config flag and hands the path to the given callback before any
// command runs.
func (c *CLI) SetConfigHook(fn func(string)) {
	c.rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		configPath, err := cmd.Flags().GetString("config")
		if err != nil {
			return err
		}
		fn(configPath)
		return nil
	}
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput redirects command output. Used for testing.
func (c *CLI) SetOutput(w io.Writer) {
	c.rootCmd.SetOut(w)
	c.rootCmd.SetErr(w)
}
