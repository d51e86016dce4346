package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newCompileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compile",
		Short: "Regenerate every module whose snapshot is out of date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.CompileAll(cmd.Context())
		},
	}
}
