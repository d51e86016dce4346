package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <module>",
		Short: "Print the generated source of a module",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := c.app.Show(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), src)
			return nil
		},
	}
}
