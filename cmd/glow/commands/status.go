package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which modules have a current snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			statuses, err := c.app.Status(cmd.Context())
			if err != nil {
				return err
			}

			for _, s := range statuses {
				state := "stale"
				if s.Fresh {
					state = "fresh"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", s.Name, s.Fingerprint, state)
			}
			return nil
		},
	}
}
