package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/glow/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <module> [inputs...]",
		Short: "Evaluate a module with the given inputs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := parseInputs(args[1:])
			if err != nil {
				return err
			}

			out, err := c.app.Run(cmd.Context(), args[0], inputs)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), formatValue(out))
			return nil
		},
	}
}

// parseInputs converts command line arguments to values. A plain number
// is a scalar; comma-separated numbers form a vector.
func parseInputs(args []string) ([]domain.Value, error) {
	inputs := make([]domain.Value, len(args))
	for i, arg := range args {
		parts := strings.Split(arg, ",")
		v := make(domain.Value, len(parts))
		for j, part := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil {
				return nil, zerr.With(zerr.New("invalid input value"), "input", arg)
			}
			v[j] = f
		}
		inputs[i] = v
	}
	return inputs, nil
}

func formatValue(v domain.Value) string {
	parts := make([]string, len(v))
	for i, f := range v {
		parts[i] = strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}
