package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewHealthCmd creates the health command, which queries the server status.
func NewHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the status of a running server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := rootOptions(cmd)
			c, err := newClient(opts)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.Timeout)
			defer cancel()

			health, err := c.Health(ctx)
			if err != nil {
				return err
			}

			return printResult(cmd, opts, health, func() {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Status:       %s\n", health.Status)
				fmt.Fprintf(out, "Model loaded: %t\n", health.ModelLoaded)
				fmt.Fprintf(out, "Total users:  %d\n", health.TotalUsers)
				fmt.Fprintf(out, "Storage file: %s\n", health.MeasurementsFile)
			})
		},
	}
}
