package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewGetCmd creates the get command, which retrieves a stored record.
func NewGetCmd() *cobra.Command {
	var parentID, childID string

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Retrieve stored measurements for a child",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := rootOptions(cmd)
			c, err := newClient(opts)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.Timeout)
			defer cancel()

			rec, err := c.Get(ctx, parentID, childID)
			if err != nil {
				return err
			}

			return printResult(cmd, opts, rec, func() {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Child %s under parent %s\n", rec.ChildID, rec.ParentID)
				fmt.Fprintf(out, "Predicted: %s  Last updated: %s\n", rec.PredictionTimestamp, rec.LastUpdated)
				if rec.IsManuallyUpdated {
					fmt.Fprintln(out, "Contains manual corrections")
				}
				printMeasurements(cmd, rec.MeasurementsCM, rec.MeasurementsInches)
			})
		},
	}

	cmd.Flags().StringVar(&parentID, "parent", "", "parent identifier")
	cmd.Flags().StringVar(&childID, "child", "", "child identifier")
	_ = cmd.MarkFlagRequired("parent")
	_ = cmd.MarkFlagRequired("child")

	return cmd
}
