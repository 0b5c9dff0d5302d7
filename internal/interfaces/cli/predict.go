package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/pkg/types/measurement"
)

// NewPredictCmd creates the predict command, which requests a prediction
// from a running server and prints the resulting measurements.
func NewPredictCmd() *cobra.Command {
	var req measurement.PredictRequest

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict body measurements for a child",
		Example: `  swakarthi predict --parent p1 --child c1 --age 7 --gender male --weight 25 --height 120
  swakarthi predict --parent p1 --child c1 --age 7 --gender f --weight 24 --height 118 --brand Zara`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := rootOptions(cmd)
			c, err := newClient(opts)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.Timeout)
			defer cancel()

			res, err := c.Predict(ctx, req)
			if err != nil {
				return err
			}

			return printResult(cmd, opts, res, func() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", res.Message)
				printMeasurements(cmd, res.MeasurementsCM, res.MeasurementsInches)
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.ParentID, "parent", "", "parent identifier")
	f.StringVar(&req.ChildID, "child", "", "child identifier")
	f.Float64Var(&req.Age, "age", 0, "age in years (3-18)")
	f.StringVar(&req.Gender, "gender", "", "gender (male, female, m, f)")
	f.Float64Var(&req.Weight, "weight", 0, "weight in kg (10-120)")
	f.Float64Var(&req.Height, "height", 0, "height in cm (80-220)")
	f.StringVar(&req.Brand, "brand", "", "optional brand for size-chart lookup")
	for _, name := range []string{"parent", "child", "age", "gender", "weight", "height"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

// printMeasurements renders the dual-unit measurement table sorted by key.
func printMeasurements(cmd *cobra.Command, cm, inches map[string]float64) {
	keys := make([]string, 0, len(cm))
	for k := range cm {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(cmd.OutOrStdout(), "  %-14s %7.2f cm %7.2f in\n", k, cm[k], inches[k])
	}
}
