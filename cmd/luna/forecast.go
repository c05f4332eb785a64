package main

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/luna/internal/analytics"
	"github.com/fyrsmithlabs/luna/internal/forecast"
)

func newForecastCmd(c *cli) *cobra.Command {
	var in forecast.Input
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Forecast mood and cramp risk",
		Long: `Forecast mood and cramp risk from age, weight, height, stress and sleep.

Examples:
  luna forecast --age 28 --weight 62 --height 168 --stress 4 --sleep 8`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var out forecast.Output
			raw, err := c.call(cmd.Context(), http.MethodPost, "/api/v1/forecast", in, &out)
			if err != nil {
				return err
			}
			if c.printJSON(cmd, raw) {
				return nil
			}
			cmd.Printf("Mood:       %s (%.0f%% of trees)\n", out.Mood, out.MoodConfidence*100)
			cmd.Printf("Cramp risk: %s (%.0f%% of trees)\n", out.CrampRisk, out.CrampConfidence*100)
			cmd.Printf("BMI:        %.1f\n", out.BMI)
			return nil
		},
	}
	cmd.Flags().Float64Var(&in.Age, "age", 0, "age in years")
	cmd.Flags().Float64Var(&in.WeightKg, "weight", 0, "weight in kg")
	cmd.Flags().Float64Var(&in.HeightCm, "height", 0, "height in cm")
	cmd.Flags().Float64Var(&in.StressLevel, "stress", 5, "stress level 1-10")
	cmd.Flags().Float64Var(&in.SleepHours, "sleep", 7, "sleep hours 1-12")
	for _, name := range []string{"age", "weight", "height"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newModelCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "model",
		Short: "Show the loaded forecast model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var info analytics.ModelInfo
			raw, err := c.call(cmd.Context(), http.MethodGet, "/api/v1/model", nil, &info)
			if err != nil {
				return err
			}
			if c.printJSON(cmd, raw) {
				return nil
			}
			if !info.Ready {
				cmd.Printf("Forecasting unavailable: %s\n", info.Error)
				return nil
			}
			cmd.Printf("Model:   %s\n", info.ID)
			cmd.Printf("Samples: %d\n", info.Samples)
			cmd.Printf("Trees:   %d (seed %d)\n", info.Trees, info.Seed)
			cmd.Printf("Labels:  %v\n", info.Labels)
			return nil
		},
	}
}
