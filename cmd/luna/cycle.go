package main

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/luna/internal/analytics"
	"github.com/fyrsmithlabs/luna/internal/cycle"
	httpserver "github.com/fyrsmithlabs/luna/internal/http"
)

func newCycleCmd(c *cli) *cobra.Command {
	var (
		req    httpserver.CycleRequest
		length int
	)
	cmd := &cobra.Command{
		Use:   "cycle",
		Short: "Predict the next period, ovulation and fertile window",
		Long: `Predict the cycle calendar from the first day of the last period.

Examples:
  luna cycle --last 2024-03-01
  luna cycle --last 2024-03-01 --length 30 --today 2024-03-12`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("length") {
				req.CycleLength = &length
			}
			var res analytics.CycleResult
			raw, err := c.call(cmd.Context(), http.MethodPost, "/api/v1/cycle", req, &res)
			if err != nil {
				return err
			}
			if c.printJSON(cmd, raw) {
				return nil
			}
			s := res.Schedule
			cmd.Printf("Cycle day:      %d\n", s.CurrentCycleDay)
			cmd.Printf("Next period:    %s\n", s.NextPeriod.Format(time.DateOnly))
			cmd.Printf("Ovulation:      %s\n", s.Ovulation.Format(time.DateOnly))
			cmd.Printf("Fertile window: %s to %s\n", s.FertileStart.Format(time.DateOnly), s.FertileEnd.Format(time.DateOnly))
			return nil
		},
	}
	cmd.Flags().StringVar(&req.LastPeriodDate, "last", "", "first day of the last period (YYYY-MM-DD)")
	cmd.Flags().IntVar(&length, "length", cycle.DefaultCycleLength, "average cycle length in days")
	cmd.Flags().StringVar(&req.Today, "today", "", "reference date (YYYY-MM-DD, default today)")
	_ = cmd.MarkFlagRequired("last")
	return cmd
}
