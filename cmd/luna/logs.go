package main

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/spf13/cobra"

	httpserver "github.com/fyrsmithlabs/luna/internal/http"
	"github.com/fyrsmithlabs/luna/internal/logbook"
	"github.com/fyrsmithlabs/luna/internal/mood"
	"github.com/fyrsmithlabs/luna/internal/trends"
)

func userPath(user, rest string) string {
	return "/api/v1/users/" + url.PathEscape(user) + rest
}

func newLogCmd(c *cli) *cobra.Command {
	var (
		user    string
		moodStr string
		req     httpserver.LogRequest
	)
	activity := string(logbook.ActivityLow)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record a daily log entry",
		Long: `Record one day's mood, sleep, stress, cramps and activity.

Examples:
  luna log --user ana --mood Calm --sleep 7.5 --stress 4 --cramps 2
  luna log --user ana --date 2024-03-08 --mood Tired --tags "yoga, tea"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := mood.Parse(moodStr)
			if err != nil {
				return fmt.Errorf("--mood: %w", err)
			}
			req.Mood = m
			req.Activity = logbook.Activity(activity)
			if req.Date == "" {
				req.Date = time.Now().Format(time.DateOnly)
			}

			var stored logbook.Entry
			raw, err := c.call(cmd.Context(), http.MethodPost, userPath(user, "/logs"), req, &stored)
			if err != nil {
				return err
			}
			if c.printJSON(cmd, raw) {
				return nil
			}
			cmd.Printf("Logged %s for %s (id %s)\n", stored.Date.Format(time.DateOnly), stored.UserID, stored.ID)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&user, "user", "", "user id")
	f.StringVar(&req.Date, "date", "", "entry date (YYYY-MM-DD, default today)")
	f.StringVar(&moodStr, "mood", "", "mood label")
	f.Float64Var(&req.SleepHours, "sleep", 7, "hours slept")
	f.IntVar(&req.StressLevel, "stress", 5, "stress level 1-10")
	f.IntVar(&req.CrampIntensity, "cramps", 1, "cramp intensity 1-10")
	f.StringVar(&activity, "activity", activity, "physical activity: Low, Moderate or High")
	f.BoolVar(&req.PCOS, "pcos", false, "diagnosed with PCOS")
	f.BoolVar(&req.Thyroid, "thyroid", false, "diagnosed with a thyroid condition")
	f.StringVar(&req.Tags, "tags", "", "comma-separated tags")
	f.StringVar(&req.Notes, "notes", "", "free-text notes")
	f.StringVar(&req.Breakfast, "breakfast", "", "breakfast")
	f.StringVar(&req.Lunch, "lunch", "", "lunch")
	f.StringVar(&req.Dinner, "dinner", "", "dinner")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("mood")
	return cmd
}

func newSummaryCmd(c *cli) *cobra.Command {
	var user, today string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarise the last week of logs",
		Long: `Summarise a user's logs from the last seven days: averages, mood counts and tags.

Examples:
  luna summary --user ana
  luna summary --user ana --today 2024-03-10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := userPath(user, "/summary")
			if today != "" {
				path += "?today=" + url.QueryEscape(today)
			}
			var sum trends.WeeklySummary
			raw, err := c.call(cmd.Context(), http.MethodGet, path, nil, &sum)
			if err != nil {
				return err
			}
			if c.printJSON(cmd, raw) {
				return nil
			}
			cmd.Printf("Entries since %s: %d\n", sum.WindowStart.Format(time.DateOnly), sum.Entries)
			cmd.Printf("Average sleep:  %.1f h\n", sum.AverageSleepHours)
			cmd.Printf("Average stress: %.1f\n", sum.AverageStressLevel)
			cmd.Printf("Average cramps: %.1f\n", sum.AverageCrampIntensity)
			cmd.Println("Moods:")
			for _, m := range sum.RankedMoods() {
				cmd.Printf("  %-10s %d\n", m.Key, m.Count)
			}
			if len(sum.TagFrequency) > 0 {
				cmd.Println("Tags:")
				for _, t := range trends.Ranked(sum.TagFrequency) {
					cmd.Printf("  %-10s %d\n", t.Key, t.Count)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "user id")
	cmd.Flags().StringVar(&today, "today", "", "end of the week (YYYY-MM-DD, default today)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
