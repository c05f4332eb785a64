package main

import (
	"net/http"

	"github.com/spf13/cobra"

	httpserver "github.com/fyrsmithlabs/luna/internal/http"
	"github.com/fyrsmithlabs/luna/internal/risk"
)

func newRiskCmd(c *cli) *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "risk [symptom...]",
		Short: "Score the PCOS/thyroid symptom checklist",
		Long: `Score selected symptoms from the checklist. Names must match the catalogue exactly;
use --list to print it.

Examples:
  luna risk --list
  luna risk "Fatigue or Low Energy" "Sensitivity to Cold or Heat"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				return c.printCatalogue(cmd)
			}
			var a risk.Assessment
			raw, err := c.call(cmd.Context(), http.MethodPost, "/api/v1/risk", httpserver.RiskRequest{Symptoms: args}, &a)
			if err != nil {
				return err
			}
			if c.printJSON(cmd, raw) {
				return nil
			}
			cmd.Printf("Verdict: %s (PCOS %d/%d, thyroid %d/%d)\n",
				a.Verdict, a.PCOSScore, risk.PCOSThreshold, a.ThyroidScore, risk.ThyroidThreshold)
			for _, f := range a.Findings {
				cmd.Printf("  - %s\n", f)
			}
			for _, adv := range a.Advice {
				cmd.Printf("%s: %s\n", adv.Symptom, adv.Text)
			}
			for _, u := range a.Unknown {
				cmd.Printf("Ignored unknown symptom: %q\n", u)
			}
			cmd.Println(a.Disclaimer)
			return nil
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "print the symptom catalogue")
	return cmd
}

func (c *cli) printCatalogue(cmd *cobra.Command) error {
	var resp httpserver.CatalogueResponse
	raw, err := c.call(cmd.Context(), http.MethodGet, "/api/v1/risk/catalogue", nil, &resp)
	if err != nil {
		return err
	}
	if c.printJSON(cmd, raw) {
		return nil
	}
	for _, s := range resp.Symptoms {
		cmd.Printf("%-40s %s\n", s.Name, s.Category)
	}
	return nil
}
