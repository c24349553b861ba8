package commands

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/models/domain"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/reviews"
	"github.com/spf13/cobra"
)

type HistoryCmd struct {
	app   string
	limit int
	deps  Dependencies
}

func NewHistoryCmd(deps Dependencies) *cobra.Command {
	hc := &HistoryCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past analyses of an app",
		RunE:  hc.run,
	}

	cmd.Flags().StringVar(&hc.app, "app", "", "App id or store listing URL")
	cmd.Flags().IntVar(&hc.limit, "limit", 20, "Maximum number of runs to list")

	_ = cmd.MarkFlagRequired("app")

	return cmd
}

func (hc *HistoryCmd) run(cmd *cobra.Command, _ []string) error {
	if hc.deps.History == nil {
		return errors.New("analysis history is not configured, set history.enabled")
	}

	id, err := reviews.ResolveAppID(hc.app)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), defaultTimeout)
	defer cancel()

	records, err := hc.deps.History.List(ctx, id, hc.limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintf(out, "No analyses recorded for: %s\n", id)
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "GENERATED\tCOUNTRY\tREVIEWS\tNEGATIVE %\tSCORE\tRISK")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.1f\t%.1f\t%s\n",
			r.GeneratedAt.UTC().Format("2006-01-02 15:04"),
			r.App.Country,
			r.Summary.Total,
			r.Summary.Percentage(domain.LabelNegative),
			r.Summary.AppRatingScore,
			riskLabel(r.Summary.RiskFlag))
	}
	return tw.Flush()
}

func riskLabel(flag bool) string {
	if flag {
		return "yes"
	}
	return "no"
}
