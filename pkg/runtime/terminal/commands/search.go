package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/models/domain"
	"github.com/spf13/cobra"
)

type SearchCmd struct {
	query   string
	country string
	deps    Dependencies
}

func NewSearchCmd(deps Dependencies) *cobra.Command {
	sc := &SearchCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search the store for apps by name",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.query, "query", "", "App name to search for")
	cmd.Flags().StringVar(&sc.country, "country", deps.Defaults.Locale.Country, "Store country code")

	_ = cmd.MarkFlagRequired("query")

	return cmd
}

func (sc *SearchCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), defaultTimeout)
	defer cancel()

	locale := sc.deps.Defaults.Locale
	locale.Country = strings.ToLower(sc.country)

	apps, err := sc.deps.Fetcher.Search(ctx, sc.query, locale)
	if err != nil {
		return fmt.Errorf("failed to search for %q: %w", sc.query, err)
	}

	out := cmd.OutOrStdout()
	if len(apps) == 0 {
		fmt.Fprintf(out, "No apps found for: %s\n", sc.query)
		return nil
	}
	return writeApps(out, apps)
}

func writeApps(out io.Writer, apps []domain.AppSummary) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "APP ID\tTITLE\tDEVELOPER\tSCORE")
	for _, a := range apps {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f\n", a.AppID, a.Title, a.Developer, a.Score)
	}
	return tw.Flush()
}
