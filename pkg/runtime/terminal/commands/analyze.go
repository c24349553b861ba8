package commands

import (
	"fmt"

	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/adapters"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

type AnalyzeCmd struct {
	app      string
	flags    analysisFlags
	deps     Dependencies
	reporter *export.Reporter
}

func NewAnalyzeCmd(deps Dependencies, reporter *export.Reporter) *cobra.Command {
	ac := &AnalyzeCmd{deps: deps, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze the reviews of an app",
		RunE:  ac.run,
	}

	cmd.Flags().StringVar(&ac.app, "app", "", "App id or store listing URL")
	ac.flags.register(cmd, deps.Defaults)

	_ = cmd.MarkFlagRequired("app")

	return cmd
}

func (ac *AnalyzeCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := ac.flags.context(cmd.Context())
	defer cancel()

	req, err := ac.flags.request(ac.app)
	if err != nil {
		return err
	}

	result, err := ac.deps.Analyzer.Analyze(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to analyze %s: %w", req.App.ID, err)
	}

	return ac.reporter.Handle(adapters.MapAnalysisDomainToReport(result))
}
