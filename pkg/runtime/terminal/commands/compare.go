package commands

import (
	"fmt"

	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/adapters"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

type CompareCmd struct {
	left     string
	right    string
	flags    analysisFlags
	deps     Dependencies
	reporter *export.Reporter
}

func NewCompareCmd(deps Dependencies, reporter *export.Reporter) *cobra.Command {
	cc := &CompareCmd{deps: deps, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the review sentiment of two apps",
		RunE:  cc.run,
	}

	cmd.Flags().StringVar(&cc.left, "left", "", "First app id or store listing URL")
	cmd.Flags().StringVar(&cc.right, "right", "", "Second app id or store listing URL")
	cc.flags.register(cmd, deps.Defaults)

	_ = cmd.MarkFlagRequired("left")
	_ = cmd.MarkFlagRequired("right")

	return cmd
}

func (cc *CompareCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := cc.flags.context(cmd.Context())
	defer cancel()

	left, err := cc.flags.request(cc.left)
	if err != nil {
		return err
	}
	right, err := cc.flags.request(cc.right)
	if err != nil {
		return err
	}

	result, err := cc.deps.Analyzer.Compare(ctx, left, right)
	if err != nil {
		return fmt.Errorf("failed to compare %s and %s: %w", left.App.ID, right.App.ID, err)
	}

	return cc.reporter.Handle(adapters.MapComparisonDomainToReport(result))
}
