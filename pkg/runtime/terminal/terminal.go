package terminal

import (
	"context"
	"io"
	"os"

	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/metrics"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/runtime/terminal/commands"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/runtime/terminal/export"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/analyzer"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/delivery"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/history"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/report"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/reviews"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	deps     commands.Dependencies
	reporter *export.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Analyzer  analyzer.Service
	Fetcher   reviews.Fetcher
	Renderers report.Registry
	Sender    delivery.ReportSender
	History   history.Service
	Metrics   *metrics.Metrics
	Defaults  analyzer.Defaults
	Output    io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		deps: commands.Dependencies{
			Analyzer:  opts.Analyzer,
			Fetcher:   opts.Fetcher,
			Renderers: opts.Renderers,
			Sender:    opts.Sender,
			History:   opts.History,
			Metrics:   opts.Metrics,
			Defaults:  opts.Defaults,
		},
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "fraud-analyser",
		Short:         "Review sentiment and fraud risk analysis for store apps",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(commands.NewAnalyzeCmd(cli.deps, cli.reporter))
	cmd.AddCommand(commands.NewCompareCmd(cli.deps, cli.reporter))
	cmd.AddCommand(commands.NewSearchCmd(cli.deps))
	cmd.AddCommand(commands.NewExportCmd(cli.deps))
	cmd.AddCommand(commands.NewEmailCmd(cli.deps))
	cmd.AddCommand(commands.NewHistoryCmd(cli.deps))

	return cmd
}
