package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type ExportCmd struct {
	app    string
	format string
	out    string
	flags  analysisFlags
	deps   Dependencies
}

func NewExportCmd(deps Dependencies) *cobra.Command {
	ec := &ExportCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export an analysis as a CSV or PDF report",
		RunE:  ec.run,
	}

	cmd.Flags().StringVar(&ec.app, "app", "", "App id or store listing URL")
	cmd.Flags().StringVar(&ec.format, "format", "pdf", "Report format (csv, pdf)")
	cmd.Flags().StringVar(&ec.out, "out", "", "Output file (default is the report file name)")
	ec.flags.register(cmd, deps.Defaults)

	_ = cmd.MarkFlagRequired("app")

	return cmd
}

func (ec *ExportCmd) run(cmd *cobra.Command, _ []string) error {
	renderer, err := ec.deps.Renderers.Get(ec.format)
	if err != nil {
		return err
	}

	ctx, cancel := ec.flags.context(cmd.Context())
	defer cancel()

	req, err := ec.flags.request(ec.app)
	if err != nil {
		return err
	}

	result, err := ec.deps.Analyzer.Analyze(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to analyze %s: %w", req.App.ID, err)
	}

	body, err := renderer.Render(result)
	if err != nil {
		return fmt.Errorf("failed to render %s report: %w", ec.format, err)
	}
	if ec.deps.Metrics != nil {
		ec.deps.Metrics.Reports.WithLabelValues(ec.format).Inc()
	}

	path := ec.out
	if path == "" {
		path = renderer.FileName(result)
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
	return nil
}
