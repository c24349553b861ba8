package commands

import (
	"errors"
	"fmt"

	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/delivery"
	"github.com/spf13/cobra"
)

type EmailCmd struct {
	app   string
	to    string
	name  string
	flags analysisFlags
	deps  Dependencies
}

func NewEmailCmd(deps Dependencies) *cobra.Command {
	ec := &EmailCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "email",
		Short: "E-mail an analysis report with CSV and PDF attachments",
		RunE:  ec.run,
	}

	cmd.Flags().StringVar(&ec.app, "app", "", "App id or store listing URL")
	cmd.Flags().StringVar(&ec.to, "to", "", "Recipient address")
	cmd.Flags().StringVar(&ec.name, "name", "", "Recipient name")
	ec.flags.register(cmd, deps.Defaults)

	_ = cmd.MarkFlagRequired("app")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func (ec *EmailCmd) run(cmd *cobra.Command, _ []string) error {
	if ec.deps.Sender == nil {
		return errors.New("e-mail delivery is not configured, set smtp.enabled")
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

	if err := ec.deps.Sender.Send(ctx, result, delivery.Recipient{Name: ec.name, Address: ec.to}); err != nil {
		return fmt.Errorf("failed to send report: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Report for %s sent to %s\n", req.App.ID, ec.to)
	return nil
}
