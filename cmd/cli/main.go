package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/logging"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/runtime/app"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/runtime/terminal"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/config"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("FRAUD_ANALYSER_CONFIG"))
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Level, "console", os.Stderr)
	if err != nil {
		return err
	}
	ctx := logger.WithContext(context.Background())

	deps, err := app.Build(ctx, cfg, prometheus.NewRegistry())
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer deps.Close()

	cli := terminal.NewCLI(terminal.Options{
		Analyzer:  deps.Analyzer,
		Fetcher:   deps.Fetcher,
		Renderers: deps.Renderers,
		Sender:    deps.Sender,
		History:   deps.History,
		Metrics:   deps.Metrics,
		Defaults:  deps.Defaults,
		Output:    os.Stdout,
	})

	return cli.Execute(ctx)
}
