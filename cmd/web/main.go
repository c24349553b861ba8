package main

import (
	"fmt"
	"os"

	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/logging"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/metrics"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/runtime/app"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/server"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for the fraud app analyser",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", os.Getenv("FRAUD_ANALYSER_CONFIG"),
		"Path to a YAML config file (defaults and FRAUD_ANALYSER_* variables apply without one)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("No .env file loaded: %v\n", err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format, os.Stdout)
	if err != nil {
		return err
	}
	ctx := logger.WithContext(cmd.Context())

	reg := metrics.NewRegistry()
	deps, err := app.Build(ctx, cfg, reg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer deps.Close()

	logger.Info().
		Str("source", cfg.Source.BaseURL).
		Str("cache", cfg.Cache.Backend).
		Bool("smtp", cfg.SMTP.Enabled).
		Bool("archive", cfg.Archive.Enabled).
		Bool("history", cfg.History.Enabled).
		Msg("configuration loaded")

	api := server.NewWebAPI(logger, server.Config{
		Addr:            cfg.Addr(),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Analyzer:  deps.Analyzer,
			Fetcher:   deps.Fetcher,
			Renderers: deps.Renderers,
			Sender:    deps.Sender,
			History:   deps.History,
			Metrics:   deps.Metrics,
			Gatherer:  reg,
			Defaults:  deps.Defaults,
		},
	})

	return api.Start()
}
