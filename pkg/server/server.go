package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	handlers "github.com/Ian-Lusule/Fraud-App-Analyser/pkg/handlers/analysis"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/metrics"
	analysermiddleware "github.com/Ian-Lusule/Fraud-App-Analyser/pkg/server/middleware"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/analyzer"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/delivery"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/history"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/report"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/reviews"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

const defaultShutdownTimeout = 10 * time.Second

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Analyzer  analyzer.Service
	Fetcher   reviews.Fetcher
	Renderers report.Registry
	// Sender is nil when e-mail delivery is disabled.
	Sender delivery.ReportSender
	// History is nil when analysis history is disabled.
	History  history.Service
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Defaults analyzer.Defaults
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	router := NewRouter(logger, config.Dependencies)

	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = defaultShutdownTimeout
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: config.ShutdownTimeout,
	}
}

// NewRouter mounts the API, metrics and health routes.
func NewRouter(logger zerolog.Logger, deps Dependencies) *chi.Mux {
	h := handlers.NewHandler(deps.Analyzer, deps.Fetcher, deps.Renderers, deps.Sender, deps.History, deps.Metrics, deps.Defaults)

	router := chi.NewRouter()

	router.Use(middleware.RealIP)
	router.Use(analysermiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	if deps.Gatherer != nil {
		router.Handle("/metrics", metrics.Handler(deps.Gatherer))
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/apps/search", h.SearchApps)
		r.Get("/apps/{app}", h.GetApp)
		r.Get("/apps/{app}/analysis", h.GetAnalysis)
		r.Get("/apps/{app}/history", h.GetHistory)
		r.Get("/apps/{app}/report.{format}", h.ExportReport)
		r.Post("/apps/{app}/email", h.EmailReport)
		r.Get("/compare", h.Compare)
		r.Get("/compare/report.pdf", h.CompareReport)
	})

	return router
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
