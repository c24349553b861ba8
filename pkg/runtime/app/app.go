package app

import (
	"context"
	"fmt"

	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/metrics"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/models/domain"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/analyzer"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/config"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/delivery"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/history"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/report"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/reviews"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/sentiment"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/store/cache"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/store/client"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/store/duckdb"
	historystore "github.com/Ian-Lusule/Fraud-App-Analyser/pkg/store/duckdb/history"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// App holds the services shared by the web server and the CLI.
type App struct {
	Analyzer  analyzer.Service
	Fetcher   reviews.Fetcher
	Renderers report.Registry
	// Sender is nil when smtp is disabled.
	Sender delivery.ReportSender
	// History is nil when history is disabled.
	History  history.Service
	Metrics  *metrics.Metrics
	Defaults analyzer.Defaults

	closers []func()
}

// Build wires every service from cfg. Metrics are registered on reg.
func Build(ctx context.Context, cfg *config.Config, reg prometheus.Registerer) (*App, error) {
	logger := zerolog.Ctx(ctx)
	clock := clockwork.NewRealClock()
	m := metrics.New(reg)
	a := &App{Metrics: m}

	locale := domain.Locale{Country: cfg.Source.Country, Language: cfg.Source.Language}

	var limiter *rate.Limiter
	if cfg.Source.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.Source.RequestsPerSecond), 1)
	}
	fetcher := reviews.NewFetcher(
		client.NewReviewsClient(client.Settings{
			BaseURL:      cfg.Source.BaseURL,
			Timeout:      cfg.Source.Timeout,
			MaxRetries:   cfg.Source.MaxRetries,
			RetryBackoff: cfg.Source.RetryBackoff,
		}),
		m,
		reviews.Settings{
			PageSize:      cfg.Source.PageSize,
			DefaultLocale: locale,
			Limiter:       limiter,
		},
	)

	store, err := a.cacheStore(ctx, cfg.Cache, clock)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Fetcher = reviews.NewCachedFetcher(fetcher, store, m, reviews.CacheSettings{
		TTL:           cfg.Cache.TTL,
		DefaultLocale: locale,
	})

	var recorder analyzer.Recorder
	if cfg.History.Enabled {
		db, err := duckdb.NewDB(duckdb.Settings{DbPath: cfg.History.Path})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to open history database: %w", err)
		}
		a.closers = append(a.closers, func() { _ = db.Close() })

		hs, err := historystore.NewStore(db)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to create history store: %w", err)
		}
		a.History = history.NewService(hs)
		recorder = a.History
		logger.Info().Str("path", cfg.History.Path).Msg("recording analysis history")
	}

	scorer := sentiment.NewScorer(sentiment.NewVaderModel(), sentiment.NewKeywordMatcher(cfg.Analysis.Keywords))
	a.Analyzer = analyzer.NewService(a.Fetcher, scorer, m, analyzer.Settings{
		MaxReviewsLimit: cfg.Analysis.MaxReviewsLimit,
		Clock:           clock,
		Recorder:        recorder,
	})
	a.Renderers = report.NewDefaultRegistry()

	if cfg.SMTP.Enabled {
		var archiver delivery.Archiver
		if cfg.Archive.Enabled {
			archiver, err = delivery.NewS3Archiver(ctx, delivery.S3Settings{
				Bucket:   cfg.Archive.Bucket,
				Prefix:   cfg.Archive.Prefix,
				Region:   cfg.Archive.Region,
				Endpoint: cfg.Archive.Endpoint,
			})
			if err != nil {
				a.Close()
				return nil, fmt.Errorf("failed to create report archiver: %w", err)
			}
		}
		mailer := delivery.NewSMTPMailer(delivery.SMTPSettings{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
			StartTLS: cfg.SMTP.StartTLS,
		})
		a.Sender = delivery.NewReportSender(mailer, a.Renderers, archiver, m)
	} else {
		logger.Info().Msg("smtp disabled, e-mail delivery unavailable")
	}

	a.Defaults = analyzer.Defaults{
		Thresholds: cfg.Thresholds(),
		Locale:     locale,
		MaxReviews: cfg.Analysis.DefaultMaxReviews,
	}
	return a, nil
}

func (a *App) cacheStore(ctx context.Context, cfg config.CacheConfig, clock clockwork.Clock) (cache.Store, error) {
	logger := zerolog.Ctx(ctx)
	switch cfg.Backend {
	case "valkey":
		v, err := cache.NewValkey(ctx, cache.ValkeySettings{
			Address:   cfg.Valkey.Address,
			Password:  cfg.Valkey.Password,
			DB:        cfg.Valkey.DB,
			KeyPrefix: cfg.Valkey.KeyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to valkey: %w", err)
		}
		a.closers = append(a.closers, v.Close)
		logger.Info().Str("address", cfg.Valkey.Address).Msg("using valkey session cache")
		return v, nil
	case "memory":
		mem := cache.NewMemory(clock)
		if cfg.TTL > 0 {
			evictCtx, cancel := context.WithCancel(context.Background())
			mem.StartEviction(evictCtx, cfg.TTL)
			a.closers = append(a.closers, cancel)
		}
		return mem, nil
	default:
		return cache.NewNoop(), nil
	}
}

// Close releases cache connections and background workers.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
