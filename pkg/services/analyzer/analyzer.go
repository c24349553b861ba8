package analyzer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/metrics"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/models/domain"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/analysis"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/reviews"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/sentiment"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultMaxReviews = 500
	MaxReviewsLimit   = 10000
)

// Request describes one analysis run. All fields are request scoped.
type Request struct {
	App domain.AppRef
	// MaxReviews left at zero selects DefaultMaxReviews. Shells pass their
	// configured default and reject explicit values below 1.
	MaxReviews int
	Thresholds domain.Thresholds
	Filter     domain.ReviewFilter
}

// Defaults fill in request parameters a caller leaves out.
type Defaults struct {
	Thresholds domain.Thresholds
	Locale     domain.Locale
	MaxReviews int
}

// Service runs the fetch, score and summarize pipeline.
type Service interface {
	Analyze(ctx context.Context, req Request) (*domain.Analysis, error)
	// Compare runs both pipelines concurrently and joins them only to
	// compute the delta. Left minus right.
	Compare(ctx context.Context, left, right Request) (*domain.Comparison, error)
}

// Recorder stores finished analyses.
type Recorder interface {
	Record(ctx context.Context, a *domain.Analysis) error
	// RecordComparison stores both analyses of a comparison together.
	RecordComparison(ctx context.Context, c *domain.Comparison) error
}

type Settings struct {
	MaxReviewsLimit int
	Clock           clockwork.Clock
	// Recorder is optional. Recording failures are logged and never fail a run.
	Recorder Recorder
}

type service struct {
	fetcher  reviews.Fetcher
	scorer   sentiment.Scorer
	metrics  *metrics.Metrics
	maxLimit int
	clock    clockwork.Clock
	recorder Recorder
}

func NewService(fetcher reviews.Fetcher, scorer sentiment.Scorer, m *metrics.Metrics, settings Settings) Service {
	if settings.MaxReviewsLimit <= 0 {
		settings.MaxReviewsLimit = MaxReviewsLimit
	}
	if settings.Clock == nil {
		settings.Clock = clockwork.NewRealClock()
	}
	return &service{
		fetcher:  fetcher,
		scorer:   scorer,
		metrics:  m,
		maxLimit: settings.MaxReviewsLimit,
		clock:    settings.Clock,
		recorder: settings.Recorder,
	}
}

func (s *service) Analyze(ctx context.Context, req Request) (*domain.Analysis, error) {
	result, err := s.run(ctx, req)
	if err == nil && s.recorder != nil {
		if rerr := s.recorder.Record(ctx, result); rerr != nil {
			zerolog.Ctx(ctx).Warn().Err(rerr).Str("analysis_id", result.ID).Msg("failed to record analysis")
		}
	}
	return result, err
}

func (s *service) run(ctx context.Context, req Request) (*domain.Analysis, error) {
	result, err := s.analyze(ctx, req)
	s.countOutcome(err)
	return result, err
}

func (s *service) analyze(ctx context.Context, req Request) (*domain.Analysis, error) {
	if err := s.validate(&req); err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx).With().Str("app_id", req.App.ID).Logger()
	ctx = logger.WithContext(ctx)

	// Fetch errors reach the caller unchanged.
	details, err := s.fetcher.FetchDetails(ctx, req.App)
	if err != nil {
		return nil, err
	}
	fetched, err := s.fetcher.FetchReviews(ctx, req.App, req.MaxReviews)
	if err != nil {
		return nil, err
	}

	scored, skipped := s.scorer.ScoreAll(fetched, req.Thresholds)
	for _, err := range skipped {
		logger.Warn().Err(err).Msg("skipping review")
	}
	if s.metrics != nil {
		s.metrics.ReviewsSkipped.Add(float64(len(skipped)))
	}

	filtered := analysis.Filter(scored, req.Filter)
	summary := analysis.Summarize(filtered, req.Thresholds)
	summary.Skipped = len(skipped)

	logger.Info().
		Int("fetched", len(fetched)).
		Int("scored", summary.Total).
		Int("skipped", summary.Skipped).
		Float64("negative_pct", summary.RiskPercentage).
		Bool("risk", summary.RiskFlag).
		Msg("analysis complete")

	return &domain.Analysis{
		ID:          uuid.NewString(),
		App:         details,
		Ref:         req.App,
		Thresholds:  req.Thresholds,
		Filter:      req.Filter,
		Reviews:     filtered,
		Summary:     summary,
		GeneratedAt: s.clock.Now().UTC(),
	}, nil
}

func (s *service) Compare(ctx context.Context, left, right Request) (*domain.Comparison, error) {
	if left.App.ID == right.App.ID {
		return nil, &domain.InvalidConfigurationError{Field: "right", Value: right.App.ID, Reason: "select two different apps to compare"}
	}

	var a, b *domain.Analysis
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		a, err = s.run(gctx, left)
		return err
	})
	g.Go(func() error {
		var err error
		b, err = s.run(gctx, right)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &domain.Comparison{
		Left:  a,
		Right: b,
		Delta: analysis.CompareAnalyses(a, b),
	}
	if s.recorder != nil {
		if err := s.recorder.RecordComparison(ctx, result); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("left", a.ID).Str("right", b.ID).Msg("failed to record comparison")
		}
	}
	return result, nil
}

func (s *service) validate(req *Request) error {
	if err := req.Thresholds.Validate(); err != nil {
		return err
	}
	if req.App.ID == "" {
		return &domain.InvalidConfigurationError{Field: "app", Value: "", Reason: "app id is required"}
	}
	if req.MaxReviews == 0 {
		req.MaxReviews = DefaultMaxReviews
	}
	if req.MaxReviews < 0 || req.MaxReviews > s.maxLimit {
		return &domain.InvalidConfigurationError{
			Field:  "max_reviews",
			Value:  req.MaxReviews,
			Reason: fmt.Sprintf("must be between 1 and %d", s.maxLimit),
		}
	}
	if !req.Filter.From.IsZero() && !req.Filter.To.IsZero() && req.Filter.To.Before(req.Filter.From) {
		return &domain.InvalidConfigurationError{Field: "to", Value: req.Filter.To.Format(time.DateOnly), Reason: "end date precedes start date"}
	}
	return nil
}

func (s *service) countOutcome(err error) {
	if s.metrics == nil {
		return
	}
	outcome := "success"
	var (
		cfgErr      *domain.InvalidConfigurationError
		notFoundErr *domain.AppNotFoundError
		timeoutErr  *domain.FetchTimeoutError
	)
	switch {
	case err == nil:
	case errors.As(err, &cfgErr):
		outcome = "invalid"
	case errors.As(err, &notFoundErr):
		outcome = "not_found"
	case errors.As(err, &timeoutErr):
		outcome = "timeout"
	default:
		outcome = "error"
	}
	s.metrics.Analyses.WithLabelValues(outcome).Inc()
}
