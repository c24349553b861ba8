package reviews

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/adapters"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/metrics"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/models/domain"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/store/client"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const DefaultPageSize = 200

// Fetcher reads app listings and reviews from the review source.
type Fetcher interface {
	FetchDetails(ctx context.Context, app domain.AppRef) (domain.AppDetails, error)
	// FetchReviews returns at most maxCount reviews, newest first. It fails
	// with *domain.AppNotFoundError or *domain.FetchTimeoutError.
	FetchReviews(ctx context.Context, app domain.AppRef, maxCount int) ([]domain.Review, error)
	Search(ctx context.Context, query string, locale domain.Locale) ([]domain.AppSummary, error)
}

type Settings struct {
	PageSize      int
	DefaultLocale domain.Locale
	// Limiter paces page requests; nil means unlimited.
	Limiter *rate.Limiter
}

type fetcher struct {
	client   client.ReviewsClient
	metrics  *metrics.Metrics
	pageSize int
	locale   domain.Locale
	limiter  *rate.Limiter
}

func NewFetcher(c client.ReviewsClient, m *metrics.Metrics, settings Settings) Fetcher {
	if settings.PageSize <= 0 {
		settings.PageSize = DefaultPageSize
	}
	if settings.Limiter == nil {
		settings.Limiter = rate.NewLimiter(rate.Inf, 1)
	}
	return &fetcher{
		client:   c,
		metrics:  m,
		pageSize: settings.PageSize,
		locale:   settings.DefaultLocale,
		limiter:  settings.Limiter,
	}
}

func (f *fetcher) FetchDetails(ctx context.Context, app domain.AppRef) (domain.AppDetails, error) {
	defer f.observe("details", time.Now())

	if err := f.wait(ctx, app.ID); err != nil {
		return domain.AppDetails{}, err
	}
	details, err := f.client.Details(ctx, app.ID, f.clientLocale(app.Locale))
	if err != nil {
		return domain.AppDetails{}, fetchError(ctx, app.ID, err)
	}
	return adapters.MapAppDetailsStoreToDomain(*details), nil
}

func (f *fetcher) FetchReviews(ctx context.Context, app domain.AppRef, maxCount int) ([]domain.Review, error) {
	defer f.observe("reviews", time.Now())
	logger := zerolog.Ctx(ctx).With().Str("app_id", app.ID).Logger()

	out := make([]domain.Review, 0, max(maxCount, 0))
	token := ""
	locale := f.clientLocale(app.Locale)

	for page := 1; len(out) < maxCount; page++ {
		if err := f.wait(ctx, app.ID); err != nil {
			return nil, err
		}

		count := min(f.pageSize, maxCount-len(out))
		batch, err := f.client.Reviews(ctx, app.ID, locale, count, token)
		if err != nil {
			return nil, fetchError(ctx, app.ID, err)
		}
		for _, r := range batch.Reviews {
			out = append(out, adapters.MapReviewStoreToDomain(r))
		}
		logger.Debug().Int("page", page).Int("received", len(batch.Reviews)).Int("total", len(out)).Msg("fetched review page")

		if batch.NextToken == "" || len(batch.Reviews) == 0 {
			break
		}
		token = batch.NextToken
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if len(out) > maxCount {
		out = out[:maxCount]
	}
	if f.metrics != nil {
		f.metrics.ReviewsFetched.Add(float64(len(out)))
	}
	return out, nil
}

func (f *fetcher) Search(ctx context.Context, query string, locale domain.Locale) ([]domain.AppSummary, error) {
	defer f.observe("search", time.Now())

	apps, err := f.client.Search(ctx, query, f.clientLocale(locale))
	if err != nil {
		if client.IsTimeout(err) {
			return nil, &domain.FetchTimeoutError{Err: err}
		}
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	out := make([]domain.AppSummary, 0, len(apps))
	for _, a := range apps {
		out = append(out, adapters.MapAppStoreToDomain(a))
	}
	return out, nil
}

// wait blocks for the rate limiter. A wait that cannot finish before the
// context deadline is a fetch timeout, even while ctx is still live.
func (f *fetcher) wait(ctx context.Context, appID string) error {
	err := f.limiter.Wait(ctx)
	if err == nil {
		return nil
	}
	if _, ok := ctx.Deadline(); ok && !errors.Is(ctx.Err(), context.Canceled) {
		return &domain.FetchTimeoutError{AppID: appID, Err: err}
	}
	return fetchError(ctx, appID, err)
}

func (f *fetcher) clientLocale(l domain.Locale) client.Locale {
	if l.Country == "" {
		l.Country = f.locale.Country
	}
	if l.Language == "" {
		l.Language = f.locale.Language
	}
	return adapters.MapLocaleDomainToClient(l)
}

func (f *fetcher) observe(operation string, start time.Time) {
	if f.metrics != nil {
		f.metrics.FetchDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}

func fetchError(ctx context.Context, appID string, err error) error {
	switch {
	case errors.Is(err, client.ErrNotFound):
		return &domain.AppNotFoundError{AppID: appID}
	case client.IsTimeout(err) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return &domain.FetchTimeoutError{AppID: appID, Err: err}
	default:
		return fmt.Errorf("fetch %s: %w", appID, err)
	}
}
