package reviews

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/metrics"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/models/domain"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/store/cache"
	"github.com/rs/zerolog"
)

type CacheSettings struct {
	TTL time.Duration
	// DefaultLocale fills an empty country or language before the cache key
	// is built, so both spellings of the same request share one entry.
	DefaultLocale domain.Locale
}

type cachedFetcher struct {
	next    Fetcher
	store   cache.Store
	ttl     time.Duration
	locale  domain.Locale
	metrics *metrics.Metrics
}

// NewCachedFetcher memoizes details and review lists per app, locale and
// count. Cache failures are logged and fall through to next.
func NewCachedFetcher(next Fetcher, store cache.Store, m *metrics.Metrics, settings CacheSettings) Fetcher {
	return &cachedFetcher{next: next, store: store, ttl: settings.TTL, locale: settings.DefaultLocale, metrics: m}
}

func (c *cachedFetcher) resolve(app domain.AppRef) domain.AppRef {
	if app.Country == "" {
		app.Country = c.locale.Country
	}
	if app.Language == "" {
		app.Language = c.locale.Language
	}
	return app
}

func (c *cachedFetcher) FetchDetails(ctx context.Context, app domain.AppRef) (domain.AppDetails, error) {
	app = c.resolve(app)
	key := fmt.Sprintf("details:%s:%s:%s", app.Country, app.Language, app.ID)
	var details domain.AppDetails
	if c.load(ctx, "details", key, &details) {
		return details, nil
	}

	details, err := c.next.FetchDetails(ctx, app)
	if err != nil {
		return domain.AppDetails{}, err
	}
	c.save(ctx, key, details)
	return details, nil
}

func (c *cachedFetcher) FetchReviews(ctx context.Context, app domain.AppRef, maxCount int) ([]domain.Review, error) {
	app = c.resolve(app)
	key := fmt.Sprintf("reviews:%s:%s:%s:%d", app.Country, app.Language, app.ID, maxCount)
	var reviews []domain.Review
	if c.load(ctx, "reviews", key, &reviews) {
		return reviews, nil
	}

	reviews, err := c.next.FetchReviews(ctx, app, maxCount)
	if err != nil {
		return nil, err
	}
	c.save(ctx, key, reviews)
	return reviews, nil
}

func (c *cachedFetcher) Search(ctx context.Context, query string, locale domain.Locale) ([]domain.AppSummary, error) {
	return c.next.Search(ctx, query, locale)
}

func (c *cachedFetcher) load(ctx context.Context, kind, key string, out any) bool {
	raw, found, err := c.store.Get(ctx, key)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("cache read failed")
	}
	if found && err == nil {
		if err := json.Unmarshal(raw, out); err == nil {
			c.count(kind, "hit")
			return true
		}
		zerolog.Ctx(ctx).Warn().Str("key", key).Msg("discarding undecodable cache entry")
	}
	c.count(kind, "miss")
	return false
}

func (c *cachedFetcher) save(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err == nil {
		err = c.store.Set(ctx, key, raw, c.ttl)
	}
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

func (c *cachedFetcher) count(kind, result string) {
	if c.metrics != nil {
		c.metrics.CacheRequests.WithLabelValues(kind, result).Inc()
	}
}
