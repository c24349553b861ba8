package reviews

import (
	"context"
	"testing"
	"time"

	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/metrics"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/models/domain"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/store/cache"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchDetails(ctx context.Context, app domain.AppRef) (domain.AppDetails, error) {
	args := m.Called(ctx, app)
	return args.Get(0).(domain.AppDetails), args.Error(1)
}

func (m *mockFetcher) FetchReviews(ctx context.Context, app domain.AppRef, maxCount int) ([]domain.Review, error) {
	args := m.Called(ctx, app, maxCount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *mockFetcher) Search(ctx context.Context, query string, locale domain.Locale) ([]domain.AppSummary, error) {
	args := m.Called(ctx, query, locale)
	return args.Get(0).([]domain.AppSummary), args.Error(1)
}

func TestCachedFetcher_FetchReviews(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClock()
	m := metrics.New(prometheus.NewRegistry())
	app := domain.AppRef{ID: "com.example", Locale: domain.Locale{Country: "us", Language: "en"}}
	reviews := []domain.Review{{ID: "1", Text: "Great app", Rating: 5, Timestamp: base}}

	next := new(mockFetcher)
	next.On("FetchReviews", mock.Anything, app, 100).Return(reviews, nil).Twice()

	f := NewCachedFetcher(next, cache.NewMemory(clock), m, CacheSettings{TTL: time.Hour})

	first, err := f.FetchReviews(ctx, app, 100)
	require.NoError(t, err)
	second, err := f.FetchReviews(ctx, app, 100)
	require.NoError(t, err)

	assert.Equal(t, reviews, first)
	assert.Equal(t, reviews, second)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheRequests.WithLabelValues("reviews", "hit")))
	next.AssertNumberOfCalls(t, "FetchReviews", 1)

	clock.Advance(time.Hour)
	_, err = f.FetchReviews(ctx, app, 100)
	require.NoError(t, err)
	next.AssertNumberOfCalls(t, "FetchReviews", 2)
}

func TestCachedFetcher_DoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	app := domain.AppRef{ID: "com.missing", Locale: domain.Locale{Country: "us", Language: "en"}}
	next := new(mockFetcher)
	next.On("FetchReviews", mock.Anything, app, 10).Return(nil, &domain.AppNotFoundError{AppID: app.ID})

	f := NewCachedFetcher(next, cache.NewMemory(clockwork.NewFakeClock()), nil, CacheSettings{TTL: time.Hour})

	for i := 0; i < 2; i++ {
		_, err := f.FetchReviews(ctx, app, 10)
		assert.Error(t, err)
	}
	next.AssertNumberOfCalls(t, "FetchReviews", 2)
}

func TestCachedFetcher_KeysIncludeLocale(t *testing.T) {
	ctx := context.Background()
	us := domain.AppRef{ID: "com.example", Locale: domain.Locale{Country: "us"}}
	ke := domain.AppRef{ID: "com.example", Locale: domain.Locale{Country: "ke"}}
	next := new(mockFetcher)
	next.On("FetchDetails", mock.Anything, us).Return(domain.AppDetails{Title: "US"}, nil).Once()
	next.On("FetchDetails", mock.Anything, ke).Return(domain.AppDetails{Title: "KE"}, nil).Once()

	f := NewCachedFetcher(next, cache.NewMemory(clockwork.NewFakeClock()), nil, CacheSettings{TTL: time.Hour})

	a, err := f.FetchDetails(ctx, us)
	require.NoError(t, err)
	b, err := f.FetchDetails(ctx, ke)
	require.NoError(t, err)
	again, err := f.FetchDetails(ctx, us)
	require.NoError(t, err)

	assert.Equal(t, "US", a.Title)
	assert.Equal(t, "KE", b.Title)
	assert.Equal(t, "US", again.Title)
	next.AssertExpectations(t)
}

func TestCachedFetcher_DefaultLocaleSharesEntry(t *testing.T) {
	ctx := context.Background()
	resolved := domain.AppRef{ID: "com.example", Locale: domain.Locale{Country: "us", Language: "en"}}
	next := new(mockFetcher)
	next.On("FetchDetails", mock.Anything, resolved).Return(domain.AppDetails{Title: "US"}, nil).Once()
	next.On("FetchReviews", mock.Anything, resolved, 50).Return([]domain.Review{{ID: "1"}}, nil).Once()

	f := NewCachedFetcher(next, cache.NewMemory(clockwork.NewFakeClock()), nil, CacheSettings{
		TTL:           time.Hour,
		DefaultLocale: resolved.Locale,
	})

	_, err := f.FetchDetails(ctx, domain.AppRef{ID: "com.example"})
	require.NoError(t, err)
	details, err := f.FetchDetails(ctx, resolved)
	require.NoError(t, err)
	_, err = f.FetchReviews(ctx, domain.AppRef{ID: "com.example", Locale: domain.Locale{Country: "us"}}, 50)
	require.NoError(t, err)
	_, err = f.FetchReviews(ctx, resolved, 50)
	require.NoError(t, err)

	assert.Equal(t, "US", details.Title)
	next.AssertExpectations(t)
}
