package reviews

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/metrics"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/models/domain"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/models/store"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/store/client"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type mockReviewsClient struct {
	mock.Mock
}

func (m *mockReviewsClient) Details(ctx context.Context, appID string, locale client.Locale) (*store.AppDetails, error) {
	args := m.Called(ctx, appID, locale)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.AppDetails), args.Error(1)
}

func (m *mockReviewsClient) Reviews(
	ctx context.Context,
	appID string,
	locale client.Locale,
	count int,
	token string,
) (*store.ReviewPage, error) {
	args := m.Called(ctx, appID, locale, count, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.ReviewPage), args.Error(1)
}

func (m *mockReviewsClient) Search(ctx context.Context, query string, locale client.Locale) ([]store.App, error) {
	args := m.Called(ctx, query, locale)
	return args.Get(0).([]store.App), args.Error(1)
}

var (
	base     = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	usLocale = client.Locale{Country: "us", Language: "en"}
)

func storeReviews(prefix string, n int, newest time.Time) []store.Review {
	out := make([]store.Review, n)
	for i := range out {
		out[i] = store.Review{
			ReviewID: fmt.Sprintf("%s-%d", prefix, i),
			Content:  "text",
			Score:    4,
			At:       newest.Add(-time.Duration(i) * time.Hour),
		}
	}
	return out
}

func newTestFetcher(c client.ReviewsClient, pageSize int) (Fetcher, *metrics.Metrics) {
	m := metrics.New(prometheus.NewRegistry())
	return NewFetcher(c, m, Settings{
		PageSize:      pageSize,
		DefaultLocale: domain.Locale{Country: "us", Language: "en"},
	}), m
}

func TestFetcher_FetchReviews_Paginates(t *testing.T) {
	c := new(mockReviewsClient)
	c.On("Reviews", mock.Anything, "com.example", usLocale, 2, "").
		Return(&store.ReviewPage{Reviews: storeReviews("p1", 2, base), NextToken: "t1"}, nil)
	c.On("Reviews", mock.Anything, "com.example", usLocale, 2, "t1").
		Return(&store.ReviewPage{Reviews: storeReviews("p2", 2, base.Add(-2*time.Hour)), NextToken: "t2"}, nil)
	c.On("Reviews", mock.Anything, "com.example", usLocale, 1, "t2").
		Return(&store.ReviewPage{Reviews: storeReviews("p3", 1, base.Add(-4*time.Hour)), NextToken: "t3"}, nil)

	f, m := newTestFetcher(c, 2)
	got, err := f.FetchReviews(context.Background(), domain.AppRef{ID: "com.example"}, 5)

	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, "p1-0", got[0].ID)
	assert.Equal(t, "p3-0", got[4].ID)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].Timestamp.After(got[i-1].Timestamp), "newest first")
	}
	assert.Equal(t, 5.0, testutil.ToFloat64(m.ReviewsFetched))
	c.AssertExpectations(t)
}

func TestFetcher_FetchReviews_StopsWhenSourceIsExhausted(t *testing.T) {
	c := new(mockReviewsClient)
	c.On("Reviews", mock.Anything, "com.example", client.Locale{Country: "ke", Language: "en"}, 200, "").
		Return(&store.ReviewPage{Reviews: storeReviews("p1", 3, base)}, nil).Once()

	f, _ := newTestFetcher(c, 0)
	got, err := f.FetchReviews(context.Background(), domain.AppRef{ID: "com.example", Locale: domain.Locale{Country: "ke"}}, 500)

	require.NoError(t, err)
	assert.Len(t, got, 3)
	c.AssertExpectations(t)
}

func TestFetcher_FetchReviews_ZeroCount(t *testing.T) {
	c := new(mockReviewsClient)
	f, _ := newTestFetcher(c, 0)

	got, err := f.FetchReviews(context.Background(), domain.AppRef{ID: "x"}, 0)

	require.NoError(t, err)
	assert.Empty(t, got)
	c.AssertNotCalled(t, "Reviews", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFetcher_ErrorMapping(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(t *testing.T, err error)
	}{
		{
			name: "not found",
			err:  fmt.Errorf("failed to fetch reviews: %w", client.ErrNotFound),
			check: func(t *testing.T, err error) {
				var nf *domain.AppNotFoundError
				require.True(t, errors.As(err, &nf))
				assert.Equal(t, "com.missing", nf.AppID)
			},
		},
		{
			name: "timeout",
			err:  fmt.Errorf("failed to fetch reviews: %w", context.DeadlineExceeded),
			check: func(t *testing.T, err error) {
				var to *domain.FetchTimeoutError
				require.True(t, errors.As(err, &to))
				assert.True(t, errors.Is(err, context.DeadlineExceeded))
			},
		},
		{
			name: "other",
			err:  &client.StatusError{Code: 400},
			check: func(t *testing.T, err error) {
				var se *client.StatusError
				assert.True(t, errors.As(err, &se))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := new(mockReviewsClient)
			c.On("Reviews", mock.Anything, "com.missing", usLocale, 10, "").Return(nil, tt.err)

			f, _ := newTestFetcher(c, 0)
			_, err := f.FetchReviews(context.Background(), domain.AppRef{ID: "com.missing"}, 10)

			tt.check(t, err)
		})
	}
}

func TestFetcher_RateLimitBeyondDeadlineIsTimeout(t *testing.T) {
	c := new(mockReviewsClient)
	f := NewFetcher(c, nil, Settings{
		DefaultLocale: domain.Locale{Country: "us", Language: "en"},
		Limiter:       rate.NewLimiter(rate.Every(time.Hour), 1),
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	c.On("Details", mock.Anything, "com.slow", usLocale).Return(&store.AppDetails{App: store.App{AppID: "com.slow"}}, nil).Once()
	_, err := f.FetchDetails(ctx, domain.AppRef{ID: "com.slow"})
	require.NoError(t, err)

	// The burst is spent and the next token is an hour away.
	_, err = f.FetchReviews(ctx, domain.AppRef{ID: "com.slow"}, 10)

	var timeout *domain.FetchTimeoutError
	require.True(t, errors.As(err, &timeout))
	assert.Equal(t, "com.slow", timeout.AppID)
	c.AssertNotCalled(t, "Reviews", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFetcher_FetchDetails(t *testing.T) {
	c := new(mockReviewsClient)
	c.On("Details", mock.Anything, "com.example", usLocale).Return(&store.AppDetails{
		App:   store.App{AppID: "com.example", Title: "Example", Score: 3.9},
		Genre: "Finance",
	}, nil)

	f, _ := newTestFetcher(c, 0)
	got, err := f.FetchDetails(context.Background(), domain.AppRef{ID: "com.example"})

	require.NoError(t, err)
	assert.Equal(t, domain.AppDetails{AppID: "com.example", Title: "Example", Score: 3.9, Genre: "Finance"}, got)
}

func TestFetcher_Search(t *testing.T) {
	c := new(mockReviewsClient)
	c.On("Search", mock.Anything, "loans", client.Locale{Country: "gb", Language: "en"}).
		Return([]store.App{{AppID: "a.b", Title: "Loans", Developer: "Dev"}}, nil)

	f, _ := newTestFetcher(c, 0)
	got, err := f.Search(context.Background(), "loans", domain.Locale{Country: "gb"})

	require.NoError(t, err)
	assert.Equal(t, []domain.AppSummary{{AppID: "a.b", Title: "Loans", Developer: "Dev"}}, got)
}
