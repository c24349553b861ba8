package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/models/store"
	"github.com/rs/zerolog"
)

// ErrNotFound is returned when the review source does not know the requested app.
var ErrNotFound = errors.New("not found")

// StatusError is returned for non-retryable or exhausted non-2xx responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

type Locale struct {
	Country  string
	Language string
}

// ReviewsClient reads app listings and reviews from the review source API.
type ReviewsClient interface {
	Details(ctx context.Context, appID string, locale Locale) (*store.AppDetails, error)
	// Reviews returns one page of reviews, newest first. An empty token
	// requests the first page.
	Reviews(ctx context.Context, appID string, locale Locale, count int, token string) (*store.ReviewPage, error)
	Search(ctx context.Context, query string, locale Locale) ([]store.App, error)
}

type Settings struct {
	BaseURL      string
	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
	MaxBackoff   time.Duration
}

type httpReviewsClient struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	backoff    time.Duration
	maxBackoff time.Duration
}

func NewReviewsClient(settings Settings) ReviewsClient {
	if settings.MaxRetries < 1 {
		settings.MaxRetries = 1
	}
	if settings.RetryBackoff <= 0 {
		settings.RetryBackoff = 500 * time.Millisecond
	}
	if settings.MaxBackoff < settings.RetryBackoff {
		settings.MaxBackoff = 8 * settings.RetryBackoff
	}
	return &httpReviewsClient{
		baseURL:    strings.TrimRight(settings.BaseURL, "/"),
		httpClient: &http.Client{Timeout: settings.Timeout},
		maxRetries: settings.MaxRetries,
		backoff:    settings.RetryBackoff,
		maxBackoff: settings.MaxBackoff,
	}
}

func (c *httpReviewsClient) Details(ctx context.Context, appID string, locale Locale) (*store.AppDetails, error) {
	var details store.AppDetails
	endpoint := fmt.Sprintf("%s/apps/%s?%s", c.baseURL, url.PathEscape(appID), localeQuery(locale).Encode())
	if err := c.getJSON(ctx, endpoint, &details); err != nil {
		return nil, fmt.Errorf("failed to fetch app details: %w", err)
	}
	if details.AppID == "" {
		details.AppID = appID
	}
	return &details, nil
}

func (c *httpReviewsClient) Reviews(
	ctx context.Context,
	appID string,
	locale Locale,
	count int,
	token string,
) (*store.ReviewPage, error) {
	q := localeQuery(locale)
	q.Set("count", strconv.Itoa(count))
	q.Set("sort", "newest")
	if token != "" {
		q.Set("token", token)
	}

	var page store.ReviewPage
	endpoint := fmt.Sprintf("%s/apps/%s/reviews?%s", c.baseURL, url.PathEscape(appID), q.Encode())
	if err := c.getJSON(ctx, endpoint, &page); err != nil {
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}
	return &page, nil
}

func (c *httpReviewsClient) Search(ctx context.Context, query string, locale Locale) ([]store.App, error) {
	q := localeQuery(locale)
	q.Set("q", query)

	var result store.SearchResult
	if err := c.getJSON(ctx, fmt.Sprintf("%s/search?%s", c.baseURL, q.Encode()), &result); err != nil {
		return nil, fmt.Errorf("failed to search apps: %w", err)
	}
	return result.Results, nil
}

func (c *httpReviewsClient) getJSON(ctx context.Context, endpoint string, out any) error {
	resp, err := c.doRequest(ctx, endpoint)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// doRequest performs a GET with retries on transport errors, 429 and 5xx.
// Timeouts are not retried.
func (c *httpReviewsClient) doRequest(ctx context.Context, endpoint string) (*http.Response, error) {
	logger := zerolog.Ctx(ctx)
	backoff := c.backoff
	var lastErr error

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff = min(backoff*2, c.maxBackoff)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if IsTimeout(err) || ctx.Err() != nil {
				return nil, err
			}
			lastErr = err
			logger.Warn().Err(err).Int("attempt", attempt).Msg("review source request failed, retrying")
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			return resp, nil
		case resp.StatusCode == http.StatusNotFound:
			resp.Body.Close()
			return nil, ErrNotFound
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			lastErr = readStatusError(resp)
			logger.Warn().
				Int("status", resp.StatusCode).
				Int("attempt", attempt).
				Dur("backoff", backoff).
				Msg("review source unavailable, retrying")
		default:
			return nil, readStatusError(resp)
		}
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// IsTimeout reports whether err was caused by a client timeout or an expired
// context deadline.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}

func readStatusError(resp *http.Response) error {
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}

func localeQuery(locale Locale) url.Values {
	q := url.Values{}
	if locale.Language != "" {
		q.Set("lang", locale.Language)
	}
	if locale.Country != "" {
		q.Set("country", locale.Country)
	}
	return q
}
