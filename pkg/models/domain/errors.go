package domain

import "fmt"

// InvalidReviewError marks a single review that cannot be scored. Callers skip
// the review and keep processing the batch.
type InvalidReviewError struct {
	ReviewID string
	Reason   string
}

func (e *InvalidReviewError) Error() string {
	return fmt.Sprintf("invalid review %q: %s", e.ReviewID, e.Reason)
}

type InvalidConfigurationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration %s=%v: %s", e.Field, e.Value, e.Reason)
}

type AppNotFoundError struct {
	AppID string
}

func (e *AppNotFoundError) Error() string {
	return fmt.Sprintf("app %q not found", e.AppID)
}

type FetchTimeoutError struct {
	AppID string
	Err   error
}

func (e *FetchTimeoutError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("fetching %q timed out", e.AppID)
	}
	return fmt.Sprintf("fetching %q timed out: %v", e.AppID, e.Err)
}

func (e *FetchTimeoutError) Unwrap() error {
	return e.Err
}
