package history

import (
	"context"
	"fmt"

	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/adapters"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/models/domain"
	historystore "github.com/Ian-Lusule/Fraud-App-Analyser/pkg/store/duckdb/history"
)

const (
	DefaultLimit = 20
	MaxLimit     = 500
)

// Service records finished analyses and lists past runs of an app.
type Service interface {
	Record(ctx context.Context, a *domain.Analysis) error
	// RecordComparison stores both sides of a comparison in one transaction.
	RecordComparison(ctx context.Context, c *domain.Comparison) error
	List(ctx context.Context, appID string, limit int) ([]domain.AnalysisRecord, error)
}

type service struct {
	store historystore.Store
}

func NewService(store historystore.Store) Service {
	return &service{store: store}
}

func (s *service) Record(ctx context.Context, a *domain.Analysis) error {
	if err := s.store.Add(ctx, adapters.MapAnalysisDomainToRunStore(a)); err != nil {
		return fmt.Errorf("failed to record analysis %s: %w", a.ID, err)
	}
	return nil
}

func (s *service) RecordComparison(ctx context.Context, c *domain.Comparison) error {
	left := adapters.MapAnalysisDomainToRunStore(c.Left)
	right := adapters.MapAnalysisDomainToRunStore(c.Right)
	if err := s.store.AddAll(ctx, left, right); err != nil {
		return fmt.Errorf("failed to record comparison %s vs %s: %w", c.Left.ID, c.Right.ID, err)
	}
	return nil
}

func (s *service) List(ctx context.Context, appID string, limit int) ([]domain.AnalysisRecord, error) {
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 0 || limit > MaxLimit {
		return nil, &domain.InvalidConfigurationError{
			Field:  "limit",
			Value:  limit,
			Reason: fmt.Sprintf("must be between 1 and %d", MaxLimit),
		}
	}

	runs, err := s.store.List(ctx, appID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses of %s: %w", appID, err)
	}

	records := make([]domain.AnalysisRecord, 0, len(runs))
	for _, r := range runs {
		records = append(records, adapters.MapRunStoreToDomain(r))
	}
	return records, nil
}
