package history

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/models/store"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/store/duckdb"
)

// Store persists analysis summaries so repeated runs of an app can be compared over time.
type Store interface {
	Add(ctx context.Context, run store.AnalysisRun) error
	// AddAll inserts runs atomically.
	AddAll(ctx context.Context, runs ...store.AnalysisRun) error
	// List returns the most recent runs of appID, newest first.
	List(ctx context.Context, appID string, limit int) ([]store.AnalysisRun, error)
}

type historyStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &historyStore{
		db: db,
	}, nil
}

const insertRun = `
		INSERT INTO analysis_runs (
			id, app_id, country, language, title, generated_at,
			positive_cutoff, negative_cutoff, risk_alert_percentage,
			total, skipped, keyword_flagged,
			positive_pct, neutral_pct, negative_pct,
			average_polarity, app_rating_score, risk_flag
		) VALUES (
			?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
		)`

func (s *historyStore) Add(ctx context.Context, run store.AnalysisRun) error {
	args := []any{
		run.ID, run.AppID, run.Country, run.Language, run.Title, run.GeneratedAt,
		run.PositiveCutoff, run.NegativeCutoff, run.RiskAlertPercentage,
		run.Total, run.Skipped, run.KeywordFlagged,
		run.PositivePct, run.NeutralPct, run.NegativePct,
		run.AveragePolarity, run.AppRatingScore, run.RiskFlag,
	}

	var err error
	if tx := duckdb.GetTransaction(ctx); tx != nil {
		_, err = tx.ExecContext(ctx, insertRun, args...)
	} else {
		_, err = s.db.ExecContext(ctx, insertRun, args...)
	}
	if err != nil {
		return fmt.Errorf("insert analysis run: %w", err)
	}
	return nil
}

func (s *historyStore) AddAll(ctx context.Context, runs ...store.AnalysisRun) error {
	return duckdb.InTransaction(ctx, s.db, func(ctx context.Context) error {
		for _, run := range runs {
			if err := s.Add(ctx, run); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *historyStore) List(ctx context.Context, appID string, limit int) ([]store.AnalysisRun, error) {
	query := `
		SELECT id, app_id, country, language, title, generated_at,
			positive_cutoff, negative_cutoff, risk_alert_percentage,
			total, skipped, keyword_flagged,
			positive_pct, neutral_pct, negative_pct,
			average_polarity, app_rating_score, risk_flag
		FROM analysis_runs
		WHERE app_id = ?
		ORDER BY generated_at DESC
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, appID, limit)
	if err != nil {
		return nil, fmt.Errorf("query analysis runs: %w", err)
	}
	defer rows.Close()

	runs := []store.AnalysisRun{}
	for rows.Next() {
		var r store.AnalysisRun
		err := rows.Scan(
			&r.ID, &r.AppID, &r.Country, &r.Language, &r.Title, &r.GeneratedAt,
			&r.PositiveCutoff, &r.NegativeCutoff, &r.RiskAlertPercentage,
			&r.Total, &r.Skipped, &r.KeywordFlagged,
			&r.PositivePct, &r.NeutralPct, &r.NegativePct,
			&r.AveragePolarity, &r.AppRatingScore, &r.RiskFlag,
		)
		if err != nil {
			return nil, fmt.Errorf("scan analysis run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate analysis runs: %w", err)
	}
	return runs, nil
}
