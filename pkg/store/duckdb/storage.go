package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const AnalysisRunsSchema = `
	CREATE TABLE IF NOT EXISTS analysis_runs (
		id VARCHAR NOT NULL PRIMARY KEY,
		app_id VARCHAR NOT NULL,
		country VARCHAR,
		language VARCHAR,
		title VARCHAR,
		generated_at TIMESTAMP NOT NULL,
		positive_cutoff DOUBLE,
		negative_cutoff DOUBLE,
		risk_alert_percentage DOUBLE,
		total INTEGER,
		skipped INTEGER,
		keyword_flagged INTEGER,
		positive_pct DOUBLE,
		neutral_pct DOUBLE,
		negative_pct DOUBLE,
		average_polarity DOUBLE,
		app_rating_score DOUBLE,
		risk_flag BOOLEAN
	);
`

const AnalysisRunsIndex = `
	CREATE INDEX IF NOT EXISTS analysis_runs_app ON analysis_runs (app_id, generated_at);
`

var bootQueries = []string{
	AnalysisRunsSchema,
	AnalysisRunsIndex,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
