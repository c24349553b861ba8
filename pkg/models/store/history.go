package store

import "time"

// AnalysisRun is one persisted analysis summary row.
type AnalysisRun struct {
	ID                  string
	AppID               string
	Country             string
	Language            string
	Title               string
	GeneratedAt         time.Time
	PositiveCutoff      float64
	NegativeCutoff      float64
	RiskAlertPercentage float64
	Total               int
	Skipped             int
	KeywordFlagged      int
	PositivePct         float64
	NeutralPct          float64
	NegativePct         float64
	AveragePolarity     float64
	AppRatingScore      float64
	RiskFlag            bool
}
