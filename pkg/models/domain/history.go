package domain

import "time"

// AnalysisRecord is the stored outcome of a past analysis, without reviews or trend.
type AnalysisRecord struct {
	ID          string
	App         AppRef
	Title       string
	GeneratedAt time.Time
	Thresholds  Thresholds
	Summary     AnalysisSummary
}
