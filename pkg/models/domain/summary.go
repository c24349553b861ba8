package domain

import "time"

// TrendPoint is the mean polarity of all reviews posted on one calendar date.
type TrendPoint struct {
	Date            time.Time
	AveragePolarity float64
	Reviews         int
	Counts          map[Label]int
}

// AnalysisSummary is derived from a scored review list and recomputed whenever
// thresholds change. Percentages are on a 0..100 scale.
type AnalysisSummary struct {
	Total           int
	Counts          map[Label]int
	Percentages     map[Label]float64
	Trend           []TrendPoint
	RiskFlag        bool
	RiskPercentage  float64
	AveragePolarity float64
	AppRatingScore  float64
	KeywordFlagged  int
	Skipped         int
}

func (s AnalysisSummary) Count(l Label) int {
	return s.Counts[l]
}

func (s AnalysisSummary) Percentage(l Label) float64 {
	return s.Percentages[l]
}

// ComparisonDelta holds A minus B for every comparable metric.
type ComparisonDelta struct {
	// StoreScore is the difference of the store ratings on the 0-5 scale.
	StoreScore      float64
	AppRatingScore  float64
	AveragePolarity float64
	RiskPercentage  float64
	Total           int
	Percentages     map[Label]float64
}

// Analysis is the full result of one fetch, score and summarize run.
type Analysis struct {
	ID          string
	App         AppDetails
	Ref         AppRef
	Thresholds  Thresholds
	Filter      ReviewFilter
	Reviews     []ScoredReview
	Summary     AnalysisSummary
	GeneratedAt time.Time
}

type Comparison struct {
	Left  *Analysis
	Right *Analysis
	Delta ComparisonDelta
}
