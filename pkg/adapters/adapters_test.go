package adapters

import (
	"fmt"
	"testing"
	"time"

	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/models/domain"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/models/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scored(id string, label domain.Label, at time.Time, text string) domain.ScoredReview {
	return domain.ScoredReview{
		Review: domain.Review{ID: id, Text: text, Rating: 3, Timestamp: at},
		Label:  label,
	}
}

func testAnalysis() *domain.Analysis {
	day := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	var reviews []domain.ScoredReview
	for i := 0; i < 12; i++ {
		reviews = append(reviews, scored(fmt.Sprintf("r%d", i), domain.LabelNegative, day.AddDate(0, 0, -i/4), "scam scam withdrawal"))
	}
	return &domain.Analysis{
		ID:         "a1",
		App:        domain.AppDetails{AppID: "com.example", Title: "Example", Developer: "Dev", Score: 4.2},
		Ref:        domain.AppRef{ID: "com.example", Locale: domain.Locale{Country: "us", Language: "en"}},
		Thresholds: domain.DefaultThresholds(),
		Reviews:    reviews,
		Summary: domain.AnalysisSummary{
			Total:          12,
			Counts:         map[domain.Label]int{domain.LabelNegative: 12},
			Percentages:    map[domain.Label]float64{domain.LabelNegative: 100},
			Trend:          []domain.TrendPoint{{Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), AveragePolarity: -0.5, Reviews: 4}},
			RiskFlag:       true,
			RiskPercentage: 100,
			AppRatingScore: 0,
		},
		GeneratedAt: day,
	}
}

func TestMapReviewStoreToDomain(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	r := MapReviewStoreToDomain(store.Review{ReviewID: "x", UserName: "u", Content: "hi", Score: 5, ThumbsUp: 2, AppVersion: "1.0", At: at})

	assert.Equal(t, domain.Review{ID: "x", Author: "u", Text: "hi", Rating: 5, ThumbsUp: 2, AppVersion: "1.0", Timestamp: at}, r)
}

func TestReviewPeriod(t *testing.T) {
	a := testAnalysis()

	p := ReviewPeriod(a.Reviews)

	assert.Equal(t, time.Date(2025, 2, 27, 10, 0, 0, 0, time.UTC), p.Start)
	assert.Equal(t, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), p.End)
	assert.Equal(t, 3, p.Days)
	assert.Equal(t, domain.TimePeriod{}, ReviewPeriod(nil))
}

func TestMapAnalysisDomainToApi(t *testing.T) {
	res := MapAnalysisDomainToApi(testAnalysis())

	assert.Equal(t, "a1", res.ID)
	assert.Equal(t, "us", res.Country)
	assert.Equal(t, 84.0, res.App.StoreScorePercentage)
	assert.Len(t, res.SampleReviews, SampleReviews)
	assert.Equal(t, "Negative", res.SampleReviews[0].Sentiment)
	assert.Equal(t, 12, res.Summary.Counts["Negative"])
	assert.Equal(t, 0, res.Summary.Counts["Positive"])
	assert.Equal(t, "risk", res.Summary.ScoreBand)
	require.Len(t, res.Summary.Trend, 1)
	assert.Equal(t, "2025-03-01", res.Summary.Trend[0].Date)
	require.NotEmpty(t, res.TopTerms)
	assert.Equal(t, "scam", res.TopTerms[0].Term)
	assert.Equal(t, 24, res.TopTerms[0].Count)
}

func TestMapAnalysisDomainToReport(t *testing.T) {
	r := MapAnalysisDomainToReport(testAnalysis())

	assert.Equal(t, "Review analysis: Example", r.Title)
	assert.NotEmpty(t, r.Alert)
	assert.NotEmpty(t, r.Footer)
	titles := make([]string, 0, len(r.Sections))
	for _, s := range r.Sections {
		titles = append(titles, s.Title)
	}
	assert.Equal(t, []string{"App Details", "Review Summary", "Findings", "Top Negative Terms"}, titles)
}

func TestMapComparisonDomainToReport(t *testing.T) {
	left := testAnalysis()
	right := testAnalysis()
	right.Ref.ID = "com.other"
	right.App.Title = "Other"
	right.Summary.RiskFlag = false
	left.App.Score = 4.5
	right.App.Score = 3.0
	c := &domain.Comparison{
		Left:  left,
		Right: right,
		Delta: domain.ComparisonDelta{StoreScore: 1.5, Percentages: map[domain.Label]float64{}},
	}

	r := MapComparisonDomainToReport(c)
	web := MapComparisonDomainToApi(c)

	assert.Equal(t, "Comparison: Example vs Other", r.Title)
	assert.Contains(t, r.Alert, "Example")
	assert.NotContains(t, r.Alert, "Other")
	require.Len(t, r.Sections, 1)
	require.Len(t, r.Sections[0].Details, 7)
	score := r.Sections[0].Details[0]
	assert.Equal(t, "Store score", score.Name)
	assert.Equal(t, "4.5 / 3.0", score.Value)
	assert.Equal(t, "delta +1.5", score.Description)
	assert.Equal(t, 1.5, web.Delta.StoreScore)
}
