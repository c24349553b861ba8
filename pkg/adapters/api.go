package adapters

import (
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/models/api"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/models/domain"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/analysis"
)

const (
	SampleReviews = 10
	TopTerms      = 20
)

func MapAppDomainToApi(d domain.AppDetails) api.App {
	return api.App{
		AppID:                d.AppID,
		Title:                d.Title,
		Developer:            d.Developer,
		Genre:                d.Genre,
		Installs:             d.Installs,
		Released:             d.Released,
		Score:                d.Score,
		StoreScorePercentage: analysis.StoreScorePercentage(d.Score),
		Ratings:              d.Ratings,
		Icon:                 d.Icon,
		URL:                  d.URL,
		UpdatedAt:            d.UpdatedAt,
	}
}

func MapAppSummaryDomainToApi(s domain.AppSummary) api.AppSummary {
	return api.AppSummary{
		AppID:     s.AppID,
		Title:     s.Title,
		Developer: s.Developer,
		Score:     s.Score,
		Icon:      s.Icon,
	}
}

func MapThresholdsDomainToApi(t domain.Thresholds) api.Thresholds {
	return api.Thresholds{
		PositiveCutoff:      t.PositiveCutoff,
		NegativeCutoff:      t.NegativeCutoff,
		RiskAlertPercentage: t.RiskAlertPercentage,
	}
}

func MapTimePeriodDomainToApi(p domain.TimePeriod) api.TimePeriod {
	return api.TimePeriod{
		Start:    p.Start,
		End:      p.End,
		Duration: p.Days,
	}
}

func MapSummaryDomainToApi(s domain.AnalysisSummary) api.Summary {
	res := api.Summary{
		Total:           s.Total,
		Counts:          make(map[string]int, len(domain.Labels())),
		Percentages:     make(map[string]float64, len(domain.Labels())),
		Trend:           make([]api.TrendPoint, 0, len(s.Trend)),
		RiskFlag:        s.RiskFlag,
		RiskPercentage:  s.RiskPercentage,
		AveragePolarity: s.AveragePolarity,
		AppRatingScore:  s.AppRatingScore,
		ScoreBand:       string(analysis.ScoreBand(s.AppRatingScore)),
		KeywordFlagged:  s.KeywordFlagged,
		Skipped:         s.Skipped,
	}
	for _, l := range domain.Labels() {
		res.Counts[string(l)] = s.Count(l)
		res.Percentages[string(l)] = s.Percentage(l)
	}
	for _, p := range s.Trend {
		res.Trend = append(res.Trend, api.TrendPoint{
			Date:            p.Date.Format("2006-01-02"),
			AveragePolarity: p.AveragePolarity,
			Reviews:         p.Reviews,
		})
	}
	return res
}

func MapScoredReviewDomainToApi(r domain.ScoredReview) api.Review {
	return api.Review{
		ID:              r.ID,
		Datetime:        r.Timestamp.UTC(),
		Content:         r.Text,
		Rating:          r.Rating,
		Sentiment:       string(r.Label),
		Polarity:        r.Polarity,
		KeywordFlag:     r.KeywordFlag,
		MatchedKeywords: r.MatchedKeywords,
	}
}

// MapAnalysisDomainToApi keeps only the first SampleReviews reviews.
func MapAnalysisDomainToApi(a *domain.Analysis) api.Analysis {
	res := api.Analysis{
		ID:            a.ID,
		App:           MapAppDomainToApi(a.App),
		Country:       a.Ref.Country,
		Thresholds:    MapThresholdsDomainToApi(a.Thresholds),
		Period:        MapTimePeriodDomainToApi(ReviewPeriod(a.Reviews)),
		Summary:       MapSummaryDomainToApi(a.Summary),
		TopTerms:      []api.Term{},
		SampleReviews: []api.Review{},
		GeneratedAt:   a.GeneratedAt,
	}
	for _, t := range analysis.TopTerms(analysis.CorpusText(a.Reviews, analysis.ScopeAll), TopTerms) {
		res.TopTerms = append(res.TopTerms, api.Term{Term: t.Term, Count: t.Count})
	}
	for i, r := range a.Reviews {
		if i == SampleReviews {
			break
		}
		res.SampleReviews = append(res.SampleReviews, MapScoredReviewDomainToApi(r))
	}
	return res
}

func MapComparisonDomainToApi(c *domain.Comparison) api.Comparison {
	delta := api.Delta{
		StoreScore:      c.Delta.StoreScore,
		AppRatingScore:  c.Delta.AppRatingScore,
		AveragePolarity: c.Delta.AveragePolarity,
		RiskPercentage:  c.Delta.RiskPercentage,
		Total:           c.Delta.Total,
		Percentages:     make(map[string]float64, len(c.Delta.Percentages)),
	}
	for l, v := range c.Delta.Percentages {
		delta.Percentages[string(l)] = v
	}
	return api.Comparison{
		Left:  MapAnalysisDomainToApi(c.Left),
		Right: MapAnalysisDomainToApi(c.Right),
		Delta: delta,
	}
}

func MapAnalysisRecordDomainToApi(r domain.AnalysisRecord) api.AnalysisRecord {
	return api.AnalysisRecord{
		ID:          r.ID,
		AppID:       r.App.ID,
		Country:     r.App.Country,
		Title:       r.Title,
		Thresholds:  MapThresholdsDomainToApi(r.Thresholds),
		Summary:     MapSummaryDomainToApi(r.Summary),
		GeneratedAt: r.GeneratedAt,
	}
}
