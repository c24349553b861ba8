package analysis

import "github.com/Ian-Lusule/Fraud-App-Analyser/pkg/models/domain"

// Compare returns a minus b for every metric. Compare(b, a) is its negation.
func Compare(a, b domain.AnalysisSummary) domain.ComparisonDelta {
	delta := domain.ComparisonDelta{
		AppRatingScore:  a.AppRatingScore - b.AppRatingScore,
		AveragePolarity: a.AveragePolarity - b.AveragePolarity,
		RiskPercentage:  a.RiskPercentage - b.RiskPercentage,
		Total:           a.Total - b.Total,
		Percentages:     make(map[domain.Label]float64, 3),
	}
	for _, l := range domain.Labels() {
		delta.Percentages[l] = a.Percentages[l] - b.Percentages[l]
	}
	return delta
}

// CompareAnalyses extends Compare with the store rating of each app.
func CompareAnalyses(a, b *domain.Analysis) domain.ComparisonDelta {
	delta := Compare(a.Summary, b.Summary)
	delta.StoreScore = a.App.Score - b.App.Score
	return delta
}
