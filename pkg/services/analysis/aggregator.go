package analysis

import (
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/models/domain"
)

// Summarize reduces scored reviews to distribution, trend and risk figures.
// It is a pure function of its inputs.
func Summarize(scored []domain.ScoredReview, thresholds domain.Thresholds) domain.AnalysisSummary {
	summary := domain.AnalysisSummary{
		Total:       len(scored),
		Counts:      make(map[domain.Label]int, 3),
		Percentages: make(map[domain.Label]float64, 3),
		Trend:       Trend(scored),
	}
	for _, l := range domain.Labels() {
		summary.Counts[l] = 0
		summary.Percentages[l] = 0
	}
	if summary.Total == 0 {
		return summary
	}

	var polaritySum float64
	for _, r := range scored {
		summary.Counts[r.Label]++
		polaritySum += r.Polarity
		if r.KeywordFlag {
			summary.KeywordFlagged++
		}
	}

	total := float64(summary.Total)
	for _, l := range domain.Labels() {
		summary.Percentages[l] = float64(summary.Counts[l]) / total * 100
	}
	summary.AveragePolarity = polaritySum / total
	summary.RiskPercentage = summary.Percentages[domain.LabelNegative]
	summary.RiskFlag = summary.RiskPercentage >= thresholds.RiskAlertPercentage
	summary.AppRatingScore = AppRatingScore(
		summary.Percentages[domain.LabelPositive],
		summary.Percentages[domain.LabelNeutral],
		summary.Percentages[domain.LabelNegative],
	)
	return summary
}
