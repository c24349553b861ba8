package adapters

import (
	"math"

	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/models/domain"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/models/store"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/store/client"
)

func MapReviewStoreToDomain(r store.Review) domain.Review {
	return domain.Review{
		ID:         r.ReviewID,
		Text:       r.Content,
		Rating:     r.Score,
		Timestamp:  r.At,
		Author:     r.UserName,
		ThumbsUp:   r.ThumbsUp,
		AppVersion: r.AppVersion,
	}
}

func MapAppDetailsStoreToDomain(d store.AppDetails) domain.AppDetails {
	return domain.AppDetails{
		AppID:     d.AppID,
		Title:     d.Title,
		Developer: d.Developer,
		Genre:     d.Genre,
		Installs:  d.Installs,
		Released:  d.Released,
		Score:     d.Score,
		Ratings:   d.Ratings,
		Icon:      d.Icon,
		URL:       d.URL,
		UpdatedAt: d.UpdatedAt,
	}
}

func MapAppStoreToDomain(a store.App) domain.AppSummary {
	return domain.AppSummary{
		AppID:     a.AppID,
		Title:     a.Title,
		Developer: a.Developer,
		Score:     a.Score,
		Icon:      a.Icon,
	}
}

func MapLocaleDomainToClient(l domain.Locale) client.Locale {
	return client.Locale{Country: l.Country, Language: l.Language}
}

func MapAnalysisDomainToRunStore(a *domain.Analysis) store.AnalysisRun {
	s := a.Summary
	return store.AnalysisRun{
		ID:                  a.ID,
		AppID:               a.Ref.ID,
		Country:             a.Ref.Country,
		Language:            a.Ref.Language,
		Title:               a.App.Title,
		GeneratedAt:         a.GeneratedAt,
		PositiveCutoff:      a.Thresholds.PositiveCutoff,
		NegativeCutoff:      a.Thresholds.NegativeCutoff,
		RiskAlertPercentage: a.Thresholds.RiskAlertPercentage,
		Total:               s.Total,
		Skipped:             s.Skipped,
		KeywordFlagged:      s.KeywordFlagged,
		PositivePct:         s.Percentage(domain.LabelPositive),
		NeutralPct:          s.Percentage(domain.LabelNeutral),
		NegativePct:         s.Percentage(domain.LabelNegative),
		AveragePolarity:     s.AveragePolarity,
		AppRatingScore:      s.AppRatingScore,
		RiskFlag:            s.RiskFlag,
	}
}

// MapRunStoreToDomain restores percentages and derives counts from them.
func MapRunStoreToDomain(r store.AnalysisRun) domain.AnalysisRecord {
	pct := map[domain.Label]float64{
		domain.LabelPositive: r.PositivePct,
		domain.LabelNeutral:  r.NeutralPct,
		domain.LabelNegative: r.NegativePct,
	}
	counts := make(map[domain.Label]int, len(pct))
	for l, p := range pct {
		counts[l] = int(math.Round(p * float64(r.Total) / 100))
	}
	return domain.AnalysisRecord{
		ID:          r.ID,
		App:         domain.AppRef{ID: r.AppID, Locale: domain.Locale{Country: r.Country, Language: r.Language}},
		Title:       r.Title,
		GeneratedAt: r.GeneratedAt,
		Thresholds: domain.Thresholds{
			PositiveCutoff:      r.PositiveCutoff,
			NegativeCutoff:      r.NegativeCutoff,
			RiskAlertPercentage: r.RiskAlertPercentage,
		},
		Summary: domain.AnalysisSummary{
			Total:           r.Total,
			Counts:          counts,
			Percentages:     pct,
			RiskFlag:        r.RiskFlag,
			RiskPercentage:  r.NegativePct,
			AveragePolarity: r.AveragePolarity,
			AppRatingScore:  r.AppRatingScore,
			KeywordFlagged:  r.KeywordFlagged,
			Skipped:         r.Skipped,
		},
	}
}
