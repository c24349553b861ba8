package analysis

import (
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/models/domain"
)

// Filter keeps reviews whose label is selected and whose UTC date lies within
// [From, To]. Bounds compare whole dates.
func Filter(scored []domain.ScoredReview, f domain.ReviewFilter) []domain.ScoredReview {
	if len(f.Labels) == 0 && f.From.IsZero() && f.To.IsZero() {
		return scored
	}

	labels := make(map[domain.Label]bool, len(f.Labels))
	for _, l := range f.Labels {
		labels[l] = true
	}
	from, to := Day(f.From), Day(f.To)

	out := make([]domain.ScoredReview, 0, len(scored))
	for _, r := range scored {
		if len(labels) > 0 && !labels[r.Label] {
			continue
		}
		day := Day(r.Timestamp)
		if !f.From.IsZero() && day.Before(from) {
			continue
		}
		if !f.To.IsZero() && day.After(to) {
			continue
		}
		out = append(out, r)
	}
	return out
}
