package analysis

import (
	"testing"

	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	reviews := []domain.ScoredReview{
		scored("1", domain.LabelPositive, 0.5, day1),
		scored("2", domain.LabelNegative, -0.5, day1.AddDate(0, 0, 1)),
		scored("3", domain.LabelNeutral, 0, day1.AddDate(0, 0, 2)),
		scored("4", domain.LabelNegative, -0.2, day1.AddDate(0, 0, 3)),
	}

	ids := func(rs []domain.ScoredReview) []string {
		out := []string{}
		for _, r := range rs {
			out = append(out, r.ID)
		}
		return out
	}

	tests := []struct {
		name   string
		filter domain.ReviewFilter
		want   []string
	}{
		{name: "no filter", filter: domain.ReviewFilter{}, want: []string{"1", "2", "3", "4"}},
		{name: "labels", filter: domain.ReviewFilter{Labels: []domain.Label{domain.LabelNegative}}, want: []string{"2", "4"}},
		{name: "inclusive date range", filter: domain.ReviewFilter{From: day1.AddDate(0, 0, 1), To: day1.AddDate(0, 0, 2)}, want: []string{"2", "3"}},
		{name: "open upper bound", filter: domain.ReviewFilter{From: day1.AddDate(0, 0, 2)}, want: []string{"3", "4"}},
		{
			name: "labels and dates",
			filter: domain.ReviewFilter{
				Labels: []domain.Label{domain.LabelNegative, domain.LabelPositive},
				To:     day1.AddDate(0, 0, 1),
			},
			want: []string{"1", "2"},
		},
		{name: "empty result", filter: domain.ReviewFilter{Labels: []domain.Label{domain.LabelNeutral}, To: day1}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(reviews, tt.filter)))
		})
	}
}
