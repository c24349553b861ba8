package analysis

import (
	"sort"
	"time"

	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/models/domain"
)

// Trend groups reviews by UTC calendar date and returns the mean polarity of
// each date, oldest first. Dates without reviews are omitted.
func Trend(scored []domain.ScoredReview) []domain.TrendPoint {
	type bucket struct {
		sum    float64
		n      int
		counts map[domain.Label]int
	}
	buckets := make(map[time.Time]*bucket)
	for _, r := range scored {
		day := Day(r.Timestamp)
		b, ok := buckets[day]
		if !ok {
			b = &bucket{counts: make(map[domain.Label]int, 3)}
			buckets[day] = b
		}
		b.sum += r.Polarity
		b.n++
		b.counts[r.Label]++
	}

	points := make([]domain.TrendPoint, 0, len(buckets))
	for day, b := range buckets {
		points = append(points, domain.TrendPoint{
			Date:            day,
			AveragePolarity: b.sum / float64(b.n),
			Reviews:         b.n,
			Counts:          b.counts,
		})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
