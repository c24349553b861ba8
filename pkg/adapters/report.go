package adapters

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/models/domain"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/analysis"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/report"
)

// ReviewPeriod spans the oldest to the newest review timestamp.
func ReviewPeriod(reviews []domain.ScoredReview) domain.TimePeriod {
	var p domain.TimePeriod
	for i, r := range reviews {
		ts := r.Timestamp.UTC()
		if i == 0 || ts.Before(p.Start) {
			p.Start = ts
		}
		if i == 0 || ts.After(p.End) {
			p.End = ts
		}
	}
	if len(reviews) > 0 {
		p.Days = int(analysis.Day(p.End).Sub(analysis.Day(p.Start))/(24*time.Hour)) + 1
	}
	return p
}

func MapAnalysisDomainToReport(a *domain.Analysis) *domain.Report {
	s := a.Summary
	res := &domain.Report{
		Title:    fmt.Sprintf("Review analysis: %s", titleOf(a)),
		Subtitle: fmt.Sprintf("%s by %s", a.Ref.ID, a.App.Developer),
		Period:   ReviewPeriod(a.Reviews),
		Footer:   report.Disclaimer,
	}
	if s.RiskFlag {
		res.Alert = report.RiskText(s, a.Thresholds)
	}

	res.Sections = append(res.Sections,
		domain.ReportSection{
			Title: "App Details",
			Details: []domain.ReportDetail{
				{Name: "Genre", Value: a.App.Genre},
				{Name: "Installs", Value: a.App.Installs},
				{Name: "Released", Value: a.App.Released},
				{Name: "Store score", Value: round(analysis.StoreScorePercentage(a.App.Score)), Unit: "%"},
				{Name: "Country", Value: a.Ref.Country},
			},
		},
		summarySection(s),
		domain.ReportSection{
			Title: "Findings",
			Details: []domain.ReportDetail{
				{Name: "App rating score", Value: round(s.AppRatingScore), Unit: "/100",
					Description: string(analysis.ScoreBand(s.AppRatingScore))},
				{Name: "Average polarity", Value: fmt.Sprintf("%.3f", s.AveragePolarity)},
				{Name: "Keyword flagged", Value: s.KeywordFlagged, Unit: "reviews",
					Description: "mention fraud related keywords"},
				{Name: "Risk", Value: yesNo(s.RiskFlag),
					Description: fmt.Sprintf("alert at %.1f%% negative", a.Thresholds.RiskAlertPercentage)},
			},
		},
	)

	terms := analysis.TopTerms(analysis.CorpusText(a.Reviews, analysis.ScopeNegative), 10)
	if len(terms) > 0 {
		sec := domain.ReportSection{Title: "Top Negative Terms"}
		for _, t := range terms {
			sec.Details = append(sec.Details, domain.ReportDetail{Name: t.Term, Value: t.Count, Unit: "mentions"})
		}
		res.Sections = append(res.Sections, sec)
	}
	return res
}

func MapComparisonDomainToReport(c *domain.Comparison) *domain.Report {
	left, right := c.Left, c.Right
	res := &domain.Report{
		Title:    fmt.Sprintf("Comparison: %s vs %s", titleOf(left), titleOf(right)),
		Subtitle: fmt.Sprintf("%s vs %s, deltas are left minus right", left.Ref.ID, right.Ref.ID),
		Footer:   report.Disclaimer,
	}

	var alerts []string
	for _, a := range []*domain.Analysis{left, right} {
		if a.Summary.RiskFlag {
			alerts = append(alerts, fmt.Sprintf("%s: %s", titleOf(a), report.RiskWarningShort))
		}
	}
	if len(alerts) > 0 {
		res.Alert = strings.Join(alerts, "; ")
	}

	metrics := domain.ReportSection{Title: "Metrics"}
	row := func(name string, l, r, d float64, unit string) {
		metrics.Details = append(metrics.Details, domain.ReportDetail{
			Name:        name,
			Value:       fmt.Sprintf("%.1f / %.1f", l, r),
			Unit:        unit,
			Description: fmt.Sprintf("delta %+.1f", d),
		})
	}
	ls, rs := left.Summary, right.Summary
	row("Store score", left.App.Score, right.App.Score, c.Delta.StoreScore, "/5")
	row("App rating score", ls.AppRatingScore, rs.AppRatingScore, c.Delta.AppRatingScore, "/100")
	for _, l := range domain.Labels() {
		row(string(l), ls.Percentage(l), rs.Percentage(l), c.Delta.Percentages[l], "%")
	}
	row("Risk", ls.RiskPercentage, rs.RiskPercentage, c.Delta.RiskPercentage, "%")
	metrics.Details = append(metrics.Details, domain.ReportDetail{
		Name:        "Reviews",
		Value:       fmt.Sprintf("%d / %d", ls.Total, rs.Total),
		Description: fmt.Sprintf("delta %+d", c.Delta.Total),
	})

	res.Sections = append(res.Sections, metrics)
	return res
}

func summarySection(s domain.AnalysisSummary) domain.ReportSection {
	sec := domain.ReportSection{
		Title: "Review Summary",
		Summary: map[string]interface{}{
			"Total reviews": s.Total,
			"Skipped":       s.Skipped,
		},
	}
	for _, l := range domain.Labels() {
		sec.Details = append(sec.Details, domain.ReportDetail{
			Name:  string(l),
			Value: fmt.Sprintf("%d (%.1f%%)", s.Count(l), s.Percentage(l)),
			Unit:  "reviews",
		})
	}
	return sec
}

func titleOf(a *domain.Analysis) string {
	if a.App.Title != "" {
		return a.App.Title
	}
	return a.Ref.ID
}

func round(v float64) float64 {
	return math.Round(v*10) / 10
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
