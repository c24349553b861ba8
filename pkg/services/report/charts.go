package report

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/models/domain"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNotEnoughData is returned when a chart would have nothing meaningful to plot.
var ErrNotEnoughData = errors.New("not enough data to chart")

var (
	leftColor  = drawing.ColorFromHex("2980b9")
	rightColor = drawing.ColorFromHex("e67e22")
)

// TrendChart renders mean polarity per day as a PNG line chart. At least two
// dates are required.
func TrendChart(points []domain.TrendPoint) ([]byte, error) {
	if len(points) < 2 {
		return nil, ErrNotEnoughData
	}

	xs := make([]time.Time, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.Date
		ys[i] = p.AveragePolarity
	}

	graph := chart.Chart{
		Title:  "Sentiment trend",
		Width:  800,
		Height: 360,
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: chart.TimeValueFormatterWithFormat(time.DateOnly),
		},
		YAxis: chart.YAxis{
			Name:  "Average polarity",
			Range: &chart.ContinuousRange{Min: -1, Max: 1},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Average polarity",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: leftColor,
					StrokeWidth: 2,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render trend chart: %w", err)
	}
	return buf.Bytes(), nil
}

// ComparisonChart renders side by side bars of the headline percentages of two
// apps as a PNG.
func ComparisonChart(left, right *domain.Analysis) ([]byte, error) {
	metrics := []struct {
		name string
		get  func(domain.AnalysisSummary) float64
	}{
		{"Positive %", func(s domain.AnalysisSummary) float64 { return s.Percentage(domain.LabelPositive) }},
		{"Negative %", func(s domain.AnalysisSummary) float64 { return s.Percentage(domain.LabelNegative) }},
		{"Neutral %", func(s domain.AnalysisSummary) float64 { return s.Percentage(domain.LabelNeutral) }},
		{"App rating", func(s domain.AnalysisSummary) float64 { return s.AppRatingScore }},
	}

	var bars []chart.Value
	nonZero := false
	for _, m := range metrics {
		l, r := m.get(left.Summary), m.get(right.Summary)
		nonZero = nonZero || l != 0 || r != 0
		bars = append(bars,
			chart.Value{Label: m.name + " A", Value: l, Style: chart.Style{FillColor: leftColor, StrokeColor: leftColor}},
			chart.Value{Label: m.name + " B", Value: r, Style: chart.Style{FillColor: rightColor, StrokeColor: rightColor}},
		)
	}
	if !nonZero {
		return nil, ErrNotEnoughData
	}

	graph := chart.BarChart{
		Title:    fmt.Sprintf("A: %s vs B: %s", displayName(left), displayName(right)),
		Width:    900,
		Height:   400,
		BarWidth: 60,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render comparison chart: %w", err)
	}
	return buf.Bytes(), nil
}

func displayName(a *domain.Analysis) string {
	if a.App.Title != "" {
		return a.App.Title
	}
	return a.Ref.ID
}
