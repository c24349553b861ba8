package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/metrics"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/models/domain"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/analyzer"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/delivery"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/history"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/report"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/reviews"
	"github.com/spf13/cobra"
)

const defaultTimeout = 5 * time.Minute

// Dependencies are the services shared by every command.
type Dependencies struct {
	Analyzer  analyzer.Service
	Fetcher   reviews.Fetcher
	Renderers report.Registry
	Sender    delivery.ReportSender
	History   history.Service
	Metrics   *metrics.Metrics
	Defaults  analyzer.Defaults
}

// analysisFlags are the request options shared by analysing commands.
type analysisFlags struct {
	country        string
	language       string
	maxReviews     int
	positiveCutoff float64
	negativeCutoff float64
	riskAlert      float64
	labels         []string
	from           string
	to             string
	timeout        time.Duration
}

func (f *analysisFlags) register(cmd *cobra.Command, d analyzer.Defaults) {
	cmd.Flags().StringVar(&f.country, "country", d.Locale.Country, "Store country code")
	cmd.Flags().StringVar(&f.language, "lang", d.Locale.Language, "Review language code")
	cmd.Flags().IntVar(&f.maxReviews, "max", d.MaxReviews, "Maximum number of reviews to fetch")
	cmd.Flags().Float64Var(&f.positiveCutoff, "positive-cutoff", d.Thresholds.PositiveCutoff, "Polarity at or above which a review is Positive")
	cmd.Flags().Float64Var(&f.negativeCutoff, "negative-cutoff", d.Thresholds.NegativeCutoff, "Polarity at or below which a review is Negative")
	cmd.Flags().Float64Var(&f.riskAlert, "risk-alert", d.Thresholds.RiskAlertPercentage, "Negative percentage that raises the risk flag")
	cmd.Flags().StringSliceVar(&f.labels, "labels", nil, "Only keep these sentiments (Positive, Neutral, Negative)")
	cmd.Flags().StringVar(&f.from, "from", "", "Only keep reviews posted on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "Only keep reviews posted on or before this date (YYYY-MM-DD)")
	cmd.Flags().DurationVar(&f.timeout, "timeout", defaultTimeout, "Overall timeout")
}

func (f *analysisFlags) context(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, f.timeout)
}

func (f *analysisFlags) request(rawApp string) (analyzer.Request, error) {
	id, err := reviews.ResolveAppID(rawApp)
	if err != nil {
		return analyzer.Request{}, err
	}
	if f.maxReviews < 1 {
		return analyzer.Request{}, &domain.InvalidConfigurationError{Field: "max", Value: f.maxReviews, Reason: "must be at least 1"}
	}

	req := analyzer.Request{
		App: domain.AppRef{
			ID:     id,
			Locale: domain.Locale{Country: strings.ToLower(f.country), Language: strings.ToLower(f.language)},
		},
		MaxReviews: f.maxReviews,
		Thresholds: domain.Thresholds{
			PositiveCutoff:      f.positiveCutoff,
			NegativeCutoff:      f.negativeCutoff,
			RiskAlertPercentage: f.riskAlert,
		},
	}

	for _, raw := range f.labels {
		l, err := domain.ParseLabel(strings.TrimSpace(raw))
		if err != nil {
			return req, &domain.InvalidConfigurationError{Field: "labels", Value: raw, Reason: err.Error()}
		}
		req.Filter.Labels = append(req.Filter.Labels, l)
	}
	if req.Filter.From, err = parseDate("from", f.from); err != nil {
		return req, err
	}
	if req.Filter.To, err = parseDate("to", f.to); err != nil {
		return req, err
	}
	return req, nil
}

func parseDate(field, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, &domain.InvalidConfigurationError{
			Field:  field,
			Value:  raw,
			Reason: fmt.Sprintf("invalid date format, expected %s", "YYYY-MM-DD"),
		}
	}
	return t, nil
}
