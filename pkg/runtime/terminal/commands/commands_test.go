package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/models/domain"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/runtime/terminal/export"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/analyzer"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/delivery"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/report"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAnalyzer struct {
	mock.Mock
}

func (m *mockAnalyzer) Analyze(ctx context.Context, req analyzer.Request) (*domain.Analysis, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Analysis), args.Error(1)
}

func (m *mockAnalyzer) Compare(ctx context.Context, left, right analyzer.Request) (*domain.Comparison, error) {
	args := m.Called(ctx, left, right)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comparison), args.Error(1)
}

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchDetails(ctx context.Context, app domain.AppRef) (domain.AppDetails, error) {
	args := m.Called(ctx, app)
	return args.Get(0).(domain.AppDetails), args.Error(1)
}

func (m *mockFetcher) FetchReviews(ctx context.Context, app domain.AppRef, maxCount int) ([]domain.Review, error) {
	args := m.Called(ctx, app, maxCount)
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *mockFetcher) Search(ctx context.Context, query string, locale domain.Locale) ([]domain.AppSummary, error) {
	args := m.Called(ctx, query, locale)
	return args.Get(0).([]domain.AppSummary), args.Error(1)
}

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, a *domain.Analysis, to delivery.Recipient) error {
	return m.Called(ctx, a, to).Error(0)
}

var testDefaults = analyzer.Defaults{
	Thresholds: domain.DefaultThresholds(),
	Locale:     domain.Locale{Country: "us", Language: "en"},
	MaxReviews: 500,
}

func testAnalysis(id string) *domain.Analysis {
	at := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	return &domain.Analysis{
		ID:         "run-" + id,
		App:        domain.AppDetails{AppID: id, Title: "Title " + id},
		Ref:        domain.AppRef{ID: id, Locale: testDefaults.Locale},
		Thresholds: domain.DefaultThresholds(),
		Reviews: []domain.ScoredReview{{
			Review: domain.Review{ID: "r1", Text: "This is a scam", Rating: 1, Timestamp: at},
			Label:  domain.LabelNegative, KeywordFlag: true, MatchedKeywords: []string{"scam"},
		}},
		Summary: domain.AnalysisSummary{
			Total:          1,
			Counts:         map[domain.Label]int{domain.LabelNegative: 1},
			Percentages:    map[domain.Label]float64{domain.LabelNegative: 100},
			RiskFlag:       true,
			RiskPercentage: 100,
		},
		GeneratedAt: at,
	}
}

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAnalyzeCmd(t *testing.T) {
	svc := new(mockAnalyzer)
	expected := analyzer.Request{
		App:        domain.AppRef{ID: "com.example", Locale: domain.Locale{Country: "ke", Language: "en"}},
		MaxReviews: 100,
		Thresholds: domain.Thresholds{PositiveCutoff: 0.2, NegativeCutoff: -0.1, RiskAlertPercentage: 20},
		Filter: domain.ReviewFilter{
			Labels: []domain.Label{domain.LabelNegative},
			From:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	svc.On("Analyze", mock.Anything, expected).Return(testAnalysis("com.example"), nil)

	var buf bytes.Buffer
	cmd := NewAnalyzeCmd(Dependencies{Analyzer: svc, Defaults: testDefaults}, export.NewReporter(&buf))

	_, err := run(t, cmd,
		"--app", "https://play.google.com/store/apps/details?id=com.example&hl=en",
		"--country", "KE", "--max", "100", "--positive-cutoff", "0.2", "--risk-alert", "20",
		"--labels", "negative", "--from", "2025-01-01")

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Review analysis: Title com.example")
	assert.Contains(t, buf.String(), "Strong indicators of potential risk identified")
	svc.AssertExpectations(t)
}

func TestAnalyzeCmd_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "missing app", args: []string{}},
		{name: "bad app id", args: []string{"--app", "not an id"}},
		{name: "bad date", args: []string{"--app", "com.example", "--to", "yesterday"}},
		{name: "bad label", args: []string{"--app", "com.example", "--labels", "angry"}},
		{name: "zero max", args: []string{"--app", "com.example", "--max", "0"}},
		{name: "negative max", args: []string{"--app", "com.example", "--max", "-5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockAnalyzer)
			cmd := NewAnalyzeCmd(Dependencies{Analyzer: svc, Defaults: testDefaults}, export.NewReporter(&bytes.Buffer{}))

			_, err := run(t, cmd, tt.args...)

			assert.Error(t, err)
			svc.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
		})
	}
}

func TestAnalyzeCmd_PropagatesNotFound(t *testing.T) {
	svc := new(mockAnalyzer)
	svc.On("Analyze", mock.Anything, mock.Anything).Return(nil, &domain.AppNotFoundError{AppID: "com.gone"})
	cmd := NewAnalyzeCmd(Dependencies{Analyzer: svc, Defaults: testDefaults}, export.NewReporter(&bytes.Buffer{}))

	_, err := run(t, cmd, "--app", "com.gone")

	var notFound *domain.AppNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestCompareCmd(t *testing.T) {
	svc := new(mockAnalyzer)
	c := &domain.Comparison{
		Left:  testAnalysis("com.a"),
		Right: testAnalysis("com.b"),
		Delta: domain.ComparisonDelta{Percentages: map[domain.Label]float64{}},
	}
	svc.On("Compare", mock.Anything,
		mock.MatchedBy(func(r analyzer.Request) bool { return r.App.ID == "com.a" }),
		mock.MatchedBy(func(r analyzer.Request) bool { return r.App.ID == "com.b" }),
	).Return(c, nil)

	var buf bytes.Buffer
	cmd := NewCompareCmd(Dependencies{Analyzer: svc, Defaults: testDefaults}, export.NewReporter(&buf))

	_, err := run(t, cmd, "--left", "com.a", "--right", "com.b")

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Comparison: Title com.a vs Title com.b")
	svc.AssertExpectations(t)
}

func TestSearchCmd(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("Search", mock.Anything, "wallet", domain.Locale{Country: "gb", Language: "en"}).
		Return([]domain.AppSummary{{AppID: "com.wallet", Title: "Wallet", Developer: "Acme", Score: 4.5}}, nil)
	fetcher.On("Search", mock.Anything, "nothing", testDefaults.Locale).
		Return([]domain.AppSummary{}, nil)

	out, err := run(t, NewSearchCmd(Dependencies{Fetcher: fetcher, Defaults: testDefaults}), "--query", "wallet", "--country", "GB")
	require.NoError(t, err)
	assert.Contains(t, out, "com.wallet")
	assert.Contains(t, out, "4.5")

	out, err = run(t, NewSearchCmd(Dependencies{Fetcher: fetcher, Defaults: testDefaults}), "--query", "nothing")
	require.NoError(t, err)
	assert.Contains(t, out, "No apps found for: nothing")
}

func TestExportCmd_CSV(t *testing.T) {
	svc := new(mockAnalyzer)
	svc.On("Analyze", mock.Anything, mock.Anything).Return(testAnalysis("com.example"), nil)
	path := filepath.Join(t.TempDir(), "out.csv")

	cmd := NewExportCmd(Dependencies{Analyzer: svc, Renderers: report.NewDefaultRegistry(), Defaults: testDefaults})
	out, err := run(t, cmd, "--app", "com.example", "--format", "csv", "--out", path)

	require.NoError(t, err)
	assert.Contains(t, out, path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "This is a scam")
}

func TestExportCmd_UnknownFormat(t *testing.T) {
	svc := new(mockAnalyzer)
	cmd := NewExportCmd(Dependencies{Analyzer: svc, Renderers: report.NewDefaultRegistry(), Defaults: testDefaults})

	_, err := run(t, cmd, "--app", "com.example", "--format", "docx")

	var cfgErr *domain.InvalidConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
	svc.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
}

func TestEmailCmd(t *testing.T) {
	a := testAnalysis("com.example")
	svc := new(mockAnalyzer)
	svc.On("Analyze", mock.Anything, mock.Anything).Return(a, nil)
	sender := new(mockSender)
	sender.On("Send", mock.Anything, a, delivery.Recipient{Name: "Bo", Address: "bo@example.com"}).Return(nil)

	out, err := run(t, NewEmailCmd(Dependencies{Analyzer: svc, Sender: sender, Defaults: testDefaults}),
		"--app", "com.example", "--to", "bo@example.com", "--name", "Bo")

	require.NoError(t, err)
	assert.Contains(t, out, "sent to bo@example.com")
	sender.AssertExpectations(t)
}

func TestEmailCmd_Disabled(t *testing.T) {
	_, err := run(t, NewEmailCmd(Dependencies{Analyzer: new(mockAnalyzer), Defaults: testDefaults}),
		"--app", "com.example", "--to", "bo@example.com")

	assert.ErrorContains(t, err, "not configured")
}

type mockHistory struct {
	mock.Mock
}

func (m *mockHistory) Record(ctx context.Context, a *domain.Analysis) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockHistory) RecordComparison(ctx context.Context, c *domain.Comparison) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockHistory) List(ctx context.Context, appID string, limit int) ([]domain.AnalysisRecord, error) {
	args := m.Called(ctx, appID, limit)
	return args.Get(0).([]domain.AnalysisRecord), args.Error(1)
}

func TestHistoryCmd(t *testing.T) {
	hist := new(mockHistory)
	hist.On("List", mock.Anything, "com.example", 3).Return([]domain.AnalysisRecord{{
		ID:          "run-1",
		App:         domain.AppRef{ID: "com.example", Locale: testDefaults.Locale},
		GeneratedAt: time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC),
		Summary: domain.AnalysisSummary{
			Total:       4,
			Percentages: map[domain.Label]float64{domain.LabelNegative: 50},
			RiskFlag:    true,
		},
	}}, nil)

	out, err := run(t, NewHistoryCmd(Dependencies{History: hist}), "--app", "com.example", "--limit", "3")

	require.NoError(t, err)
	assert.Contains(t, out, "2025-06-01 08:30")
	assert.Contains(t, out, "50.0")
	assert.Contains(t, out, "yes")
}

func TestHistoryCmd_Disabled(t *testing.T) {
	_, err := run(t, NewHistoryCmd(Dependencies{}), "--app", "com.example")

	assert.ErrorContains(t, err, "not configured")
}
