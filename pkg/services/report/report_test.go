package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/models/domain"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/analysis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var generated = time.Date(2024, 8, 2, 9, 0, 0, 0, time.UTC)

func testAnalysis(id string) *domain.Analysis {
	day := time.Date(2024, 8, 1, 10, 0, 0, 0, time.UTC)
	reviews := []domain.ScoredReview{
		{Review: domain.Review{ID: "1", Text: "Great app, works well", Rating: 5, Timestamp: day}, Polarity: 0.62, Label: domain.LabelPositive},
		{
			Review:          domain.Review{ID: "2", Text: "This is a scam, \"fees\" everywhere", Rating: 1, Timestamp: day.AddDate(0, 0, -1)},
			Polarity:        -0.3,
			Label:           domain.LabelNegative,
			KeywordFlag:     true,
			MatchedKeywords: []string{"scam"},
		},
		{Review: domain.Review{ID: "3", Text: "Okay, nothing special", Rating: 3, Timestamp: day.AddDate(0, 0, -2)}, Polarity: 0.02, Label: domain.LabelNeutral},
	}
	th := domain.DefaultThresholds()
	return &domain.Analysis{
		ID:          "analysis-" + id,
		App:         domain.AppDetails{AppID: id, Title: "Example " + id, Developer: "Example Ltd", Score: 3.8, Installs: "10,000+"},
		Ref:         domain.AppRef{ID: id, Locale: domain.Locale{Country: "ke", Language: "en"}},
		Thresholds:  th,
		Reviews:     reviews,
		Summary:     analysis.Summarize(reviews, th),
		GeneratedAt: generated,
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	a := testAnalysis("com.example")

	require.NoError(t, WriteCSV(&buf, a.Reviews))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"datetime", "content", "sentiment", "polarity", "keyword_flag", "rating"}, records[0])
	assert.Equal(t, []string{"2024-07-31T10:00:00Z", "This is a scam, \"fees\" everywhere", "Negative", "-0.3000", "true", "1"}, records[2])
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteCSV(&buf, nil))

	assert.Equal(t, "datetime,content,sentiment,polarity,keyword_flag,rating\n", buf.String())
}

func TestPDF(t *testing.T) {
	got, err := PDF(testAnalysis("com.example"))

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(got, []byte("%PDF-")))
}

func TestPDF_EmptyAnalysis(t *testing.T) {
	a := testAnalysis("com.quiet")
	a.Reviews = nil
	a.Summary = analysis.Summarize(nil, a.Thresholds)

	got, err := PDF(a)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(got, []byte("%PDF-")))
}

func TestComparisonPDF(t *testing.T) {
	left, right := testAnalysis("com.left"), testAnalysis("com.right")
	right.Reviews = right.Reviews[:1]
	right.Summary = analysis.Summarize(right.Reviews, right.Thresholds)
	c := &domain.Comparison{Left: left, Right: right, Delta: analysis.Compare(left.Summary, right.Summary)}

	got, err := ComparisonPDF(c)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(got, []byte("%PDF-")))
	assert.Equal(t, "comparison_com.left_vs_com.right.pdf", ComparisonFileName(c))
}

func TestTrendChart(t *testing.T) {
	a := testAnalysis("com.example")

	png, err := TrendChart(a.Summary.Trend)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	_, err = TrendChart(a.Summary.Trend[:1])
	assert.True(t, errors.Is(err, ErrNotEnoughData))
}

func TestComparisonChart_NoData(t *testing.T) {
	empty := &domain.Analysis{Summary: analysis.Summarize(nil, domain.DefaultThresholds())}

	_, err := ComparisonChart(empty, empty)

	assert.True(t, errors.Is(err, ErrNotEnoughData))
}

func TestEmail(t *testing.T) {
	a := testAnalysis("com.example")

	body, err := Email(a, "Amina")

	require.NoError(t, err)
	assert.Equal(t, "[Risk] Review analysis: Example com.example", body.Subject)
	assert.Contains(t, body.HTML, "Hello Amina,")
	assert.Contains(t, body.HTML, RiskWarningShort)
	assert.Contains(t, body.HTML, "#f39c12", "app rating 50 is in the caution band")
	assert.Contains(t, body.Text, "Reviews analysed: 3")
	assert.Contains(t, body.Text, "WARNING: "+RiskWarningShort)
	assert.Contains(t, body.Text, "scam")
	assert.Contains(t, body.Text, Disclaimer)
}

func TestEmail_EscapesHTML(t *testing.T) {
	a := testAnalysis("com.example")
	a.App.Title = "<script>x</script>"

	body, err := Email(a, "")

	require.NoError(t, err)
	assert.NotContains(t, body.HTML, "<script>")
	assert.Contains(t, body.Text, "Hello there,")
}

func TestEmail_AllClear(t *testing.T) {
	a := testAnalysis("com.example")
	a.Thresholds.RiskAlertPercentage = 90
	a.Summary = analysis.Summarize(a.Reviews, a.Thresholds)

	body, err := Email(a, "Sam")

	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(body.Subject, "[Risk]"))
	assert.Contains(t, body.Text, AllClear)
}

func TestRegistry(t *testing.T) {
	r := NewDefaultRegistry()
	a := testAnalysis("com.example")

	assert.Equal(t, []string{"csv", "pdf"}, r.Formats())

	csvR, err := r.Get("csv")
	require.NoError(t, err)
	assert.Equal(t, "com.example_review_analysis.csv", csvR.FileName(a))
	assert.Equal(t, "text/csv; charset=utf-8", csvR.ContentType())

	pdfR, err := r.Get("pdf")
	require.NoError(t, err)
	assert.Equal(t, "com.example_full_app_summary.pdf", pdfR.FileName(a))

	_, err = r.Get("docx")
	var cfgErr *domain.InvalidConfigurationError
	assert.True(t, errors.As(err, &cfgErr))

	assert.Error(t, r.Register("csv", csvRenderer{}))
	assert.Error(t, r.Register("", csvRenderer{}))
	assert.Error(t, r.Register("xml", nil))
}
