package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporter_Handle(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	err := r.Handle(&domain.Report{
		Title:    "Review analysis: Example",
		Subtitle: "com.example by Dev",
		Period: domain.TimePeriod{
			Start: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
			Days:  3,
		},
		Alert: "Strong indicators of potential risk identified",
		Sections: []domain.ReportSection{{
			Title:   "Review Summary",
			Summary: map[string]interface{}{"Total reviews": 3},
			Details: []domain.ReportDetail{{Name: "Negative", Value: "1 (33.3%)", Unit: "reviews"}},
		}},
		Footer: "Not a definitive judgement.",
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Review analysis: Example")
	assert.Contains(t, out, "Reviews from 2025-06-01 to 2025-06-03 (3 days)")
	assert.Contains(t, out, "!! Strong indicators")
	assert.Contains(t, out, "=== Review Summary ===")
	assert.Contains(t, out, "Total reviews: 3")
	assert.Contains(t, out, "| Negative ")
	assert.Contains(t, out, "Not a definitive judgement.")
}

func TestReporter_NoPeriodNoAlert(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewReporter(&buf).Handle(&domain.Report{Title: "Empty"}))

	assert.NotContains(t, buf.String(), "Reviews from")
	assert.NotContains(t, buf.String(), "!!")
}

func TestWrap(t *testing.T) {
	out := wrap(strings.Repeat("word ", 40), 20)

	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len(line), 20)
	}
	assert.Equal(t, "", wrap("", 10))
}
