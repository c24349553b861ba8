package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/models/domain"
)

var csvHeader = []string{"datetime", "content", "sentiment", "polarity", "keyword_flag", "rating"}

// WriteCSV writes one row per scored review in the given order.
func WriteCSV(w io.Writer, reviews []domain.ScoredReview) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, r := range reviews {
		row := []string{
			r.Timestamp.UTC().Format(time.RFC3339),
			r.Text,
			string(r.Label),
			strconv.FormatFloat(r.Polarity, 'f', 4, 64),
			strconv.FormatBool(r.KeywordFlag),
			strconv.Itoa(r.Rating),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row for review %s: %w", r.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

type csvRenderer struct{}

func (csvRenderer) Render(a *domain.Analysis) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, a.Reviews); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (csvRenderer) ContentType() string { return "text/csv; charset=utf-8" }

func (csvRenderer) FileName(a *domain.Analysis) string {
	return FileName(a.Ref.ID, "review_analysis", "csv")
}
