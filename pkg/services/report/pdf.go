package report

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/models/domain"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/analysis"
	"github.com/go-pdf/fpdf"
)

const (
	sampleReviews    = 10
	sampleTextLength = 300
	topKeywords      = 10
	lineHeight       = 6.0
)

// document wraps an fpdf page with the house layout helpers.
type document struct {
	pdf   *fpdf.Fpdf
	tr    func(string) string
	width float64
}

func newDocument(title string, created time.Time) *document {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(title, true)
	pdf.SetCreator("fraud-analyser", true)
	pdf.SetCreationDate(created)
	pdf.AliasNbPages("")

	d := &document{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	d.width = pageW - left - right

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 5, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()
	return d
}

func (d *document) title(text, subtitle string) {
	d.pdf.SetFont("Helvetica", "B", 18)
	d.pdf.SetTextColor(33, 33, 33)
	d.pdf.CellFormat(0, 10, d.tr(text), "", 1, "C", false, 0, "")
	if subtitle != "" {
		d.pdf.SetFont("Helvetica", "", 10)
		d.pdf.SetTextColor(100, 100, 100)
		d.pdf.CellFormat(0, lineHeight, d.tr(subtitle), "", 1, "C", false, 0, "")
	}
	d.pdf.Ln(4)
}

func (d *document) heading(text string) {
	d.pdf.Ln(2)
	d.pdf.SetFont("Helvetica", "B", 13)
	d.pdf.SetTextColor(44, 62, 80)
	d.pdf.CellFormat(0, 8, d.tr(text), "B", 1, "L", false, 0, "")
	d.pdf.Ln(2)
}

func (d *document) paragraph(text string, r, g, b int) {
	d.pdf.SetFont("Helvetica", "", 10)
	d.pdf.SetTextColor(r, g, b)
	d.pdf.MultiCell(0, 5, d.tr(text), "", "L", false)
	d.pdf.Ln(1)
}

type cell struct {
	text string
	fill *analysis.Band
}

// table draws rows of cells with equal-width columns; the first row is a header.
func (d *document) table(rows [][]cell, widths []float64) {
	for i, row := range rows {
		if i == 0 {
			d.pdf.SetFont("Helvetica", "B", 10)
		} else {
			d.pdf.SetFont("Helvetica", "", 10)
		}
		for j, c := range row {
			fill := false
			d.pdf.SetTextColor(33, 33, 33)
			switch {
			case i == 0:
				d.pdf.SetFillColor(236, 240, 241)
				fill = true
			case c.fill != nil:
				r, g, b := c.fill.RGB()
				d.pdf.SetFillColor(r, g, b)
				d.pdf.SetTextColor(255, 255, 255)
				fill = true
			}
			d.pdf.CellFormat(widths[j], 7, d.tr(c.text), "1", 0, "L", fill, 0, "")
		}
		d.pdf.Ln(-1)
	}
	d.pdf.Ln(2)
}

func (d *document) image(name string, png []byte, height float64) {
	opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	d.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	d.pdf.ImageOptions(name, d.pdf.GetX(), d.pdf.GetY(), d.width, height, true, opts, 0, "")
	d.pdf.Ln(2)
}

func (d *document) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func text(s string) cell { return cell{text: s} }

func banded(s string, score float64) cell {
	b := analysis.ScoreBand(score)
	return cell{text: s, fill: &b}
}

// PDF renders the single-app report.
func PDF(a *domain.Analysis) ([]byte, error) {
	s := a.Summary
	d := newDocument("App Review Risk Report", a.GeneratedAt)
	d.title("App Review Risk Report", fmt.Sprintf("%s - generated %s", displayName(a), a.GeneratedAt.Format("2006-01-02 15:04 MST")))

	half := []float64{d.width * 0.4, d.width * 0.6}

	d.heading("App details")
	d.table(detailRows(a), half)

	d.heading("Review summary")
	d.table([][]cell{
		{text("Sentiment"), text("Reviews")},
		{text("Total analysed"), text(fmt.Sprintf("%d", s.Total))},
		{text("Positive"), text(countPct(s, domain.LabelPositive))},
		{text("Neutral"), text(countPct(s, domain.LabelNeutral))},
		{text("Negative"), text(countPct(s, domain.LabelNegative))},
		{text("Flagged by keywords"), text(fmt.Sprintf("%d", s.KeywordFlagged))},
		{text("Skipped as invalid"), text(fmt.Sprintf("%d", s.Skipped))},
		{text("Average polarity"), text(fmt.Sprintf("%.3f", s.AveragePolarity))},
	}, half)

	d.heading("Findings")
	storePct := analysis.StoreScorePercentage(a.App.Score)
	d.table([][]cell{
		{text("Metric"), text("Value")},
		{text("App rating score"), banded(fmt.Sprintf("%.1f / 100", s.AppRatingScore), s.AppRatingScore)},
		{text("Store score"), banded(fmt.Sprintf("%.1f%% (%.1f / 5)", storePct, a.App.Score), storePct)},
		{text("Negative reviews"), banded(fmt.Sprintf("%.1f%% (alert at %.1f%%)", s.RiskPercentage, a.Thresholds.RiskAlertPercentage), 100-s.RiskPercentage)},
	}, half)

	d.heading("Risk assessment")
	if s.RiskFlag {
		d.paragraph(RiskText(s, a.Thresholds), 0xe7, 0x4c, 0x3c)
	} else {
		d.paragraph(RiskText(s, a.Thresholds), 0x27, 0xae, 0x60)
	}

	if terms := analysis.TopTerms(analysis.CorpusText(a.Reviews, analysis.ScopeNegative), topKeywords); len(terms) > 0 {
		d.heading("Frequent terms in negative reviews")
		parts := make([]string, len(terms))
		for i, t := range terms {
			parts[i] = fmt.Sprintf("%s (%d)", t.Term, t.Count)
		}
		d.paragraph(strings.Join(parts, ", "), 33, 33, 33)
	}

	png, err := TrendChart(s.Trend)
	switch {
	case err == nil:
		d.heading("Sentiment trend")
		d.image("trend", png, d.width*0.45)
	case !errors.Is(err, ErrNotEnoughData):
		return nil, err
	}

	if len(a.Reviews) > 0 {
		d.heading("Sample reviews")
		for i, r := range a.Reviews {
			if i == sampleReviews {
				break
			}
			flag := ""
			if r.KeywordFlag {
				flag = " [keywords: " + strings.Join(r.MatchedKeywords, ", ") + "]"
			}
			d.pdf.SetFont("Helvetica", "B", 9)
			d.pdf.SetTextColor(33, 33, 33)
			d.pdf.CellFormat(0, 5, d.tr(fmt.Sprintf("%s - %s (%.2f), %d stars%s",
				r.Timestamp.UTC().Format(time.DateOnly), r.Label, r.Polarity, r.Rating, flag)), "", 1, "L", false, 0, "")
			d.paragraph(truncate(r.Text, sampleTextLength), 60, 60, 60)
		}
	}

	d.heading("Disclaimer")
	d.paragraph(Disclaimer, 100, 100, 100)
	return d.bytes()
}

// ComparisonPDF renders the two-app comparison report.
func ComparisonPDF(c *domain.Comparison) ([]byte, error) {
	left, right := c.Left, c.Right
	d := newDocument("App Comparison Report", left.GeneratedAt)
	d.title("App Comparison Report", fmt.Sprintf("A: %s  vs  B: %s", displayName(left), displayName(right)))

	thirds := []float64{d.width * 0.34, d.width * 0.33, d.width * 0.33}
	quarters := []float64{d.width * 0.31, d.width * 0.23, d.width * 0.23, d.width * 0.23}

	d.heading("App details")
	d.table([][]cell{
		{text("Field"), text("A"), text("B")},
		{text("App ID"), text(left.Ref.ID), text(right.Ref.ID)},
		{text("Title"), text(left.App.Title), text(right.App.Title)},
		{text("Developer"), text(left.App.Developer), text(right.App.Developer)},
		{text("Installs"), text(left.App.Installs), text(right.App.Installs)},
		{text("Store score"), text(fmt.Sprintf("%.1f / 5", left.App.Score)), text(fmt.Sprintf("%.1f / 5", right.App.Score))},
		{text("Reviews analysed"), text(fmt.Sprintf("%d", left.Summary.Total)), text(fmt.Sprintf("%d", right.Summary.Total))},
	}, thirds)

	png, err := ComparisonChart(left, right)
	switch {
	case err == nil:
		d.heading("Sentiment comparison")
		d.image("comparison", png, d.width*0.45)
	case !errors.Is(err, ErrNotEnoughData):
		return nil, err
	}

	d.heading("Metrics")
	rows := [][]cell{{text("Metric"), text("A"), text("B"), text("A - B")}}
	for _, l := range domain.Labels() {
		rows = append(rows, []cell{
			text(string(l) + " %"),
			text(fmt.Sprintf("%.1f", left.Summary.Percentage(l))),
			text(fmt.Sprintf("%.1f", right.Summary.Percentage(l))),
			text(fmt.Sprintf("%+.1f", c.Delta.Percentages[l])),
		})
	}
	rows = append(rows,
		[]cell{
			text("Store score"),
			text(fmt.Sprintf("%.1f", left.App.Score)),
			text(fmt.Sprintf("%.1f", right.App.Score)),
			text(fmt.Sprintf("%+.1f", c.Delta.StoreScore)),
		},
		[]cell{
			text("App rating score"),
			banded(fmt.Sprintf("%.1f", left.Summary.AppRatingScore), left.Summary.AppRatingScore),
			banded(fmt.Sprintf("%.1f", right.Summary.AppRatingScore), right.Summary.AppRatingScore),
			text(fmt.Sprintf("%+.1f", c.Delta.AppRatingScore)),
		},
		[]cell{
			text("Average polarity"),
			text(fmt.Sprintf("%.3f", left.Summary.AveragePolarity)),
			text(fmt.Sprintf("%.3f", right.Summary.AveragePolarity)),
			text(fmt.Sprintf("%+.3f", c.Delta.AveragePolarity)),
		},
		[]cell{
			text("Risk flag"),
			text(yesNo(left.Summary.RiskFlag)),
			text(yesNo(right.Summary.RiskFlag)),
			text(""),
		},
	)
	d.table(rows, quarters)

	d.heading("Disclaimer")
	d.paragraph(Disclaimer, 100, 100, 100)
	return d.bytes()
}

func detailRows(a *domain.Analysis) [][]cell {
	rows := [][]cell{{text("Field"), text("Value")}}
	add := func(name, value string) {
		if value != "" {
			rows = append(rows, []cell{text(name), text(value)})
		}
	}
	add("App ID", a.Ref.ID)
	add("Title", a.App.Title)
	add("Developer", a.App.Developer)
	add("Genre", a.App.Genre)
	add("Installs", a.App.Installs)
	add("Released", a.App.Released)
	add("Country", strings.ToUpper(a.Ref.Country))
	add("Store score", fmt.Sprintf("%.1f / 5", a.App.Score))
	return rows
}

func countPct(s domain.AnalysisSummary, l domain.Label) string {
	return fmt.Sprintf("%d (%.1f%%)", s.Count(l), s.Percentage(l))
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

type pdfRenderer struct{}

func (pdfRenderer) Render(a *domain.Analysis) ([]byte, error) { return PDF(a) }
func (pdfRenderer) ContentType() string                      { return "application/pdf" }

func (pdfRenderer) FileName(a *domain.Analysis) string {
	return FileName(a.Ref.ID, "full_app_summary", "pdf")
}
