package report

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/models/domain"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/analysis"
)

// EmailBody is a multipart e-mail rendering of an analysis.
type EmailBody struct {
	Subject string
	HTML    string
	Text    string
}

type emailView struct {
	Recipient   string
	AppName     string
	AppID       string
	Developer   string
	Total       int
	Positive    string
	Neutral     string
	Negative    string
	RatingScore string
	RatingColor string
	StoreScore  string
	RiskFlag    bool
	RiskText    string
	Keywords    string
	Generated   string
	Disclaimer  string
}

var funcMap = map[string]any{"upper": strings.ToUpper}

var htmlEmail = htmltemplate.Must(htmltemplate.New("email").Funcs(funcMap).Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
<p>Hello {{.Recipient}},</p>
<p>Here is the review analysis for <strong>{{.AppName}}</strong> ({{.AppID}}){{if .Developer}} by {{.Developer}}{{end}}.</p>
<table style="border-collapse: collapse;" cellpadding="6">
<tr><td>Reviews analysed</td><td>{{.Total}}</td></tr>
<tr><td>Positive</td><td>{{.Positive}}</td></tr>
<tr><td>Neutral</td><td>{{.Neutral}}</td></tr>
<tr><td>Negative</td><td>{{.Negative}}</td></tr>
<tr><td>App rating score</td><td style="color: {{.RatingColor}}; font-weight: bold;">{{.RatingScore}}</td></tr>
<tr><td>Store score</td><td>{{.StoreScore}}</td></tr>
</table>
{{if .RiskFlag}}<p style="color: #e74c3c; font-weight: bold;">{{upper "warning"}}: {{.RiskText}}</p>{{else}}<p style="color: #27ae60;">{{.RiskText}}</p>{{end}}
{{if .Keywords}}<p>Frequent terms in negative reviews: {{.Keywords}}</p>{{end}}
<p>The full CSV data and PDF report are attached.</p>
<p style="font-size: 11px; color: #777;">Generated {{.Generated}}. {{.Disclaimer}}</p>
</body>
</html>
`))

var textEmail = texttemplate.Must(texttemplate.New("email").Funcs(funcMap).Parse(`Hello {{.Recipient}},

Here is the review analysis for {{.AppName}} ({{.AppID}}){{if .Developer}} by {{.Developer}}{{end}}.

Reviews analysed: {{.Total}}
Positive:         {{.Positive}}
Neutral:          {{.Neutral}}
Negative:         {{.Negative}}
App rating score: {{.RatingScore}}
Store score:      {{.StoreScore}}

{{if .RiskFlag}}{{upper "warning"}}: {{end}}{{.RiskText}}
{{if .Keywords}}
Frequent terms in negative reviews: {{.Keywords}}
{{end}}
The full CSV data and PDF report are attached.

Generated {{.Generated}}. {{.Disclaimer}}
`))

// Email renders the summary e-mail for recipient.
func Email(a *domain.Analysis, recipient string) (*EmailBody, error) {
	if recipient == "" {
		recipient = "there"
	}
	s := a.Summary

	var keywords []string
	for _, t := range analysis.TopTerms(analysis.CorpusText(a.Reviews, analysis.ScopeNegative), topKeywords) {
		keywords = append(keywords, t.Term)
	}

	view := emailView{
		Recipient:   recipient,
		AppName:     displayName(a),
		AppID:       a.Ref.ID,
		Developer:   a.App.Developer,
		Total:       s.Total,
		Positive:    countPct(s, domain.LabelPositive),
		Neutral:     countPct(s, domain.LabelNeutral),
		Negative:    countPct(s, domain.LabelNegative),
		RatingScore: fmt.Sprintf("%.1f / 100", s.AppRatingScore),
		RatingColor: analysis.ScoreBand(s.AppRatingScore).Hex(),
		StoreScore:  fmt.Sprintf("%.1f / 5", a.App.Score),
		RiskFlag:    s.RiskFlag,
		RiskText:    RiskText(s, a.Thresholds),
		Keywords:    strings.Join(keywords, ", "),
		Generated:   a.GeneratedAt.Format("2006-01-02 15:04 MST"),
		Disclaimer:  Disclaimer,
	}

	var html, plain bytes.Buffer
	if err := htmlEmail.Execute(&html, view); err != nil {
		return nil, fmt.Errorf("failed to render html email: %w", err)
	}
	if err := textEmail.Execute(&plain, view); err != nil {
		return nil, fmt.Errorf("failed to render text email: %w", err)
	}

	subject := fmt.Sprintf("Review analysis: %s", view.AppName)
	if s.RiskFlag {
		subject = fmt.Sprintf("[Risk] %s", subject)
	}
	return &EmailBody{Subject: subject, HTML: html.String(), Text: plain.String()}, nil
}
