package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/models/domain"
)

type TableConfig struct {
	NameWidth        int
	ValueWidth       int
	UnitWidth        int
	DescriptionWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:        24,
		ValueWidth:       20,
		UnitWidth:        10,
		DescriptionWidth: 40,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

const reportTemplate = `
{{.Title}}
{{if .Subtitle}}{{.Subtitle}}
{{end}}{{if .Period.Days}}Reviews from {{.Period.Start.Format "2006-01-02"}} to {{.Period.End.Format "2006-01-02"}} ({{.Period.Days}} days)
{{end}}{{if .Alert}}
!! {{.Alert}}
{{end}}
{{range .Sections}}
=== {{.Title}} ===
{{range $key, $value := .Summary}}{{$key}}: {{$value}}
{{end}}
{{separator}}
{{formatRow "Name" "Value" "Unit" "Description"}}
{{separator}}
{{range .Details}}{{formatRow .Name .Value .Unit .Description}}
{{end}}{{separator}}
{{end}}
{{wrap .Footer}}
`

func (c *Reporter) Handle(report *domain.Report) error {
	funcMap := template.FuncMap{
		"formatRow": func(name string, value interface{}, unit string, desc string) string {
			return fmt.Sprintf("| %-*s | %-*v | %-*s | %-*s |",
				c.config.NameWidth, name,
				c.config.ValueWidth, value,
				c.config.UnitWidth, unit,
				c.config.DescriptionWidth, desc)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2),
				strings.Repeat("-", c.config.UnitWidth+2),
				strings.Repeat("-", c.config.DescriptionWidth+2))
		},
		"wrap": func(s string) string {
			return wrap(s, 80)
		},
	}

	t, err := template.New("report").Funcs(funcMap).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}

func wrap(s string, width int) string {
	var (
		b    strings.Builder
		line int
	)
	for _, word := range strings.Fields(s) {
		if line > 0 && line+1+len(word) > width {
			b.WriteByte('\n')
			line = 0
		} else if line > 0 {
			b.WriteByte(' ')
			line++
		}
		b.WriteString(word)
		line += len(word)
	}
	return b.String()
}
