package sentiment

import (
	"html"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"
)

var (
	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?://[^\s)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
	tagPattern  = regexp.MustCompile(`<[^>]*>`)
)

type vaderModel struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderModel returns a lexicon based Model using the VADER compound score.
func NewVaderModel() Model {
	return &vaderModel{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (m *vaderModel) Polarity(text string) float64 {
	plain := Normalize(text)
	if plain == "" {
		return 0
	}
	return m.analyzer.PolarityScores(plain).Compound
}

// Normalize turns review markup into plain text: markdown is rendered and
// stripped, links keep only their label, bare URLs are dropped and whitespace
// is collapsed.
func Normalize(text string) string {
	text = linkPattern.ReplaceAllString(text, "$1")
	rendered := blackfriday.Run([]byte(text), blackfriday.WithNoExtensions())
	plain := html.UnescapeString(tagPattern.ReplaceAllString(string(rendered), " "))
	plain = urlPattern.ReplaceAllString(plain, "")
	return strings.Join(strings.Fields(plain), " ")
}
