package analysis

import (
	"sort"
	"strings"
	"unicode"

	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/models/domain"
)

type Scope string

const (
	ScopeAll      Scope = "all"
	ScopeNegative Scope = "negative"
)

// CorpusText joins review texts for word-cloud style rendering.
func CorpusText(scored []domain.ScoredReview, scope Scope) string {
	parts := make([]string, 0, len(scored))
	for _, r := range scored {
		if scope == ScopeNegative && r.Label != domain.LabelNegative {
			continue
		}
		if t := strings.TrimSpace(r.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

type TermCount struct {
	Term  string
	Count int
}

// TopTerms returns the n most frequent non stop-word terms of text, most
// frequent first and alphabetical among ties.
func TopTerms(text string, n int) []TermCount {
	counts := make(map[string]int)
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	for _, w := range words {
		w = strings.Trim(w, "'")
		if len([]rune(w)) < 3 || stopWords[w] {
			continue
		}
		counts[w]++
	}

	terms := make([]TermCount, 0, len(counts))
	for term, c := range counts {
		terms = append(terms, TermCount{Term: term, Count: c})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Count != terms[j].Count {
			return terms[i].Count > terms[j].Count
		}
		return terms[i].Term < terms[j].Term
	})
	if n >= 0 && len(terms) > n {
		terms = terms[:n]
	}
	return terms
}

var stopWords = func() map[string]bool {
	words := strings.Fields(`
		the and for are but not you all any can had her was one our out has him his how
		its may new now old see two way who did get let say she too use this that with
		have from they will would there their what about which when were been more into
		than them then these some could also just like very app apps it's i'm don't
		your only even much because after before over such other being here where does
		still really every well`)
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}()
