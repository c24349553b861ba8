package sentiment

import (
	"regexp"
	"strings"
)

// DefaultKeywords are the risk terms that force a Negative label.
func DefaultKeywords() []string {
	return []string{
		"scam", "scum", "useless", "fraud", "fake", "deceptive", "ripoff",
		"unresponsive", "broken", "glitch", "buggy", "crash", "malware",
		"phishing", "steal", "stolen", "lie", "lying", "cheat", "cheating",
		"misleading", "unreliable", "waste of time", "terrible", "horrible",
		"worst", "bad experience", "do not install", "uninstall", "delete",
		"warning", "beware", "deceitful", "untrustworthy",
	}
}

type keywordPattern struct {
	keyword string
	re      *regexp.Regexp
}

// KeywordMatcher finds risk keywords in review text. Matching is case
// insensitive and anchored at the start of a word, and the last word may carry
// a suffix: "scam" matches "scammers" and "lie" matches "lies", but "lie" does
// not match "believe". Words of a multi-word keyword may be separated by any
// whitespace.
type KeywordMatcher struct {
	patterns []keywordPattern
}

func NewKeywordMatcher(keywords []string) *KeywordMatcher {
	seen := make(map[string]bool, len(keywords))
	m := &KeywordMatcher{}
	for _, kw := range keywords {
		words := strings.Fields(strings.ToLower(kw))
		if len(words) == 0 {
			continue
		}
		normalized := strings.Join(words, " ")
		if seen[normalized] {
			continue
		}
		seen[normalized] = true

		quoted := make([]string, len(words))
		for i, w := range words {
			quoted[i] = regexp.QuoteMeta(w)
		}
		m.patterns = append(m.patterns, keywordPattern{
			keyword: normalized,
			re:      regexp.MustCompile(`(?i)\b` + strings.Join(quoted, `\s+`) + `\w*`),
		})
	}
	return m
}

// Match returns the keywords present in text, in configuration order.
func (m *KeywordMatcher) Match(text string) []string {
	var found []string
	for _, p := range m.patterns {
		if p.re.MatchString(text) {
			found = append(found, p.keyword)
		}
	}
	return found
}

func (m *KeywordMatcher) Keywords() []string {
	out := make([]string, len(m.patterns))
	for i, p := range m.patterns {
		out[i] = p.keyword
	}
	return out
}
