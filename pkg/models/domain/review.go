package domain

import (
	"fmt"
	"strings"
	"time"
)

type Review struct {
	ID         string
	Text       string
	Rating     int // 1..5
	Timestamp  time.Time
	Author     string
	ThumbsUp   int
	AppVersion string
}

type Label string

const (
	LabelPositive Label = "Positive"
	LabelNeutral  Label = "Neutral"
	LabelNegative Label = "Negative"
)

// Labels lists every label in display order.
func Labels() []Label {
	return []Label{LabelPositive, LabelNeutral, LabelNegative}
}

func ParseLabel(s string) (Label, error) {
	for _, l := range Labels() {
		if strings.EqualFold(s, string(l)) {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown sentiment label %q", s)
}

// ScoredReview is a Review annotated by the sentiment scorer. It is never
// mutated after creation.
type ScoredReview struct {
	Review
	Polarity        float64 // -1..1
	Label           Label
	KeywordFlag     bool
	MatchedKeywords []string
}

// ReviewFilter narrows a scored review list. Zero From/To bounds are open and an
// empty label set keeps every label.
type ReviewFilter struct {
	Labels []Label
	From   time.Time
	To     time.Time
}
