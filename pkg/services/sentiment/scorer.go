package sentiment

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/models/domain"
)

// Scorer classifies reviews. Implementations are pure and safe for concurrent use.
type Scorer interface {
	Score(review domain.Review, thresholds domain.Thresholds) (domain.ScoredReview, error)
	// ScoreAll scores a batch in order, leaving out invalid reviews and
	// returning their errors separately.
	ScoreAll(reviews []domain.Review, thresholds domain.Thresholds) ([]domain.ScoredReview, []error)
}

type scorer struct {
	model    Model
	keywords *KeywordMatcher
}

func NewScorer(model Model, keywords *KeywordMatcher) Scorer {
	if keywords == nil {
		keywords = NewKeywordMatcher(DefaultKeywords())
	}
	return &scorer{model: model, keywords: keywords}
}

func (s *scorer) Score(review domain.Review, thresholds domain.Thresholds) (domain.ScoredReview, error) {
	if !utf8.ValidString(review.Text) {
		return domain.ScoredReview{}, &domain.InvalidReviewError{ReviewID: review.ID, Reason: "text is not valid UTF-8"}
	}
	if review.Rating < 1 || review.Rating > 5 {
		return domain.ScoredReview{}, &domain.InvalidReviewError{
			ReviewID: review.ID,
			Reason:   fmt.Sprintf("rating %d outside 1..5", review.Rating),
		}
	}

	scored := domain.ScoredReview{Review: review, Label: domain.LabelNeutral}
	if strings.TrimSpace(review.Text) == "" {
		return scored, nil
	}

	scored.Polarity = clamp(s.model.Polarity(review.Text))
	scored.MatchedKeywords = s.keywords.Match(review.Text)
	scored.KeywordFlag = len(scored.MatchedKeywords) > 0
	scored.Label = Classify(scored.Polarity, scored.KeywordFlag, thresholds)
	return scored, nil
}

func (s *scorer) ScoreAll(reviews []domain.Review, thresholds domain.Thresholds) ([]domain.ScoredReview, []error) {
	scored := make([]domain.ScoredReview, 0, len(reviews))
	var skipped []error
	for _, r := range reviews {
		sr, err := s.Score(r, thresholds)
		if err != nil {
			skipped = append(skipped, err)
			continue
		}
		scored = append(scored, sr)
	}
	return scored, skipped
}

// Classify applies the label policy. A keyword hit always wins; otherwise the
// positive cutoff is checked before the negative one.
func Classify(polarity float64, keywordFlag bool, thresholds domain.Thresholds) domain.Label {
	switch {
	case keywordFlag:
		return domain.LabelNegative
	case polarity >= thresholds.PositiveCutoff:
		return domain.LabelPositive
	case polarity <= thresholds.NegativeCutoff:
		return domain.LabelNegative
	default:
		return domain.LabelNeutral
	}
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v > 1:
		return 1
	case v < -1:
		return -1
	}
	return v
}
