package analysis

import "math"

// AppRatingScore blends the sentiment distribution into a 0..100 score.
// Neutral reviews are split between positive and negative in proportion to the
// decided ones. Inputs are percentages.
func AppRatingScore(positivePct, neutralPct, negativePct float64) float64 {
	decided := positivePct + negativePct
	if decided <= 0 {
		return math.Min(100, positivePct)
	}
	return math.Min(100, positivePct+neutralPct*(positivePct/decided))
}

// StoreScorePercentage maps a 0..5 store rating onto 0..100.
func StoreScorePercentage(score float64) float64 {
	return score * 20
}

type Band string

const (
	BandGood    Band = "good"
	BandCaution Band = "caution"
	BandRisk    Band = "risk"
)

func ScoreBand(score float64) Band {
	switch {
	case score >= 75:
		return BandGood
	case score >= 40:
		return BandCaution
	default:
		return BandRisk
	}
}

// Hex returns the display colour of the band.
func (b Band) Hex() string {
	switch b {
	case BandGood:
		return "#27ae60"
	case BandCaution:
		return "#f39c12"
	default:
		return "#e74c3c"
	}
}

// RGB returns the band colour components.
func (b Band) RGB() (int, int, int) {
	switch b {
	case BandGood:
		return 0x27, 0xae, 0x60
	case BandCaution:
		return 0xf3, 0x9c, 0x12
	default:
		return 0xe7, 0x4c, 0x3c
	}
}
