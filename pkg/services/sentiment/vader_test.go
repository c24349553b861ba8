package sentiment

import (
	"testing"

	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "markdown emphasis", in: "**Great** app", want: "Great app"},
		{name: "markdown link keeps label", in: "see [the docs](https://example.com/docs)", want: "see the docs"},
		{name: "bare url removed", in: "visit https://example.com now", want: "visit now"},
		{name: "entities unescaped", in: "fast & simple", want: "fast & simple"},
		{name: "whitespace collapsed", in: "a\n\n   b", want: "a b"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestVaderModel_Polarity(t *testing.T) {
	m := NewVaderModel()

	assert.Greater(t, m.Polarity("Great app! I love it"), 0.1)
	assert.Less(t, m.Polarity("This is terrible and awful, I hate it"), -0.1)
	assert.Equal(t, 0.0, m.Polarity(""))

	for _, text := range []string{"Great app!", "horrible", "meh"} {
		p := m.Polarity(text)
		assert.GreaterOrEqual(t, p, -1.0)
		assert.LessOrEqual(t, p, 1.0)
	}
}

func TestScorer_WorkedExampleWithVader(t *testing.T) {
	s := NewScorer(NewVaderModel(), nil)
	th := domain.DefaultThresholds()

	tests := []struct {
		text        string
		wantLabel   domain.Label
		wantKeyword bool
	}{
		{text: "Great app!", wantLabel: domain.LabelPositive},
		{text: "This is a scam", wantLabel: domain.LabelNegative, wantKeyword: true},
		{text: "Okay, nothing special", wantLabel: domain.LabelNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := s.Score(review("r1", tt.text), th)
			require.NoError(t, err)

			assert.Equal(t, tt.wantLabel, got.Label)
			assert.Equal(t, tt.wantKeyword, got.KeywordFlag)
		})
	}

	// The neutral example sits close to the negative cutoff.
	p := NewVaderModel().Polarity("Okay, nothing special")
	assert.Greater(t, p, th.NegativeCutoff)
	assert.Less(t, p, th.PositiveCutoff)
}
