package sentiment

// Model scores free text on a -1 (negative) .. 1 (positive) scale.
type Model interface {
	Polarity(text string) float64
}

// ModelFunc adapts a plain function to the Model interface.
type ModelFunc func(text string) float64

func (f ModelFunc) Polarity(text string) float64 {
	return f(text)
}
