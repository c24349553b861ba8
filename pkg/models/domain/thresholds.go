package domain

import "math"

const (
	DefaultPositiveCutoff      = 0.1
	DefaultNegativeCutoff      = -0.1
	DefaultRiskAlertPercentage = 30.0
)

// Thresholds is a request-scoped classification and alerting configuration.
type Thresholds struct {
	PositiveCutoff      float64
	NegativeCutoff      float64
	RiskAlertPercentage float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		PositiveCutoff:      DefaultPositiveCutoff,
		NegativeCutoff:      DefaultNegativeCutoff,
		RiskAlertPercentage: DefaultRiskAlertPercentage,
	}
}

// Validate reports the first out-of-range field as an *InvalidConfigurationError.
func (t Thresholds) Validate() error {
	if !inRange(t.PositiveCutoff, -1, 1) {
		return &InvalidConfigurationError{Field: "positive_cutoff", Value: t.PositiveCutoff, Reason: "must be between -1 and 1"}
	}
	if !inRange(t.NegativeCutoff, -1, 1) {
		return &InvalidConfigurationError{Field: "negative_cutoff", Value: t.NegativeCutoff, Reason: "must be between -1 and 1"}
	}
	if !inRange(t.RiskAlertPercentage, 0, 100) {
		return &InvalidConfigurationError{Field: "risk_alert_percentage", Value: t.RiskAlertPercentage, Reason: "must be between 0 and 100"}
	}
	return nil
}

func inRange(v, lo, hi float64) bool {
	return !math.IsNaN(v) && v >= lo && v <= hi
}
