package report

import (
	"fmt"

	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/models/domain"
)

const (
	Disclaimer = "This report is generated automatically from public reviews and " +
		"sentiment heuristics. It is not a definitive judgement of an app's " +
		"legitimacy. Always do your own research before installing or paying."

	RiskWarningShort = "Strong indicators of potential risk identified"

	RiskAdvice = "A high share of negative reviews or reviews mentioning fraud, " +
		"scams or malware was found. Check the developer, permissions and " +
		"recent reviews carefully before installing this app."

	AllClear = "No strong indicators of risk were found in the analysed reviews."
)

// FileName returns the download name of a single-app report.
func FileName(appID, kind, ext string) string {
	return fmt.Sprintf("%s_%s.%s", appID, kind, ext)
}

// ComparisonFileName returns the download name of a comparison report.
func ComparisonFileName(c *domain.Comparison) string {
	return fmt.Sprintf("comparison_%s_vs_%s.pdf", c.Left.Ref.ID, c.Right.Ref.ID)
}

// RiskText is the risk alert or all-clear paragraph for a summary.
func RiskText(s domain.AnalysisSummary, th domain.Thresholds) string {
	if s.RiskFlag {
		return fmt.Sprintf("%s: %.1f%% negative reviews (alert at %.1f%%). %s",
			RiskWarningShort, s.RiskPercentage, th.RiskAlertPercentage, RiskAdvice)
	}
	return AllClear
}
