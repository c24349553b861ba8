package api

import "time"

type App struct {
	AppID                string    `json:"app_id"`
	Title                string    `json:"title"`
	Developer            string    `json:"developer"`
	Genre                string    `json:"genre,omitempty"`
	Installs             string    `json:"installs,omitempty"`
	Released             string    `json:"released,omitempty"`
	Score                float64   `json:"score"`
	StoreScorePercentage float64   `json:"store_score_percentage"`
	Ratings              int       `json:"ratings"`
	Icon                 string    `json:"icon,omitempty"`
	URL                  string    `json:"url,omitempty"`
	UpdatedAt            time.Time `json:"updated_at"`
}

type AppSummary struct {
	AppID     string  `json:"app_id"`
	Title     string  `json:"title"`
	Developer string  `json:"developer"`
	Score     float64 `json:"score"`
	Icon      string  `json:"icon,omitempty"`
}

type Thresholds struct {
	PositiveCutoff      float64 `json:"positive_cutoff"`
	NegativeCutoff      float64 `json:"negative_cutoff"`
	RiskAlertPercentage float64 `json:"risk_alert_percentage"`
}

type TimePeriod struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Duration int       `json:"duration_days"`
}

type TrendPoint struct {
	Date            string  `json:"date"`
	AveragePolarity float64 `json:"average_polarity"`
	Reviews         int     `json:"reviews"`
}

type Summary struct {
	Total           int                `json:"total"`
	Counts          map[string]int     `json:"counts"`
	Percentages     map[string]float64 `json:"percentages"`
	Trend           []TrendPoint       `json:"trend"`
	RiskFlag        bool               `json:"risk_flag"`
	RiskPercentage  float64            `json:"risk_percentage"`
	AveragePolarity float64            `json:"average_polarity"`
	AppRatingScore  float64            `json:"app_rating_score"`
	ScoreBand       string             `json:"score_band"`
	KeywordFlagged  int                `json:"keyword_flagged"`
	Skipped         int                `json:"skipped"`
}

type Review struct {
	ID              string    `json:"id"`
	Datetime        time.Time `json:"datetime"`
	Content         string    `json:"content"`
	Rating          int       `json:"rating"`
	Sentiment       string    `json:"sentiment"`
	Polarity        float64   `json:"polarity"`
	KeywordFlag     bool      `json:"keyword_flag"`
	MatchedKeywords []string  `json:"matched_keywords,omitempty"`
}

type Term struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

type Analysis struct {
	ID            string     `json:"id"`
	App           App        `json:"app"`
	Country       string     `json:"country"`
	Thresholds    Thresholds `json:"thresholds"`
	Period        TimePeriod `json:"period"`
	Summary       Summary    `json:"summary"`
	TopTerms      []Term     `json:"top_terms"`
	SampleReviews []Review   `json:"sample_reviews"`
	GeneratedAt   time.Time  `json:"generated_at"`
}

// Delta is left minus right.
type Delta struct {
	StoreScore      float64            `json:"store_score"`
	AppRatingScore  float64            `json:"app_rating_score"`
	AveragePolarity float64            `json:"average_polarity"`
	RiskPercentage  float64            `json:"risk_percentage"`
	Total           int                `json:"total"`
	Percentages     map[string]float64 `json:"percentages"`
}

type Comparison struct {
	Left  Analysis `json:"left"`
	Right Analysis `json:"right"`
	Delta Delta    `json:"delta"`
}

type AnalysisRecord struct {
	ID          string     `json:"id"`
	AppID       string     `json:"app_id"`
	Country     string     `json:"country"`
	Title       string     `json:"title"`
	Thresholds  Thresholds `json:"thresholds"`
	Summary     Summary    `json:"summary"`
	GeneratedAt time.Time  `json:"generated_at"`
}

type EmailRequest struct {
	To   string `json:"to"`
	Name string `json:"name"`
}

type EmailResponse struct {
	Status    string `json:"status"`
	Recipient string `json:"recipient"`
	Analysis  string `json:"analysis_id"`
}

type Error struct {
	Error string `json:"error"`
}
