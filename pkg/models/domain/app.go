package domain

import "time"

// Locale selects the store front reviews are read from.
type Locale struct {
	Country  string
	Language string
}

// AppRef identifies an app listing in a specific store locale.
type AppRef struct {
	ID string
	Locale
}

type AppDetails struct {
	AppID     string
	Title     string
	Developer string
	Genre     string
	Installs  string
	Released  string
	Score     float64 // store rating, 0..5
	Ratings   int
	Icon      string
	URL       string
	UpdatedAt time.Time
}

type AppSummary struct {
	AppID     string
	Title     string
	Developer string
	Score     float64
	Icon      string
}
