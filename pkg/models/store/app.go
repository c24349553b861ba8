package store

import "time"

// Wire models of the review source API.

type App struct {
	AppID     string  `json:"app_id"`
	Title     string  `json:"title"`
	Developer string  `json:"developer"`
	Score     float64 `json:"score"`
	Icon      string  `json:"icon"`
}

type AppDetails struct {
	App
	Genre     string    `json:"genre"`
	Installs  string    `json:"installs"`
	Released  string    `json:"released"`
	Ratings   int       `json:"ratings"`
	URL       string    `json:"url"`
	UpdatedAt time.Time `json:"updated"`
}

type Review struct {
	ReviewID   string    `json:"review_id"`
	UserName   string    `json:"user_name"`
	Content    string    `json:"content"`
	Score      int       `json:"score"`
	ThumbsUp   int       `json:"thumbs_up_count"`
	AppVersion string    `json:"app_version"`
	At         time.Time `json:"at"`
}

type ReviewPage struct {
	Reviews   []Review `json:"reviews"`
	NextToken string   `json:"next_token"`
}

type SearchResult struct {
	Results []App `json:"results"`
}
