package domain

import "time"

// Report is the presentation model rendered by text reporters
type Report struct {
	Title    string
	Subtitle string
	Period   TimePeriod
	Sections []ReportSection
	Alert    string
	Footer   string
}

// TimePeriod represents the range of review timestamps covered by the report
type TimePeriod struct {
	Start time.Time
	End   time.Time
	Days  int
}

// ReportSection represents a logical section in the report
type ReportSection struct {
	Title   string
	Summary map[string]interface{}
	Details []ReportDetail
}

// ReportDetail represents one row within a section
type ReportDetail struct {
	Name        string
	Value       interface{}
	Unit        string
	Description string
}
