package domain

import (
	"time"
)

// Report is the analytics output of one Data Brain run
type Report struct {
	GeneratedAt     time.Time                   `json:"generatedAt"`
	PostingSchedule map[string]PlatformSchedule `json:"postingSchedule"`
	PlatformFocus   []PlatformFocus             `json:"platformFocus"`
	Alerts          []GrowthAlert               `json:"alerts"`
	ContentThemes   []ContentTheme              `json:"contentThemes"`
	Meta            ReportMeta                  `json:"meta"`
}

// PlatformSchedule holds the posting windows recommended for one platform
type PlatformSchedule struct {
	Recommendations []PostingWindow `json:"recommendations"`
	Note            string          `json:"note"`
}

// PostingWindow is a two hour slot on a given weekday (0 = Monday)
type PostingWindow struct {
	Weekday   int     `json:"weekday"`
	HourStart int     `json:"hourStart"`
	HourEnd   int     `json:"hourEnd"`
	Score     float64 `json:"score"`
	Metric    string  `json:"metric"`
}

// FocusDecision is the investment recommendation for a platform
type FocusDecision string

const (
	DecisionInvestMore   FocusDecision = "invest_more"
	DecisionMaintain     FocusDecision = "maintain"
	DecisionDeprioritize FocusDecision = "deprioritize"
)

// PlatformFocus scores a platform's engagement and growth
type PlatformFocus struct {
	Platform       string        `json:"platform"`
	EngagementRate float64       `json:"engagementRate"`
	Growth         float64       `json:"growth"`
	Score          float64       `json:"score"`
	Decision       FocusDecision `json:"decision"`
}

// AlertType names the growth risk detected for a platform
type AlertType string

const (
	AlertDecliningTrend AlertType = "declining_trend"
	AlertHighVolatility AlertType = "high_volatility"
	AlertStagnation     AlertType = "stagnation"
)

// AlertSeverity grades an alert
type AlertSeverity string

const (
	SeverityHigh   AlertSeverity = "high"
	SeverityMedium AlertSeverity = "medium"
	SeverityLow    AlertSeverity = "low"
)

// GrowthAlert flags a risk in a platform's view series
type GrowthAlert struct {
	Platform string        `json:"platform"`
	Type     AlertType     `json:"type"`
	Severity AlertSeverity `json:"severity"`
	Details  AlertDetails  `json:"details"`
}

// AlertDetails carries the statistic that triggered the alert.
// Exactly one of Slope or Volatility is set.
type AlertDetails struct {
	Slope      *float64 `json:"slope,omitempty"`
	Volatility *float64 `json:"volatility,omitempty"`
	Mean       float64  `json:"mean"`
}

// ContentTheme is one behavioral cluster of posts
type ContentTheme struct {
	Platform          string   `json:"platform"`
	ClusterID         int      `json:"clusterId"`
	Count             int      `json:"count"`
	AvgEngagementRate float64  `json:"avgEngagementRate"`
	AvgViews          float64  `json:"avgViews"`
	Examples          []string `json:"examples"`
}

// ReportMeta describes how the report was produced
type ReportMeta struct {
	Engine string   `json:"engine"`
	Notes  []string `json:"notes"`
}
