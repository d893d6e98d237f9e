package models

type InsightType string

const (
	InsightTip         InsightType = "tip"
	InsightWarning     InsightType = "warning"
	InsightAchievement InsightType = "achievement"
	InsightPattern     InsightType = "pattern"
	InsightGoal        InsightType = "goal"
	InsightStrength    InsightType = "strength"
	InsightImprovement InsightType = "improvement"
	InsightSuggestion  InsightType = "suggestion"
	InsightPositive    InsightType = "positive"
	InsightNeutral     InsightType = "neutral"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type Insight struct {
	Type        InsightType `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Priority    Priority    `json:"priority,omitempty"`
	Metric      string      `json:"metric,omitempty"`
	Change      float64     `json:"change,omitempty"`
}

type PatternCategory string

const (
	PatternPeak    PatternCategory = "peak"
	PatternGood    PatternCategory = "good"
	PatternAverage PatternCategory = "average"
	PatternLow     PatternCategory = "low"
)

type HourPattern struct {
	Hour                int             `json:"hour"`
	AverageProductivity float64         `json:"averageProductivity"`
	TotalSessions       int             `json:"totalSessions"`
	Category            PatternCategory `json:"category"`
}

type TrendPeriod struct {
	Period            string  `json:"period"`
	Start             string  `json:"start"`
	Productive        int     `json:"productive"`
	Unproductive      int     `json:"unproductive"`
	Neutral           int     `json:"neutral"`
	ProductivityScore float64 `json:"productivityScore"`
	TotalLogged       int     `json:"totalLogged"`
}
