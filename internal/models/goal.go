package models

import "time"

type GoalType string

const (
	GoalDaily  GoalType = "daily"
	GoalWeekly GoalType = "weekly"
)

type GoalMetric string

const (
	MetricProductiveHours GoalMetric = "productive_hours"
	MetricTotalActivities GoalMetric = "total_activities"
	MetricStreakDays      GoalMetric = "streak_days"
)

type Goal struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Type      GoalType   `json:"type"`
	Target    int        `json:"target"`
	Metric    GoalMetric `json:"metric"`
	CreatedAt time.Time  `json:"createdAt"`
	IsActive  bool       `json:"isActive"`
}

// GoalProgress is derived on demand and never persisted.
type GoalProgress struct {
	Goal       Goal    `json:"goal"`
	Progress   int     `json:"progress"`
	Percentage float64 `json:"percentage"`
	Completed  bool    `json:"completed"`
}
