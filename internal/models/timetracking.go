package models

import "time"

type TimeEntry struct {
	ID              string     `json:"id"`
	Date            string     `json:"date"`
	Hour            string     `json:"hour"`
	PlannedActivity string     `json:"plannedActivity"`
	ActualActivity  string     `json:"actualActivity"`
	PlannedDuration int        `json:"plannedDuration"` // minutes
	ActualStartTime *time.Time `json:"actualStartTime,omitempty"`
	ActualEndTime   *time.Time `json:"actualEndTime,omitempty"`
	IsActive        bool       `json:"isActive"`
	Category        Category   `json:"category"`
}

// TimeLog indexes entries by date and then hour key.
type TimeLog map[string]map[string]TimeEntry

type TimeStats struct {
	TotalPlanned   int     `json:"totalPlanned"`
	TotalActual    int     `json:"totalActual"`
	Variance       int     `json:"variance"`
	CompletedTasks int     `json:"completedTasks"`
	ActiveTasks    int     `json:"activeTasks"`
	TotalTasks     int     `json:"totalTasks"`
	Efficiency     float64 `json:"efficiency"`
}
