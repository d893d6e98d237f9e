package models

import "time"

type ReminderType string

const (
	ReminderHydration ReminderType = "hydration"
	ReminderMovement  ReminderType = "movement"
	ReminderEyes      ReminderType = "eyes"
	ReminderPosture   ReminderType = "posture"
)

type BreakReminder struct {
	ID        string       `json:"id"`
	Type      ReminderType `json:"type"`
	Message   string       `json:"message"`
	Interval  int          `json:"interval"` // minutes
	LastShown time.Time    `json:"lastShown"`
	Enabled   bool         `json:"enabled"`
}

type NotificationSettings struct {
	BreakReminders       bool `json:"breakReminders"`
	BreakInterval        int  `json:"breakInterval"`
	ProductivityInsights bool `json:"productivityInsights"`
	GoalDeadlines        bool `json:"goalDeadlines"`
	WeeklyReports        bool `json:"weeklyReports"`
	SmartSuggestions     bool `json:"smartSuggestions"`
}

// DefaultBreakReminders returns the four built-in reminders, all last shown at now.
func DefaultBreakReminders(now time.Time) []BreakReminder {
	return []BreakReminder{
		{ID: "hydration", Type: ReminderHydration, Message: "💧 Time to hydrate! Drink some water.", Interval: 60, LastShown: now, Enabled: true},
		{ID: "movement", Type: ReminderMovement, Message: "🚶 Take a movement break! Stand up and stretch.", Interval: 45, LastShown: now, Enabled: true},
		{ID: "eyes", Type: ReminderEyes, Message: "👀 Rest your eyes! Look at something 20 feet away for 20 seconds.", Interval: 20, LastShown: now, Enabled: true},
		{ID: "posture", Type: ReminderPosture, Message: "🪑 Check your posture! Sit up straight and adjust your position.", Interval: 30, LastShown: now, Enabled: true},
	}
}

func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		BreakReminders:       true,
		BreakInterval:        60,
		ProductivityInsights: true,
		GoalDeadlines:        true,
		WeeklyReports:        true,
		SmartSuggestions:     true,
	}
}
