package repository

import (
	"strings"

	"github.com/julianstephens/waketrack/internal/models"
)

// sanitizeDay drops keys that are not hour slots and normalizes categories.
func sanitizeDay(in models.DayRecord) models.DayRecord {
	out := make(models.DayRecord, len(in))
	for key, slot := range in {
		hour, err := models.ParseHourKey(key)
		if err != nil {
			continue
		}
		slot.Category = models.ParseCategory(string(slot.Category))
		out[models.HourKey(hour)] = slot
	}
	return out
}

func sanitizeGoals(in []models.Goal) []models.Goal {
	out := make([]models.Goal, 0, len(in))
	for _, g := range in {
		if g.ID == "" || strings.TrimSpace(g.Title) == "" {
			continue
		}
		if g.Type != models.GoalWeekly {
			g.Type = models.GoalDaily
		}
		switch g.Metric {
		case models.MetricProductiveHours, models.MetricTotalActivities, models.MetricStreakDays:
		default:
			g.Metric = models.MetricProductiveHours
		}
		out = append(out, g)
	}
	return out
}

func sanitizeGamification(g models.GamificationData) models.GamificationData {
	if g.TotalPoints < 0 {
		g.TotalPoints = 0
	}
	if g.CurrentStreak < 0 {
		g.CurrentStreak = 0
	}
	if g.LongestStreak < g.CurrentStreak {
		g.LongestStreak = g.CurrentStreak
	}
	return g
}

func sanitizeTemplates(in []models.ActivityTemplate) []models.ActivityTemplate {
	out := make([]models.ActivityTemplate, 0, len(in))
	for _, tpl := range in {
		if tpl.ID == "" {
			continue
		}
		acts := make([]models.TemplateActivity, 0, len(tpl.Activities))
		for _, a := range tpl.Activities {
			if _, err := models.ParseHourKey(a.Hour); err != nil {
				continue
			}
			a.Category = models.ParseCategory(string(a.Category))
			acts = append(acts, a)
		}
		tpl.Activities = acts
		out = append(out, tpl)
	}
	return out
}

func sanitizeReminders(in []models.BreakReminder) []models.BreakReminder {
	out := make([]models.BreakReminder, 0, len(in))
	for _, r := range in {
		if r.ID == "" || r.Interval <= 0 {
			continue
		}
		out = append(out, r)
	}
	return out
}

func sanitizePomodoroSettings(s models.PomodoroSettings, def models.PomodoroSettings) models.PomodoroSettings {
	if s.WorkDuration <= 0 {
		s.WorkDuration = def.WorkDuration
	}
	if s.ShortBreak <= 0 {
		s.ShortBreak = def.ShortBreak
	}
	if s.LongBreak <= 0 {
		s.LongBreak = def.LongBreak
	}
	if s.LongBreakInterval <= 0 {
		s.LongBreakInterval = def.LongBreakInterval
	}
	return s
}
