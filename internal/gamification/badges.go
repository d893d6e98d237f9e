package gamification

import (
	"time"

	"github.com/julianstephens/waketrack/internal/models"
)

var badgeCatalog = []models.Badge{
	{ID: "first_steps", Name: "First Steps", Description: "Complete your first productive hour", Icon: "🌱", Requirement: 1, Category: models.BadgeMilestone},
	{ID: "early_bird", Name: "Early Bird", Description: "Log productive hours before 8 AM for 3 days", Icon: "🐦", Requirement: 3, Category: models.BadgeMilestone},
	{ID: "streak_7", Name: "Week Warrior", Description: "Maintain a 7-day productivity streak", Icon: "🔥", Requirement: 7, Category: models.BadgeStreak},
	{ID: "streak_30", Name: "Month Master", Description: "Maintain a 30-day productivity streak", Icon: "💎", Requirement: 30, Category: models.BadgeStreak},
	{ID: "productive_50", Name: "Productivity Pro", Description: "Log 50 productive hours total", Icon: "⚡", Requirement: 50, Category: models.BadgeProductivity},
	{ID: "productive_100", Name: "Productivity Champion", Description: "Log 100 productive hours total", Icon: "🏆", Requirement: 100, Category: models.BadgeProductivity},
	{ID: "weekly_warrior", Name: "Weekly Warrior", Description: "Complete 3 weekly challenges", Icon: "⚔️", Requirement: 3, Category: models.BadgeWeekly},
	{ID: "consistency_king", Name: "Consistency King", Description: "Log activities for 14 consecutive days", Icon: "👑", Requirement: 14, Category: models.BadgeMilestone},
}

// Badges returns the catalog with nothing earned.
func Badges() []models.Badge {
	out := make([]models.Badge, len(badgeCatalog))
	copy(out, badgeCatalog)
	return out
}

// progress is everything badge eligibility is judged on.
type progress struct {
	currentStreak       int
	productiveHours     int
	earlyBirdDays       int
	consecutiveLogDays  int
	challengesCompleted int
}

func (p progress) earns(b models.Badge) bool {
	switch b.Category {
	case models.BadgeStreak:
		return p.currentStreak >= b.Requirement
	case models.BadgeProductivity:
		return p.productiveHours >= b.Requirement
	case models.BadgeWeekly:
		return p.challengesCompleted >= b.Requirement
	}
	switch b.ID {
	case "first_steps":
		return p.productiveHours >= 1
	case "early_bird":
		return p.earlyBirdDays >= b.Requirement
	case "consistency_king":
		return p.consecutiveLogDays >= b.Requirement
	}
	return false
}

// updateBadges merges the catalog into current. Earned badges are never
// revoked; a badge missing from current is appended.
func updateBadges(current []models.Badge, p progress, now time.Time) []models.Badge {
	badges := append([]models.Badge(nil), current...)
	index := make(map[string]int, len(badges))
	for i, b := range badges {
		index[b.ID] = i
	}

	for _, tmpl := range badgeCatalog {
		i, exists := index[tmpl.ID]
		if exists && badges[i].Earned {
			continue
		}
		if p.earns(tmpl) {
			at := now
			earned := tmpl
			earned.Earned = true
			earned.EarnedAt = &at
			if exists {
				badges[i] = earned
			} else {
				badges = append(badges, earned)
			}
			continue
		}
		if !exists {
			badges = append(badges, tmpl)
		}
	}
	return badges
}

// newlyEarned lists badges earned in after that were not earned in before.
func newlyEarned(before, after []models.Badge) []models.Badge {
	had := make(map[string]bool, len(before))
	for _, b := range before {
		if b.Earned {
			had[b.ID] = true
		}
	}
	var out []models.Badge
	for _, b := range after {
		if b.Earned && !had[b.ID] {
			out = append(out, b)
		}
	}
	return out
}
