// Package gamification awards points for logged hours and derives levels,
// badges and weekly challenges from the stored history.
package gamification

import (
	"github.com/julianstephens/waketrack/internal/constants"
	"github.com/julianstephens/waketrack/internal/models"
)

// PointsForHour scores one logged hour. The early-bird and night-owl
// bonuses only apply to productive hours. An unparseable hour key scores
// as a regular hour of its category.
func PointsForHour(category models.Category, hourKey string) int {
	switch category {
	case models.CategoryProductive:
		h, err := models.ParseHourKey(hourKey)
		if err != nil {
			return constants.PointsProductive
		}
		switch {
		case h >= constants.EarlyBirdStartHour && h < constants.EarlyBirdEndHour:
			return constants.PointsEarlyBird
		case h >= constants.NightOwlStartHour && h < constants.NightOwlEndHour:
			return constants.PointsNightOwl
		}
		return constants.PointsProductive
	case models.CategoryNeutral:
		return constants.PointsNeutral
	default:
		return constants.PointsUnproductive
	}
}

// LevelFromPoints returns the level for a point total and how many points
// remain until the next one. Negative totals are treated as zero.
func LevelFromPoints(total int) (level, toNext int) {
	if total < 0 {
		total = 0
	}
	level = total/constants.PointsPerLevel + 1
	return level, level*constants.PointsPerLevel - total
}

func applyLevel(data *models.GamificationData) {
	data.Level, data.PointsToNextLevel = LevelFromPoints(data.TotalPoints)
}
