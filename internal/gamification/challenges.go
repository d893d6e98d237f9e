package gamification

import (
	"context"
	"math/rand"
	"time"

	"github.com/julianstephens/waketrack/internal/constants"
	"github.com/julianstephens/waketrack/internal/models"
	"github.com/julianstephens/waketrack/internal/utils"
)

var challengeCatalog = []models.WeeklyChallenge{
	{ID: "productive_30", Name: "Productivity Sprint", Description: "Log 30 productive hours this week", Target: 30, Points: 150, Type: models.ChallengeProductiveHours},
	{ID: "streak_7", Name: "Streak Builder", Description: "Maintain productivity for 7 days straight", Target: 7, Points: 100, Type: models.ChallengeStreakDays},
	{ID: "early_5", Name: "Early Riser", Description: "Log 5 productive hours before 8 AM this week", Target: 5, Points: 80, Type: models.ChallengeEarlyHours},
	{ID: "consistency_7", Name: "Daily Tracker", Description: "Log activities every day this week", Target: 7, Points: 120, Type: models.ChallengeConsistency},
}

// Challenges returns the challenge archetypes.
func Challenges() []models.WeeklyChallenge {
	out := make([]models.WeeklyChallenge, len(challengeCatalog))
	copy(out, challengeCatalog)
	return out
}

// NewChallenge picks an archetype at random for the Monday–Sunday week
// containing at.
func NewChallenge(rnd *rand.Rand, at time.Time) *models.WeeklyChallenge {
	c := challengeCatalog[rnd.Intn(len(challengeCatalog))]
	c.Progress = 0
	c.Completed = false
	c.StartDate = utils.FormatDate(utils.WeekStart(at))
	c.EndDate = utils.FormatDate(utils.WeekEnd(at))
	return &c
}

// expired reports whether the challenge window closed before today.
func expired(c *models.WeeklyChallenge, today string) bool {
	return c.EndDate < today
}

// challengeProgress measures a challenge against the stored days from its
// start through the earlier of its end and today. For streak_days it is the
// longest run of productive days inside that window.
func (e *Engine) challengeProgress(ctx context.Context, user string, c models.WeeklyChallenge, today string) (int, error) {
	last := c.EndDate
	if today < last {
		last = today
	}
	start, err := time.Parse(constants.DateFormat, c.StartDate)
	if err != nil {
		return 0, nil
	}
	end, err := time.Parse(constants.DateFormat, last)
	if err != nil {
		return 0, nil
	}

	n, run := 0, 0
	for _, date := range utils.DateRange(start, end) {
		day, ok, err := e.repo.GetDay(ctx, user, date)
		if err != nil {
			return 0, err
		}
		if !ok {
			run = 0
			continue
		}
		switch c.Type {
		case models.ChallengeProductiveHours:
			n += productiveHours(day)
		case models.ChallengeEarlyHours:
			n += earlyHours(day)
		case models.ChallengeConsistency:
			if day.HasActivity() {
				n++
			}
		case models.ChallengeStreakDays:
			if productiveHours(day) == 0 {
				run = 0
				continue
			}
			run++
			if run > n {
				n = run
			}
		}
	}
	return n, nil
}

func productiveHours(day models.DayRecord) int {
	n := 0
	for _, s := range day {
		if s.Category == models.CategoryProductive {
			n++
		}
	}
	return n
}

func earlyHours(day models.DayRecord) int {
	n := 0
	for h := constants.EarlyBirdStartHour; h < constants.EarlyBirdEndHour; h++ {
		if day.Slot(h).Category == models.CategoryProductive {
			n++
		}
	}
	return n
}
