package models

import "time"

type BadgeCategory string

const (
	BadgeStreak       BadgeCategory = "streak"
	BadgeProductivity BadgeCategory = "productivity"
	BadgeMilestone    BadgeCategory = "milestone"
	BadgeWeekly       BadgeCategory = "weekly"
)

type Badge struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Icon        string        `json:"icon"`
	Earned      bool          `json:"earned"`
	EarnedAt    *time.Time    `json:"earnedAt,omitempty"`
	Requirement int           `json:"requirement"`
	Category    BadgeCategory `json:"category"`
}

type ChallengeType string

const (
	ChallengeProductiveHours ChallengeType = "productive_hours"
	ChallengeStreakDays      ChallengeType = "streak_days"
	ChallengeEarlyHours      ChallengeType = "early_hours"
	ChallengeConsistency     ChallengeType = "consistency"
)

type WeeklyChallenge struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Target      int           `json:"target"`
	Progress    int           `json:"progress"`
	Points      int           `json:"points"`
	StartDate   string        `json:"startDate"`
	EndDate     string        `json:"endDate"`
	Type        ChallengeType `json:"type"`
	Completed   bool          `json:"completed"`
}

type GamificationData struct {
	TotalPoints       int              `json:"totalPoints"`
	CurrentStreak     int              `json:"currentStreak"`
	LongestStreak     int              `json:"longestStreak"`
	Badges            []Badge          `json:"badges"`
	WeeklyChallenge   *WeeklyChallenge `json:"weeklyChallenge"`
	Level             int              `json:"level"`
	PointsToNextLevel int              `json:"pointsToNextLevel"`
}

// Streak is the current and longest run of days with productive activity.
type Streak struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}
