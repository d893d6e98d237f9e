package gamification

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/julianstephens/waketrack/internal/constants"
	"github.com/julianstephens/waketrack/internal/logger"
	"github.com/julianstephens/waketrack/internal/metrics"
	"github.com/julianstephens/waketrack/internal/models"
	"github.com/julianstephens/waketrack/internal/repository"
	"github.com/julianstephens/waketrack/internal/utils"
)

// Engine owns the gamification record of each user.
type Engine struct {
	repo     repository.Repository
	rnd      *rand.Rand
	lookback int
}

type Option func(*Engine)

// WithLookback bounds how many days back the streak scan looks.
func WithLookback(days int) Option {
	return func(e *Engine) {
		if days > 0 {
			e.lookback = days
		}
	}
}

// New creates an Engine. src drives challenge selection; nil seeds from the clock.
func New(repo repository.Repository, src rand.Source, opts ...Option) *Engine {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	e := &Engine{repo: repo, rnd: rand.New(src), lookback: constants.StreakLookbackDays}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load returns the stored record, or a fresh one with a challenge for the
// week containing now.
func (e *Engine) Load(ctx context.Context, user string, now time.Time) (models.GamificationData, error) {
	data, ok, err := e.repo.GetGamification(ctx, user)
	if err != nil {
		return models.GamificationData{}, err
	}
	if ok {
		return data, nil
	}
	data = models.GamificationData{
		Badges:          Badges(),
		WeeklyChallenge: NewChallenge(e.rnd, now),
	}
	applyLevel(&data)
	return data, nil
}

// AwardResult describes the effect of AwardPoints.
type AwardResult struct {
	Points  int
	Total   int
	Level   int
	LevelUp bool
}

// AwardPoints credits the points for one logged hour. Nothing is written
// when the hour is worth no points.
func (e *Engine) AwardPoints(ctx context.Context, user string, category models.Category, hourKey string, now time.Time) (AwardResult, error) {
	points := PointsForHour(category, hourKey)
	data, err := e.Load(ctx, user, now)
	if err != nil {
		return AwardResult{}, err
	}
	res := AwardResult{Points: points, Total: data.TotalPoints, Level: data.Level}
	if points <= 0 {
		return res, nil
	}

	prevLevel := data.Level
	data.TotalPoints += points
	applyLevel(&data)
	if err := e.repo.PutGamification(ctx, user, data); err != nil {
		return AwardResult{}, err
	}
	res.Total = data.TotalPoints
	res.Level = data.Level
	res.LevelUp = data.Level > prevLevel
	if res.LevelUp {
		logger.Info("Level up", "user", user, "level", data.Level)
	}
	return res, nil
}

// RefreshResult is what changed during a Refresh.
type RefreshResult struct {
	Data      models.GamificationData
	NewBadges []models.Badge
	// Completed is the challenge that finished during this refresh, if any.
	Completed *models.WeeklyChallenge
	LevelUp   bool
}

// Refresh re-derives the streak, badges and weekly challenge from the full
// stored history and persists the result.
func (e *Engine) Refresh(ctx context.Context, user string, now time.Time) (RefreshResult, error) {
	prev, err := e.Load(ctx, user, now)
	if err != nil {
		return RefreshResult{}, err
	}

	streak, err := metrics.Streak(ctx, e.repo, user, now, e.lookback)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("failed to compute streak: %w", err)
	}
	p, err := e.progress(ctx, user, now, streak)
	if err != nil {
		return RefreshResult{}, err
	}

	data := prev
	data.CurrentStreak = streak.Current
	if streak.Longest > prev.LongestStreak {
		data.LongestStreak = streak.Longest
	}

	today := utils.FormatDate(now)
	var completed *models.WeeklyChallenge
	switch c := prev.WeeklyChallenge; {
	case c == nil, expired(c, today):
		data.WeeklyChallenge = NewChallenge(e.rnd, now)
	case c.Completed, c.StartDate > today:
		// finished, or next week's challenge that has not started
		data.WeeklyChallenge = c
	default:
		updated := *c
		updated.Progress, err = e.challengeProgress(ctx, user, updated, today)
		if err != nil {
			return RefreshResult{}, err
		}
		updated.Completed = updated.Progress >= updated.Target
		data.WeeklyChallenge = &updated
		if updated.Completed {
			completed = &updated
		}
	}

	if completed != nil {
		data.TotalPoints += completed.Points
		p.challengesCompleted++
		if err := e.repo.PutChallengesCompleted(ctx, user, p.challengesCompleted); err != nil {
			return RefreshResult{}, err
		}
		data.WeeklyChallenge = NewChallenge(e.rnd, now.AddDate(0, 0, 7))
		logger.Info("Weekly challenge completed", "user", user, "challenge", completed.ID, "points", completed.Points)
	}
	data.Badges = updateBadges(prev.Badges, p, now)
	applyLevel(&data)

	if err := e.repo.PutGamification(ctx, user, data); err != nil {
		return RefreshResult{}, err
	}

	res := RefreshResult{
		Data:      data,
		NewBadges: newlyEarned(prev.Badges, data.Badges),
		Completed: completed,
		LevelUp:   data.Level > prev.Level,
	}
	for _, b := range res.NewBadges {
		logger.Info("Badge earned", "user", user, "badge", b.ID)
	}
	return res, nil
}

// progress scans every stored day of user once.
func (e *Engine) progress(ctx context.Context, user string, now time.Time, streak models.Streak) (progress, error) {
	p := progress{currentStreak: streak.Current}

	dates, err := e.repo.DayDates(ctx, user)
	if err != nil {
		return progress{}, err
	}
	for _, date := range dates {
		day, ok, err := e.repo.GetDay(ctx, user, date)
		if err != nil {
			return progress{}, err
		}
		if !ok {
			continue
		}
		p.productiveHours += productiveHours(day)
		if earlyHours(day) > 0 {
			p.earlyBirdDays++
		}
	}

	p.consecutiveLogDays, err = metrics.ConsecutiveLoggedDays(ctx, e.repo, user, now, constants.ConsistencyWindowDays)
	if err != nil {
		return progress{}, err
	}
	p.challengesCompleted, err = e.repo.GetChallengesCompleted(ctx, user)
	if err != nil {
		return progress{}, err
	}
	return p, nil
}

// AwardForSlot awards points when an hour goes from empty to logged.
// Editing an already logged hour earns nothing; ok reports whether an
// award was attempted.
func (e *Engine) AwardForSlot(ctx context.Context, user, hourKey string, before, after models.ActivitySlot, now time.Time) (res AwardResult, ok bool, err error) {
	if !before.IsEmpty() || after.IsEmpty() {
		return AwardResult{}, false, nil
	}
	res, err = e.AwardPoints(ctx, user, after.Category, hourKey, now)
	return res, err == nil, err
}
