// Package goals manages user goals and measures progress against them.
package goals

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/waketrack/internal/constants"
	wterrors "github.com/julianstephens/waketrack/internal/errors"
	"github.com/julianstephens/waketrack/internal/metrics"
	"github.com/julianstephens/waketrack/internal/models"
	"github.com/julianstephens/waketrack/internal/repository"
	"github.com/julianstephens/waketrack/internal/utils"
)

var ErrNotFound = errors.New("goal not found")

type Service struct {
	repo repository.Repository
}

func New(repo repository.Repository) *Service {
	return &Service{repo: repo}
}

// Input is the user-supplied part of a goal.
type Input struct {
	Title  string
	Type   models.GoalType
	Target int
	Metric models.GoalMetric
}

func (in Input) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return wterrors.Validation("title", "must not be empty")
	}
	if in.Target <= 0 {
		return wterrors.Validation("target", "must be greater than zero, got %d", in.Target)
	}
	switch in.Type {
	case models.GoalDaily, models.GoalWeekly:
	default:
		return wterrors.Validation("type", "unknown goal type %q (want daily or weekly)", in.Type)
	}
	switch in.Metric {
	case models.MetricProductiveHours, models.MetricTotalActivities, models.MetricStreakDays:
	default:
		return wterrors.Validation("metric", "unknown metric %q", in.Metric)
	}
	return nil
}

func (s *Service) List(ctx context.Context, user string) ([]models.Goal, error) {
	return s.repo.GetGoals(ctx, user)
}

// Create validates in and appends an active goal.
func (s *Service) Create(ctx context.Context, user string, in Input, now time.Time) (models.Goal, error) {
	if err := in.validate(); err != nil {
		return models.Goal{}, err
	}
	goals, err := s.repo.GetGoals(ctx, user)
	if err != nil {
		return models.Goal{}, err
	}
	g := models.Goal{
		ID:        uuid.New().String(),
		Title:     strings.TrimSpace(in.Title),
		Type:      in.Type,
		Target:    in.Target,
		Metric:    in.Metric,
		CreatedAt: now.UTC(),
		IsActive:  true,
	}
	if err := s.repo.PutGoals(ctx, user, append(goals, g)); err != nil {
		return models.Goal{}, err
	}
	return g, nil
}

func (s *Service) Delete(ctx context.Context, user, id string) error {
	goals, err := s.repo.GetGoals(ctx, user)
	if err != nil {
		return err
	}
	kept := goals[:0]
	for _, g := range goals {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	if len(kept) == len(goals) {
		return ErrNotFound
	}
	return s.repo.PutGoals(ctx, user, kept)
}

// SetActive turns a goal on or off without deleting it.
func (s *Service) SetActive(ctx context.Context, user, id string, active bool) error {
	goals, err := s.repo.GetGoals(ctx, user)
	if err != nil {
		return err
	}
	for i := range goals {
		if goals[i].ID == id {
			goals[i].IsActive = active
			return s.repo.PutGoals(ctx, user, goals)
		}
	}
	return ErrNotFound
}

// Progress measures g as of now. Daily goals look at today, weekly goals at
// the Monday–Sunday week containing now. Streak goals always use the
// current streak.
func (s *Service) Progress(ctx context.Context, user string, g models.Goal, now time.Time) (models.GoalProgress, error) {
	var value int
	if g.Metric == models.MetricStreakDays {
		st, err := metrics.Streak(ctx, s.repo, user, now, constants.StreakLookbackDays)
		if err != nil {
			return models.GoalProgress{}, err
		}
		value = st.Current
	} else {
		start, end := now, now
		if g.Type == models.GoalWeekly {
			start, end = utils.WeekStart(now), utils.WeekEnd(now)
		}
		for _, date := range utils.DateRange(start, end) {
			day, ok, err := s.repo.GetDay(ctx, user, date)
			if err != nil {
				return models.GoalProgress{}, err
			}
			if !ok {
				continue
			}
			if g.Metric == models.MetricTotalActivities {
				value += metrics.Summarize(date, day).Total()
			} else {
				value += metrics.DayCounts(day).Productive
			}
		}
	}

	p := models.GoalProgress{Goal: g, Progress: value, Completed: value >= g.Target}
	if g.Target > 0 {
		p.Percentage = math.Min(float64(value)/float64(g.Target)*100, 100)
	}
	return p, nil
}

// ActiveProgress measures every active goal of user.
func (s *Service) ActiveProgress(ctx context.Context, user string, now time.Time) ([]models.GoalProgress, error) {
	goals, err := s.repo.GetGoals(ctx, user)
	if err != nil {
		return nil, err
	}
	var out []models.GoalProgress
	for _, g := range goals {
		if !g.IsActive {
			continue
		}
		p, err := s.Progress(ctx, user, g, now)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// DailyProductiveTarget returns the largest active daily productive-hours
// target, or fallback when there is none.
func DailyProductiveTarget(goals []models.Goal, fallback float64) float64 {
	best := 0
	for _, g := range goals {
		if g.IsActive && g.Type == models.GoalDaily && g.Metric == models.MetricProductiveHours && g.Target > best {
			best = g.Target
		}
	}
	if best == 0 {
		return fallback
	}
	return float64(best)
}
