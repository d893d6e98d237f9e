// Package reminders schedules break reminders and holds notification
// preferences. Both are stored per user.
package reminders

import (
	"context"
	"errors"
	"fmt"
	"time"

	wterrors "github.com/julianstephens/waketrack/internal/errors"
	"github.com/julianstephens/waketrack/internal/models"
	"github.com/julianstephens/waketrack/internal/repository"
)

var ErrNotFound = errors.New("reminder not found")

type Service struct {
	repo repository.Repository
}

func New(repo repository.Repository) *Service {
	return &Service{repo: repo}
}

// List returns the reminders of user. Users without stored reminders get
// the built-in set, counting from now.
func (s *Service) List(ctx context.Context, user string, now time.Time) ([]models.BreakReminder, error) {
	rs, ok, err := s.repo.GetBreakReminders(ctx, user)
	if err != nil {
		return nil, err
	}
	if !ok || len(rs) == 0 {
		return models.DefaultBreakReminders(now), nil
	}
	return rs, nil
}

func (s *Service) IsActive(ctx context.Context, user string) (bool, error) {
	return s.repo.GetRemindersActive(ctx, user)
}

func (s *Service) SetActive(ctx context.Context, user string, active bool) error {
	return s.repo.PutRemindersActive(ctx, user, active)
}

// modify loads the reminders, applies fn to the one with id and saves.
func (s *Service) modify(ctx context.Context, user, id string, now time.Time, fn func(*models.BreakReminder) error) (models.BreakReminder, error) {
	rs, err := s.List(ctx, user, now)
	if err != nil {
		return models.BreakReminder{}, err
	}
	for i := range rs {
		if rs[i].ID != id {
			continue
		}
		if err := fn(&rs[i]); err != nil {
			return models.BreakReminder{}, err
		}
		if err := s.repo.PutBreakReminders(ctx, user, rs); err != nil {
			return models.BreakReminder{}, err
		}
		return rs[i], nil
	}
	return models.BreakReminder{}, ErrNotFound
}

// Toggle flips whether a reminder is enabled.
func (s *Service) Toggle(ctx context.Context, user, id string, now time.Time) (models.BreakReminder, error) {
	return s.modify(ctx, user, id, now, func(r *models.BreakReminder) error {
		r.Enabled = !r.Enabled
		return nil
	})
}

// SetInterval changes how often a reminder fires, in minutes.
func (s *Service) SetInterval(ctx context.Context, user, id string, minutes int, now time.Time) (models.BreakReminder, error) {
	if minutes <= 0 {
		return models.BreakReminder{}, wterrors.Validation("interval", "must be at least one minute")
	}
	return s.modify(ctx, user, id, now, func(r *models.BreakReminder) error {
		r.Interval = minutes
		return nil
	})
}

// MarkShown restarts the reminder's interval at now.
func (s *Service) MarkShown(ctx context.Context, user, id string, now time.Time) (models.BreakReminder, error) {
	return s.modify(ctx, user, id, now, func(r *models.BreakReminder) error {
		r.LastShown = now
		return nil
	})
}

// Due returns the enabled reminders whose interval has elapsed at now.
func Due(rs []models.BreakReminder, now time.Time) []models.BreakReminder {
	var out []models.BreakReminder
	for _, r := range rs {
		if r.Enabled && !now.Before(r.LastShown.Add(interval(r))) {
			out = append(out, r)
		}
	}
	return out
}

func interval(r models.BreakReminder) time.Duration {
	return time.Duration(r.Interval) * time.Minute
}

// Check returns the reminders due at now and marks them shown. Nothing is
// due while reminders are switched off for the user.
func (s *Service) Check(ctx context.Context, user string, now time.Time) ([]models.BreakReminder, error) {
	active, err := s.IsActive(ctx, user)
	if err != nil || !active {
		return nil, err
	}
	rs, err := s.List(ctx, user, now)
	if err != nil {
		return nil, err
	}
	due := Due(rs, now)
	if len(due) == 0 {
		return nil, nil
	}
	fired := make(map[string]bool, len(due))
	for _, r := range due {
		fired[r.ID] = true
	}
	for i := range rs {
		if fired[rs[i].ID] {
			rs[i].LastShown = now
		}
	}
	return due, s.repo.PutBreakReminders(ctx, user, rs)
}

// NextTime is when r fires next; ok is false for a disabled reminder.
func NextTime(r models.BreakReminder) (time.Time, bool) {
	if !r.Enabled {
		return time.Time{}, false
	}
	return r.LastShown.Add(interval(r)), true
}

// TimeUntilNext renders the wait until r fires: "Due now", "1h 5m" or
// "12m". Disabled reminders give "".
func TimeUntilNext(r models.BreakReminder, now time.Time) string {
	next, ok := NextTime(r)
	if !ok {
		return ""
	}
	d := next.Sub(now)
	if d <= 0 {
		return "Due now"
	}
	minutes := int(d / time.Minute)
	if hours := minutes / 60; hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes%60)
	}
	return fmt.Sprintf("%dm", minutes)
}

// Settings returns the notification preferences of user.
func (s *Service) Settings(ctx context.Context, user string) (models.NotificationSettings, error) {
	return s.repo.GetNotificationSettings(ctx, user)
}

// UpdateSettings applies fn to the stored preferences of user.
func (s *Service) UpdateSettings(ctx context.Context, user string, fn func(*models.NotificationSettings)) (models.NotificationSettings, error) {
	ns, err := s.repo.GetNotificationSettings(ctx, user)
	if err != nil {
		return models.NotificationSettings{}, err
	}
	fn(&ns)
	if ns.BreakInterval <= 0 {
		return models.NotificationSettings{}, wterrors.Validation("breakInterval", "must be at least one minute")
	}
	return ns, s.repo.PutNotificationSettings(ctx, user, ns)
}
