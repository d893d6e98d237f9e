// Package activity reads and writes hour-by-hour day records.
package activity

import (
	"context"
	"strings"
	"time"

	"github.com/julianstephens/waketrack/internal/constants"
	wterrors "github.com/julianstephens/waketrack/internal/errors"
	"github.com/julianstephens/waketrack/internal/logger"
	"github.com/julianstephens/waketrack/internal/metrics"
	"github.com/julianstephens/waketrack/internal/models"
	"github.com/julianstephens/waketrack/internal/repository"
	"github.com/julianstephens/waketrack/internal/utils"
)

type Store struct {
	repo repository.Repository
}

func New(repo repository.Repository) *Store {
	return &Store{repo: repo}
}

func validateDate(field, date string) error {
	if !utils.ValidateDate(date) {
		return wterrors.Validation(field, "invalid date %q (want %s)", date, constants.DateFormat)
	}
	return nil
}

// LoadDay returns the record for date with all 24 slots present. A date
// with nothing stored, or with a record that cannot be read, comes back empty.
func (s *Store) LoadDay(ctx context.Context, user, date string) (models.DayRecord, error) {
	if err := validateDate("date", date); err != nil {
		return nil, err
	}
	day := models.EmptyDay()
	stored, ok, err := s.repo.GetDay(ctx, user, date)
	if err != nil {
		return nil, err
	}
	if ok {
		for k, v := range stored {
			day[k] = v
		}
	}
	return day, nil
}

// SaveDay replaces the stored record for date.
func (s *Store) SaveDay(ctx context.Context, user, date string, day models.DayRecord) error {
	if err := validateDate("date", date); err != nil {
		return err
	}
	return s.repo.PutDay(ctx, user, date, day)
}

// SetSlot writes a single hour and returns the updated day.
func (s *Store) SetSlot(ctx context.Context, user, date string, hour int, text string, category models.Category) (models.DayRecord, error) {
	if hour < 0 || hour >= constants.HoursPerDay {
		return nil, wterrors.Validation("hour", "must be between 0 and 23, got %d", hour)
	}
	day, err := s.LoadDay(ctx, user, date)
	if err != nil {
		return nil, err
	}
	day[models.HourKey(hour)] = models.ActivitySlot{Text: strings.TrimSpace(text), Category: category}
	if err := s.repo.PutDay(ctx, user, date, day); err != nil {
		return nil, err
	}
	logger.Debug("Slot updated", "user", user, "date", date, "hour", hour, "category", category)
	return day, nil
}

func (s *Store) ClearDay(ctx context.Context, user, date string) error {
	if err := validateDate("date", date); err != nil {
		return err
	}
	return s.repo.DeleteDay(ctx, user, date)
}

// CopyDay overwrites dst with the record stored for src and returns how many
// activities were copied. A source without any activity is rejected.
func (s *Store) CopyDay(ctx context.Context, user, src, dst string) (int, error) {
	if err := validateDate("source", src); err != nil {
		return 0, err
	}
	if err := validateDate("target", dst); err != nil {
		return 0, err
	}
	day, ok, err := s.repo.GetDay(ctx, user, src)
	if err != nil {
		return 0, err
	}
	n := countActivities(day)
	if !ok || n == 0 {
		return 0, wterrors.Validation("source", "no activities found for %s", src)
	}
	if err := s.repo.PutDay(ctx, user, dst, day); err != nil {
		return 0, err
	}
	return n, nil
}

// DuplicateWeek copies the seven days starting at srcStart onto the seven
// days starting at dstStart. Days with nothing stored are skipped. It
// returns the number of days copied.
func (s *Store) DuplicateWeek(ctx context.Context, user, srcStart, dstStart string) (int, error) {
	if err := validateDate("source", srcStart); err != nil {
		return 0, err
	}
	if err := validateDate("target", dstStart); err != nil {
		return 0, err
	}
	copied := 0
	for i := 0; i < 7; i++ {
		src, _ := utils.AddDays(srcStart, i)
		dst, _ := utils.AddDays(dstStart, i)
		day, ok, err := s.repo.GetDay(ctx, user, src)
		if err != nil {
			return copied, err
		}
		if !ok {
			continue
		}
		if err := s.repo.PutDay(ctx, user, dst, day); err != nil {
			return copied, err
		}
		copied++
	}
	return copied, nil
}

// ClearAll deletes every day record and the gamification record of user.
// It returns the number of days removed.
func (s *Store) ClearAll(ctx context.Context, user string) (int, error) {
	dates, err := s.repo.DayDates(ctx, user)
	if err != nil {
		return 0, err
	}
	for i, date := range dates {
		if err := s.repo.DeleteDay(ctx, user, date); err != nil {
			return i, err
		}
	}
	if err := s.repo.DeleteGamification(ctx, user); err != nil {
		return len(dates), err
	}
	logger.Info("Cleared all data", "user", user, "days", len(dates))
	return len(dates), nil
}

// LoadRange summarizes every date from start to end inclusive.
func (s *Store) LoadRange(ctx context.Context, user string, start, end time.Time) ([]models.DaySummary, error) {
	return metrics.LoadRange(ctx, s.repo, user, start, end)
}

func countActivities(day models.DayRecord) int {
	n := 0
	for _, slot := range day {
		if !slot.IsEmpty() {
			n++
		}
	}
	return n
}
