// Package timetracking compares planned activities with what was actually done.
package timetracking

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/julianstephens/waketrack/internal/constants"
	wterrors "github.com/julianstephens/waketrack/internal/errors"
	"github.com/julianstephens/waketrack/internal/models"
	"github.com/julianstephens/waketrack/internal/repository"
	"github.com/julianstephens/waketrack/internal/utils"
)

const DefaultPlannedMinutes = 60

var (
	ErrNotFound   = errors.New("time entry not found")
	ErrNoneActive = errors.New("no entry is being tracked")
)

type Tracker struct {
	repo repository.Repository
}

func New(repo repository.Repository) *Tracker {
	return &Tracker{repo: repo}
}

func (t *Tracker) load(ctx context.Context, user string) (models.TimeLog, error) {
	log, err := t.repo.GetTimeLog(ctx, user)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = models.TimeLog{}
	}
	return log, nil
}

func put(log models.TimeLog, e models.TimeEntry) {
	if log[e.Date] == nil {
		log[e.Date] = map[string]models.TimeEntry{}
	}
	log[e.Date][e.Hour] = e
}

// Plan creates an entry for the slot at date and hour, replacing any entry
// already planned there. A non-positive duration means the default hour.
func (t *Tracker) Plan(ctx context.Context, user, date string, hour int, activity string, category models.Category, minutes int, now time.Time) (models.TimeEntry, error) {
	if !utils.ValidateDate(date) {
		return models.TimeEntry{}, wterrors.Validation("date", "invalid date %q", date)
	}
	if hour < 0 || hour >= constants.HoursPerDay {
		return models.TimeEntry{}, wterrors.Validation("hour", "must be between 0 and 23, got %d", hour)
	}
	if minutes <= 0 {
		minutes = DefaultPlannedMinutes
	}
	log, err := t.load(ctx, user)
	if err != nil {
		return models.TimeEntry{}, err
	}
	key := models.HourKey(hour)
	e := models.TimeEntry{
		ID:              fmt.Sprintf("%s-%s-%d", date, key, now.UnixMilli()),
		Date:            date,
		Hour:            key,
		PlannedActivity: activity,
		PlannedDuration: minutes,
		Category:        category,
	}
	put(log, e)
	return e, t.repo.PutTimeLog(ctx, user, log)
}

// Active returns the entry currently being tracked, if any.
func (t *Tracker) Active(ctx context.Context, user string) (models.TimeEntry, bool, error) {
	log, err := t.load(ctx, user)
	if err != nil {
		return models.TimeEntry{}, false, err
	}
	e, ok := active(log)
	return e, ok, nil
}

func active(log models.TimeLog) (models.TimeEntry, bool) {
	for _, hours := range log {
		for _, e := range hours {
			if e.IsActive {
				return e, true
			}
		}
	}
	return models.TimeEntry{}, false
}

// Start begins tracking the entry at date and hour. Any other active entry
// is stopped first. An empty actual activity defaults to the planned one.
func (t *Tracker) Start(ctx context.Context, user, date string, hour int, actual string, now time.Time) (models.TimeEntry, error) {
	log, err := t.load(ctx, user)
	if err != nil {
		return models.TimeEntry{}, err
	}
	e, ok := log[date][models.HourKey(hour)]
	if !ok {
		return models.TimeEntry{}, ErrNotFound
	}
	if prev, ok := active(log); ok {
		stop(&prev, now)
		put(log, prev)
	}

	if actual == "" {
		actual = e.PlannedActivity
	}
	start := now
	e.ActualActivity = actual
	e.ActualStartTime = &start
	e.ActualEndTime = nil
	e.IsActive = true
	put(log, e)
	return e, t.repo.PutTimeLog(ctx, user, log)
}

func stop(e *models.TimeEntry, now time.Time) {
	end := now
	e.ActualEndTime = &end
	e.IsActive = false
}

// Stop ends the active entry.
func (t *Tracker) Stop(ctx context.Context, user string, now time.Time) (models.TimeEntry, error) {
	log, err := t.load(ctx, user)
	if err != nil {
		return models.TimeEntry{}, err
	}
	e, ok := active(log)
	if !ok {
		return models.TimeEntry{}, ErrNoneActive
	}
	stop(&e, now)
	put(log, e)
	return e, t.repo.PutTimeLog(ctx, user, log)
}

// Update applies fn to the entry at date and hour.
func (t *Tracker) Update(ctx context.Context, user, date string, hour int, fn func(*models.TimeEntry)) (models.TimeEntry, error) {
	log, err := t.load(ctx, user)
	if err != nil {
		return models.TimeEntry{}, err
	}
	e, ok := log[date][models.HourKey(hour)]
	if !ok {
		return models.TimeEntry{}, ErrNotFound
	}
	fn(&e)
	e.Date, e.Hour = date, models.HourKey(hour)
	put(log, e)
	return e, t.repo.PutTimeLog(ctx, user, log)
}

func (t *Tracker) Delete(ctx context.Context, user, date string, hour int) error {
	log, err := t.load(ctx, user)
	if err != nil {
		return err
	}
	key := models.HourKey(hour)
	if _, ok := log[date][key]; !ok {
		return ErrNotFound
	}
	delete(log[date], key)
	if len(log[date]) == 0 {
		delete(log, date)
	}
	return t.repo.PutTimeLog(ctx, user, log)
}

// Entries lists the entries of date in hour order.
func (t *Tracker) Entries(ctx context.Context, user, date string) ([]models.TimeEntry, error) {
	log, err := t.load(ctx, user)
	if err != nil {
		return nil, err
	}
	out := make([]models.TimeEntry, 0, len(log[date]))
	for _, e := range log[date] {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hour < out[j].Hour })
	return out, nil
}

// ActualMinutes is the tracked duration in whole minutes. A running entry
// is measured up to now.
func ActualMinutes(e models.TimeEntry, now time.Time) int {
	if e.ActualStartTime == nil {
		return 0
	}
	end := now
	if e.ActualEndTime != nil {
		end = *e.ActualEndTime
	}
	return int(math.Round(end.Sub(*e.ActualStartTime).Minutes()))
}

// Variance is actual minus planned minutes.
func Variance(e models.TimeEntry, now time.Time) int {
	return ActualMinutes(e, now) - e.PlannedDuration
}

// DayStats summarizes the entries of one day. ok is false when the day has none.
func DayStats(log models.TimeLog, date string, now time.Time) (models.TimeStats, bool) {
	entries := log[date]
	if len(entries) == 0 {
		return models.TimeStats{}, false
	}
	var s models.TimeStats
	for _, e := range entries {
		s.TotalPlanned += e.PlannedDuration
		s.TotalActual += ActualMinutes(e, now)
		if e.ActualEndTime != nil {
			s.CompletedTasks++
		}
		if e.IsActive {
			s.ActiveTasks++
		}
	}
	s.TotalTasks = len(entries)
	s.Variance = s.TotalActual - s.TotalPlanned
	if s.TotalPlanned > 0 {
		s.Efficiency = float64(s.TotalActual) / float64(s.TotalPlanned) * 100
	}
	return s, true
}

type DatedStats struct {
	Date string `json:"date"`
	models.TimeStats
}

// WeekStats returns DayStats for each day with entries among the seven
// days starting at start.
func WeekStats(log models.TimeLog, start string, now time.Time) []DatedStats {
	var out []DatedStats
	for i := 0; i < 7; i++ {
		date, err := utils.AddDays(start, i)
		if err != nil {
			return nil
		}
		if s, ok := DayStats(log, date, now); ok {
			out = append(out, DatedStats{Date: date, TimeStats: s})
		}
	}
	return out
}

// Log returns the full time log of user.
func (t *Tracker) Log(ctx context.Context, user string) (models.TimeLog, error) {
	return t.load(ctx, user)
}
