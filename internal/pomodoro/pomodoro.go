// Package pomodoro implements the work/break cycle timer. The timer itself
// is a plain state machine advanced one second at a time by Tick.
package pomodoro

import (
	"context"
	"fmt"

	wterrors "github.com/julianstephens/waketrack/internal/errors"
	"github.com/julianstephens/waketrack/internal/models"
	"github.com/julianstephens/waketrack/internal/repository"
)

// Transition reports a finished phase.
type Transition struct {
	From    models.SessionType
	To      models.SessionType
	Title   string
	Message string
}

type Timer struct {
	Settings models.PomodoroSettings
	Session  models.PomodoroSession
}

// NewTimer returns a timer at the start of a work phase.
func NewTimer(s models.PomodoroSettings) *Timer {
	t := &Timer{Settings: s}
	t.ResetAll()
	return t
}

func (t *Timer) seconds(kind models.SessionType) int {
	switch kind {
	case models.SessionShortBreak:
		return t.Settings.ShortBreak * 60
	case models.SessionLongBreak:
		return t.Settings.LongBreak * 60
	default:
		return t.Settings.WorkDuration * 60
	}
}

func (t *Timer) enter(kind models.SessionType, completed int) {
	d := t.seconds(kind)
	t.Session = models.PomodoroSession{Type: kind, Duration: d, Remaining: d, CompletedSessions: completed}
}

func (t *Timer) Start() { t.Session.IsActive = true }
func (t *Timer) Pause() { t.Session.IsActive = false }

// Reset rewinds the current phase.
func (t *Timer) Reset() {
	t.Session.Remaining = t.Session.Duration
	t.Session.IsActive = false
}

// ResetAll starts over from the first work phase.
func (t *Timer) ResetAll() {
	t.enter(models.SessionWork, 0)
}

// Skip finishes the current phase immediately.
func (t *Timer) Skip() Transition {
	return t.complete()
}

// Tick advances a running timer by one second. It returns the transition
// when the phase ran out.
func (t *Timer) Tick() (Transition, bool) {
	if !t.Session.IsActive {
		return Transition{}, false
	}
	if t.Session.Remaining > 0 {
		t.Session.Remaining--
	}
	if t.Session.Remaining > 0 {
		return Transition{}, false
	}
	return t.complete(), true
}

// complete moves to the next phase, stopped. Every longBreakInterval-th
// finished work phase earns a long break.
func (t *Timer) complete() Transition {
	from := t.Session.Type
	if from != models.SessionWork {
		t.enter(models.SessionWork, t.Session.CompletedSessions)
		return Transition{
			From:    from,
			To:      models.SessionWork,
			Title:   "Break Complete!",
			Message: "Break time is over! Ready for another work session?",
		}
	}

	done := t.Session.CompletedSessions + 1
	next, kind := models.SessionShortBreak, "short"
	if t.Settings.LongBreakInterval > 0 && done%t.Settings.LongBreakInterval == 0 {
		next, kind = models.SessionLongBreak, "long"
	}
	t.enter(next, done)
	return Transition{
		From:    from,
		To:      next,
		Title:   "Work Session Complete!",
		Message: fmt.Sprintf("Work session complete! Time for a %s break.", kind),
	}
}

// UpdateSettings applies s and restarts the current phase with its new length.
func (t *Timer) UpdateSettings(s models.PomodoroSettings) error {
	if s.WorkDuration <= 0 || s.ShortBreak <= 0 || s.LongBreak <= 0 || s.LongBreakInterval <= 0 {
		return wterrors.Validation("settings", "durations and interval must be positive")
	}
	t.Settings = s
	d := t.seconds(t.Session.Type)
	t.Session.Duration = d
	t.Session.Remaining = d
	t.Session.IsActive = false
	return nil
}

// Progress is the elapsed share of the current phase in percent.
func (t *Timer) Progress() float64 {
	if t.Session.Duration == 0 {
		return 0
	}
	return float64(t.Session.Duration-t.Session.Remaining) / float64(t.Session.Duration) * 100
}

// FormatTime renders seconds as MM:SS.
func FormatTime(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Load restores the timer of user. A restored session is never running.
func Load(ctx context.Context, repo repository.Repository, user string) (*Timer, error) {
	settings, err := repo.GetPomodoroSettings(ctx, user)
	if err != nil {
		return nil, err
	}
	t := NewTimer(settings)
	session, ok, err := repo.GetPomodoroSession(ctx, user)
	if err != nil {
		return nil, err
	}
	if ok {
		session.IsActive = false
		t.Session = session
	}
	return t, nil
}

// Save persists both settings and session.
func Save(ctx context.Context, repo repository.Repository, user string, t *Timer) error {
	if err := repo.PutPomodoroSettings(ctx, user, t.Settings); err != nil {
		return err
	}
	return repo.PutPomodoroSession(ctx, user, t.Session)
}
