// Package scheduler runs named repeating tasks on cron schedules. Tasks run
// one at a time on the goroutine that called Run.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"

	"github.com/julianstephens/waketrack/internal/logger"
)

// TaskFunc receives the scheduled time it was fired for.
type TaskFunc func(ctx context.Context, now time.Time) error

type task struct {
	id       int
	name     string
	schedule cron.Schedule
	fn       TaskFunc
	next     time.Time
}

type Scheduler struct {
	clock Clock
	log   *log.Logger

	mu     sync.Mutex
	tasks  []*task
	nextID int
	wake   chan struct{}
}

func New(clock Clock) *Scheduler {
	if clock == nil {
		clock = RealClock{}
	}
	return &Scheduler{clock: clock, log: logger.Component("scheduler"), wake: make(chan struct{}, 1)}
}

// ParseSpec accepts standard five-field cron expressions and descriptors
// such as "@hourly" or "@every 1m".
func ParseSpec(spec string) (cron.Schedule, error) {
	s, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return s, nil
}

// Every registers fn to run on spec. The returned function cancels the task.
func (s *Scheduler) Every(name, spec string, fn TaskFunc) (func(), error) {
	sched, err := ParseSpec(spec)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.nextID++
	t := &task{id: s.nextID, name: name, schedule: sched, fn: fn, next: sched.Next(s.clock.Now())}
	s.tasks = append(s.tasks, t)
	s.mu.Unlock()
	s.poke()

	s.log.Debug("Task scheduled", "task", name, "spec", spec, "next", t.next)
	return func() { s.cancel(t.id) }, nil
}

func (s *Scheduler) cancel(id int) {
	s.mu.Lock()
	for i, t := range s.tasks {
		if t.id == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	s.poke()
}

func (s *Scheduler) poke() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Len reports the number of registered tasks.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

func (s *Scheduler) earliest() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var next time.Time
	for _, t := range s.tasks {
		if next.IsZero() || t.next.Before(next) {
			next = t.next
		}
	}
	return next, !next.IsZero()
}

// due collects the tasks whose time has come and moves each to its next slot.
func (s *Scheduler) due(now time.Time) []*task {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*task
	for _, t := range s.tasks {
		if !t.next.After(now) {
			out = append(out, &task{name: t.name, fn: t.fn, next: t.next})
			t.next = t.schedule.Next(now)
		}
	}
	return out
}

// Run blocks until ctx is cancelled. A task that returns an error is logged
// and stays scheduled.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		var timer <-chan time.Time
		if next, ok := s.earliest(); ok {
			timer = s.clock.After(next.Sub(s.clock.Now()))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.wake:
			continue
		case <-timer:
		}

		for _, t := range s.due(s.clock.Now()) {
			if err := t.fn(ctx, t.next); err != nil {
				s.log.Warn("Task failed", "task", t.name, "error", err)
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
		}
	}
}
