package timetracking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/waketrack/internal/models"
	"github.com/julianstephens/waketrack/internal/repository"
	"github.com/julianstephens/waketrack/internal/storage"
)

func TestTrackingLifecycle(t *testing.T) {
	ctx := context.Background()
	tr := New(repository.New(storage.NewMemoryStore()))
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	if _, err := tr.Plan(ctx, "u", "2024-03-01", 9, "Write report", models.CategoryProductive, 0, base); err != nil {
		t.Fatal(err)
	}
	if _, err := tr.Plan(ctx, "u", "2024-03-01", 10, "Review PRs", models.CategoryProductive, 30, base); err != nil {
		t.Fatal(err)
	}

	e, err := tr.Start(ctx, "u", "2024-03-01", 9, "", base)
	if err != nil {
		t.Fatal(err)
	}
	if !e.IsActive || e.ActualActivity != "Write report" || e.PlannedDuration != 60 {
		t.Errorf("Start() = %+v", e)
	}

	// starting another entry stops the first
	if _, err := tr.Start(ctx, "u", "2024-03-01", 10, "Review", base.Add(50*time.Minute)); err != nil {
		t.Fatal(err)
	}
	stopped, err := tr.Stop(ctx, "u", base.Add(90*time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	if stopped.Hour != "10:00" || ActualMinutes(stopped, time.Time{}) != 40 || Variance(stopped, time.Time{}) != 10 {
		t.Errorf("Stop() = %+v", stopped)
	}
	if _, err := tr.Stop(ctx, "u", base); !errors.Is(err, ErrNoneActive) {
		t.Errorf("Stop() with nothing active = %v", err)
	}

	log, _ := tr.Log(ctx, "u")
	stats, ok := DayStats(log, "2024-03-01", base)
	if !ok {
		t.Fatal("DayStats() found nothing")
	}
	want := models.TimeStats{TotalPlanned: 90, TotalActual: 90, Variance: 0, CompletedTasks: 2, TotalTasks: 2, Efficiency: 100}
	if stats != want {
		t.Errorf("DayStats() = %+v, want %+v", stats, want)
	}

	week := WeekStats(log, "2024-02-26", base)
	if len(week) != 1 || week[0].Date != "2024-03-01" {
		t.Errorf("WeekStats() = %+v", week)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	tr := New(repository.New(storage.NewMemoryStore()))
	now := time.Now()

	_, _ = tr.Plan(ctx, "u", "2024-03-01", 14, "Gym", models.CategoryProductive, 45, now)
	e, err := tr.Update(ctx, "u", "2024-03-01", 14, func(e *models.TimeEntry) { e.PlannedDuration = 90 })
	if err != nil || e.PlannedDuration != 90 {
		t.Fatalf("Update() = %+v, %v", e, err)
	}
	if err := tr.Delete(ctx, "u", "2024-03-01", 14); err != nil {
		t.Fatal(err)
	}
	if err := tr.Delete(ctx, "u", "2024-03-01", 14); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() twice = %v", err)
	}
	entries, _ := tr.Entries(ctx, "u", "2024-03-01")
	if len(entries) != 0 {
		t.Errorf("Entries() = %+v", entries)
	}
	if _, err := tr.Plan(ctx, "u", "bad", 1, "x", models.CategoryNeutral, 0, now); err == nil {
		t.Error("Plan() accepted an invalid date")
	}
}
