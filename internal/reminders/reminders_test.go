package reminders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/waketrack/internal/models"
	"github.com/julianstephens/waketrack/internal/repository"
	"github.com/julianstephens/waketrack/internal/storage"
)

func TestDue(t *testing.T) {
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	rs := models.DefaultBreakReminders(base)

	if got := Due(rs, base.Add(19*time.Minute)); len(got) != 0 {
		t.Errorf("Due(+19m) = %v", got)
	}
	got := Due(rs, base.Add(30*time.Minute))
	if len(got) != 2 || got[0].ID != "eyes" || got[1].ID != "posture" {
		t.Errorf("Due(+30m) = %+v", got)
	}

	rs[2].Enabled = false
	if got := Due(rs, base.Add(20*time.Minute)); len(got) != 0 {
		t.Errorf("disabled reminder fired: %+v", got)
	}
}

func TestTimeUntilNext(t *testing.T) {
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	r := models.BreakReminder{Interval: 65, LastShown: base, Enabled: true}

	tests := []struct {
		now  time.Time
		want string
	}{
		{base, "1h 5m"},
		{base.Add(53 * time.Minute), "12m"},
		{base.Add(65 * time.Minute), "Due now"},
	}
	for _, tt := range tests {
		if got := TimeUntilNext(r, tt.now); got != tt.want {
			t.Errorf("TimeUntilNext(%v) = %q, want %q", tt.now, got, tt.want)
		}
	}
	r.Enabled = false
	if got := TimeUntilNext(r, base); got != "" {
		t.Errorf("disabled = %q", got)
	}
}

func TestCheckMarksShown(t *testing.T) {
	ctx := context.Background()
	s := New(repository.New(storage.NewMemoryStore()))
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	if _, err := s.MarkShown(ctx, "u", "eyes", base); err != nil {
		t.Fatal(err)
	}
	if due, _ := s.Check(ctx, "u", base.Add(time.Hour)); len(due) != 0 {
		t.Errorf("inactive reminders fired: %v", due)
	}

	_ = s.SetActive(ctx, "u", true)
	due, err := s.Check(ctx, "u", base.Add(21*time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	if len(due) != 1 || due[0].ID != "eyes" {
		t.Fatalf("Check() = %+v", due)
	}
	if due, _ := s.Check(ctx, "u", base.Add(22*time.Minute)); len(due) != 0 {
		t.Errorf("reminder fired twice: %+v", due)
	}
}

func TestModify(t *testing.T) {
	ctx := context.Background()
	s := New(repository.New(storage.NewMemoryStore()))
	now := time.Now()

	r, err := s.Toggle(ctx, "u", "hydration", now)
	if err != nil || r.Enabled {
		t.Fatalf("Toggle() = %+v, %v", r, err)
	}
	if _, err := s.SetInterval(ctx, "u", "hydration", 0, now); err == nil {
		t.Error("SetInterval(0) accepted")
	}
	if _, err := s.Toggle(ctx, "u", "nope", now); !errors.Is(err, ErrNotFound) {
		t.Errorf("Toggle(unknown) = %v", err)
	}
	rs, _ := s.List(ctx, "u", now)
	if rs[0].Enabled {
		t.Error("toggle was not persisted")
	}
}

func TestSettingsAreUserScoped(t *testing.T) {
	ctx := context.Background()
	s := New(repository.New(storage.NewMemoryStore()))

	if _, err := s.UpdateSettings(ctx, "a", func(ns *models.NotificationSettings) { ns.WeeklyReports = false }); err != nil {
		t.Fatal(err)
	}
	a, _ := s.Settings(ctx, "a")
	b, _ := s.Settings(ctx, "b")
	if a.WeeklyReports || !b.WeeklyReports {
		t.Errorf("a = %+v, b = %+v", a, b)
	}
}
