package tracking

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/waketrack/internal/cli/clitest"
	"github.com/julianstephens/waketrack/internal/models"
	"github.com/julianstephens/waketrack/internal/reminders"
	"github.com/julianstephens/waketrack/internal/timetracking"
)

func TestPlanStartStop(t *testing.T) {
	ctx, out := clitest.New(t)
	now := clitest.Now
	ctx.Clock = func() time.Time { return now }

	if err := (&PlanCmd{Hour: "9", Activity: []string{"coding"}, Minutes: 30, Date: "today"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&StartCmd{Hour: "09:00", Date: "today"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), `Tracking "coding"`) {
		t.Errorf("start output:\n%s", out)
	}

	now = now.Add(45 * time.Minute)
	out.Reset()
	if err := (&StopCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "after 45 min (+15 min over)") {
		t.Errorf("stop output:\n%s", out)
	}

	out.Reset()
	if err := (&StatusCmd{Date: "today"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	if !strings.Contains(got, "09:00  coding") || !strings.Contains(got, " 45/ 30 min") {
		t.Errorf("status output:\n%s", got)
	}
	if !strings.Contains(got, "efficiency 150%") {
		t.Errorf("status totals:\n%s", got)
	}

	if err := (&StopCmd{}).Run(ctx); !errors.Is(err, timetracking.ErrNoneActive) {
		t.Errorf("stop with nothing running: %v", err)
	}
}

func TestStartUnplannedFails(t *testing.T) {
	ctx, _ := clitest.New(t)
	if err := (&StartCmd{Hour: "9", Date: "today"}).Run(ctx); !errors.Is(err, timetracking.ErrNotFound) {
		t.Errorf("got %v", err)
	}
}

func TestWeekStatusAndUnplan(t *testing.T) {
	ctx, out := clitest.New(t)
	if err := (&PlanCmd{Hour: "14", Activity: []string{"review"}, Minutes: 60, Date: "yesterday"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := (&StatusCmd{Date: "today", Week: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Week 2026-03-09") || !strings.Contains(out.String(), "2026-03-10") {
		t.Errorf("week output:\n%s", out)
	}

	if err := (&UnplanCmd{Hour: "14", Date: "yesterday"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := (&StatusCmd{Date: "yesterday"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Nothing planned.") {
		t.Errorf("after unplan:\n%s", out)
	}
}

func TestReminderCommands(t *testing.T) {
	ctx, out := clitest.New(t)
	svc := reminders.New(ctx.Repo)

	if err := (&ReminderOnCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if on, _ := svc.IsActive(ctx.Ctx, clitest.User); !on {
		t.Error("reminders not switched on")
	}
	if err := (&ReminderToggleCmd{ID: "eyes"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&ReminderIntervalCmd{ID: "movement", Minutes: 10}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&ReminderIntervalCmd{ID: "movement", Minutes: 0}).Run(ctx); err == nil {
		t.Error("expected error for zero interval")
	}
	if err := (&ReminderToggleCmd{ID: "nap"}).Run(ctx); err == nil {
		t.Error("expected error for unknown reminder")
	}

	out.Reset()
	if err := (&ReminderListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	if !strings.Contains(got, "reminders are on") || !strings.Contains(got, "movement   every  10 min  10m") {
		t.Errorf("list output:\n%s", got)
	}
	if !strings.Contains(got, "disabled") {
		t.Errorf("eyes should show disabled:\n%s", got)
	}
}

func TestNotifySettings(t *testing.T) {
	ctx, out := clitest.New(t)
	off := false
	every := 90
	if err := (&NotifySettingsCmd{Weekly: &off, BreakInterval: &every}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	ns, err := reminders.New(ctx.Repo).Settings(ctx.Ctx, clitest.User)
	if err != nil {
		t.Fatal(err)
	}
	want := models.DefaultNotificationSettings()
	want.WeeklyReports = false
	want.BreakInterval = 90
	if ns != want {
		t.Errorf("settings = %+v, want %+v", ns, want)
	}
	if !strings.Contains(out.String(), "90 min") {
		t.Errorf("output:\n%s", out)
	}

	bad := 0
	if err := (&NotifySettingsCmd{BreakInterval: &bad}).Run(ctx); err == nil {
		t.Error("expected error for zero break interval")
	}
}

func TestPomodoroStatusAppliesSettings(t *testing.T) {
	ctx, out := clitest.New(t)
	if err := (&PomodoroCmd{Work: 50, Short: 10, Status: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "work · 50:00 left") {
		t.Errorf("status output:\n%s", out)
	}
	s, err := ctx.Repo.GetPomodoroSettings(ctx.Ctx, clitest.User)
	if err != nil {
		t.Fatal(err)
	}
	if s.WorkDuration != 50 || s.ShortBreak != 10 || s.LongBreak != 15 {
		t.Errorf("saved settings = %+v", s)
	}
}
