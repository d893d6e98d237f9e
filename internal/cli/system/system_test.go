package system

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/waketrack/internal/activity"
	"github.com/julianstephens/waketrack/internal/auth"
	"github.com/julianstephens/waketrack/internal/cli/clitest"
	"github.com/julianstephens/waketrack/internal/config"
	"github.com/julianstephens/waketrack/internal/models"
	"github.com/julianstephens/waketrack/internal/reminders"
	"github.com/julianstephens/waketrack/internal/scheduler"
)

func TestInitLoginWhoami(t *testing.T) {
	ctx, out := clitest.New(t)
	ctx.UserFlag = ""

	if err := (&InitCmd{Email: " ada@example.com "}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	if !strings.Contains(got, "Wrote config to") || !strings.Contains(got, "Initialized memory storage at memory") {
		t.Errorf("init output:\n%s", got)
	}
	if _, err := config.Load(ctx.ConfigPath); err != nil {
		t.Errorf("written config does not load: %v", err)
	}

	out.Reset()
	if err := (&WhoamiCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if want := auth.UserID("ada@example.com"); strings.TrimSpace(out.String()) != want {
		t.Errorf("whoami = %q, want %q", out.String(), want)
	}

	if err := (&LogoutCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := (&WhoamiCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Not signed in") {
		t.Errorf("whoami after logout:\n%s", out)
	}
}

func TestLoginRejectsBadEmail(t *testing.T) {
	ctx, _ := clitest.New(t)
	if err := (&LoginCmd{Email: "not-an-email"}).Run(ctx); err == nil {
		t.Error("expected error")
	}
}

func TestSettingsSavesConfig(t *testing.T) {
	ctx, out := clitest.New(t)
	tz := "Europe/Berlin"
	goal := 6
	if err := (&SettingsCmd{Timezone: &tz, DailyGoal: &goal}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Settings updated.") {
		t.Errorf("output:\n%s", out)
	}
	cfg, err := config.Load(ctx.ConfigPath)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Timezone != tz || cfg.Goals.DailyProductiveHours != 6 {
		t.Errorf("saved config = %+v", cfg)
	}
	if ctx.Config.Timezone != tz {
		t.Errorf("context config not updated: %q", ctx.Config.Timezone)
	}

	bad := "Mars/Olympus"
	if err := (&SettingsCmd{Timezone: &bad}).Run(ctx); err == nil {
		t.Error("expected error for unknown timezone")
	}
	if ctx.Config.Timezone != tz {
		t.Errorf("failed update changed config: %q", ctx.Config.Timezone)
	}
}

func TestWatcherRegister(t *testing.T) {
	tests := []struct {
		name    string
		edit    func(*config.WatchConfig)
		want    int
		wantErr string
	}{
		{"defaults", func(*config.WatchConfig) {}, 4, ""},
		{"disabled job", func(w *config.WatchConfig) { w.Reminders = "" }, 3, ""},
		{"bad spec", func(w *config.WatchConfig) { w.Refresh = "every so often" }, 0, "watch.refresh"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := clitest.New(t)
			tt.edit(&ctx.Config.Watch)
			s := scheduler.New(scheduler.NewFakeClock(clitest.Now))
			err := (&watcher{ctx: ctx, user: clitest.User}).register(s)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("err = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if s.Len() != tt.want {
				t.Errorf("registered %d tasks, want %d", s.Len(), tt.want)
			}
		})
	}
}

func TestWatcherReminders(t *testing.T) {
	ctx, _ := clitest.New(t)
	sent := ctx.Notifier.(*clitest.Notifier)
	w := &watcher{ctx: ctx, user: clitest.User}

	if err := w.reminders(ctx.Ctx, clitest.Now); err != nil {
		t.Fatal(err)
	}
	if len(sent.Sent) != 0 {
		t.Fatalf("reminders fired while switched off: %v", sent.Sent)
	}

	if err := reminders.New(ctx.Repo).SetActive(ctx.Ctx, clitest.User, true); err != nil {
		t.Fatal(err)
	}
	if err := ctx.Repo.PutBreakReminders(ctx.Ctx, clitest.User, models.DefaultBreakReminders(clitest.Now.Add(-50*time.Minute))); err != nil {
		t.Fatal(err)
	}
	if err := w.reminders(ctx.Ctx, clitest.Now); err != nil {
		t.Fatal(err)
	}
	// hydration (60 min) is not due yet.
	if len(sent.Sent) != 3 {
		t.Fatalf("sent %d reminders, want 3: %v", len(sent.Sent), sent.Sent)
	}
	for _, s := range sent.Sent {
		if !strings.HasPrefix(s, "Break reminder: ") {
			t.Errorf("unexpected notification %q", s)
		}
	}

	if err := w.reminders(ctx.Ctx, clitest.Now.Add(time.Minute)); err != nil {
		t.Fatal(err)
	}
	if len(sent.Sent) != 3 {
		t.Errorf("reminders fired twice: %v", sent.Sent)
	}
}

func TestWatcherSummaries(t *testing.T) {
	ctx, _ := clitest.New(t)
	sent := ctx.Notifier.(*clitest.Notifier)
	w := &watcher{ctx: ctx, user: clitest.User}

	if err := w.dailySummary(ctx.Ctx, clitest.Now); err != nil {
		t.Fatal(err)
	}
	if _, err := activity.New(ctx.Repo).SetSlot(ctx.Ctx, clitest.User, "2026-03-11", 9, "coding", models.CategoryProductive); err != nil {
		t.Fatal(err)
	}
	if err := w.dailySummary(ctx.Ctx, clitest.Now); err != nil {
		t.Fatal(err)
	}
	if err := w.weeklyReport(ctx.Ctx, clitest.Now); err != nil {
		t.Fatal(err)
	}
	if len(sent.Sent) != 3 {
		t.Fatalf("sent = %v", sent.Sent)
	}
	if !strings.Contains(sent.Sent[0], "Nothing logged today") {
		t.Errorf("empty summary = %q", sent.Sent[0])
	}
	if want := "Daily summary: 1 productive of 1 logged hours (goal 8)."; sent.Sent[1] != want {
		t.Errorf("summary = %q, want %q", sent.Sent[1], want)
	}
	if !strings.HasPrefix(sent.Sent[2], "Weekly report: ") {
		t.Errorf("weekly = %q", sent.Sent[2])
	}

	if _, err := reminders.New(ctx.Repo).UpdateSettings(ctx.Ctx, clitest.User, func(s *models.NotificationSettings) {
		s.ProductivityInsights = false
		s.WeeklyReports = false
	}); err != nil {
		t.Fatal(err)
	}
	if err := w.dailySummary(ctx.Ctx, clitest.Now); err != nil {
		t.Fatal(err)
	}
	if err := w.weeklyReport(ctx.Ctx, clitest.Now); err != nil {
		t.Fatal(err)
	}
	if len(sent.Sent) != 3 {
		t.Errorf("notifications sent while disabled: %v", sent.Sent[3:])
	}
}

func TestWatcherRefresh(t *testing.T) {
	ctx, _ := clitest.New(t)
	w := &watcher{ctx: ctx, user: clitest.User}
	if err := w.refresh(ctx.Ctx, clitest.Now); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := ctx.Repo.GetGamification(ctx.Ctx, clitest.User); err != nil || !ok {
		t.Errorf("refresh did not persist gamification: ok=%v err=%v", ok, err)
	}
}

func TestMaskPassword(t *testing.T) {
	tests := []struct{ in, want string }{
		{"postgres://bob:secret@db:5432/wt", "postgres://bob:****@db:5432/wt"},
		{"postgres://db:5432/wt", "postgres://db:5432/wt"},
		{"host=db user=bob password=secret", "host=db user=bob password=****"},
	}
	for _, tt := range tests {
		if got := maskPassword(tt.in); got != tt.want {
			t.Errorf("maskPassword(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
