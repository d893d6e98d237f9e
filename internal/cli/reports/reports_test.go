package reports

import (
	"strings"
	"testing"

	"github.com/julianstephens/waketrack/internal/cli"
	"github.com/julianstephens/waketrack/internal/cli/clitest"
	"github.com/julianstephens/waketrack/internal/models"
)

func seed(t *testing.T, ctx *cli.Context, days map[string]map[int]models.ActivitySlot) {
	t.Helper()
	for date, slots := range days {
		day := models.EmptyDay()
		for h, s := range slots {
			day[models.HourKey(h)] = s
		}
		if err := ctx.Repo.PutDay(ctx.Ctx, clitest.User, date, day); err != nil {
			t.Fatal(err)
		}
	}
}

var (
	work = models.ActivitySlot{Text: "coding", Category: models.CategoryProductive}
	feed = models.ActivitySlot{Text: "scrolling", Category: models.CategoryUnproductive}
	meal = models.ActivitySlot{Text: "lunch", Category: models.CategoryNeutral}
)

func seedWeek(t *testing.T, ctx *cli.Context) {
	seed(t, ctx, map[string]map[int]models.ActivitySlot{
		"2026-03-09": {9: work, 10: work, 12: meal},
		"2026-03-10": {9: work, 20: feed},
		"2026-03-11": {9: work, 10: work, 11: work, 12: meal, 21: feed},
	})
}

func TestStats(t *testing.T) {
	ctx, out := clitest.New(t)
	seedWeek(t, ctx)

	if err := (&StatsCmd{To: "today", Days: 7}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	for _, want := range []string{
		"2026-03-05 → 2026-03-11",
		"Productive hours:   6",
		"Unproductive hours: 2",
		"Neutral hours:      2",
		"Productivity:       60.0%",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestStatsRejectsInvertedRange(t *testing.T) {
	ctx, _ := clitest.New(t)
	if err := (&StatsCmd{From: "tomorrow", To: "today", Days: 7}).Run(ctx); err == nil {
		t.Error("expected error")
	}
}

func TestTrend(t *testing.T) {
	ctx, out := clitest.New(t)
	seedWeek(t, ctx)

	if err := (&TrendCmd{Period: "week", Days: 14}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Week of Mar 9") || !strings.Contains(out.String(), "10 logged") {
		t.Errorf("trend output:\n%s", out)
	}

	if err := (&TrendCmd{Period: "year", Days: 14}).Run(ctx); err == nil {
		t.Error("expected error for unknown period")
	}
}

func TestTrendEmpty(t *testing.T) {
	ctx, out := clitest.New(t)
	if err := (&TrendCmd{Period: "month", Days: 30}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No activity logged") {
		t.Errorf("output:\n%s", out)
	}
}

func TestPatterns(t *testing.T) {
	ctx, out := clitest.New(t)
	seedWeek(t, ctx)
	if err := (&PatternsCmd{Days: 7}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	if !strings.Contains(got, "9:00 AM") || !strings.Contains(got, "3 sessions") {
		t.Errorf("patterns output:\n%s", got)
	}
	if strings.Contains(got, "3:00 AM") {
		t.Errorf("hours without sessions should be hidden:\n%s", got)
	}
}

func TestStreak(t *testing.T) {
	ctx, out := clitest.New(t)
	seedWeek(t, ctx)
	if err := (&StreakCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Current streak: 3 days") {
		t.Errorf("streak output:\n%s", out)
	}
}

func TestInsightsWithoutData(t *testing.T) {
	ctx, out := clitest.New(t)
	if err := (&InsightsCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Start Tracking Your Activities") {
		t.Errorf("output:\n%s", out)
	}
}

func TestInsights(t *testing.T) {
	ctx, out := clitest.New(t)
	seedWeek(t, ctx)
	if err := (&InsightsCmd{Days: 7}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	if !strings.Contains(got, "2026-03-05 → 2026-03-11") || !strings.Contains(got, "Recommendations") {
		t.Errorf("insights output:\n%s", got)
	}
}

func TestSuggest(t *testing.T) {
	ctx, out := clitest.New(t)
	seedWeek(t, ctx)
	if err := (&SuggestCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "9:00 AM") {
		t.Errorf("suggest output should name the best hour:\n%s", out)
	}
}

func TestPoints(t *testing.T) {
	ctx, out := clitest.New(t)
	seedWeek(t, ctx)
	if err := (&PointsCmd{Badges: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	for _, want := range []string{"Level 1", "Streak 3", "Weekly challenge", "Badges"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
	if _, ok, _ := ctx.Repo.GetGamification(ctx.Ctx, clitest.User); !ok {
		t.Error("refresh did not persist the record")
	}
}
