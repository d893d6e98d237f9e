package system

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/waketrack/internal/activity"
	"github.com/julianstephens/waketrack/internal/cli"
	"github.com/julianstephens/waketrack/internal/insights"
	"github.com/julianstephens/waketrack/internal/logger"
	"github.com/julianstephens/waketrack/internal/metrics"
	"github.com/julianstephens/waketrack/internal/models"
	"github.com/julianstephens/waketrack/internal/reminders"
	"github.com/julianstephens/waketrack/internal/scheduler"
	"github.com/julianstephens/waketrack/internal/utils"
)

// WatchCmd runs until interrupted, refreshing gamification and sending
// reminder and summary notifications on the configured schedules.
type WatchCmd struct{}

func (c *WatchCmd) Run(ctx *cli.Context) error {
	user, err := ctx.User()
	if err != nil {
		return err
	}
	w := &watcher{ctx: ctx, user: user}
	s := scheduler.New(scheduler.RealClock{})
	if err := w.register(s); err != nil {
		return err
	}
	ctx.Printf("Watching for %s. Press Ctrl+C to stop.\n", user)
	if err := s.Run(ctx.Ctx); err != nil && ctx.Ctx.Err() == nil {
		return err
	}
	return nil
}

type watcher struct {
	ctx  *cli.Context
	user string
}

func (w *watcher) register(s *scheduler.Scheduler) error {
	jobs := []struct {
		name string
		spec string
		fn   scheduler.TaskFunc
	}{
		{"refresh", w.ctx.Config.Watch.Refresh, w.refresh},
		{"reminders", w.ctx.Config.Watch.Reminders, w.reminders},
		{"daily-summary", w.ctx.Config.Watch.DailySummary, w.dailySummary},
		{"weekly-report", w.ctx.Config.Watch.WeeklyReport, w.weeklyReport},
	}
	for _, j := range jobs {
		if j.spec == "" {
			logger.Debug("Watch task disabled", "task", j.name)
			continue
		}
		if _, err := s.Every(j.name, j.spec, j.fn); err != nil {
			return fmt.Errorf("watch.%s: %w", j.name, err)
		}
	}
	return nil
}

func (w *watcher) notify(title, text string) {
	if err := w.ctx.Notifier.Notify(title, text); err != nil {
		logger.Warn("Notification failed", "title", title, "error", err)
	}
}

func (w *watcher) refresh(ctx context.Context, now time.Time) error {
	res, err := w.ctx.Gamification().Refresh(ctx, w.user, w.local(now))
	if err != nil {
		return err
	}
	for _, b := range res.NewBadges {
		w.notify("Badge earned "+b.Icon, fmt.Sprintf("%s: %s", b.Name, b.Description))
	}
	if res.Completed != nil {
		w.notify("Challenge complete!", fmt.Sprintf("%s (+%d points)", res.Completed.Name, res.Completed.Points))
	}
	if res.LevelUp {
		w.notify("Level up!", fmt.Sprintf("You reached level %d", res.Data.Level))
	}
	return nil
}

func (w *watcher) reminders(ctx context.Context, now time.Time) error {
	due, err := reminders.New(w.ctx.Repo).Check(ctx, w.user, now)
	if err != nil {
		return err
	}
	for _, r := range due {
		w.notify("Break reminder", r.Message)
	}
	return nil
}

func (w *watcher) dailySummary(ctx context.Context, now time.Time) error {
	ns, err := w.ctx.Repo.GetNotificationSettings(ctx, w.user)
	if err != nil || !ns.ProductivityInsights {
		return err
	}
	now = w.local(now)
	day, err := activity.New(w.ctx.Repo).LoadDay(ctx, w.user, utils.FormatDate(now))
	if err != nil {
		return err
	}
	sum := metrics.Summarize(utils.FormatDate(now), day)
	if sum.Total() == 0 {
		w.notify("Daily summary", "Nothing logged today. A quick recap keeps your streak alive.")
		return nil
	}
	goal, err := w.ctx.DailyGoal(w.user)
	if err != nil {
		return err
	}
	w.notify("Daily summary", fmt.Sprintf("%d productive of %d logged hours (goal %.0f).", sum.Productive, sum.Total(), goal))
	return nil
}

func (w *watcher) weeklyReport(ctx context.Context, now time.Time) error {
	ns, err := w.ctx.Repo.GetNotificationSettings(ctx, w.user)
	if err != nil || !ns.WeeklyReports {
		return err
	}
	goal, err := w.ctx.DailyGoal(w.user)
	if err != nil {
		return err
	}
	rep, err := insights.Build(ctx, w.ctx.Repo, w.user, w.local(now), 7, goal)
	if err != nil {
		return err
	}
	all := append(append([]models.Insight{}, rep.Advanced...), rep.Recommendations...)
	if len(all) == 0 {
		return nil
	}
	w.notify("Weekly report: "+all[0].Title, all[0].Description)
	return nil
}

func (w *watcher) local(t time.Time) time.Time {
	return t.In(w.ctx.Now().Location())
}
