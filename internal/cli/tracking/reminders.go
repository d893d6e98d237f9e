package tracking

import (
	"fmt"

	"github.com/julianstephens/waketrack/internal/cli"
	"github.com/julianstephens/waketrack/internal/models"
	"github.com/julianstephens/waketrack/internal/reminders"
)

type ReminderListCmd struct{}

func (c *ReminderListCmd) Run(ctx *cli.Context) error {
	user, err := ctx.User()
	if err != nil {
		return err
	}
	svc := reminders.New(ctx.Repo)
	now := ctx.Now()
	active, err := svc.IsActive(ctx.Ctx, user)
	if err != nil {
		return err
	}
	list, err := svc.List(ctx.Ctx, user, now)
	if err != nil {
		return err
	}

	state := cli.WarningStyle.Render("off")
	if active {
		state = cli.SuccessStyle.Render("on")
	}
	ctx.Printf("%s  reminders are %s\n", cli.HeaderStyle.Render("🔔 Break reminders"), state)
	for _, r := range list {
		next := cli.MutedStyle.Render("disabled")
		if r.Enabled {
			next = reminders.TimeUntilNext(r, now)
		}
		ctx.Printf("  %-10s every %3d min  %-10s %s\n", r.ID, r.Interval, next, cli.MutedStyle.Render(r.Message))
	}
	return nil
}

type ReminderOnCmd struct{}

func (c *ReminderOnCmd) Run(ctx *cli.Context) error { return setRemindersActive(ctx, true) }

type ReminderOffCmd struct{}

func (c *ReminderOffCmd) Run(ctx *cli.Context) error { return setRemindersActive(ctx, false) }

func setRemindersActive(ctx *cli.Context, active bool) error {
	user, err := ctx.User()
	if err != nil {
		return err
	}
	if err := reminders.New(ctx.Repo).SetActive(ctx.Ctx, user, active); err != nil {
		return err
	}
	if active {
		ctx.Println("✓ Break reminders on. Run `waketrack watch` to receive them.")
	} else {
		ctx.Println("✓ Break reminders off")
	}
	return nil
}

type ReminderToggleCmd struct {
	ID string `arg:"" help:"Reminder id (hydration, movement, eyes, posture)."`
}

func (c *ReminderToggleCmd) Run(ctx *cli.Context) error {
	user, err := ctx.User()
	if err != nil {
		return err
	}
	r, err := reminders.New(ctx.Repo).Toggle(ctx.Ctx, user, c.ID, ctx.Now())
	if err != nil {
		return err
	}
	ctx.Printf("✓ %s reminder %s\n", r.ID, enabledWord(r))
	return nil
}

type ReminderIntervalCmd struct {
	ID      string `arg:"" help:"Reminder id."`
	Minutes int    `arg:"" help:"Minutes between reminders."`
}

func (c *ReminderIntervalCmd) Run(ctx *cli.Context) error {
	user, err := ctx.User()
	if err != nil {
		return err
	}
	r, err := reminders.New(ctx.Repo).SetInterval(ctx.Ctx, user, c.ID, c.Minutes, ctx.Now())
	if err != nil {
		return err
	}
	ctx.Printf("✓ %s reminder every %d min\n", r.ID, r.Interval)
	return nil
}

func enabledWord(r models.BreakReminder) string {
	if r.Enabled {
		return "enabled"
	}
	return "disabled"
}

// NotifySettingsCmd shows or changes the notification preferences.
type NotifySettingsCmd struct {
	BreakInterval *int  `help:"Default break interval in minutes."`
	Breaks        *bool `help:"Enable break reminders."`
	Insights      *bool `help:"Enable productivity insight notifications."`
	Goals         *bool `help:"Enable goal deadline notifications."`
	Weekly        *bool `help:"Enable the weekly report."`
	Suggestions   *bool `help:"Enable smart suggestions."`
}

func (c *NotifySettingsCmd) changed() bool {
	return c.BreakInterval != nil || c.Breaks != nil || c.Insights != nil || c.Goals != nil || c.Weekly != nil || c.Suggestions != nil
}

func (c *NotifySettingsCmd) Run(ctx *cli.Context) error {
	user, err := ctx.User()
	if err != nil {
		return err
	}
	svc := reminders.New(ctx.Repo)
	var ns models.NotificationSettings
	if c.changed() {
		ns, err = svc.UpdateSettings(ctx.Ctx, user, func(s *models.NotificationSettings) {
			if c.BreakInterval != nil {
				s.BreakInterval = *c.BreakInterval
			}
			if c.Breaks != nil {
				s.BreakReminders = *c.Breaks
			}
			if c.Insights != nil {
				s.ProductivityInsights = *c.Insights
			}
			if c.Goals != nil {
				s.GoalDeadlines = *c.Goals
			}
			if c.Weekly != nil {
				s.WeeklyReports = *c.Weekly
			}
			if c.Suggestions != nil {
				s.SmartSuggestions = *c.Suggestions
			}
		})
	} else {
		ns, err = svc.Settings(ctx.Ctx, user)
	}
	if err != nil {
		return err
	}

	rows := []struct {
		name string
		on   bool
	}{
		{"Break reminders", ns.BreakReminders},
		{"Productivity insights", ns.ProductivityInsights},
		{"Goal deadlines", ns.GoalDeadlines},
		{"Weekly reports", ns.WeeklyReports},
		{"Smart suggestions", ns.SmartSuggestions},
	}
	for _, r := range rows {
		ctx.Printf("  %-22s %s\n", r.name, onOff(r.on))
	}
	ctx.Printf("  %-22s %s\n", "Break interval", fmt.Sprintf("%d min", ns.BreakInterval))
	return nil
}

func onOff(b bool) string {
	if b {
		return cli.SuccessStyle.Render("on")
	}
	return cli.MutedStyle.Render("off")
}
