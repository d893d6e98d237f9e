package tracking

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/waketrack/internal/cli"
	"github.com/julianstephens/waketrack/internal/pomodoro"
	"github.com/julianstephens/waketrack/internal/tui"
)

type PomodoroCmd struct {
	Work     int  `help:"Work session length in minutes."`
	Short    int  `help:"Short break length in minutes."`
	Long     int  `help:"Long break length in minutes."`
	Interval int  `help:"Work sessions before a long break."`
	Status   bool `short:"s" help:"Print the saved session and exit."`
	NoStart  bool `help:"Open paused instead of starting immediately."`
	ResetAll bool `help:"Discard the saved session before opening."`
}

func (c *PomodoroCmd) Run(ctx *cli.Context) error {
	user, err := ctx.User()
	if err != nil {
		return err
	}
	timer, err := pomodoro.Load(ctx.Ctx, ctx.Repo, user)
	if err != nil {
		return err
	}

	if c.Work > 0 || c.Short > 0 || c.Long > 0 || c.Interval > 0 {
		s := timer.Settings
		if c.Work > 0 {
			s.WorkDuration = c.Work
		}
		if c.Short > 0 {
			s.ShortBreak = c.Short
		}
		if c.Long > 0 {
			s.LongBreak = c.Long
		}
		if c.Interval > 0 {
			s.LongBreakInterval = c.Interval
		}
		if err := timer.UpdateSettings(s); err != nil {
			return err
		}
	}
	if c.ResetAll {
		timer.ResetAll()
	}

	if c.Status {
		ctx.Printf("🍅 %s · %s left · %d sessions completed\n", timer.Session.Type,
			pomodoro.FormatTime(timer.Session.Remaining), timer.Session.CompletedSessions)
		ctx.Printf("   work %dm · short %dm · long %dm every %d\n", timer.Settings.WorkDuration,
			timer.Settings.ShortBreak, timer.Settings.LongBreak, timer.Settings.LongBreakInterval)
		return pomodoro.Save(ctx.Ctx, ctx.Repo, user, timer)
	}

	// Persisting from inside the program must not be cut short by Ctrl+C
	// cancelling the command context.
	save := func(t *pomodoro.Timer) error {
		return pomodoro.Save(context.WithoutCancel(ctx.Ctx), ctx.Repo, user, t)
	}
	if !c.NoStart {
		timer.Start()
	}
	if _, err := tea.NewProgram(tui.New(timer, ctx.Notifier, save), tea.WithAltScreen(), tea.WithContext(ctx.Ctx)).Run(); err != nil && ctx.Ctx.Err() == nil {
		return fmt.Errorf("pomodoro: %w", err)
	}
	timer.Pause()
	return save(timer)
}
