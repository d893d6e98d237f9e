package cli

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/waketrack/internal/auth"
	"github.com/julianstephens/waketrack/internal/backup"
	"github.com/julianstephens/waketrack/internal/config"
	"github.com/julianstephens/waketrack/internal/constants"
	"github.com/julianstephens/waketrack/internal/gamification"
	"github.com/julianstephens/waketrack/internal/goals"
	"github.com/julianstephens/waketrack/internal/logger"
	"github.com/julianstephens/waketrack/internal/notifier"
	"github.com/julianstephens/waketrack/internal/repository"
	"github.com/julianstephens/waketrack/internal/storage"
	"github.com/julianstephens/waketrack/internal/storage/sqlite"
	"github.com/julianstephens/waketrack/internal/utils"
)

// Context is handed to every command's Run method.
type Context struct {
	Ctx        context.Context
	Config     *config.Config
	ConfigPath string
	Store      storage.KV
	Repo       repository.Repository
	Notifier   notifier.Notifier
	// Creds is the keyring used for the signed-in user; nil disables it.
	Creds auth.Credentials
	// UserFlag is the --user value, if any.
	UserFlag string
	Out      io.Writer
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// NewContext wires a Context around an opened store.
func NewContext(ctx context.Context, cfg *config.Config, configPath string, store storage.KV) *Context {
	return &Context{
		Ctx:        ctx,
		Config:     cfg,
		ConfigPath: configPath,
		Store:      store,
		Repo:       repository.New(store),
		Notifier:   notifier.New(cfg.Notifications.Mode),
		Creds:      auth.Keyring(),
		Out:        os.Stdout,
		Clock:      time.Now,
	}
}

// Now is the current time in the configured timezone.
func (c *Context) Now() time.Time {
	now := c.Clock()
	if c.Config != nil {
		if loc, err := utils.LoadLocation(c.Config.Timezone); err == nil {
			return now.In(loc)
		}
	}
	return now
}

func (c *Context) Session() *auth.Session {
	return auth.NewSession(c.Creds, c.Repo)
}

// User resolves the user the command acts on.
func (c *Context) User() (string, error) {
	configured := ""
	if c.Config != nil {
		configured = c.Config.User
	}
	return c.Session().Resolve(c.Ctx, c.UserFlag, configured)
}

func (c *Context) Gamification() *gamification.Engine {
	return gamification.New(c.Repo, rand.NewSource(c.Clock().UnixNano()))
}

// DailyGoal is the user's active daily productive goal, or the configured default.
func (c *Context) DailyGoal(user string) (float64, error) {
	gs, err := c.Repo.GetGoals(c.Ctx, user)
	if err != nil {
		return 0, err
	}
	fallback := float64(constants.DefaultDailyGoalHours)
	if c.Config != nil && c.Config.Goals.DailyProductiveHours > 0 {
		fallback = float64(c.Config.Goals.DailyProductiveHours)
	}
	return goals.DailyProductiveTarget(gs, fallback), nil
}

func (c *Context) InsightWindow() int {
	if c.Config != nil && c.Config.Insights.WindowDays > 0 {
		return c.Config.Insights.WindowDays
	}
	return constants.DefaultInsightDays
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Out, args...)
}

// PerformAutomaticBackup snapshots the SQLite database before destructive
// commands. Other backends are skipped; failures only log.
func (c *Context) PerformAutomaticBackup() {
	s, ok := c.Store.(*sqlite.Store)
	if !ok {
		return
	}
	if _, err := backup.NewManager(s.GetPath()).Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ResolveDate accepts YYYY-MM-DD, "today", "yesterday", "tomorrow" or a day
// offset such as "-3" or "+1". Empty means today.
func (c *Context) ResolveDate(s string) (string, error) {
	now := c.Now()
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "today":
		return utils.FormatDate(now), nil
	case "yesterday":
		return utils.FormatDate(now.AddDate(0, 0, -1)), nil
	case "tomorrow":
		return utils.FormatDate(now.AddDate(0, 0, 1)), nil
	}
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		if n, err := strconv.Atoi(s); err == nil {
			return utils.FormatDate(now.AddDate(0, 0, n)), nil
		}
	}
	if !utils.ValidateDate(s) {
		return "", fmt.Errorf("invalid date %q (want YYYY-MM-DD, today, yesterday or an offset like -1)", s)
	}
	return s, nil
}

// ResolveRange turns optional from/to arguments into a date span ending
// today by default and covering days days.
func (c *Context) ResolveRange(from, to string, days int) (time.Time, time.Time, error) {
	loc := c.Now().Location()
	toDate, err := c.ResolveDate(to)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := utils.ParseDate(toDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := end.AddDate(0, 0, -(days - 1))
	if from != "" {
		fromDate, err := c.ResolveDate(from)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		if start, err = utils.ParseDate(fromDate, loc); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("--to %s is before --from %s", utils.FormatDate(end), utils.FormatDate(start))
	}
	return start, end, nil
}

// Confirm asks a yes/no question unless assumeYes is set.
func Confirm(title, description string, assumeYes bool) (bool, error) {
	if assumeYes {
		return true, nil
	}
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}
