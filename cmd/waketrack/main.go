package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/waketrack/internal/cli"
	"github.com/julianstephens/waketrack/internal/cli/activities"
	"github.com/julianstephens/waketrack/internal/cli/backups"
	"github.com/julianstephens/waketrack/internal/cli/data"
	"github.com/julianstephens/waketrack/internal/cli/goals"
	"github.com/julianstephens/waketrack/internal/cli/reports"
	"github.com/julianstephens/waketrack/internal/cli/system"
	"github.com/julianstephens/waketrack/internal/cli/tracking"
	"github.com/julianstephens/waketrack/internal/config"
	"github.com/julianstephens/waketrack/internal/constants"
	wterrors "github.com/julianstephens/waketrack/internal/errors"
	"github.com/julianstephens/waketrack/internal/logger"
	"github.com/julianstephens/waketrack/internal/storage"
	"github.com/julianstephens/waketrack/internal/utils"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"~/.config/waketrack/config.yaml"`
	Store   string `help:"Override the storage backend (sqlite, postgres, redis, json or memory)."`
	User    string `short:"u" help:"Act as this user id instead of the signed-in one."`
	Debug   bool   `help:"Log debug output to stderr."`

	Init     system.InitCmd     `cmd:"" help:"Create the config file and storage."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks."`
	Settings system.SettingsCmd `cmd:"" help:"Show or change settings."`
	Login    system.LoginCmd    `cmd:"" help:"Sign in with an email address."`
	Logout   system.LogoutCmd   `cmd:"" help:"Sign out."`
	Whoami   system.WhoamiCmd   `cmd:"" help:"Print the current user id."`
	Keyring  struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store the PostgreSQL connection string."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string, masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check keyring availability." default:"1"`
	} `cmd:"" help:"Manage credentials in the OS keyring."`
	Watch system.WatchCmd `cmd:"" help:"Run reminders and summaries in the foreground."`
	Serve system.ServeCmd `cmd:"" help:"Serve the local JSON API."`

	Log       activities.LogCmd           `cmd:"" help:"Log an activity for an hour."`
	Day       activities.DayCmd           `cmd:"" help:"Show a day." default:"1"`
	Clear     activities.ClearCmd         `cmd:"" help:"Clear a day, or everything."`
	Copy      activities.CopyCmd          `cmd:"" help:"Copy one day onto another."`
	Duplicate activities.DuplicateWeekCmd `cmd:"" help:"Copy a week onto another week."`
	Search    activities.SearchCmd        `cmd:"" help:"Search logged activities."`
	Classify  activities.ClassifyCmd      `cmd:"" help:"Show how text would be categorized."`
	Template  struct {
		Save   activities.TemplateSaveCmd   `cmd:"" help:"Save a day as a template."`
		Apply  activities.TemplateApplyCmd  `cmd:"" help:"Apply a template to a day."`
		List   activities.TemplateListCmd   `cmd:"" help:"List templates." default:"1"`
		Delete activities.TemplateDeleteCmd `cmd:"" help:"Delete a template."`
	} `cmd:"" help:"Manage day templates."`

	Stats    reports.StatsCmd    `cmd:"" help:"Show hour totals for a range."`
	Trend    reports.TrendCmd    `cmd:"" help:"Show productivity by week or month."`
	Patterns reports.PatternsCmd `cmd:"" help:"Show productivity by hour of day."`
	Streak   reports.StreakCmd   `cmd:"" help:"Show the productive-day streak."`
	Insights reports.InsightsCmd `cmd:"" help:"Show recommendations and analysis."`
	Suggest  reports.SuggestCmd  `cmd:"" help:"Suggest a schedule from your best hours."`
	Points   reports.PointsCmd   `cmd:"" help:"Show level, badges and the weekly challenge."`

	Goal struct {
		Add    goals.GoalAddCmd    `cmd:"" help:"Add a goal."`
		List   goals.GoalListCmd   `cmd:"" help:"List goals with progress." default:"1"`
		Delete goals.GoalDeleteCmd `cmd:"" help:"Delete a goal."`
		Pause  goals.GoalPauseCmd  `cmd:"" help:"Deactivate a goal."`
		Resume goals.GoalResumeCmd `cmd:"" help:"Reactivate a goal."`
	} `cmd:"" help:"Manage goals."`

	Track struct {
		Plan   tracking.PlanCmd   `cmd:"" help:"Plan an activity for an hour."`
		Start  tracking.StartCmd  `cmd:"" help:"Start tracking a planned hour."`
		Stop   tracking.StopCmd   `cmd:"" help:"Stop the running entry."`
		Status tracking.StatusCmd `cmd:"" help:"Show planned against actual time." default:"1"`
		Remove tracking.UnplanCmd `cmd:"" help:"Remove a planned entry."`
	} `cmd:"" help:"Plan and track time."`
	Pomodoro tracking.PomodoroCmd `cmd:"" help:"Run the pomodoro timer."`
	Remind   struct {
		List     tracking.ReminderListCmd     `cmd:"" help:"List break reminders." default:"1"`
		On       tracking.ReminderOnCmd       `cmd:"" help:"Turn break reminders on."`
		Off      tracking.ReminderOffCmd      `cmd:"" help:"Turn break reminders off."`
		Toggle   tracking.ReminderToggleCmd   `cmd:"" help:"Enable or disable one reminder."`
		Interval tracking.ReminderIntervalCmd `cmd:"" help:"Change a reminder's interval."`
		Settings tracking.NotifySettingsCmd   `cmd:"" help:"Show or change notification preferences."`
	} `cmd:"" help:"Manage break reminders."`

	Export data.ExportCmd `cmd:"" help:"Export all data as JSON."`
	Import data.ImportCmd `cmd:"" help:"Import a JSON export."`

	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore a backup."`
	} `cmd:"" help:"Manage SQLite backups."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Hour-by-hour activity tracker with insights and gamification"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	configPath, err := utils.ExpandPath(CLI.Config)
	if err != nil {
		wterrors.Fatal(err)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		wterrors.Fatal(err)
	}
	if CLI.Store != "" {
		cfg.Storage.Backend = CLI.Store
		if err := cfg.Validate(); err != nil {
			wterrors.Fatal(err)
		}
	}
	if err := logger.Init(logger.Config{
		Debug:      CLI.Debug || cfg.Logging.Debug,
		ConfigDir:  config.ConfigDir(configPath),
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	}); err != nil {
		wterrors.Fatalf("failed to initialize logger: %v", err)
	}

	command := strings.Fields(kctx.Command())[0]
	var store storage.KV
	switch command {
	case "keyring":
		// Keyring commands must work before any backend is reachable.
		store = storage.NewMemoryStore()
	default:
		if store, err = cli.OpenStore(cfg); err != nil {
			wterrors.Fatal(err)
		}
		if command != "init" {
			if err := store.Load(); err != nil {
				wterrors.Fatal(err)
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	appCtx := cli.NewContext(ctx, cfg, configPath, store)
	appCtx.UserFlag = CLI.User

	err = kctx.Run(appCtx)
	stop()
	if cerr := store.Close(); cerr != nil {
		logger.Warn("Failed to close storage", "error", cerr)
	}
	wterrors.Fatal(err)
	_ = logger.Close()
}
