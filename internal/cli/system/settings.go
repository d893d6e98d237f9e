package system

import (
	"github.com/julianstephens/waketrack/internal/cli"
	"github.com/julianstephens/waketrack/internal/config"
)

// SettingsCmd shows or edits the config file.
type SettingsCmd struct {
	Timezone      *string `help:"IANA timezone, or Local."`
	DailyGoal     *int    `help:"Default daily productive-hour goal."`
	InsightDays   *int    `help:"Insight window in days."`
	Notifications *string `help:"Notification mode." enum:"auto,tray,desktop,off"`
	APIAddr       *string `name:"api-addr" help:"Listen address for 'waketrack serve'."`
	Backend       *string `help:"Storage backend." enum:"sqlite,postgres,redis,json,memory"`
	StorePath     *string `help:"SQLite or JSON storage path."`
}

func (c *SettingsCmd) apply(cfg *config.Config) bool {
	updated := false
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
			updated = true
		}
	}
	setInt := func(dst *int, v *int) {
		if v != nil {
			*dst = *v
			updated = true
		}
	}
	set(&cfg.Timezone, c.Timezone)
	setInt(&cfg.Goals.DailyProductiveHours, c.DailyGoal)
	setInt(&cfg.Insights.WindowDays, c.InsightDays)
	set(&cfg.Notifications.Mode, c.Notifications)
	set(&cfg.API.Addr, c.APIAddr)
	set(&cfg.Storage.Backend, c.Backend)
	set(&cfg.Storage.Path, c.StorePath)
	return updated
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	cfg := *ctx.Config
	if c.apply(&cfg) {
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := config.Save(ctx.ConfigPath, cfg); err != nil {
			return err
		}
		*ctx.Config = cfg
		ctx.Println("Settings updated.")
		ctx.Println()
	}

	ctx.Println(cli.HeaderStyle.Render("Settings") + "  " + cli.MutedStyle.Render(ctx.ConfigPath))
	ctx.Printf("  Timezone:          %s\n", cfg.Timezone)
	ctx.Printf("  Storage:           %s\n", cfg.Storage.Backend)
	if cfg.Storage.Path != "" {
		ctx.Printf("  Storage path:      %s\n", cfg.Storage.Path)
	}
	ctx.Printf("  Daily goal:        %d h\n", cfg.Goals.DailyProductiveHours)
	ctx.Printf("  Insight window:    %d days\n", cfg.Insights.WindowDays)
	ctx.Printf("  Notifications:     %s\n", cfg.Notifications.Mode)
	ctx.Printf("  API address:       %s\n", cfg.API.Addr)
	ctx.Printf("  Watch refresh:     %s\n", cfg.Watch.Refresh)
	ctx.Printf("  Watch reminders:   %s\n", cfg.Watch.Reminders)
	ctx.Printf("  Daily summary:     %s\n", cfg.Watch.DailySummary)
	ctx.Printf("  Weekly report:     %s\n", cfg.Watch.WeeklyReport)
	return nil
}
