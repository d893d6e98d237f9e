package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/config"
	"gopkg.in/yaml.v2"

	"github.com/julianstephens/waketrack/internal/constants"
	"github.com/julianstephens/waketrack/internal/utils"
)

type Config struct {
	User          string              `yaml:"user"`
	Timezone      string              `yaml:"timezone"`
	Storage       StorageConfig       `yaml:"storage"`
	Goals         GoalsConfig         `yaml:"goals"`
	Insights      InsightsConfig      `yaml:"insights"`
	Logging       LoggingConfig       `yaml:"logging"`
	API           APIConfig           `yaml:"api"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Watch         WatchConfig         `yaml:"watch"`
}

type StorageConfig struct {
	// Backend is one of sqlite, postgres, redis, json or memory.
	Backend string      `yaml:"backend"`
	Path    string      `yaml:"path"`
	DSN     string      `yaml:"dsn"`
	Redis   RedisConfig `yaml:"redis"`
}

type RedisConfig struct {
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix"`
}

type GoalsConfig struct {
	DailyProductiveHours int `yaml:"daily_productive_hours"`
}

type InsightsConfig struct {
	WindowDays int `yaml:"window_days"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	Debug bool   `yaml:"debug"`
	// Format is text, json or logfmt.
	Format     string `yaml:"format"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type APIConfig struct {
	Addr string `yaml:"addr"`
}

type NotificationsConfig struct {
	// Mode is auto (tray app if running, else desktop), tray, desktop or off.
	Mode string `yaml:"mode"`
}

// WatchConfig holds cron specs for the background loop.
type WatchConfig struct {
	Refresh      string `yaml:"refresh"`
	Reminders    string `yaml:"reminders"`
	DailySummary string `yaml:"daily_summary"`
	WeeklyReport string `yaml:"weekly_report"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Timezone: "Local",
		Storage: StorageConfig{
			Backend: constants.BackendSQLite,
			Path:    filepath.Join(constants.DefaultConfigDir, constants.DefaultDBName),
			Redis: RedisConfig{
				Addr:      "localhost:6379",
				KeyPrefix: constants.AppName + ":",
			},
		},
		Goals:    GoalsConfig{DailyProductiveHours: constants.DefaultDailyGoalHours},
		Insights: InsightsConfig{WindowDays: constants.DefaultInsightDays},
		Logging:  LoggingConfig{Level: "warn", Format: "text", MaxSizeMB: 10, MaxBackups: 3, MaxAgeDays: 28},
		API:      APIConfig{Addr: constants.DefaultAPIAddr},
		Notifications: NotificationsConfig{
			Mode: "auto",
		},
		Watch: WatchConfig{
			Refresh:      "@every 1m",
			Reminders:    "@every 1m",
			DailySummary: "0 21 * * *",
			WeeklyReport: "0 18 * * 0",
		},
	}
}

// DefaultPath returns ~/.config/waketrack/config.yaml with the home directory expanded.
func DefaultPath() string {
	path, err := utils.ExpandPath(filepath.Join(constants.DefaultConfigDir, constants.DefaultConfigFile))
	if err != nil {
		return constants.DefaultConfigFile
	}
	return path
}

// Load reads the YAML file at path layered over the defaults, expands ${VAR}
// references and applies WAKETRACK_* environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	opts := []config.YAMLOption{
		config.Static(Default()),
		config.Expand(os.LookupEnv),
	}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			opts = append(opts, config.File(path))
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}
	}

	provider, err := config.NewYAML(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create config provider: %w", err)
	}

	var cfg Config
	if err := provider.Get(config.Root).Populate(&cfg); err != nil {
		return nil, fmt.Errorf("failed to populate config: %w", err)
	}

	cfg.overrideFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes cfg to path as YAML, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// Validate checks values that cannot be repaired with a default.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case constants.BackendSQLite, constants.BackendPostgres, constants.BackendRedis,
		constants.BackendJSON, constants.BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("invalid timezone %q", c.Timezone)
	}
	if c.Goals.DailyProductiveHours < 0 || c.Goals.DailyProductiveHours > constants.HoursPerDay {
		return fmt.Errorf("goals.daily_productive_hours must be between 0 and 24")
	}
	if c.Insights.WindowDays <= 0 {
		c.Insights.WindowDays = constants.DefaultInsightDays
	}
	switch c.Notifications.Mode {
	case "auto", "tray", "desktop", "off":
	default:
		return fmt.Errorf("unknown notifications.mode %q", c.Notifications.Mode)
	}
	return nil
}

// ConfigDir returns the directory holding the config file, logs and backups.
func ConfigDir(configPath string) string {
	return filepath.Dir(configPath)
}

// StoragePath returns the storage path with "~" expanded.
func (c *Config) StoragePath() (string, error) {
	return utils.ExpandPath(c.Storage.Path)
}

// overrideFromEnv overrides config values with environment variables if present
func (c *Config) overrideFromEnv() {
	if val := os.Getenv("WAKETRACK_USER"); val != "" {
		c.User = val
	}
	if val := os.Getenv("WAKETRACK_TIMEZONE"); val != "" {
		c.Timezone = val
	}
	if val := os.Getenv("WAKETRACK_STORE"); val != "" {
		c.Storage.Backend = val
	}
	if val := os.Getenv("WAKETRACK_STORE_PATH"); val != "" {
		c.Storage.Path = val
	}
	if val := os.Getenv("WAKETRACK_DB_CONNECTION"); val != "" {
		c.Storage.DSN = val
	}
	if val := os.Getenv("WAKETRACK_REDIS_ADDR"); val != "" {
		c.Storage.Redis.Addr = val
	}
	if val := os.Getenv("WAKETRACK_REDIS_PASSWORD"); val != "" {
		c.Storage.Redis.Password = val
	}
	if val := os.Getenv("WAKETRACK_REDIS_DB"); val != "" {
		if db, err := strconv.Atoi(val); err == nil {
			c.Storage.Redis.DB = db
		}
	}
	if val := os.Getenv("WAKETRACK_LOG_LEVEL"); val != "" {
		c.Logging.Level = val
	}
	if val := os.Getenv("WAKETRACK_DEBUG"); val != "" {
		if debug, err := strconv.ParseBool(val); err == nil {
			c.Logging.Debug = debug
		}
	}
	if val := os.Getenv("WAKETRACK_API_ADDR"); val != "" {
		c.API.Addr = val
	}
}
