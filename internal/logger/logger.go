// Package logger writes structured logs to a rotating file under the config
// directory, mirrored to stderr in debug mode.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/waketrack/internal/constants"
)

// Logger is the process-wide logger; nil until Init.
var Logger *log.Logger

var (
	mu   sync.Mutex
	file *lumberjack.Logger
)

type Config struct {
	Debug     bool
	ConfigDir string
	// Level is debug, info, warn or error; Debug forces debug.
	Level string
	// Format is text, json or logfmt.
	Format string

	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

func (c Config) rotation(path string) *lumberjack.Logger {
	orDefault := func(v, d int) int {
		if v > 0 {
			return v
		}
		return d
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    orDefault(c.MaxSizeMB, 10),
		MaxBackups: orDefault(c.MaxBackups, 3),
		MaxAge:     orDefault(c.MaxAgeDays, 28),
		Compress:   true,
	}
}

func parseFormat(s string) (log.Formatter, error) {
	switch s {
	case "", "text":
		return log.TextFormatter, nil
	case "json":
		return log.JSONFormatter, nil
	case "logfmt":
		return log.LogfmtFormatter, nil
	}
	return 0, fmt.Errorf("unknown log format %q", s)
}

// Path is the log file Init writes to for configDir.
func Path(configDir string) string {
	return filepath.Join(configDir, "logs", constants.AppName+".log")
}

// Init replaces the global logger. A previous log file is closed.
func Init(cfg Config) error {
	level := log.WarnLevel
	if cfg.Level != "" {
		parsed, err := log.ParseLevel(cfg.Level)
		if err != nil {
			return err
		}
		level = parsed
	}
	if cfg.Debug {
		level = log.DebugLevel
	}
	formatter, err := parseFormat(cfg.Format)
	if err != nil {
		return err
	}

	path := Path(cfg.ConfigDir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	rot := cfg.rotation(path)

	var w io.Writer = rot
	if cfg.Debug {
		w = io.MultiWriter(os.Stderr, rot)
	}

	mu.Lock()
	defer mu.Unlock()
	if file != nil {
		_ = file.Close()
	}
	file = rot
	Logger = log.NewWithOptions(w, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
		Formatter:       formatter,
	})
	return nil
}

// Close flushes and closes the log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	return err
}

func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}

// Component returns a child logger whose prefix names the subsystem, for
// example "waketrack/api". Before Init it discards everything.
func Component(name string) *log.Logger {
	if Logger == nil {
		return log.New(io.Discard)
	}
	return Logger.WithPrefix(constants.AppName + "/" + name)
}

// Fatal logs and exits with status 1.
func Fatal(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
	_ = Close()
	os.Exit(1)
}
