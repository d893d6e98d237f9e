package constants

import "time"

const (
	AppName            = "waketrack"
	DefaultKeyringUser = "current-user"
	KeyringDSNAccount  = "connection-string"
	TrayExecutable     = "waketrack-tray"
	DefaultConfigDir   = "~/.config/waketrack"
	DefaultDBName      = "waketrack.db"
	DefaultConfigFile  = "config.yaml"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// HoursPerDay is the fixed number of activity slots in a day
	HoursPerDay = 24

	// ExportVersion tags export documents
	ExportVersion = "1.0"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "waketrack-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "waketrack-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.waketrack"

	// Storage backends
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendJSON     = "json"
	BackendMemory   = "memory"

	// API
	DefaultAPIAddr = "127.0.0.1:7420"
)
