package constants

import "time"

const (
	AppName            = "commandhq"
	DefaultConfigPath  = "~/.config/commandhq/commandhq.db"
	DefaultKeyringUser = "database-connection"
	KeyringAPIKeyUser  = "gemini-api-key"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// ScanInterval is how often the watch loop checks for due protocols.
	ScanInterval = 30 * time.Second

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "commandhq-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "commandhq-notifier.lock"
	NotificationDurationMs = 5000
	// PersistentDurationMs is used when the operator's notification style is
	// "persistent"; the tray app keeps the alert on screen until dismissed.
	PersistentDurationMs = 0
	TrayAppIdentifier    = "com.mindpilot.commandhq"

	// FocusViolationPenalty is the motivation score deduction applied per
	// breach during an active focus session.
	FocusViolationPenalty = 10

	// DegradedViolationThreshold is the breach count above which a successful
	// mission still degrades the protocol streak.
	DegradedViolationThreshold = 3
)
