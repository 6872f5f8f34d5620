package constants

import "time"

const (
	AppName           = "habitkeep"
	DefaultConfigPath = "~/.config/habitkeep/habitkeep.json"
	Version           = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Notification defaults
	DefaultNotificationsEnabled = false
	DefaultMorningTime          = "08:00"
	DefaultEveningTime          = "20:00"

	// Reminder scheduling
	ReminderWindowDays  = 7
	RearmInterval       = time.Hour
	MorningTitle        = "Morning reminder"
	EveningTitle        = "Evening reminder"
	DefaultReminderText = "Time to check in on your habits"

	// Settings mirror (background context copy of notification settings)
	MirrorFileName      = "habitkeep-mirror.db"
	MirrorSchemaVersion = 2
	MirrorSettingsKey   = "notifications"

	// Notify constants
	NotifierLockfileName   = "habitkeep-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.habitkeep"
)
