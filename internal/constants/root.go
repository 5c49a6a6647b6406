package constants

import "time"

const (
	AppName           = "arbor"
	Version           = "v0.2.0"
	DefaultConfigPath = "~/.config/arbor/arbor.db"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Persistence gateway keys. Each key holds one whole-collection snapshot.
	KeyHabits      = "arbor.habits.v1"
	KeyCompletions = "arbor.completions.v1"
	KeySettings    = "arbor.settings.v1"

	// Notification agent constants
	AgentIdentifier    = "com.tomaskoller.arbor"
	AgentLockfileName  = "arbor-agent.lock"
	AgentProcessName   = "arbor-agent"
	AgentClientTimeout = 5 * time.Second

	// ReminderTitle is the notification title for habit reminders
	ReminderTitle = "Habit reminder"

	// DefaultNotificationsEnabled is the settings value on first run
	DefaultNotificationsEnabled = true

	// SnapshotDebounce is how long the synchronizer coalesces store changes
	// before writing a snapshot
	SnapshotDebounce = 500 * time.Millisecond
)
