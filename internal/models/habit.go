package models

import "time"

// Habit represents a recurring practice to track.
type Habit struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	// ReminderTime is the daily reminder time in HH:MM (24h) format.
	// Empty means no reminder.
	ReminderTime string `json:"reminder_time,omitempty"`

	// Active is false when the habit has been soft-deleted. Inactive habits
	// are excluded from active lists but keep their ledger history.
	Active bool `json:"active"`

	// NotificationID is the opaque handle of the currently scheduled
	// reminder, or nil when none is scheduled. It is only ever set while
	// ReminderTime is non-empty, notifications are globally enabled, and
	// scheduling succeeded.
	NotificationID *string `json:"notification_id,omitempty"`
}

// HasReminder reports whether the habit has a reminder time configured.
func (h *Habit) HasReminder() bool {
	return h.ReminderTime != ""
}
