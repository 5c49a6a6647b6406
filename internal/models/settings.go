package models

// Settings represents application-wide settings
type Settings struct {
	NotificationsEnabled bool `json:"notifications_enabled"` // whether reminder notifications are enabled
}
