package domain

import "time"

// Level is the severity of a notification.
type Level string

// Notification levels.
const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelDanger  Level = "danger"
)

// String returns the string representation.
func (l Level) String() string {
	return string(l)
}

// Notification is a transient banner reporting the outcome of an action.
type Notification struct {
	// ID identifies the notification so its own timer can dismiss it.
	ID string

	// Level controls how the banner is styled.
	Level Level

	// Text is the message shown to the user.
	Text string

	// CreatedAt is when the notification was raised.
	CreatedAt time.Time
}
