package reminder

import (
	"regexp"
	"strconv"
	"strings"

	apperrors "github.com/tomaskoller/arbor/internal/errors"
)

// Scheduler is the external local-notification service. Implementations
// schedule a notification repeating daily at a local wall-clock time and
// return an opaque handle for later cancellation.
type Scheduler interface {
	Schedule(hour, minute int, title, body string) (handle string, err error)

	// Cancel removes a scheduled notification. Implementations must tolerate
	// unknown or already-fired handles.
	Cancel(handle string) error

	// RequestPermission asks the platform for notification permission,
	// prompting the user if necessary.
	RequestPermission() (granted bool, err error)

	// EnsureChannel performs any platform channel setup. May be a no-op.
	EnsureChannel() error
}

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// ParseClock parses a strict 24h HH:MM reminder time.
func ParseClock(value string) (hour, minute int, err error) {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return 0, 0, apperrors.Validationf("reminder time must be HH:MM (24h), e.g. 08:30: got %q", value)
	}
	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	return hour, minute, nil
}
