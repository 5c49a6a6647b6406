package dates

import (
	"regexp"
	"time"

	"github.com/tomaskoller/arbor/internal/constants"
	apperrors "github.com/tomaskoller/arbor/internal/errors"
)

var keyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Key encodes the calendar day of t, in t's own location, as a YYYY-MM-DD
// date key. Two instants on the same local calendar day always produce the
// same key regardless of time of day.
func Key(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseKey is ParseKeyInLocation with the system's local timezone.
func ParseKey(key string) (time.Time, error) {
	return ParseKeyInLocation(key, time.Local)
}

// ParseKeyInLocation decodes a YYYY-MM-DD date key as midnight of that day
// in the given location. Keys that do not match the pattern or encode an
// impossible calendar date (month 13, Feb 30) are rejected.
func ParseKeyInLocation(key string, loc *time.Location) (time.Time, error) {
	if !keyPattern.MatchString(key) {
		return time.Time{}, apperrors.Validationf("invalid date key %q (expected YYYY-MM-DD)", key)
	}
	t, err := time.Parse(constants.DateFormat, key)
	if err != nil {
		return time.Time{}, apperrors.Validationf("invalid date key %q: not a calendar date", key)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// AddDays returns t shifted by n calendar days. n may be negative. The shift
// crosses month and year boundaries correctly.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
