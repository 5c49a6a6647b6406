package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/tomaskoller/arbor/internal/logger"
)

// Error kinds. Operations wrap one of these so callers can branch on the
// failure class without parsing messages.
var (
	// ErrValidation marks bad user input (empty name, malformed time or
	// date key). The operation is aborted with no partial state change.
	ErrValidation = stderrors.New("validation error")

	// ErrNotFound marks an operation that targeted an unknown habit id.
	ErrNotFound = stderrors.New("not found")

	// ErrPermissionDenied marks reminder scheduling blocked by the platform.
	// The non-reminder part of the operation still completes.
	ErrPermissionDenied = stderrors.New("permission denied")

	// ErrPersistence marks a gateway save/load failure. In-memory state is
	// authoritative and unaffected.
	ErrPersistence = stderrors.New("persistence failure")

	// ErrScheduler marks a schedule call failure; the habit stays
	// unscheduled. Cancellation failures are swallowed, never wrapped.
	ErrScheduler = stderrors.New("scheduler failure")
)

// Validationf wraps ErrValidation with a formatted message.
func Validationf(format string, args ...interface{}) error {
	return wrapf(ErrValidation, format, args...)
}

// NotFoundf wraps ErrNotFound with a formatted message.
func NotFoundf(format string, args ...interface{}) error {
	return wrapf(ErrNotFound, format, args...)
}

// PermissionDeniedf wraps ErrPermissionDenied with a formatted message.
func PermissionDeniedf(format string, args ...interface{}) error {
	return wrapf(ErrPermissionDenied, format, args...)
}

// Persistencef wraps ErrPersistence with a formatted message.
func Persistencef(format string, args ...interface{}) error {
	return wrapf(ErrPersistence, format, args...)
}

// Schedulerf wraps ErrScheduler with a formatted message.
func Schedulerf(format string, args ...interface{}) error {
	return wrapf(ErrScheduler, format, args...)
}

func wrapf(kind error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
