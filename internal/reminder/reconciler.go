package reminder

import (
	"strings"
	"sync"

	"github.com/tomaskoller/arbor/internal/constants"
	apperrors "github.com/tomaskoller/arbor/internal/errors"
	"github.com/tomaskoller/arbor/internal/logger"
	"github.com/tomaskoller/arbor/internal/models"
)

// Reconciler keeps each habit's scheduled-notification handle consistent
// with its reminder time and the global notifications flag. Per habit it is
// a two-state machine: Unscheduled (NotificationID == nil) and
// Scheduled (NotificationID == handle). Every transition that replaces a
// schedule cancels the old handle first, so a handle never outlives the
// schedule it names.
type Reconciler struct {
	sched Scheduler

	mu       sync.Mutex
	inflight map[string]*sync.Mutex
}

func New(sched Scheduler) *Reconciler {
	return &Reconciler{
		sched:    sched,
		inflight: make(map[string]*sync.Mutex),
	}
}

// habitLock serializes transitions per habit, so a second edit of the same
// habit cannot race the first one's pending scheduler calls.
func (r *Reconciler) habitLock(id string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	lock, ok := r.inflight[id]
	if !ok {
		lock = &sync.Mutex{}
		r.inflight[id] = lock
	}
	return lock
}

// Schedule moves the habit from Unscheduled to Scheduled, storing the new
// handle on the habit. It validates the reminder time, performs channel
// setup, and requests permission first. On any failure the habit is left
// Unscheduled with a nil handle.
func (r *Reconciler) Schedule(h *models.Habit) error {
	lock := r.habitLock(h.ID)
	lock.Lock()
	defer lock.Unlock()
	return r.scheduleLocked(h)
}

// Unschedule moves the habit to Unscheduled, cancelling any live handle.
// Cancellation is best-effort: an already-fired or invalid handle must not
// block the transition, so failures are logged and swallowed.
func (r *Reconciler) Unschedule(h *models.Habit) {
	lock := r.habitLock(h.ID)
	lock.Lock()
	defer lock.Unlock()
	r.unscheduleLocked(h)
}

// Reschedule replaces the habit's schedule in a single transition:
// cancel-then-schedule under one per-habit lock. If rescheduling fails the
// end state is Unscheduled, never a stale handle.
func (r *Reconciler) Reschedule(h *models.Habit) error {
	lock := r.habitLock(h.ID)
	lock.Lock()
	defer lock.Unlock()
	r.unscheduleLocked(h)
	return r.scheduleLocked(h)
}

func (r *Reconciler) scheduleLocked(h *models.Habit) error {
	hour, minute, err := ParseClock(h.ReminderTime)
	if err != nil {
		return err
	}

	if err := r.sched.EnsureChannel(); err != nil {
		logger.Debug("notification channel setup failed", "habit", h.ID, "error", err)
	}

	granted, err := r.sched.RequestPermission()
	if err != nil {
		return apperrors.Schedulerf("permission check failed: %v", err)
	}
	if !granted {
		return apperrors.PermissionDeniedf("notifications permission not granted")
	}

	handle, err := r.sched.Schedule(hour, minute, constants.ReminderTitle, h.Name)
	if err != nil {
		return apperrors.Schedulerf("could not schedule reminder for %q: %v", h.Name, err)
	}

	h.NotificationID = &handle
	return nil
}

func (r *Reconciler) unscheduleLocked(h *models.Habit) {
	if h.NotificationID == nil {
		return
	}
	if err := r.sched.Cancel(*h.NotificationID); err != nil {
		logger.Debug("reminder cancellation failed", "habit", h.ID, "handle", *h.NotificationID, "error", err)
	}
	h.NotificationID = nil
}

// SetEnabled performs the global enable/disable transition and returns the
// value the notifications flag should take.
//
// Disabling cancels every live handle before the flag flips; a crash midway
// can leave stale handles at the platform, an accepted best-effort limit.
// Enabling only checks permission. Existing habits are not rescheduled
// retroactively; reminders come back as habits are next added or edited.
func (r *Reconciler) SetEnabled(enabled bool, habits []*models.Habit) (bool, error) {
	if !enabled {
		for _, h := range habits {
			if h.NotificationID != nil {
				r.Unschedule(h)
			}
		}
		return false, nil
	}

	if err := r.sched.EnsureChannel(); err != nil {
		logger.Debug("notification channel setup failed", "error", err)
	}
	granted, err := r.sched.RequestPermission()
	if err != nil {
		return false, apperrors.Schedulerf("permission check failed: %v", err)
	}
	if !granted {
		return false, apperrors.PermissionDeniedf("notifications permission not granted")
	}
	return true, nil
}

// CancelAll cancels every live handle, best-effort, and clears them.
// Used when wiping all data.
func (r *Reconciler) CancelAll(habits []*models.Habit) {
	for _, h := range habits {
		if h.NotificationID != nil {
			r.Unschedule(h)
		}
	}
}

// WantsSchedule reports whether the habit should hold a schedule given the
// notifications flag.
func WantsSchedule(h *models.Habit, enabled bool) bool {
	return enabled && strings.TrimSpace(h.ReminderTime) != ""
}
