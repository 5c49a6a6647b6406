package store

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tomaskoller/arbor/internal/constants"
	"github.com/tomaskoller/arbor/internal/dates"
	apperrors "github.com/tomaskoller/arbor/internal/errors"
	"github.com/tomaskoller/arbor/internal/logger"
	"github.com/tomaskoller/arbor/internal/models"
	"github.com/tomaskoller/arbor/internal/reminder"
)

// HabitStore is the in-memory authoritative collection of habits, the
// completion ledger and the settings record. Every public operation either
// completes its state transition or leaves the store untouched; reminder
// side effects go through the reconciler, persistence through the
// synchronizer's change notifications.
type HabitStore struct {
	mu       sync.Mutex
	habits   []models.Habit // newest first
	ledger   models.Ledger
	settings models.Settings

	rec *reminder.Reconciler
	now func() time.Time

	onChange func()

	// OnWarning receives non-fatal problems (permission denied, scheduler
	// or persistence failures) that did not abort the operation. Defaults
	// to logging only.
	OnWarning func(err error)
}

func New(rec *reminder.Reconciler) *HabitStore {
	return &HabitStore{
		ledger:   models.Ledger{},
		settings: models.Settings{NotificationsEnabled: constants.DefaultNotificationsEnabled},
		rec:      rec,
		now:      time.Now,
	}
}

func (s *HabitStore) warn(err error) {
	if err == nil {
		return
	}
	logger.Warn("Operation completed with warning", "error", err)
	if s.OnWarning != nil {
		s.OnWarning(err)
	}
}

func (s *HabitStore) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}

// indexOf returns the habit's position, or -1. Caller must hold s.mu.
func (s *HabitStore) indexOf(id string) int {
	for i := range s.habits {
		if s.habits[i].ID == id {
			return i
		}
	}
	return -1
}

// AddHabit creates a habit and, when a reminder time is set and
// notifications are enabled, schedules its reminder before the habit becomes
// visible. Scheduling problems never block creation; they are surfaced as
// warnings and the habit simply stays unscheduled.
func (s *HabitStore) AddHabit(name, description, reminderTime string) (models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return models.Habit{}, apperrors.Validationf("habit name cannot be empty")
	}

	habit := models.Habit{
		ID:           uuid.New().String(),
		Name:         name,
		Description:  strings.TrimSpace(description),
		CreatedAt:    s.now(),
		ReminderTime: strings.TrimSpace(reminderTime),
		Active:       true,
	}

	if reminder.WantsSchedule(&habit, s.settings.NotificationsEnabled) {
		if err := s.rec.Schedule(&habit); err != nil {
			s.warn(err)
		}
	}

	s.habits = append([]models.Habit{habit}, s.habits...)
	s.changed()
	return habit, nil
}

// UpdateHabit changes name, description and reminder time. If the reminder
// time differs from the stored value, or notifications were disabled in the
// meantime, the old schedule is cancelled first; a new one is created when
// the new time is non-empty, notifications are enabled and the time parses.
// An unparseable time is returned as a validation error but does not revert
// the other field changes.
func (s *HabitStore) UpdateHabit(id, name, description, reminderTime string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return apperrors.NotFoundf("habit %s", id)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return apperrors.Validationf("habit name cannot be empty")
	}

	old := s.habits[i]
	updated := old
	updated.Name = name
	updated.Description = strings.TrimSpace(description)
	updated.ReminderTime = strings.TrimSpace(reminderTime)

	enabled := s.settings.NotificationsEnabled

	if old.NotificationID != nil && (updated.ReminderTime != old.ReminderTime || !enabled) {
		s.rec.Unschedule(&updated)
	}

	var timeErr error
	if reminder.WantsSchedule(&updated, enabled) && updated.NotificationID == nil {
		if err := s.rec.Schedule(&updated); err != nil {
			if apperrors.Is(err, apperrors.ErrValidation) {
				timeErr = err
			} else {
				s.warn(err)
			}
		}
	}

	s.habits[i] = updated
	s.changed()
	return timeErr
}

// ToggleActive soft-deletes an active habit or restores an inactive one.
// Deactivating cancels any live reminder schedule first. Reactivating does
// not reschedule; the next edit does.
func (s *HabitStore) ToggleActive(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return apperrors.NotFoundf("habit %s", id)
	}

	h := s.habits[i]
	if h.Active {
		if h.NotificationID != nil {
			s.rec.Unschedule(&h)
		}
		h.Active = false
	} else {
		h.Active = true
	}

	s.habits[i] = h
	s.changed()
	return nil
}

// SetCompletion upserts a ledger entry; last write wins. The habit id is
// deliberately not validated: historical entries for removed habits remain
// meaningful.
func (s *HabitStore) SetCompletion(habitID, dateKey string, done bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledger.Set(dateKey, habitID, done)
	s.changed()
}

// MarkDone records today's completion flag for the habit.
func (s *HabitStore) MarkDone(habitID string, done bool) {
	s.SetCompletion(habitID, dates.Key(s.now()), done)
}

// ActiveHabits returns the non-deleted habits, newest first.
func (s *HabitStore) ActiveHabits() []models.Habit {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Habit, 0, len(s.habits))
	for _, h := range s.habits {
		if h.Active {
			out = append(out, h)
		}
	}
	return out
}

// Habits returns all habits, optionally including soft-deleted ones.
func (s *HabitStore) Habits(includeInactive bool) []models.Habit {
	if includeInactive {
		s.mu.Lock()
		defer s.mu.Unlock()
		out := make([]models.Habit, len(s.habits))
		copy(out, s.habits)
		return out
	}
	return s.ActiveHabits()
}

// HabitByID returns the habit with the given id, deleted or not.
func (s *HabitStore) HabitByID(id string) (models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Habit{}, apperrors.NotFoundf("habit %s", id)
	}
	return s.habits[i], nil
}

// IsDoneToday reports whether the habit has a true entry for today.
func (s *HabitStore) IsDoneToday(habitID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ledger.Done(dates.Key(s.now()), habitID)
}

// TodayProgress returns how many active habits are done today and how many
// there are in total.
func (s *HabitStore) TodayProgress() (completed, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := dates.Key(s.now())
	for _, h := range s.habits {
		if !h.Active {
			continue
		}
		total++
		if s.ledger.Done(today, h.ID) {
			completed++
		}
	}
	return completed, total
}

// Ledger returns a copy of the completion ledger.
func (s *HabitStore) Ledger() models.Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ledger.Clone()
}

// Settings returns the current settings record.
func (s *HabitStore) Settings() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.settings
}

// Now returns the store's reference instant.
func (s *HabitStore) Now() time.Time {
	return s.now()
}

// SetNotificationsEnabled flips the global notifications flag through the
// reconciler so the flip is always paired with its scheduling side effects.
// Disabling cancels every active habit's live schedule before the flag
// flips; enabling requests permission and, when denied, leaves the flag off
// and returns the permission error.
func (s *HabitStore) SetNotificationsEnabled(enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Work on copies so a failed transition leaves the store untouched.
	habits := make([]models.Habit, len(s.habits))
	copy(habits, s.habits)
	ptrs := make([]*models.Habit, 0, len(habits))
	for i := range habits {
		if habits[i].Active {
			ptrs = append(ptrs, &habits[i])
		}
	}

	final, err := s.rec.SetEnabled(enabled, ptrs)
	if err != nil {
		s.settings.NotificationsEnabled = false
		s.changed()
		return err
	}

	s.habits = habits
	s.settings.NotificationsEnabled = final
	s.changed()
	return nil
}

// ResetAll cancels every known schedule best-effort and resets the store to
// its first-run state. Persisted snapshots are removed separately by the
// synchronizer.
func (s *HabitStore) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	ptrs := make([]*models.Habit, 0, len(s.habits))
	for i := range s.habits {
		if s.habits[i].NotificationID != nil {
			ptrs = append(ptrs, &s.habits[i])
		}
	}
	s.rec.CancelAll(ptrs)

	s.habits = nil
	s.ledger = models.Ledger{}
	s.settings = models.Settings{NotificationsEnabled: constants.DefaultNotificationsEnabled}
}

// Snapshot returns copies of all three collections for persistence.
func (s *HabitStore) Snapshot() ([]models.Habit, models.Ledger, models.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	habits := make([]models.Habit, len(s.habits))
	copy(habits, s.habits)
	return habits, s.ledger.Clone(), s.settings
}

// hydrate installs loaded collections. Used once by the synchronizer before
// any mutation is accepted.
func (s *HabitStore) hydrate(habits []models.Habit, ledger models.Ledger, settings models.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ledger == nil {
		ledger = models.Ledger{}
	}
	s.habits = habits
	s.ledger = ledger
	s.settings = settings
}
