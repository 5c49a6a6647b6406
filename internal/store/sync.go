package store

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/tomaskoller/arbor/internal/constants"
	apperrors "github.com/tomaskoller/arbor/internal/errors"
	"github.com/tomaskoller/arbor/internal/logger"
	"github.com/tomaskoller/arbor/internal/models"
	"github.com/tomaskoller/arbor/internal/storage"
)

// Synchronizer keeps the persistence gateway in sync with the store:
// initial hydration on startup, then debounced whole-collection snapshots
// after every mutation. In-memory state stays authoritative; gateway
// failures only ever produce warnings.
type Synchronizer struct {
	gw       storage.Gateway
	store    *HabitStore
	debounce time.Duration

	mu       sync.Mutex
	timer    *time.Timer
	hydrated bool
}

func NewSynchronizer(gw storage.Gateway, s *HabitStore, debounce time.Duration) *Synchronizer {
	y := &Synchronizer{
		gw:       gw,
		store:    s,
		debounce: debounce,
	}
	s.onChange = y.Notify
	return y
}

// Hydrate loads all three collections independently. A missing or corrupt
// record for one collection defaults that collection only; the others still
// load. Mutations are not persisted until hydration has run, so a failed
// startup can never overwrite good data with empty state.
func (y *Synchronizer) Hydrate() {
	habits := []models.Habit{}
	if data, ok := y.load(constants.KeyHabits, "habits"); ok {
		if err := json.Unmarshal(data, &habits); err != nil {
			habits = []models.Habit{}
			y.store.warn(apperrors.Persistencef("saved habits are corrupt, starting empty: %v", err))
		}
	}

	ledger := models.Ledger{}
	if data, ok := y.load(constants.KeyCompletions, "completions"); ok {
		if err := json.Unmarshal(data, &ledger); err != nil {
			ledger = models.Ledger{}
			y.store.warn(apperrors.Persistencef("saved completions are corrupt, starting empty: %v", err))
		}
	}

	settings := models.Settings{NotificationsEnabled: constants.DefaultNotificationsEnabled}
	if data, ok := y.load(constants.KeySettings, "settings"); ok {
		if err := json.Unmarshal(data, &settings); err != nil {
			settings = models.Settings{NotificationsEnabled: constants.DefaultNotificationsEnabled}
			y.store.warn(apperrors.Persistencef("saved settings are corrupt, using defaults: %v", err))
		}
	}

	y.store.hydrate(habits, ledger, settings)

	y.mu.Lock()
	y.hydrated = true
	y.mu.Unlock()

	logger.Debug("Hydrated store", "habits", len(habits), "ledger_days", len(ledger))
}

func (y *Synchronizer) load(key, what string) ([]byte, bool) {
	data, ok, err := y.gw.Load(key)
	if err != nil {
		y.store.warn(apperrors.Persistencef("could not load %s, starting empty: %v", what, err))
		return nil, false
	}
	return data, ok
}

// Notify schedules a snapshot after the debounce window, coalescing bursts
// of mutations into one write.
func (y *Synchronizer) Notify() {
	y.mu.Lock()
	defer y.mu.Unlock()

	if !y.hydrated {
		return
	}
	if y.timer != nil {
		y.timer.Stop()
	}
	y.timer = time.AfterFunc(y.debounce, func() {
		_ = y.Flush()
	})
}

// Flush writes all three collections now, as independent whole-collection
// saves. The first failure is returned (and warned), but the remaining
// collections are still attempted.
func (y *Synchronizer) Flush() error {
	y.mu.Lock()
	if y.timer != nil {
		y.timer.Stop()
		y.timer = nil
	}
	hydrated := y.hydrated
	y.mu.Unlock()

	if !hydrated {
		return nil
	}

	habits, ledger, settings := y.store.Snapshot()

	var firstErr error
	y.save(constants.KeyHabits, "habits", habits, &firstErr)
	y.save(constants.KeyCompletions, "completions", ledger, &firstErr)
	y.save(constants.KeySettings, "settings", settings, &firstErr)
	return firstErr
}

func (y *Synchronizer) save(key, what string, v interface{}, firstErr *error) {
	data, err := json.Marshal(v)
	if err == nil {
		err = y.gw.Save(key, data)
	}
	if err != nil {
		wrapped := apperrors.Persistencef("could not save %s: %v", what, err)
		y.store.warn(wrapped)
		if *firstErr == nil {
			*firstErr = wrapped
		}
	}
}

// Reset drops any pending snapshot and removes all three persisted
// collections. Persistence stays off until the next Hydrate so a later
// flush cannot resurrect the removed keys.
func (y *Synchronizer) Reset() error {
	y.mu.Lock()
	if y.timer != nil {
		y.timer.Stop()
		y.timer = nil
	}
	y.hydrated = false
	y.mu.Unlock()

	var firstErr error
	for _, key := range []string{constants.KeyHabits, constants.KeyCompletions, constants.KeySettings} {
		if err := y.gw.Remove(key); err != nil {
			wrapped := apperrors.Persistencef("could not remove %s: %v", key, err)
			y.store.warn(wrapped)
			if firstErr == nil {
				firstErr = wrapped
			}
		}
	}
	return firstErr
}
