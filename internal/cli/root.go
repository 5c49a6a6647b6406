package cli

import (
	"fmt"
	"strings"

	apperrors "github.com/tomaskoller/arbor/internal/errors"
	"github.com/tomaskoller/arbor/internal/models"
	"github.com/tomaskoller/arbor/internal/store"
)

type Context struct {
	Store      *store.HabitStore
	Sync       *store.Synchronizer
	ConfigPath string
}

// FindHabit resolves a habit reference, which may be an id or a name.
// Name matching is case-insensitive and includes soft-deleted habits so
// restore can reach them.
func (c *Context) FindHabit(ref string) (models.Habit, error) {
	if h, err := c.Store.HabitByID(ref); err == nil {
		return h, nil
	}

	var matches []models.Habit
	for _, h := range c.Store.Habits(true) {
		if strings.EqualFold(h.Name, strings.TrimSpace(ref)) {
			matches = append(matches, h)
		}
	}

	switch len(matches) {
	case 0:
		return models.Habit{}, apperrors.NotFoundf("habit %q", ref)
	case 1:
		return matches[0], nil
	default:
		// Prefer the single active one when a deleted habit shares the name
		var active []models.Habit
		for _, h := range matches {
			if h.Active {
				active = append(active, h)
			}
		}
		if len(active) == 1 {
			return active[0], nil
		}
		return models.Habit{}, fmt.Errorf("habit name %q is ambiguous, use the id instead", ref)
	}
}
