package streak

import (
	"time"

	"github.com/tomaskoller/arbor/internal/dates"
	apperrors "github.com/tomaskoller/arbor/internal/errors"
	"github.com/tomaskoller/arbor/internal/models"
)

// Count returns the number of consecutive calendar days, ending at today,
// with a true completion entry for the habit. If today itself is not done
// the streak is 0; a streak never looks back past a gap.
//
// The walk stops at the calendar day the habit was created on. A zero
// createdAt is rejected rather than treated as "no lower bound": without the
// bound, a ledger dense with true entries would make the backward walk
// unbounded.
func Count(habitID string, ledger models.Ledger, createdAt, today time.Time) (int, error) {
	if createdAt.IsZero() {
		return 0, apperrors.Validationf("habit %s has no creation date; streak requires a lower bound", habitID)
	}

	// Date keys sort lexically, so comparing keys compares calendar days
	// even when createdAt and today carry different locations.
	createdKey := dates.Key(createdAt)

	count := 0
	cursor := today
	for {
		key := dates.Key(cursor)
		if key < createdKey {
			break
		}
		if !ledger.Done(key, habitID) {
			break
		}
		count++
		cursor = dates.AddDays(cursor, -1)
	}

	return count, nil
}
