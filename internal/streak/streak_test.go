package streak

import (
	"testing"
	"time"

	"github.com/tomaskoller/arbor/internal/dates"
	apperrors "github.com/tomaskoller/arbor/internal/errors"
	"github.com/tomaskoller/arbor/internal/models"
)

const habitID = "h1"

func day(key string, t *testing.T) time.Time {
	t.Helper()
	d, err := dates.ParseKey(key)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

// ledgerRange marks habitID done for every day from fromKey to toKey inclusive.
func ledgerRange(t *testing.T, fromKey, toKey string) models.Ledger {
	t.Helper()
	ledger := models.Ledger{}
	for cursor := day(fromKey, t); dates.Key(cursor) <= toKey; cursor = dates.AddDays(cursor, 1) {
		ledger.Set(dates.Key(cursor), habitID, true)
	}
	return ledger
}

func TestCountFullRunSinceCreation(t *testing.T) {
	tests := []struct {
		name    string
		created string
		today   string
		want    int
	}{
		{"single day", "2024-03-01", "2024-03-01", 1},
		{"one week", "2024-02-24", "2024-03-01", 7},
		{"across year boundary", "2024-12-30", "2025-01-02", 4},
		{"across leap day", "2024-02-28", "2024-03-01", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := ledgerRange(t, tt.created, tt.today)
			got, err := Count(habitID, ledger, day(tt.created, t), day(tt.today, t))
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Count() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCountZeroWhenTodayNotDone(t *testing.T) {
	// Long history, but nothing today
	ledger := ledgerRange(t, "2024-02-01", "2024-02-28")
	got, err := Count(habitID, ledger, day("2024-02-01", t), day("2024-02-29", t))
	if err != nil {
		t.Fatal(err)
	}
	if got != 0 {
		t.Errorf("Count() = %d, want 0 when today is not done", got)
	}
}

func TestCountStopsAtGap(t *testing.T) {
	ledger := ledgerRange(t, "2024-03-05", "2024-03-10")
	// Earlier run separated by a gap on 2024-03-04
	for _, key := range []string{"2024-03-01", "2024-03-02", "2024-03-03"} {
		ledger.Set(key, habitID, true)
	}

	got, err := Count(habitID, ledger, day("2024-03-01", t), day("2024-03-10", t))
	if err != nil {
		t.Fatal(err)
	}
	if got != 6 {
		t.Errorf("Count() = %d, want 6 (run must not bridge the gap)", got)
	}
}

func TestCountExplicitFalseBreaksRun(t *testing.T) {
	ledger := ledgerRange(t, "2024-03-01", "2024-03-03")
	ledger.Set(dates.Key(day("2024-03-03", t)), habitID, false)

	got, err := Count(habitID, ledger, day("2024-03-01", t), day("2024-03-03", t))
	if err != nil {
		t.Fatal(err)
	}
	if got != 0 {
		t.Errorf("Count() = %d, want 0 when today's entry is explicitly false", got)
	}
}

func TestCountNeverCountsDaysBeforeCreation(t *testing.T) {
	// Ledger has true entries well before the habit existed
	ledger := ledgerRange(t, "2024-01-01", "2024-03-10")

	got, err := Count(habitID, ledger, day("2024-03-08", t), day("2024-03-10", t))
	if err != nil {
		t.Fatal(err)
	}
	if got != 3 {
		t.Errorf("Count() = %d, want 3 (bounded by creation date)", got)
	}
}

func TestCountIgnoresOtherHabits(t *testing.T) {
	ledger := models.Ledger{}
	ledger.Set("2024-03-01", "other", true)

	got, err := Count(habitID, ledger, day("2024-03-01", t), day("2024-03-01", t))
	if err != nil {
		t.Fatal(err)
	}
	if got != 0 {
		t.Errorf("Count() = %d, want 0 for a habit with no entries", got)
	}
}

func TestCountRejectsZeroCreatedAt(t *testing.T) {
	ledger := ledgerRange(t, "2024-03-01", "2024-03-10")

	_, err := Count(habitID, ledger, time.Time{}, day("2024-03-10", t))
	if err == nil {
		t.Fatal("expected error for zero createdAt, got nil")
	}
	if !apperrors.Is(err, apperrors.ErrValidation) {
		t.Errorf("error kind = %v, want ErrValidation", err)
	}
}

func TestCountCreatedLaterSameDayStillCounts(t *testing.T) {
	// Habit created at 18:00; completion marked the same evening.
	created := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)
	today := time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC)
	ledger := models.Ledger{}
	ledger.Set("2024-03-01", habitID, true)

	got, err := Count(habitID, ledger, created, today)
	if err != nil {
		t.Fatal(err)
	}
	if got != 1 {
		t.Errorf("Count() = %d, want 1 on the creation day itself", got)
	}
}
