package models

// Ledger maps a date key (YYYY-MM-DD, local calendar day) to the habits
// completed on that day. Absence of an entry means "not done". Entries for
// soft-deleted habits are retained; history is immutable once written.
type Ledger map[string]map[string]bool

// Done reports whether the habit was marked done on the given day.
func (l Ledger) Done(dateKey, habitID string) bool {
	return l[dateKey][habitID]
}

// Set upserts the completion flag for (dateKey, habitID). Last write wins.
func (l Ledger) Set(dateKey, habitID string, done bool) {
	day, ok := l[dateKey]
	if !ok {
		day = make(map[string]bool)
		l[dateKey] = day
	}
	day[habitID] = done
}

// Clone returns a deep copy of the ledger.
func (l Ledger) Clone() Ledger {
	out := make(Ledger, len(l))
	for dateKey, day := range l {
		dup := make(map[string]bool, len(day))
		for id, done := range day {
			dup[id] = done
		}
		out[dateKey] = dup
	}
	return out
}
