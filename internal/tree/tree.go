package tree

// State is the discrete wellness tier derived from today's completion ratio.
type State string

const (
	StateHealthy State = "healthy"
	StateNormal  State = "normal"
	StateWeak    State = "weak"
	StateDry     State = "dry"
)

// CompletionRate returns completed/total clamped to [0,1]. A day with no
// habits has rate 0; this is a defined value, not an error, so the "no
// habits yet" state never divides by zero.
func CompletionRate(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	rate := float64(completed) / float64(total)
	if rate < 0 {
		return 0
	}
	if rate > 1 {
		return 1
	}
	return rate
}

// Classify maps a completion rate to a tree state. Thresholds are evaluated
// high to low with inclusive lower bounds.
func Classify(rate float64) State {
	switch {
	case rate >= 0.8:
		return StateHealthy
	case rate >= 0.5:
		return StateNormal
	case rate >= 0.2:
		return StateWeak
	default:
		return StateDry
	}
}

// Glyph returns the display glyph for the state.
func (s State) Glyph() string {
	switch s {
	case StateHealthy:
		return "🌳"
	case StateNormal:
		return "🌿"
	case StateWeak:
		return "🍂"
	default:
		return "🪵"
	}
}

// Message returns the encouragement line for the state.
func (s State) Message() string {
	switch s {
	case StateHealthy:
		return "Your tree is growing!"
	case StateNormal:
		return "Nice work, keep going!"
	case StateWeak:
		return "Your tree needs a bit more care."
	default:
		return "Let's try again today."
	}
}
