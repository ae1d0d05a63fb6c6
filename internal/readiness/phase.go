package readiness

// Phase is the readiness state of one launch.
type Phase int

const (
	PhaseChecking Phase = iota
	PhaseGenerating
	PhaseComplete
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseChecking:
		return "checking"
	case PhaseGenerating:
		return "generating"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// MarshalText renders the phase name, so phases read well in JSON output.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// canAdvance reports whether from -> to is a legal transition.
func canAdvance(from, to Phase) bool {
	switch from {
	case PhaseChecking:
		return to == PhaseGenerating || to == PhaseComplete
	case PhaseGenerating:
		return to == PhaseComplete
	default:
		return false
	}
}
