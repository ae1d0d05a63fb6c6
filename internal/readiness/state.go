package readiness

import "fmt"

// TransitionError is returned by State.Advance for an illegal transition.
type TransitionError struct {
	From Phase
	To   Phase
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("readiness: cannot move from %s to %s", e.From, e.To)
}

// State is the readiness state machine for one launch. The zero value is not
// usable; start from NewState.
type State struct {
	phase         Phase
	setupComplete bool
	history       []Phase
}

// NewState returns a State in PhaseChecking.
func NewState() State {
	return State{
		phase:   PhaseChecking,
		history: []Phase{PhaseChecking},
	}
}

// Phase returns the current phase.
func (s State) Phase() Phase {
	return s.phase
}

// SetupComplete reports whether the main view may be shown.
func (s State) SetupComplete() bool {
	return s.setupComplete
}

// History returns the phases visited so far, oldest first.
func (s State) History() []Phase {
	out := make([]Phase, len(s.history))
	copy(out, s.history)
	return out
}

// Advance moves to the given phase. Illegal transitions, including repeating
// the current phase, return a *TransitionError and leave s unchanged.
func (s *State) Advance(to Phase) error {
	if !canAdvance(s.phase, to) {
		return &TransitionError{From: s.phase, To: to}
	}

	s.phase = to
	// Older copies of s share the backing array.
	history := make([]Phase, len(s.history), len(s.history)+1)
	copy(history, s.history)
	s.history = append(history, to)

	if to == PhaseComplete {
		s.setupComplete = true
	}
	return nil
}
