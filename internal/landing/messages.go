package landing

import "github.com/loghoi/loghoi/internal/readiness"

// PhaseMsg reports a readiness phase change to the model.
type PhaseMsg struct {
	Phase   readiness.Phase
	Outcome readiness.Outcome
}
