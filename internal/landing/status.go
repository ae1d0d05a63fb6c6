package landing

import "github.com/loghoi/loghoi/internal/readiness"

// GeneratingMessage is shown under the loading indicator while the backend
// generates its SSH key.
const GeneratingMessage = "Generating SSH key (first run only)..."

// StatusMessage returns the extra line for the setup view, or "".
func StatusMessage(phase readiness.Phase) string {
	if phase == readiness.PhaseGenerating {
		return GeneratingMessage
	}
	return ""
}
