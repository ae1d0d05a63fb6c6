// Package readiness decides, once per launch, whether the backend holds a
// usable SSH key, asking it to generate one when it doesn't.
//
// # Phases
//
// A launch moves through a small, forward-only state machine:
//
//	checking ──► generating ──► complete
//	    └──────────────────────────▲
//
// checking moves to generating only when the backend reports a key was just
// generated; every other result (already present, unknown status, HTTP
// failure, unreachable backend) moves straight to complete. generating moves
// to complete after a grace delay so the user can see what happened.
//
// State enforces the transitions. SetupComplete is true exactly when the
// phase is complete, and neither ever goes back.
//
// # Running the check
//
// Checker performs the single backend call and reduces it to an Outcome.
// Failures are logged and never returned: the caller always gets to
// complete.
//
// Runner owns the check as a fire-once background task. Start is safe to
// call repeatedly; only the first call runs. Phase changes are delivered to a
// Listener. After Stop, remaining deliveries are dropped, so a listener that
// has been torn down never sees a late update.
package readiness
