// Package landing is loghoi's first screen.
//
// The screen starts on the setup view: the title banner and a loading
// indicator. Model.Init starts the readiness check in the background and the
// check reports back through a Bridge as PhaseMsg values. While the backend
// is generating a key, a one-line explanation sits under the indicator.
//
// Once readiness completes, the model switches to the main view: the device
// list on the left and the registration form on the right. The device
// panels are created at that moment and not before, so neither contacts the
// backend until setup has settled. The switch never goes back.
//
// Run picks between the full-screen program and a plain line-by-line report
// when stdout is not a terminal.
package landing
