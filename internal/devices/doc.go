// Package devices implements the two panels of the main screen: the list of
// registered devices and the registration form.
//
// Both are Bubble Tea components meant to be embedded in a parent model.
// Neither does any work until its Init runs, so the parent controls exactly
// when the backend is first contacted.
package devices
