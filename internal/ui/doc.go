// Package ui provides the terminal building blocks shared by loghoi's
// screens and commands.
//
// # Components Overview
//
//	SpinnerComponent - Loading indicator for Bubble Tea models
//	RenderBanner     - "Welcome to Log Hoihoi!" title banner
//	PhaseDisplay     - Line-by-line status output for non-interactive runs
//	NewTable         - Styled Bubbles table
//
// # Color Scheme
//
// Colors are ANSI codes for broad terminal compatibility. Use
// DisableColors() to switch to monochrome output (for --no-color).
package ui
