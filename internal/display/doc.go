// Package display renders analysis results and cache listings for the
// terminal.
//
// Rendering is pure string construction (lipgloss panels and tables) so it
// can be tested without a TTY; color for status lines is disabled
// automatically when stdout is not a terminal.
package display
