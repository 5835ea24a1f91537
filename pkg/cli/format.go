// Package cli provides console helpers for the wancost CLI: colors,
// aligned report fields, tables, and operator prompts.
package cli

import (
	"os"
	"strings"
)

// colorEnabled is false when NO_COLOR env var is set (per no-color.org).
var colorEnabled = os.Getenv("NO_COLOR") == ""

// SetColor overrides color detection.
func SetColor(enabled bool) {
	colorEnabled = enabled
}

// Green wraps s in ANSI green. Returns s unchanged when NO_COLOR is set.
func Green(s string) string {
	return wrap("\033[32m", s)
}

// Yellow wraps s in ANSI yellow. Returns s unchanged when NO_COLOR is set.
func Yellow(s string) string {
	return wrap("\033[33m", s)
}

// Red wraps s in ANSI red. Returns s unchanged when NO_COLOR is set.
func Red(s string) string {
	return wrap("\033[31m", s)
}

// Bold wraps s in ANSI bold. Returns s unchanged when NO_COLOR is set.
func Bold(s string) string {
	return wrap("\033[1m", s)
}

func wrap(code, s string) string {
	if !colorEnabled {
		return s
	}
	return code + s + "\033[0m"
}

// Field formats a "label : value" report line, padding label to width.
// Example: Field("Circuit COST", "500", 20) → "Circuit COST         : 500"
func Field(label, value string, width int) string {
	if pad := width - len(label); pad > 0 {
		label += strings.Repeat(" ", pad)
	}
	return label + " : " + value
}

// Dash returns "-" for an empty string.
func Dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
