// Package cli provides the output helpers of the vydriver command.
package cli

import (
	"os"
	"strconv"
	"strings"
)

// colorEnabled is false when NO_COLOR env var is set (per no-color.org).
var colorEnabled = os.Getenv("NO_COLOR") == ""

func paint(code, s string) string {
	if !colorEnabled {
		return s
	}
	return code + s + "\033[0m"
}

// Green wraps s in ANSI green. Returns s unchanged when NO_COLOR is set.
func Green(s string) string { return paint("\033[32m", s) }

// Yellow wraps s in ANSI yellow.
func Yellow(s string) string { return paint("\033[33m", s) }

// Red wraps s in ANSI red.
func Red(s string) string { return paint("\033[31m", s) }

// Bold wraps s in ANSI bold.
func Bold(s string) string { return paint("\033[1m", s) }

// Dim wraps s in ANSI dim.
func Dim(s string) string { return paint("\033[2m", s) }

// UpDown renders a link or session state.
func UpDown(up bool) string {
	if up {
		return Green("up")
	}
	return Red("down")
}

// YesNo renders a flag.
func YesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// Dash returns "-" for an empty value.
func Dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Number renders n, or "-" for the -1 "not reported" sentinel.
func Number(n int64) string {
	if n == -1 {
		return "-"
	}
	return strconv.FormatInt(n, 10)
}

// DotPad pads name with dots to the given width.
// Example: DotPad("load", 12) → "load ......."
func DotPad(name string, width int) string {
	if width <= 0 || len(name) >= width-1 {
		return name
	}
	dots := width - len(name) - 1
	return name + " " + strings.Repeat(".", dots)
}
