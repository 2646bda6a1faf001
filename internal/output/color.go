package output

import (
	"os"

	"golang.org/x/term"

	"github.com/NITESH-8/logsift/internal/config"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

// ColorMode determines when to use colored output.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // Auto-detect based on TTY
	ColorAlways                  // Always use colors
	ColorNever                   // Never use colors
)

// ParseColorMode converts a string to a ColorMode, defaulting to auto.
func ParseColorMode(s string) ColorMode {
	switch s {
	case "always":
		return ColorAlways
	case "never":
		return ColorNever
	default:
		return ColorAuto
	}
}

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// shouldColorize determines if output should be colorized based on mode and TTY detection.
func shouldColorize(mode ColorMode, w interface{}) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	case ColorAuto:
		// Check if writer is a file and if it's a terminal
		if f, ok := w.(*os.File); ok {
			return isTerminal(f)
		}
		return false
	}
	return false
}

// colorizeSeverity adds color to a severity label.
func colorizeSeverity(sev config.Severity, text string) string {
	switch sev {
	case config.SeverityInfo:
		return colorGray + text + colorReset
	case config.SeverityLow:
		return text // Default color
	case config.SeverityMedium:
		return colorYellow + text + colorReset
	case config.SeverityHigh:
		return colorRed + text + colorReset
	case config.SeverityCritical:
		return colorBold + colorRed + text + colorReset
	default:
		return text
	}
}

// FormatSeverity formats a severity label with optional coloring.
func FormatSeverity(sev config.Severity, colorize bool) string {
	if colorize {
		return colorizeSeverity(sev, sev.String())
	}
	return sev.String()
}
