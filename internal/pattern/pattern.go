package pattern

import (
	"regexp"

	"github.com/NITESH-8/logsift/internal/config"
)

// Rule is a single compiled error signature with its metadata.
// Rules are immutable after construction and safe for concurrent use.
type Rule struct {
	Matcher     *regexp.Regexp
	Severity    config.Severity
	Category    config.Category
	Confidence  float64
	Description string
}

// Library is an immutable collection of rules and shared false-positive
// guards. A single Library instance is shared read-only by all
// concurrent classification work; no locking is required.
type Library struct {
	rules  []Rule
	guards []*regexp.Regexp
}

// New creates a Library from explicit rules and guards. Tests use this
// to substitute custom rule sets without process-wide side effects.
func New(rules []Rule, guards []*regexp.Regexp) *Library {
	return &Library{rules: rules, guards: guards}
}

// Rules returns the compiled rules. Callers must not modify the slice.
func (l *Library) Rules() []Rule {
	return l.rules
}

// Guards returns the shared false-positive guard patterns.
func (l *Library) Guards() []*regexp.Regexp {
	return l.guards
}

// Len returns the number of rules in the library.
func (l *Library) Len() int {
	return len(l.rules)
}

// Suppressed reports whether any false-positive guard matches the text.
// A guard match unconditionally suppresses all detections for the text.
func (l *Library) Suppressed(text string) bool {
	for _, g := range l.guards {
		if g.MatchString(text) {
			return true
		}
	}
	return false
}
