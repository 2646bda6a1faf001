package pattern

import (
	"github.com/NITESH-8/logsift/internal/config"
)

// builtinKeywords is the default rule source shipped with the tool,
// grouped the way a keywords file groups them. Keywords found in the
// enhanced lookup table get widened matchers; the rest match on word
// boundaries.
var builtinKeywords = []struct {
	keyword  string
	severity config.Severity
	category config.Category
}{
	{"kernel panic", config.SeverityCritical, config.CategoryKernel},
	{"BUG_ON", config.SeverityCritical, config.CategoryKernel},
	{"segmentation fault", config.SeverityCritical, config.CategoryMemory},
	{"SIGSEGV", config.SeverityCritical, config.CategoryMemory},
	{"out of memory", config.SeverityCritical, config.CategoryMemory},
	{"core dumped", config.SeverityCritical, config.CategorySystem},
	{"fatal", config.SeverityCritical, config.CategorySystem},

	{"null pointer", config.SeverityHigh, config.CategoryMemory},
	{"buffer overflow", config.SeverityHigh, config.CategoryMemory},
	{"stack overflow", config.SeverityHigh, config.CategoryMemory},
	{"memory leak", config.SeverityHigh, config.CategoryMemory},
	{"corruption", config.SeverityHigh, config.CategoryHardware},
	{"crash", config.SeverityHigh, config.CategorySystem},
	{"database error", config.SeverityHigh, config.CategoryDatabase},
	{"sql error", config.SeverityHigh, config.CategoryDatabase},
	{"deadlock", config.SeverityHigh, config.CategoryDatabase},
	{"connection refused", config.SeverityHigh, config.CategoryNetwork},
	{"network error", config.SeverityHigh, config.CategoryNetwork},
	{"socket error", config.SeverityHigh, config.CategoryNetwork},
	{"permission denied", config.SeverityHigh, config.CategorySecurity},
	{"access denied", config.SeverityHigh, config.CategorySecurity},
	{"unauthorized", config.SeverityHigh, config.CategorySecurity},

	{"timeout", config.SeverityMedium, config.CategoryNetwork},
	{"file not found", config.SeverityMedium, config.CategorySystem},
	{"syntax error", config.SeverityMedium, config.CategoryApplication},
	{"parse error", config.SeverityMedium, config.CategoryApplication},
	{"exception", config.SeverityMedium, config.CategoryApplication},
	{"abort", config.SeverityMedium, config.CategoryApplication},
	{"halt", config.SeverityMedium, config.CategorySystem},
	{"error", config.SeverityMedium, config.CategoryUnknown},
	{"failed", config.SeverityMedium, config.CategoryUnknown},
	{"failure", config.SeverityMedium, config.CategoryUnknown},

	{"retry", config.SeverityLow, config.CategoryApplication},
	{"deprecated", config.SeverityLow, config.CategoryApplication},
	{"throttled", config.SeverityLow, config.CategoryNetwork},
}

// Default returns the built-in rule library. It is constructed fresh on
// each call so callers own their instance; nothing here is a hidden
// process-wide singleton.
func Default() *Library {
	rules := make([]Rule, 0, len(builtinKeywords))
	for _, kw := range builtinKeywords {
		rules = append(rules, Rule{
			Matcher:     Build(kw.keyword),
			Severity:    kw.severity,
			Category:    kw.category,
			Confidence:  Confidence(kw.keyword),
			Description: kw.keyword,
		})
	}
	return New(rules, DefaultGuards())
}
