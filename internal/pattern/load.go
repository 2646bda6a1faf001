package pattern

import (
	"bufio"
	"os"
	"regexp"
	"strings"

	"github.com/NITESH-8/logsift/internal/config"
	"github.com/NITESH-8/logsift/internal/logging"
)

// Load builds a Library from a keywords file. An empty path selects the
// built-in default rule set; an unreadable or empty file degrades to
// the minimal fallback set with a logged warning. Load never fails.
//
// File format: plain keywords, one per line. Lines starting with "#"
// are headers that set the category or severity applied to keywords
// that follow. A header sets one axis; category tokens take precedence,
// so use separate headers to change both:
//
//	# MEMORY ERRORS
//	# CRITICAL SEVERITY
//	segmentation fault
//	out of memory
func Load(path string) *Library {
	log := logging.Named("pattern")

	if path == "" {
		return Default()
	}

	f, err := os.Open(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("could not read keywords file, using fallback patterns")
		return Fallback()
	}
	defer f.Close()

	currentCategory := config.CategoryUnknown
	currentSeverity := config.SeverityMedium

	var rules []Rule
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "#") {
			cat, sev := parseHeader(line, currentCategory, currentSeverity)
			currentCategory, currentSeverity = cat, sev
			continue
		}

		rules = append(rules, Rule{
			Matcher:     Build(line),
			Severity:    currentSeverity,
			Category:    currentCategory,
			Confidence:  Confidence(line),
			Description: line,
		})
	}

	if err := scanner.Err(); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("error reading keywords file, using fallback patterns")
		return Fallback()
	}
	if len(rules) == 0 {
		log.Warn().Str("path", path).Msg("keywords file contains no rules, using fallback patterns")
		return Fallback()
	}

	log.Debug().Int("rules", len(rules)).Str("path", path).Msg("loaded keywords file")
	return New(rules, DefaultGuards())
}

// parseHeader interprets a "#" header line. Category tokens are checked
// before severity tokens, and a header that names neither leaves the
// current values unchanged.
func parseHeader(line string, cat config.Category, sev config.Severity) (config.Category, config.Severity) {
	lower := strings.ToLower(line)

	switch {
	case strings.Contains(lower, "system"):
		return config.CategorySystem, sev
	case strings.Contains(lower, "memory"), strings.Contains(lower, "segmentation"), strings.Contains(lower, "null pointer"):
		return config.CategoryMemory, sev
	case strings.Contains(lower, "network"):
		return config.CategoryNetwork, sev
	case strings.Contains(lower, "database"):
		return config.CategoryDatabase, sev
	case strings.Contains(lower, "security"):
		return config.CategorySecurity, sev
	case strings.Contains(lower, "application"):
		return config.CategoryApplication, sev
	case strings.Contains(lower, "hardware"), strings.Contains(lower, "thermal"), strings.Contains(lower, "fan"):
		return config.CategoryHardware, sev
	case strings.Contains(lower, "kernel"), strings.Contains(lower, "panic"), strings.Contains(lower, "bug"):
		return config.CategoryKernel, sev
	case strings.Contains(lower, "critical"):
		return cat, config.SeverityCritical
	case strings.Contains(lower, "high"):
		return cat, config.SeverityHigh
	case strings.Contains(lower, "medium"):
		return cat, config.SeverityMedium
	case strings.Contains(lower, "low"):
		return cat, config.SeverityLow
	case strings.Contains(lower, "info"):
		return cat, config.SeverityInfo
	}

	return cat, sev
}

// fallbackKeywords is the minimal generic set used when no better rule
// source is available.
var fallbackKeywords = []string{"error", "fail", "exception", "crash", "fatal"}

// Fallback returns the minimal built-in library: generic keywords at
// MEDIUM severity, UNKNOWN category, confidence 0.5, matched on word
// boundaries only (no context widening).
func Fallback() *Library {
	rules := make([]Rule, 0, len(fallbackKeywords))
	for _, kw := range fallbackKeywords {
		rules = append(rules, Rule{
			Matcher:     regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(kw) + `\b`),
			Severity:    config.SeverityMedium,
			Category:    config.CategoryUnknown,
			Confidence:  0.5,
			Description: kw,
		})
	}
	return New(rules, DefaultGuards())
}
