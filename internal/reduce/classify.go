package reduce

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/NITESH-8/logsift/internal/config"
	"github.com/NITESH-8/logsift/internal/pattern"
)

// confidenceFloor is the minimum confidence for a match to count as an
// error. It suppresses low-confidence incidental matches.
const confidenceFloor = 0.3

// maxContextSnippets bounds how many match contexts a detection keeps.
const maxContextSnippets = 3

// contextRadius is how many bytes of surrounding text each snippet keeps.
const contextRadius = 50

// NoContext is the sentinel used when a detection has no match context.
const NoContext = "No specific context"

// Detection is the classification verdict for a single chunk. It is
// produced once and never mutated afterward.
type Detection struct {
	IsError       bool
	Severity      config.Severity
	Category      config.Category
	Confidence    float64
	Patterns      []string
	Context       string
	FalsePositive bool
}

// Classifier evaluates chunks against a shared pattern library.
// Classification is stateless and side-effect-free, so a single
// Classifier is safe for concurrent use without synchronization.
type Classifier struct {
	library *pattern.Library
}

// NewClassifier creates a Classifier over the given library.
func NewClassifier(lib *pattern.Library) *Classifier {
	return &Classifier{library: lib}
}

// Classify evaluates one chunk and returns its verdict.
//
// False-positive guards are checked first: any guard match suppresses
// the whole chunk with no rule evaluation. Otherwise every rule runs
// against the joined chunk text; the strongest severity wins (first
// seen wins ties) and carries its category, confidence is the maximum
// over matching rules, and up to three context snippets are kept.
func (c *Classifier) Classify(chunk Chunk) Detection {
	text := strings.Join(chunk.Lines, " ")

	if c.library.Suppressed(text) {
		return Detection{FalsePositive: true, Context: NoContext}
	}

	var (
		patterns  []string
		contexts  []string
		severity  = config.SeverityInfo
		category  = config.CategoryUnknown
		maxConf   float64
		seenDescs = make(map[string]struct{})
	)

	for _, rule := range c.library.Rules() {
		locs := rule.Matcher.FindAllStringIndex(text, maxContextSnippets)
		if len(locs) == 0 {
			continue
		}

		key := strings.ToLower(rule.Description)
		if _, ok := seenDescs[key]; !ok {
			seenDescs[key] = struct{}{}
			patterns = append(patterns, rule.Description)
		}

		// Strongest severity wins; strict comparison keeps the first
		// seen on ties. The reported category follows the strongest
		// severity seen so far.
		if rule.Severity.Rank() > severity.Rank() {
			severity = rule.Severity
			category = rule.Category
		}

		if rule.Confidence > maxConf {
			maxConf = rule.Confidence
		}

		for _, loc := range locs {
			if len(contexts) >= maxContextSnippets {
				break
			}
			contexts = append(contexts, snippet(text, loc[0], loc[1]))
		}
	}

	context := NoContext
	if len(contexts) > 0 {
		context = strings.Join(contexts, "; ")
	}

	return Detection{
		IsError:    len(patterns) > 0 && maxConf > confidenceFloor,
		Severity:   severity,
		Category:   category,
		Confidence: maxConf,
		Patterns:   patterns,
		Context:    context,
	}
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// snippet extracts whitespace-normalized context around a match,
// clamped to rune boundaries.
func snippet(text string, start, end int) string {
	lo := start - contextRadius
	if lo < 0 {
		lo = 0
	}
	hi := end + contextRadius
	if hi > len(text) {
		hi = len(text)
	}

	for lo > 0 && !utf8.RuneStart(text[lo]) {
		lo--
	}
	for hi < len(text) && !utf8.RuneStart(text[hi]) {
		hi++
	}

	return whitespaceRe.ReplaceAllString(strings.TrimSpace(text[lo:hi]), " ")
}
