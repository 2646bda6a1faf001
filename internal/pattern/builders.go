package pattern

import (
	"regexp"
	"strings"
)

// enhancedPatterns maps canonical keywords to widened matchers that
// require corroborating context near the keyword. A static lookup table
// keeps dispatch deterministic and easy to extend; aliases for the same
// signature map to the same pattern source.
var enhancedPatterns = map[string]string{
	// Memory faults with addresses, PIDs, or process references
	"segfault":           `(?:segfault|segmentation\s+fault|SIGSEGV).*?(?:\d+|0x[0-9a-fA-F]+|process\s+\d+)`,
	"segmentation fault": `(?:segfault|segmentation\s+fault|SIGSEGV).*?(?:\d+|0x[0-9a-fA-F]+|process\s+\d+)`,
	"sigsegv":            `(?:segfault|segmentation\s+fault|SIGSEGV).*?(?:\d+|0x[0-9a-fA-F]+|process\s+\d+)`,

	"kernel panic": `(?:kernel\s+panic|panic).*?(?:not\s+syncing|fatal|exception|oops)`,
	"panic":        `(?:kernel\s+panic|panic).*?(?:not\s+syncing|fatal|exception|oops)`,

	"null pointer":             `null\s+pointer.*?(?:dereference|exception|at\s+0x[0-9a-fA-F]+)`,
	"null pointer dereference": `null\s+pointer.*?(?:dereference|exception|at\s+0x[0-9a-fA-F]+)`,

	"core dump":   `core\s+dump(?:ed)?.*?(?:/tmp/|process\s+\d+|signal\s+\d+)`,
	"core dumped": `core\s+dump(?:ed)?.*?(?:/tmp/|process\s+\d+|signal\s+\d+)`,

	"bug":     `(?:BUG|BUG_ON|WARN_ON).*?(?:triggered|detected|at\s+[^:]+:\d+)`,
	"bug_on":  `(?:BUG|BUG_ON|WARN_ON).*?(?:triggered|detected|at\s+[^:]+:\d+)`,
	"warn_on": `(?:BUG|BUG_ON|WARN_ON).*?(?:triggered|detected|at\s+[^:]+:\d+)`,

	"out of memory": `(?:out\s+of\s+memory|OOM).*?(?:kill\s+process|allocation\s+failed|exhausted)`,
	"oom":           `(?:out\s+of\s+memory|OOM).*?(?:kill\s+process|allocation\s+failed|exhausted)`,

	"buffer overflow": `(?:buffer|stack)\s+overflow.*?(?:detected|in\s+stack|smashing)`,
	"stack overflow":  `(?:buffer|stack)\s+overflow.*?(?:detected|in\s+stack|smashing)`,

	"deadlock":  `(?:deadlock|hung\s+task).*?(?:detected|blocked|between\s+processes)`,
	"hung task": `(?:deadlock|hung\s+task).*?(?:detected|blocked|between\s+processes)`,

	"timeout":   `(?:timeout|timed\s+out).*?(?:connection|request|operation|failed)`,
	"timed out": `(?:timeout|timed\s+out).*?(?:connection|request|operation|failed)`,

	"connection refused": `(?:connection\s+refused|refused).*?(?:connect|bind|listen|accept)`,
	"refused":            `(?:connection\s+refused|refused).*?(?:connect|bind|listen|accept)`,

	"permission denied": `(?:permission|access)\s+denied.*?(?:file|directory|resource|operation)`,
	"access denied":     `(?:permission|access)\s+denied.*?(?:file|directory|resource|operation)`,

	"file not found": `(?:file\s+)?not\s+found.*?(?:/|\\|path|directory)`,
	"not found":      `(?:file\s+)?not\s+found.*?(?:/|\\|path|directory)`,

	"syntax error": `(?:syntax|parse)\s+error.*?(?:line|column|position|at)`,
	"parse error":  `(?:syntax|parse)\s+error.*?(?:line|column|position|at)`,

	"database error": `(?:database|sql)\s+error.*?(?:query|table|constraint|deadlock)`,
	"sql error":      `(?:database|sql)\s+error.*?(?:query|table|constraint|deadlock)`,

	"network error": `(?:network|socket)\s+error.*?(?:bind|listen|accept|connect|send|receive)`,
	"socket error":  `(?:network|socket)\s+error.*?(?:bind|listen|accept|connect|send|receive)`,

	"memory leak": `(?:memory\s+)?leak.*?(?:detected|bytes|allocation|freed)`,
	"leak":        `(?:memory\s+)?leak.*?(?:detected|bytes|allocation|freed)`,

	"corruption": `corrupt(?:ion|ed).*?(?:data|file|memory|disk|database)`,
	"corrupted":  `corrupt(?:ion|ed).*?(?:data|file|memory|disk|database)`,

	"fatal":    `(?:fatal|critical).*?(?:error|exception|failure|abort|terminate)`,
	"critical": `(?:fatal|critical).*?(?:error|exception|failure|abort|terminate)`,

	"exception": `(?:exception|thrown).*?(?:caught|handled|unhandled|at\s+[^:]+:\d+)`,
	"thrown":    `(?:exception|thrown).*?(?:caught|handled|unhandled|at\s+[^:]+:\d+)`,

	"crash":   `crash(?:ed)?.*?(?:application|process|service|system)`,
	"crashed": `crash(?:ed)?.*?(?:application|process|service|system)`,

	"abort":   `abort(?:ed)?.*?(?:signal|process|operation|transaction)`,
	"aborted": `abort(?:ed)?.*?(?:signal|process|operation|transaction)`,

	"halt":   `halt(?:ed)?.*?(?:system|process|execution|operation)`,
	"halted": `halt(?:ed)?.*?(?:system|process|execution|operation)`,
}

// Build compiles a keyword into its matcher. Well-known keywords get a
// widened context-aware pattern from the lookup table; everything else
// becomes a case-insensitive word-boundary literal. Matching may span
// the whole chunk text, so patterns compile with (?is).
func Build(keyword string) *regexp.Regexp {
	if src, ok := enhancedPatterns[strings.ToLower(keyword)]; ok {
		return regexp.MustCompile(`(?is)` + src)
	}
	return regexp.MustCompile(`(?is)\b` + regexp.QuoteMeta(keyword) + `\b`)
}

// signalTokens are OS signal names that mark a rule as more specific.
var signalTokens = []string{"SIGSEGV", "SIGFPE", "SIGILL", "SIGBUS", "SIGABRT", "SIG"}

// highSeverityTerms bump confidence for rules naming hard failures.
var highSeverityTerms = []string{"panic", "fatal", "critical", "crash", "segfault"}

// Confidence scores how specific a rule's keyword text is, from a base
// of 0.8 with bumps for multi-word phrases, bracketed technical syntax,
// signal names, and high-severity terms. The result is clamped to 1.0.
func Confidence(keyword string) float64 {
	confidence := 0.8

	if len(strings.Fields(keyword)) > 2 {
		confidence += 0.1
	}
	if strings.ContainsAny(keyword, "[](){}") {
		confidence += 0.1
	}

	upper := strings.ToUpper(keyword)
	for _, sig := range signalTokens {
		if strings.Contains(upper, sig) {
			confidence += 0.1
			break
		}
	}

	lower := strings.ToLower(keyword)
	for _, term := range highSeverityTerms {
		if strings.Contains(lower, term) {
			confidence += 0.1
			break
		}
	}

	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}
