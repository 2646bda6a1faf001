package reduce

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/NITESH-8/logsift/internal/config"
)

// maxReportedPatterns caps how many matched pattern descriptions a
// problem header lists.
const maxReportedPatterns = 3

var severityMarkers = map[config.Severity]string{
	config.SeverityCritical: "🚨",
	config.SeverityHigh:     "🔴",
	config.SeverityMedium:   "🟡",
	config.SeverityLow:      "🟠",
	config.SeverityInfo:     "ℹ️",
}

var categoryMarkers = map[config.Category]string{
	config.CategorySystem:      "💻",
	config.CategoryMemory:      "🧠",
	config.CategoryNetwork:     "🌐",
	config.CategoryDatabase:    "🗄️",
	config.CategorySecurity:    "🔒",
	config.CategoryApplication: "📱",
	config.CategoryHardware:    "🔧",
	config.CategoryKernel:      "⚙️",
	config.CategoryUnknown:     "❓",
}

// renderProblem formats a problem chunk: a header with severity,
// category, matched patterns, and confidence, followed by the raw
// chunk text.
func renderProblem(ch Chunk, d Detection) string {
	marker := severityMarkers[d.Severity]
	catMarker := categoryMarkers[d.Category]

	patterns := d.Patterns
	if len(patterns) > maxReportedPatterns {
		patterns = patterns[:maxReportedPatterns]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "CHUNK %d - %s %s ERROR DETECTED %s [%s]\n",
		ch.Index, marker, d.Severity, catMarker, d.Category)
	fmt.Fprintf(&b, "Patterns: %s | Confidence: %d%%",
		strings.Join(patterns, ", "), int(d.Confidence*100))

	if d.Context != NoContext {
		fmt.Fprintf(&b, "\nContext: %s", d.Context)
	}

	raw := strings.TrimSpace(strings.Join(ch.Lines, "\n"))
	if raw != "" {
		b.WriteString("\n")
		b.WriteString(raw)
	}

	return b.String()
}

// writeHeader emits the artifact metadata header.
func writeHeader(buf *bytes.Buffer, result *Result) {
	fmt.Fprintf(buf, "# Processed Log File: %s\n", result.SourceFile)
	fmt.Fprintf(buf, "# Size: %.2f KB | Total Chunks: %d | Problem Chunks: %d\n",
		result.SizeKB, result.TotalChunks, result.ProblemChunks)
	fmt.Fprintf(buf, "# Error Analysis: %d Critical, %d High, %d Medium, %d Low\n",
		result.SeverityCounts["CRITICAL"],
		result.SeverityCounts["HIGH"],
		result.SeverityCounts["MEDIUM"],
		result.SeverityCounts["LOW"])

	top := result.TopCategories
	if len(top) > 3 {
		top = top[:3]
	}
	fmt.Fprintf(buf, "# Top Error Categories: %s\n", strings.Join(top, ", "))
	fmt.Fprintf(buf, "# Generated: %s\n", result.GeneratedID)
	fmt.Fprintf(buf, "#%s\n\n", strings.Repeat("-", 80))
}
