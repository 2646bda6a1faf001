// Package output provides formatted rendering of run reports and
// pattern listings. It supports text, JSON, and table formats.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/NITESH-8/logsift/internal/config"
	"github.com/NITESH-8/logsift/internal/pattern"
	"github.com/NITESH-8/logsift/internal/reduce"
)

// Format represents an output format type.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatTable Format = "table"
)

// ParseFormat converts a string to a Format, defaulting to text.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON
	case "table":
		return FormatTable
	default:
		return FormatText
	}
}

// Writer handles writing formatted output.
type Writer struct {
	w      io.Writer
	format Format
	color  ColorMode
}

// New creates a new output Writer.
func New(w io.Writer, format Format) *Writer {
	return &Writer{w: w, format: format, color: ColorAuto}
}

// WithColor sets the color mode and returns the Writer for chaining.
func (wr *Writer) WithColor(mode ColorMode) *Writer {
	wr.color = mode
	return wr
}

// WriteReport outputs a pipeline run result in the configured format.
func (wr *Writer) WriteReport(result *reduce.Result) error {
	switch wr.format {
	case FormatJSON:
		return wr.WriteJSON(result)
	case FormatTable:
		return wr.writeReportTable(result)
	default:
		return wr.writeReportText(result)
	}
}

// WriteRules outputs the rules of a pattern library in the configured
// format.
func (wr *Writer) WriteRules(rules []pattern.Rule) error {
	switch wr.format {
	case FormatJSON:
		return wr.writeRulesJSON(rules)
	case FormatTable:
		return wr.writeRulesTable(rules)
	default:
		return wr.writeRulesText(rules)
	}
}

// WriteJSON outputs any value as indented JSON.
func (wr *Writer) WriteJSON(v interface{}) error {
	enc := json.NewEncoder(wr.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (wr *Writer) writeReportText(result *reduce.Result) error {
	colorize := shouldColorize(wr.color, wr.w)

	fmt.Fprintf(wr.w, "Source: %s (%.2f KB, %d lines)\n",
		result.SourceFile, result.SizeKB, result.TotalLines)
	fmt.Fprintf(wr.w, "Chunks: %d total, %d with problems\n",
		result.TotalChunks, result.ProblemChunks)

	for _, sev := range config.Severities {
		count := result.SeverityCounts[sev.String()]
		if count == 0 {
			continue
		}
		label := FormatSeverity(sev, colorize)
		fmt.Fprintf(wr.w, "  %s: %d\n", label, count)
	}

	if len(result.TopCategories) > 0 {
		fmt.Fprintf(wr.w, "Top categories: %s\n", strings.Join(result.TopCategories, ", "))
	}

	fmt.Fprintf(wr.w, "Artifact: %s\n", result.ArtifactPath)
	fmt.Fprintf(wr.w, "Elapsed: %s\n", result.Elapsed.Round(time.Millisecond))
	return nil
}

func (wr *Writer) writeReportTable(result *reduce.Result) error {
	tw := tabwriter.NewWriter(wr.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEVERITY\tCOUNT")
	fmt.Fprintln(tw, "--------\t-----")
	for _, sev := range config.Severities {
		fmt.Fprintf(tw, "%s\t%d\n", sev, result.SeverityCounts[sev.String()])
	}

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "CATEGORY\tCOUNT")
	fmt.Fprintln(tw, "--------\t-----")
	for _, cat := range config.Categories {
		count := result.CategoryCounts[cat.String()]
		if count == 0 {
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\n", cat, count)
	}
	if count := result.CategoryCounts[config.CategoryUnknown.String()]; count > 0 {
		fmt.Fprintf(tw, "%s\t%d\n", config.CategoryUnknown, count)
	}

	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "Chunks\t%d/%d problem\n", result.ProblemChunks, result.TotalChunks)
	fmt.Fprintf(tw, "Artifact\t%s\n", result.ArtifactPath)
	return tw.Flush()
}

// ruleView is the JSON projection of a pattern rule. The compiled
// matcher is rendered as its source expression.
type ruleView struct {
	Pattern     string  `json:"pattern"`
	Severity    string  `json:"severity"`
	Category    string  `json:"category"`
	Confidence  float64 `json:"confidence"`
	Description string  `json:"description"`
}

func (wr *Writer) writeRulesJSON(rules []pattern.Rule) error {
	views := make([]ruleView, 0, len(rules))
	for _, r := range rules {
		views = append(views, ruleView{
			Pattern:     r.Matcher.String(),
			Severity:    r.Severity.String(),
			Category:    r.Category.String(),
			Confidence:  r.Confidence,
			Description: r.Description,
		})
	}
	return wr.WriteJSON(views)
}

func (wr *Writer) writeRulesText(rules []pattern.Rule) error {
	colorize := shouldColorize(wr.color, wr.w)
	for _, r := range rules {
		label := FormatSeverity(r.Severity, colorize)
		fmt.Fprintf(wr.w, "%-10s %-12s %.0f%%  %s\n",
			label, r.Category, r.Confidence*100, r.Description)
	}
	return nil
}

func (wr *Writer) writeRulesTable(rules []pattern.Rule) error {
	tw := tabwriter.NewWriter(wr.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEVERITY\tCATEGORY\tCONFIDENCE\tDESCRIPTION")
	fmt.Fprintln(tw, "--------\t--------\t----------\t-----------")
	for _, r := range rules {
		fmt.Fprintf(tw, "%s\t%s\t%.0f%%\t%s\n",
			r.Severity, r.Category, r.Confidence*100, r.Description)
	}
	return tw.Flush()
}
