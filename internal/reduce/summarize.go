package reduce

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Sentinels for chunks that cannot be summarized meaningfully.
const (
	noLogData           = "No log data available."
	noSignificantEvents = "No significant events detected."
)

// maxKeywords caps the combined keyword/phrase selection per summary.
const maxKeywords = 4

// stopwords are generic log noise excluded from keyword extraction.
var stopwords = map[string]struct{}{
	"info": {}, "debug": {}, "trace": {}, "service": {}, "process": {},
	"thread": {}, "started": {}, "successfully": {}, "running": {},
	"initializing": {}, "completed": {}, "ready": {}, "starting": {},
	"level": {}, "time": {}, "msg": {}, "version": {}, "worker": {},
	"entropy": {}, "systemd": {}, "server": {}, "daemon": {},
	"manager": {}, "device": {}, "socket": {}, "layer": {},
	"subsys": {}, "mounted": {},
}

var (
	// timestampRe strips bracketed tokens and ISO-like datetimes.
	timestampRe = regexp.MustCompile(`\[[^\]]*\]|\d{4}-\d{2}-\d{2}[ T]\d{2}:\d{2}:\d{2}`)

	// serviceTagRe matches process-tag-with-PID tokens like "dockerd[600]".
	serviceTagRe = regexp.MustCompile(`\w+\[\d+\]`)
)

// Summarize produces a short human-readable gist of a non-problem
// chunk: a representative source line annotated with the dominant
// service names and key terms found in the chunk.
func Summarize(chunk Chunk) string {
	if len(chunk.Lines) == 0 {
		return noLogData
	}

	var cleaned []string
	for _, line := range chunk.Lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		cleaned = append(cleaned, strings.ToLower(cleanLine(line)))
	}

	services := topServices(chunk.Lines, 2)

	var words []string
	for _, line := range cleaned {
		for _, w := range strings.Fields(line) {
			if len(w) > 3 && !isStopword(w) {
				words = append(words, w)
			}
		}
	}

	if len(words) == 0 && len(services) == 0 {
		return noSignificantEvents
	}

	keywords := selectKeywords(words)

	repLine := cleanLine(representativeLine(chunk.Lines, keywords))
	repLine = strings.TrimSpace(repLine)

	if repLine == "" {
		if len(services) > 0 {
			return fmt.Sprintf("Summary: Services: %s | Keywords: %s",
				strings.Join(services, ", "),
				strings.Join(capSlice(keywords, 3), ", "))
		}
		return "Summary: " + strings.Join(keywords, ", ")
	}

	var b strings.Builder
	b.WriteString("Summary: ")
	b.WriteString(repLine)

	if len(services) > 0 {
		fmt.Fprintf(&b, " [Services: %s]", strings.Join(services, ", "))
	}

	// Only surface key terms the representative line does not already cover.
	repLower := strings.ToLower(repLine)
	var unique []string
	for _, k := range keywords {
		if !strings.Contains(repLower, strings.ToLower(k)) {
			unique = append(unique, k)
		}
	}
	if len(unique) > 0 {
		fmt.Fprintf(&b, " [Key terms: %s]", strings.Join(capSlice(unique, 2), ", "))
	}

	return b.String()
}

// cleanLine removes timestamp-like prefixes and noise from a line.
func cleanLine(line string) string {
	return strings.TrimSpace(timestampRe.ReplaceAllString(line, ""))
}

func isStopword(w string) bool {
	_, ok := stopwords[w]
	return ok
}

// topServices extracts service-name tokens ("name[pid]") from raw lines
// and returns the n most frequent names.
func topServices(lines []string, n int) []string {
	var order []string
	counts := make(map[string]int)

	for _, line := range lines {
		for _, match := range serviceTagRe.FindAllString(line, -1) {
			name := match[:strings.Index(match, "[")]
			if name == "" || isStopword(strings.ToLower(name)) {
				continue
			}
			if counts[name] == 0 {
				order = append(order, name)
			}
			counts[name]++
		}
	}

	return mostCommon(order, counts, n)
}

// selectKeywords builds the combined keyword list: up to two top
// bigrams first, then top single words not already covered by a chosen
// bigram, capped at maxKeywords total.
func selectKeywords(words []string) []string {
	var wordOrder []string
	wordCounts := make(map[string]int)
	for _, w := range words {
		if wordCounts[w] == 0 {
			wordOrder = append(wordOrder, w)
		}
		wordCounts[w]++
	}

	var bigramOrder []string
	bigramCounts := make(map[string]int)
	for i := 0; i+1 < len(words); i++ {
		bg := words[i] + " " + words[i+1]
		if bigramCounts[bg] == 0 {
			bigramOrder = append(bigramOrder, bg)
		}
		bigramCounts[bg]++
	}

	keywords := mostCommon(bigramOrder, bigramCounts, 2)

	for _, w := range mostCommon(wordOrder, wordCounts, 5) {
		if len(keywords) >= maxKeywords {
			break
		}
		covered := false
		for _, bg := range keywords {
			if strings.Contains(bg, w) {
				covered = true
				break
			}
		}
		if !covered {
			keywords = append(keywords, w)
		}
	}

	return keywords
}

// representativeLine picks the source line that best illustrates the
// chunk: two points per keyword present plus a mild bias toward later
// lines, ties broken by first occurrence.
func representativeLine(lines []string, keywords []string) string {
	if len(lines) == 0 || len(keywords) == 0 {
		return ""
	}

	best := ""
	bestScore := -1.0
	for i, line := range lines {
		clean := strings.ToLower(cleanLine(line))

		score := float64(i) * 0.1
		for _, k := range keywords {
			if strings.Contains(clean, k) {
				score += 2
			}
		}

		if score > bestScore {
			bestScore = score
			best = line
		}
	}

	return best
}

// mostCommon returns up to n keys sorted by descending count, with
// first-seen order breaking ties so results are deterministic.
func mostCommon(order []string, counts map[string]int, n int) []string {
	sorted := make([]string, len(order))
	copy(sorted, order)

	sort.SliceStable(sorted, func(i, j int) bool {
		return counts[sorted[i]] > counts[sorted[j]]
	})

	return capSlice(sorted, n)
}

func capSlice(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
