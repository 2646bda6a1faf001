package reduce

import (
	"strings"
	"testing"
)

func TestSummarizeEmptyChunk(t *testing.T) {
	if got := Summarize(Chunk{Index: 1}); got != noLogData {
		t.Errorf("Summarize(empty) = %q, want %q", got, noLogData)
	}
}

func TestSummarizeNoMeaningfulTokens(t *testing.T) {
	chunk := Chunk{Index: 1, Lines: []string{"ok", "a b c", "   "}}
	if got := Summarize(chunk); got != noSignificantEvents {
		t.Errorf("Summarize() = %q, want %q", got, noSignificantEvents)
	}
}

func TestSummarizePicksRepresentativeLine(t *testing.T) {
	chunk := Chunk{Index: 1, Lines: []string{
		"2024-03-01 09:00:00 cache warmed for tenant alpha",
		"2024-03-01 09:00:01 cache warmed for tenant bravo",
		"2024-03-01 09:00:02 cache warmed for tenant charlie",
	}}

	got := Summarize(chunk)

	if !strings.HasPrefix(got, "Summary: ") {
		t.Fatalf("Summarize() = %q, want Summary prefix", got)
	}
	if !strings.Contains(got, "cache warmed") {
		t.Errorf("Summarize() = %q, want the dominant phrase present", got)
	}
	// Timestamp prefixes are stripped from the representative line.
	if strings.Contains(got, "2024-03-01") {
		t.Errorf("Summarize() = %q, timestamp should be stripped", got)
	}
}

func TestSummarizeRecencyBias(t *testing.T) {
	// With no keyword signal favoring any line, the mild position bias
	// selects a later line.
	chunk := Chunk{Index: 1, Lines: []string{
		"alpha window opened",
		"bravo window opened",
		"delta window opened",
	}}

	got := Summarize(chunk)
	if !strings.Contains(got, "delta") && !strings.Contains(got, "window opened") {
		t.Errorf("Summarize() = %q, expected later-line content", got)
	}
}

func TestSummarizeServiceNames(t *testing.T) {
	chunk := Chunk{Index: 1, Lines: []string{
		"Mar 01 09:00:00 host dockerd[600]: container created",
		"Mar 01 09:00:01 host dockerd[600]: container healthy",
		"Mar 01 09:00:02 host sshd[122]: session opened",
	}}

	got := Summarize(chunk)

	if !strings.Contains(got, "[Services: ") {
		t.Fatalf("Summarize() = %q, want services annotation", got)
	}
	if !strings.Contains(got, "dockerd") {
		t.Errorf("Summarize() = %q, want top service dockerd", got)
	}
	if !strings.Contains(got, "sshd") {
		t.Errorf("Summarize() = %q, want second service sshd", got)
	}
}

func TestSummarizeDeterministic(t *testing.T) {
	chunk := Chunk{Index: 1, Lines: []string{
		"Mar 01 09:00:00 api gateway accepted request",
		"Mar 01 09:00:01 api gateway routed request upstream",
		"Mar 01 09:00:02 api gateway accepted request",
	}}

	first := Summarize(chunk)
	for i := 0; i < 10; i++ {
		if got := Summarize(chunk); got != first {
			t.Fatalf("Summarize() not deterministic: %q vs %q", got, first)
		}
	}
}

func TestCleanLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "iso timestamp",
			input: "2024-01-01 10:00:00 system ready",
			want:  "system ready",
		},
		{
			name:  "bracketed token",
			input: "[worker-3] task finished",
			want:  "task finished",
		},
		{
			name:  "plain line untouched",
			input: "nothing to strip here",
			want:  "nothing to strip here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanLine(tt.input); got != tt.want {
				t.Errorf("cleanLine(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSelectKeywordsPrefersBigrams(t *testing.T) {
	words := []string{
		"disk", "pressure", "disk", "pressure", "disk", "pressure",
		"rebalance", "queue",
	}

	got := selectKeywords(words)

	if len(got) == 0 {
		t.Fatal("selectKeywords() returned nothing")
	}
	if got[0] != "disk pressure" {
		t.Errorf("selectKeywords()[0] = %q, want dominant bigram %q", got[0], "disk pressure")
	}
	if len(got) > maxKeywords {
		t.Errorf("selectKeywords() returned %d keywords, cap is %d", len(got), maxKeywords)
	}
	for _, k := range got {
		if k == "disk" || k == "pressure" {
			t.Errorf("selectKeywords() = %v, single word %q already covered by bigram", got, k)
		}
	}
}
