package pattern

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/NITESH-8/logsift/internal/config"
)

func TestBuildEnhancedRequiresContext(t *testing.T) {
	tests := []struct {
		name    string
		keyword string
		text    string
		want    bool
	}{
		{
			name:    "segfault with address matches",
			keyword: "segfault",
			text:    "app[1234]: segfault at 0x00007f3a ip 0x4005d6",
			want:    true,
		},
		{
			name:    "bare segfault token does not match",
			keyword: "segfault",
			text:    "discussing what a segfault is",
			want:    false,
		},
		{
			name:    "kernel panic with not syncing",
			keyword: "kernel panic",
			text:    "Kernel panic - not syncing: Attempted to kill init!",
			want:    true,
		},
		{
			name:    "oom with kill process",
			keyword: "oom",
			text:    "Out of memory: Kill process 4321 (java) score 912",
			want:    true,
		},
		{
			name:    "timeout with connection",
			keyword: "timeout",
			text:    "request timeout while waiting for connection to upstream",
			want:    true,
		},
		{
			name:    "bare timeout does not match",
			keyword: "timeout",
			text:    "timeout value set to 30s",
			want:    false,
		},
		{
			name:    "connection refused with connect",
			keyword: "connection refused",
			text:    "dial tcp 10.0.0.5:5432: connection refused, cannot connect",
			want:    true,
		},
		{
			name:    "database error with query",
			keyword: "database error",
			text:    "database error: query exceeded lock wait",
			want:    true,
		},
		{
			name:    "deadlock detected",
			keyword: "deadlock",
			text:    "deadlock detected while acquiring row lock",
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re := Build(tt.keyword)
			if got := re.MatchString(tt.text); got != tt.want {
				t.Errorf("Build(%q).MatchString(%q) = %v, want %v", tt.keyword, tt.text, got, tt.want)
			}
		})
	}
}

func TestBuildUnknownKeywordWordBoundary(t *testing.T) {
	re := Build("flux")

	if !re.MatchString("the flux capacitor broke") {
		t.Error("expected word-boundary match for bare keyword")
	}
	if !re.MatchString("FLUX detected") {
		t.Error("expected case-insensitive match")
	}
	if re.MatchString("influx of requests") {
		t.Error("keyword inside a larger word should not match")
	}
}

func TestBuildSpansLines(t *testing.T) {
	// Matchers run against whole-chunk text and must cross line joins.
	re := Build("database error")
	text := "app: database error while running\nthe nightly query batch"
	if !re.MatchString(text) {
		t.Error("expected match across a line boundary")
	}
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		keyword string
		want    float64
	}{
		{"flux", 0.8},                           // base only
		{"connection refused by peer", 0.9},     // >2 words
		{"BUG_ON[panic]", 1.0},                  // brackets + high-severity term
		{"SIGSEGV", 0.9},                        // signal token
		{"kernel panic not syncing", 1.0},       // >2 words + high term
		{"segfault", 0.9},                       // high-severity term
		{"fatal", 0.9},                          // high-severity term
		{"unhandled exception in worker", 0.9},  // >2 words
		{"critical failure [disk] on boot", 1.0}, // >2 words + brackets + high term
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			got := Confidence(tt.keyword)
			if got < 0 || got > 1 {
				t.Fatalf("Confidence(%q) = %v, outside [0,1]", tt.keyword, got)
			}
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("Confidence(%q) = %v, want %v", tt.keyword, got, tt.want)
			}
		})
	}
}

func TestConfidenceClamped(t *testing.T) {
	// Every bump at once must still clamp to 1.0.
	got := Confidence("fatal kernel panic [SIGSEGV] crash now")
	if got != 1.0 {
		t.Errorf("Confidence() = %v, want 1.0", got)
	}
}

func TestSuppressed(t *testing.T) {
	lib := Default()

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"no error phrasing", "no error detected, all systems healthy", true},
		{"without any error", "backup completed without any error", true},
		{"error then success", "error recovery finished with success", true},
		{"genuine failure", "disk failure imminent on /dev/sda", false},
		{"plain text", "scheduled maintenance window opened", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lib.Suppressed(tt.text); got != tt.want {
				t.Errorf("Suppressed(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestLoadKeywordsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keywords.txt")

	content := `# CRITICAL severity
# KERNEL errors
kernel panic
# MEMORY faults
segmentation fault

# HIGH severity
# NETWORK errors
connection refused
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	lib := Load(path)
	if lib.Len() != 3 {
		t.Fatalf("expected 3 rules, got %d", lib.Len())
	}

	rules := lib.Rules()

	if rules[0].Description != "kernel panic" {
		t.Errorf("rules[0].Description = %q, want %q", rules[0].Description, "kernel panic")
	}
	if rules[0].Severity != config.SeverityCritical || rules[0].Category != config.CategoryKernel {
		t.Errorf("rules[0] = %v/%v, want CRITICAL/KERNEL", rules[0].Severity, rules[0].Category)
	}
	if rules[1].Severity != config.SeverityCritical || rules[1].Category != config.CategoryMemory {
		t.Errorf("rules[1] = %v/%v, want CRITICAL/MEMORY", rules[1].Severity, rules[1].Category)
	}
	if rules[2].Severity != config.SeverityHigh || rules[2].Category != config.CategoryNetwork {
		t.Errorf("rules[2] = %v/%v, want HIGH/NETWORK", rules[2].Severity, rules[2].Category)
	}
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	lib := Load(filepath.Join(t.TempDir(), "nope.txt"))

	if lib.Len() != 5 {
		t.Fatalf("expected 5 fallback rules, got %d", lib.Len())
	}
	for _, rule := range lib.Rules() {
		if rule.Severity != config.SeverityMedium {
			t.Errorf("fallback rule %q severity = %v, want MEDIUM", rule.Description, rule.Severity)
		}
		if rule.Category != config.CategoryUnknown {
			t.Errorf("fallback rule %q category = %v, want UNKNOWN", rule.Description, rule.Category)
		}
		if rule.Confidence != 0.5 {
			t.Errorf("fallback rule %q confidence = %v, want 0.5", rule.Description, rule.Confidence)
		}
	}
}

func TestLoadEmptyFileFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(path, []byte("# only headers here\n\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	lib := Load(path)
	if lib.Len() != 5 {
		t.Errorf("expected fallback set for rule-less file, got %d rules", lib.Len())
	}
}

func TestLoadEmptyPathUsesDefault(t *testing.T) {
	lib := Load("")
	if lib.Len() == 0 {
		t.Fatal("default library is empty")
	}
	for _, rule := range lib.Rules() {
		if rule.Confidence < 0 || rule.Confidence > 1 {
			t.Errorf("rule %q confidence %v outside [0,1]", rule.Description, rule.Confidence)
		}
		if rule.Matcher == nil {
			t.Errorf("rule %q has nil matcher", rule.Description)
		}
	}
	if len(lib.Guards()) == 0 {
		t.Error("default library has no guards")
	}
}
