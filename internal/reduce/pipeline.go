package reduce

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/NITESH-8/logsift/internal/logging"
	"github.com/NITESH-8/logsift/internal/pattern"
)

// Sentinel errors for the failures Process surfaces to callers.
// Classification-level anomalies are absorbed into the output instead.
var (
	ErrFileRead      = errors.New("read source file")
	ErrArtifactWrite = errors.New("write artifact")
)

// DefaultChunkSize is the default window size in lines.
const DefaultChunkSize = 5

// ProcessedChunk is the unit merged by the aggregator. Final output
// ordering is strictly by Index ascending regardless of completion
// order of concurrent work.
type ProcessedChunk struct {
	Index     int
	Text      string
	Problem   bool
	Detection *Detection
}

// Result summarizes one pipeline run.
type Result struct {
	ArtifactPath   string                  `json:"artifact_path"`
	SourceFile     string                  `json:"source_file"`
	SizeKB         float64                 `json:"size_kb"`
	TotalLines     int                     `json:"total_lines"`
	TotalChunks    int                     `json:"total_chunks"`
	ProblemChunks  int                     `json:"problem_chunks"`
	SeverityCounts map[string]int          `json:"severity_counts"`
	CategoryCounts map[string]int          `json:"category_counts"`
	TopCategories  []string                `json:"top_categories"`
	GeneratedID    string                  `json:"generated_id"`
	Elapsed        time.Duration           `json:"elapsed_ns"`
}

// Pipeline reduces log files into annotated artifacts.
type Pipeline struct {
	library   *pattern.Library
	chunkSize int
	workers   int
	outputDir string
	log       logging.Logger

	// processChunk is swappable for scheduling tests.
	processChunk func(Chunk) ProcessedChunk
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLibrary sets the pattern library. Defaults to pattern.Default().
func WithLibrary(lib *pattern.Library) Option {
	return func(p *Pipeline) {
		if lib != nil {
			p.library = lib
		}
	}
}

// WithChunkSize sets the chunk window size in lines. Default is 5.
func WithChunkSize(size int) Option {
	return func(p *Pipeline) {
		p.chunkSize = size
	}
}

// WithWorkers bounds the worker pool. Zero or negative selects the
// available CPU count.
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		p.workers = n
	}
}

// WithOutputDir sets where artifacts are written. Default is the
// current directory.
func WithOutputDir(dir string) Option {
	return func(p *Pipeline) {
		if dir != "" {
			p.outputDir = dir
		}
	}
}

// New creates a Pipeline with the given options.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		library:   pattern.Default(),
		chunkSize: DefaultChunkSize,
		workers:   0,
		outputDir: ".",
		log:       logging.Named("reduce"),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.workers <= 0 {
		p.workers = runtime.GOMAXPROCS(0)
	}

	classifier := NewClassifier(p.library)
	p.processChunk = func(ch Chunk) ProcessedChunk {
		return processOne(classifier, ch)
	}

	return p
}

// Process reduces the log file at path and returns the run result,
// including the artifact path. The source is read permissively (invalid
// UTF-8 is replaced, never fatal); only file-level read and write
// failures are surfaced as errors.
func (p *Pipeline) Process(ctx context.Context, path string) (*Result, error) {
	if p.chunkSize < 1 {
		return nil, fmt.Errorf("chunk size must be at least 1, got %d", p.chunkSize)
	}

	start := time.Now()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileRead, err)
	}
	lines := splitLines(strings.ToValidUTF8(string(data), "�"))

	chunks, err := Split(lines, p.chunkSize)
	if err != nil {
		return nil, err
	}

	processed, err := p.fanOut(ctx, chunks)
	if err != nil {
		return nil, err
	}

	// The sort is mandatory: completion order is arbitrary under
	// concurrent scheduling.
	sort.Slice(processed, func(i, j int) bool {
		return processed[i].Index < processed[j].Index
	})

	result := aggregate(processed)
	result.SourceFile = filepath.Base(path)
	result.SizeKB = float64(len(data)) / 1024
	result.TotalLines = len(lines)
	result.GeneratedID = uuid.NewString()

	artifact := renderArtifact(result, processed)

	if err := os.MkdirAll(p.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArtifactWrite, err)
	}
	outPath := filepath.Join(p.outputDir, "processed_"+result.GeneratedID+".txt")
	// Single-shot write so a failure leaves no partial artifact behind.
	if err := os.WriteFile(outPath, artifact, 0o644); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArtifactWrite, err)
	}

	result.ArtifactPath = outPath
	result.Elapsed = time.Since(start)

	p.log.Debug().
		Str("source", path).
		Int("chunks", result.TotalChunks).
		Int("problems", result.ProblemChunks).
		Dur("elapsed", result.Elapsed).
		Msg("processed log file")

	return result, nil
}

// fanOut dispatches one task per chunk onto the bounded worker pool and
// collects results in completion order.
func (p *Pipeline) fanOut(ctx context.Context, chunks []Chunk) ([]ProcessedChunk, error) {
	results := make(chan ProcessedChunk, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for _, ch := range chunks {
		ch := ch
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results <- p.safeProcess(ch)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	close(results)

	processed := make([]ProcessedChunk, 0, len(chunks))
	for pc := range results {
		processed = append(processed, pc)
	}
	return processed, nil
}

// safeProcess degrades a failed chunk task to an unclassified normal
// entry rather than aborting the run.
func (p *Pipeline) safeProcess(ch Chunk) (pc ProcessedChunk) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Warn().Int("chunk", ch.Index).Any("panic", r).Msg("chunk task failed")
			pc = ProcessedChunk{
				Index: ch.Index,
				Text:  fmt.Sprintf("CHUNK %d - Summary: chunk could not be classified", ch.Index),
			}
		}
	}()

	return p.processChunk(ch)
}

// processOne classifies a chunk and renders it as either an annotated
// problem entry or a summarized normal entry.
func processOne(c *Classifier, ch Chunk) ProcessedChunk {
	detection := c.Classify(ch)

	if detection.IsError {
		return ProcessedChunk{
			Index:     ch.Index,
			Text:      renderProblem(ch, detection),
			Problem:   true,
			Detection: &detection,
		}
	}

	return ProcessedChunk{
		Index: ch.Index,
		Text:  fmt.Sprintf("CHUNK %d - %s", ch.Index, Summarize(ch)),
	}
}

// aggregate computes pipeline-wide statistics from the retained
// detections.
func aggregate(processed []ProcessedChunk) *Result {
	result := &Result{
		TotalChunks:    len(processed),
		SeverityCounts: make(map[string]int),
		CategoryCounts: make(map[string]int),
	}

	for _, pc := range processed {
		if !pc.Problem || pc.Detection == nil {
			continue
		}
		result.ProblemChunks++
		result.SeverityCounts[pc.Detection.Severity.String()]++
		result.CategoryCounts[pc.Detection.Category.String()]++
	}

	result.TopCategories = topCategories(result.CategoryCounts)

	return result
}

// topCategories orders category names by descending count, name
// breaking ties for determinism.
func topCategories(counts map[string]int) []string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	return names
}

// splitLines splits file content into lines without dropping interior
// blank lines; the chunk index math depends on every source line
// counting.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}

	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// renderArtifact builds the complete output artifact in memory.
func renderArtifact(result *Result, processed []ProcessedChunk) []byte {
	var buf bytes.Buffer

	writeHeader(&buf, result)
	for _, pc := range processed {
		buf.WriteString(pc.Text)
		buf.WriteString("\n\n")
	}

	return buf.Bytes()
}
