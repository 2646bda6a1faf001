package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// countingRunFunc returns a RunFunc that records invocations along
// with a thread-safe count accessor.
func countingRunFunc() (RunFunc, func() int) {
	var mu sync.Mutex
	count := 0

	run := func(ctx context.Context, path string) error {
		mu.Lock()
		defer mu.Unlock()
		count++
		return nil
	}

	getCount := func() int {
		mu.Lock()
		defer mu.Unlock()
		return count
	}

	return run, getCount
}

// waitForCount polls until the count reaches want or the deadline
// passes.
func waitForCount(t *testing.T, getCount func() int, want int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if getCount() >= want {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("count = %d, want at least %d before deadline", getCount(), want)
}

func createLogFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "watched.log")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return path
}

func appendLine(t *testing.T, path, line string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("Failed to open file for append: %v", err)
	}
	defer f.Close()
	if _, err := f.WriteString(line + "\n"); err != nil {
		t.Fatalf("Failed to append: %v", err)
	}
}

func TestWatcher_MissingFile(t *testing.T) {
	run, _ := countingRunFunc()
	w := New(Options{
		FilePath: filepath.Join(t.TempDir(), "absent.log"),
		Run:      run,
	})

	if err := w.Run(context.Background()); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestWatcher_InitialRun(t *testing.T) {
	path := createLogFile(t, "line 1\n")
	run, getCount := countingRunFunc()

	w := New(Options{
		FilePath:   path,
		Debounce:   50 * time.Millisecond,
		InitialRun: true,
		Run:        run,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- w.Run(ctx)
	}()

	waitForCount(t, getCount, 1)

	cancel()
	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("watcher did not stop within timeout")
	}
}

func TestWatcher_RerunsOnWrite(t *testing.T) {
	path := createLogFile(t, "line 1\n")
	run, getCount := countingRunFunc()

	w := New(Options{
		FilePath: path,
		Debounce: 50 * time.Millisecond,
		Run:      run,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go w.Run(ctx)

	// Let the watcher register before writing.
	time.Sleep(100 * time.Millisecond)
	appendLine(t, path, "line 2")

	waitForCount(t, getCount, 1)
}

func TestWatcher_DebouncesBurst(t *testing.T) {
	path := createLogFile(t, "line 1\n")
	run, getCount := countingRunFunc()

	w := New(Options{
		FilePath: path,
		Debounce: 300 * time.Millisecond,
		Run:      run,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go w.Run(ctx)
	time.Sleep(100 * time.Millisecond)

	// A rapid burst of appends inside the quiet period collapses into
	// a single run.
	for i := 0; i < 5; i++ {
		appendLine(t, path, "burst line")
		time.Sleep(20 * time.Millisecond)
	}

	waitForCount(t, getCount, 1)
	time.Sleep(400 * time.Millisecond)

	if got := getCount(); got != 1 {
		t.Errorf("count = %d after burst, want exactly 1", got)
	}
}

func TestWatcher_RotationWithoutFollow(t *testing.T) {
	path := createLogFile(t, "line 1\n")
	run, _ := countingRunFunc()

	w := New(Options{
		FilePath:     path,
		Debounce:     50 * time.Millisecond,
		FollowRotate: false,
		Run:          run,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- w.Run(ctx)
	}()

	time.Sleep(100 * time.Millisecond)
	if err := os.Remove(path); err != nil {
		t.Fatalf("Failed to remove file: %v", err)
	}

	select {
	case err := <-errCh:
		if err == nil {
			t.Error("expected rotation error, got nil")
		}
	case <-time.After(3 * time.Second):
		t.Error("watcher did not exit on rotation")
	}
}

func TestWatcher_RotationWithFollow(t *testing.T) {
	path := createLogFile(t, "line 1\n")
	run, getCount := countingRunFunc()

	w := New(Options{
		FilePath:     path,
		Debounce:     50 * time.Millisecond,
		FollowRotate: true,
		Run:          run,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go w.Run(ctx)
	time.Sleep(100 * time.Millisecond)

	// Simulate rotation: remove, then recreate.
	if err := os.Remove(path); err != nil {
		t.Fatalf("Failed to remove file: %v", err)
	}
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(path, []byte("fresh line\n"), 0o644); err != nil {
		t.Fatalf("Failed to recreate file: %v", err)
	}

	// The rotated file triggers a run once it reappears.
	waitForCount(t, getCount, 1)
}

func TestWatcher_DefaultDebounce(t *testing.T) {
	run, _ := countingRunFunc()
	w := New(Options{FilePath: "x", Run: run})

	if w.opts.Debounce != DefaultDebounce {
		t.Errorf("Debounce = %v, want %v", w.opts.Debounce, DefaultDebounce)
	}
}
