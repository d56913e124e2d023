package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startWatcher runs a watcher over dir and returns the channel its batches
// arrive on.
func startWatcher(t *testing.T, dir string, delay time.Duration, filters ...Filter) <-chan []Event {
	t.Helper()

	w, err := New(delay, nil, filters...)
	require.NoError(t, err)
	require.NoError(t, w.AddRecursive(dir))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	batches := make(chan []Event, 16)
	go func() {
		done <- w.Run(ctx, func(_ context.Context, events []Event) error {
			batches <- events
			return nil
		})
	}()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("watcher did not stop after cancel")
		}
	})
	return batches
}

// waitFor collects batches until every path in want has been seen.
func waitFor(t *testing.T, batches <-chan []Event, want ...string) map[string]Event {
	t.Helper()

	seen := make(map[string]Event)
	deadline := time.After(5 * time.Second)
	for {
		missing := false
		for _, p := range want {
			if _, ok := seen[p]; !ok {
				missing = true
			}
		}
		if !missing {
			return seen
		}

		select {
		case batch := <-batches:
			for _, ev := range batch {
				seen[ev.Path] = ev
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %v, saw %v", want, seen)
		}
	}
}

func TestWatcher_FiltersByExtension(t *testing.T) {
	dir := t.TempDir()
	batches := startWatcher(t, dir, 50*time.Millisecond, ExtensionFilter(".gsx"))

	page := filepath.Join(dir, "page.gsx")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(page, []byte("package x\n"), 0o644))

	seen := waitFor(t, batches, page)
	assert.NotContains(t, seen, filepath.Join(dir, "notes.txt"))
}

func TestWatcher_NewDirectories(t *testing.T) {
	dir := t.TempDir()
	batches := startWatcher(t, dir, 50*time.Millisecond, ExtensionFilter(".gsx"))

	sub := filepath.Join(dir, "views", "nested")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	file := filepath.Join(sub, "card.gsx")
	require.NoError(t, os.WriteFile(file, []byte("package nested\n"), 0o644))

	seen := waitFor(t, batches, file)
	assert.Contains(t, []Op{Created, Modified}, seen[file].Op)
}

func TestWatcher_Removal(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "old.gsx")
	require.NoError(t, os.WriteFile(file, []byte("package x\n"), 0o644))

	batches := startWatcher(t, dir, 50*time.Millisecond)
	require.NoError(t, os.Remove(file))

	seen := waitFor(t, batches, file)
	assert.Equal(t, Removed, seen[file].Op)
}

func TestWatcher_BatchHasOneEventPerPath(t *testing.T) {
	dir := t.TempDir()
	batches := startWatcher(t, dir, 300*time.Millisecond)

	file := filepath.Join(dir, "a.gsx")
	for i := range 3 {
		require.NoError(t, os.WriteFile(file, []byte{byte('a' + i)}, 0o644))
	}

	select {
	case batch := <-batches:
		require.Len(t, batch, 1)
		assert.Equal(t, file, batch[0].Path)
	case <-time.After(5 * time.Second):
		t.Fatal("no batch delivered")
	}
}

func TestFilters(t *testing.T) {
	type tc struct {
		filter Filter
		path   string
		want   bool
	}

	tests := map[string]tc{
		"extension match":    {filter: ExtensionFilter(".gsx"), path: "a/b.gsx", want: true},
		"extension mismatch": {filter: ExtensionFilter(".gsx"), path: "a/b_gsx.go"},
		"suffix excluded":    {filter: SuffixExcludeFilter("_gsx.go"), path: "a/b_gsx.go"},
		"suffix kept":        {filter: SuffixExcludeFilter("_gsx.go"), path: "a/b.go", want: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter(tt.path))
		})
	}
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "created", Created.String())
	assert.Equal(t, "removed", Removed.String())
	assert.Equal(t, "unknown", Op(42).String())
}
