package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/natrim/esalias/lib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsWithin(t *testing.T) {
	assert.True(t, isWithin("/p/src/a.js", "/p/src"))
	assert.True(t, isWithin("/p/src", "/p/src"))
	assert.False(t, isWithin("/p/srcx/a.js", "/p/src"))
	assert.False(t, isWithin("/p/a.js", "/p/src"))
	assert.False(t, isWithin("/p/a.js", ""))
}

func TestChangeWatcher(t *testing.T) {
	withGlobals(t)
	dir := lib.RealQuickPath(t.TempDir())
	writeProject(t, dir, map[string]string{
		"src/index.js":    "",
		"src/nested/a.js": "",
		"build/index.js":  "",
		"alias.json":      `{"x": "./y"}`,
		"unrelated.txt":   "",
	})

	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer watcher.Close()

	changes := &changeWatcher{
		watcher:   watcher,
		sourceDir: filepath.Join(dir, "src"),
		ignoreDir: filepath.Join(dir, "build"),
		debounce:  20 * time.Millisecond,
	}
	require.NoError(t, changes.watchSources())
	require.NoError(t, changes.watchConfig(filepath.Join(dir, "alias.json")))
	assert.ElementsMatch(t, []string{dir, filepath.Join(dir, "src"), filepath.Join(dir, "src", "nested")}, watcher.WatchList())

	ctx, cancel := context.WithCancel(context.Background())
	notified := make(chan bool, 16)
	done := make(chan error, 1)
	go func() {
		done <- changes.run(ctx, func(configChanged bool) {
			notified <- configChanged
		})
	}()

	waitFor := func(want bool) {
		t.Helper()
		deadline := time.After(5 * time.Second)
		for {
			select {
			case got := <-notified:
				if got == want {
					return
				}
			case <-deadline:
				t.Fatalf("no change notification with configChanged=%v", want)
			}
		}
	}

	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "nested", "a.js"), []byte("changed"), 0644))
	waitFor(false)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "alias.json"), []byte(`{"x": "./z"}`), 0644))
	waitFor(true)

	cancel()
	require.NoError(t, <-done)
}

func TestChangeWatcher_IgnoresOutsideSources(t *testing.T) {
	withGlobals(t)
	dir := lib.RealQuickPath(t.TempDir())
	writeProject(t, dir, map[string]string{
		"src/index.js":  "",
		"alias.json":    `{}`,
		"unrelated.txt": "",
	})

	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer watcher.Close()

	changes := &changeWatcher{
		watcher:   watcher,
		sourceDir: filepath.Join(dir, "src"),
		debounce:  20 * time.Millisecond,
	}
	require.NoError(t, changes.watchConfig(filepath.Join(dir, "alias.json")))

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	notified := 0
	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("changed"), 0644)
	}()

	require.NoError(t, changes.run(ctx, func(bool) { notified++ }))
	assert.Zero(t, notified)
}
