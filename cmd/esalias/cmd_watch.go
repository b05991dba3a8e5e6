package main

import (
	"context"
	"flag"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/fsnotify/fsnotify"
	"github.com/natrim/esalias/lib"
)

const debounce = 100 * time.Millisecond

func watchCommand(args []string) error {
	set := flag.NewFlagSet("watch", flag.ContinueOnError)
	set.SetOutput(lib.Stderr)
	setupBuildFlags(set)
	if err := set.Parse(args); err != nil {
		return err
	}

	resolver, config, err := loadResolver(nil)
	if err != nil {
		return err
	}
	options, err := makeBuildOptions(resolver, true)
	if err != nil {
		return err
	}

	// get esbuild context
	buildCtx, ctxErr := api.Context(options)
	if ctxErr != nil {
		return resultError(api.BuildResult{Errors: ctxErr.Errors})
	}
	// schedule esbuild context cleanup, the context changes on config reload
	defer func() {
		buildCtx.Dispose()
	}()

	rebuild(buildCtx)

	// start file watcher
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// schedule watcher cleanup
	defer func(watcher *fsnotify.Watcher) {
		_ = watcher.Close()
	}(watcher)

	changes := &changeWatcher{
		watcher:   watcher,
		sourceDir: lib.RealQuickPath(filepath.Dir(entryFile)),
		ignoreDir: lib.RealQuickPath(outputDir),
		debounce:  debounce,
	}
	if err := changes.watchSources(); err != nil {
		return err
	}
	lib.PrintInfo("watching:", filepath.Dir(entryFile))

	if config.Source != "" {
		if err := changes.watchConfig(config.Source); err != nil {
			return err
		}
		lib.PrintInfo("watching:", config.Source)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return changes.run(ctx, func(configChanged bool) {
		if !configChanged {
			lib.PrintReload("Change detected, rebuilding...")
			rebuild(buildCtx)
			return
		}

		lib.PrintReload("Alias config changed, reloading...")
		resolver, _, err := loadResolver(nil)
		if err != nil {
			lib.PrintError(err)
			return
		}
		options, err := makeBuildOptions(resolver, true)
		if err != nil {
			lib.PrintError(err)
			return
		}
		next, ctxErr := api.Context(options)
		if ctxErr != nil {
			lib.PrintError(resultError(api.BuildResult{Errors: ctxErr.Errors}))
			return
		}
		buildCtx.Dispose()
		buildCtx = next
		rebuild(buildCtx)
	})
}

func rebuild(ctx api.BuildContext) {
	start := time.Now()
	result := ctx.Rebuild()
	if err := resultError(result); err != nil {
		lib.PrintError("failed to build")
		lib.PrintError(err)
		return
	}
	lib.PrintOk("Build done")
	lib.PrintInfof("Time: %dms\n", time.Since(start).Milliseconds())
}

// changeWatcher turns fsnotify events into debounced change notifications.
type changeWatcher struct {
	watcher    *fsnotify.Watcher
	sourceDir  string
	ignoreDir  string
	configFile string
	debounce   time.Duration
}

func (w *changeWatcher) watchSources() error {
	return filepath.WalkDir(w.sourceDir, w.watchDir())
}

// watchConfig watches the directory of the config file, editors often replace files on save.
func (w *changeWatcher) watchConfig(path string) error {
	w.configFile = lib.RealQuickPath(path)
	return w.watcher.Add(filepath.Dir(w.configFile))
}

// watchDir gets run as a walk func, searching for directories to add watchers to
func (w *changeWatcher) watchDir() fs.WalkDirFunc {
	return func(path string, fi os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !fi.IsDir() {
			return nil
		}
		if fi.Name() == ".git" || fi.Name() == ".svn" || fi.Name() == ".hg" || fi.Name() == "node_modules" || isWithin(path, w.ignoreDir) {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	}
}

func (w *changeWatcher) run(ctx context.Context, onChange func(configChanged bool)) error {
	timer := time.NewTimer(w.debounce)
	timer.Stop()

	pending := false
	configChanged := false
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			// skip event that has only chmod operation
			if event.Op == fsnotify.Chmod {
				continue
			}

			name := filepath.Clean(event.Name)
			switch {
			case w.configFile != "" && name == w.configFile:
				configChanged = true
			case isWithin(name, w.ignoreDir) || !isWithin(name, w.sourceDir):
				continue
			case event.Has(fsnotify.Write):
				lib.PrintItemf("Change in %s\n", strings.TrimLeft(strings.TrimPrefix(name, w.sourceDir), string(filepath.Separator)))
			}

			// add new directories to watcher if event has create operation
			if event.Has(fsnotify.Create) && name != w.configFile {
				if stat, err := os.Stat(name); err == nil && stat.IsDir() {
					if err := filepath.WalkDir(name, w.watchDir()); err != nil {
						lib.PrintError(err)
					}
				}
			}

			pending = true
			timer.Reset(w.debounce)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			lib.PrintError(err)
		case <-timer.C:
			if !pending {
				continue
			}
			onChange(configChanged)
			pending, configChanged = false, false
		}
	}
}

func isWithin(path, dir string) bool {
	if dir == "" {
		return false
	}
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
