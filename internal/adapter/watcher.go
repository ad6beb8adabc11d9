package adapter

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	m "github.com/mouse-blink/jscov/internal/model"
)

// DefaultDebounce is how long the watcher waits for a burst of writes to
// settle before reporting it.
const DefaultDebounce = 150 * time.Millisecond

// ChangeHandler receives a batch of changed JavaScript files, each reported
// once, in first-seen order.
type ChangeHandler func(paths []m.Path)

// Watcher reports changes to JavaScript files below a set of roots.
type Watcher interface {
	// Watch blocks until ctx is done or the underlying watcher fails.
	Watch(ctx context.Context, roots []m.Path, onChange ChangeHandler) error
}

// LocalWatcher is an fsnotify-backed Watcher with debouncing.
type LocalWatcher struct {
	debounce time.Duration
	log      *slog.Logger
}

// NewLocalWatcher constructs a LocalWatcher. A non-positive debounce falls
// back to DefaultDebounce; a nil logger discards.
func NewLocalWatcher(debounce time.Duration, log *slog.Logger) *LocalWatcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &LocalWatcher{debounce: debounce, log: log}
}

// Watch implements Watcher.
func (w *LocalWatcher) Watch(ctx context.Context, roots []m.Path, onChange ChangeHandler) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	set := &watchSet{watcher: watcher, log: w.log, dirs: make(map[string]bool), files: make(map[string]bool)}

	for _, root := range roots {
		path, recursive, err := normalizeRootPath(string(root))
		if err != nil {
			return err
		}

		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("root path error: %w", err)
		}

		if !info.IsDir() {
			set.files[path] = true
			if err := watcher.Add(filepath.Dir(path)); err != nil {
				return fmt.Errorf("watch %s: %w", path, err)
			}

			continue
		}

		if err := set.addDir(path, recursive); err != nil {
			return err
		}
	}

	var (
		batch  []m.Path
		seen   = make(map[m.Path]bool)
		timer  *time.Timer
		timerC <-chan time.Time
	)

	flush := func() {
		if len(batch) > 0 {
			onChange(batch)
		}

		batch = nil
		seen = make(map[m.Path]bool)
		timerC = nil
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}

			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					base := filepath.Base(event.Name)
					if !set.dirs[filepath.Dir(event.Name)] || skippedDirs[base] || isHidden(base) {
						continue
					}

					if err := set.addDir(event.Name, true); err != nil {
						w.log.Warn("cannot watch new directory", "path", event.Name, "error", err)
					}

					continue
				}
			}

			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}

			if !set.accepts(event.Name) {
				continue
			}

			path := m.Path(event.Name)
			if !seen[path] {
				seen[path] = true
				batch = append(batch, path)
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}

			timerC = timer.C

		case <-timerC:
			flush()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			w.log.Error("watch error", "error", err)
		}
	}
}

type watchSet struct {
	watcher *fsnotify.Watcher
	log     *slog.Logger
	// dirs holds directories whose JavaScript files are all reported. The
	// value tells whether new subdirectories are picked up.
	dirs map[string]bool
	// files holds single-file roots; their parent is watched but not in dirs.
	files map[string]bool
}

// addDir registers dir, and its subdirectories when recursive, skipping the
// directories the scanner skips.
func (s *watchSet) addDir(dir string, recursive bool) error {
	if !recursive {
		s.dirs[dir] = false

		return s.watcher.Add(dir)
	}

	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}

		if path != dir && (skippedDirs[d.Name()] || isHidden(d.Name())) {
			return filepath.SkipDir
		}

		s.log.Debug("watching", "dir", path)
		s.dirs[path] = true

		return s.watcher.Add(path)
	})
}

func (s *watchSet) accepts(name string) bool {
	if !IsJSFile(name) || isHidden(filepath.Base(name)) {
		return false
	}

	_, ok := s.dirs[filepath.Dir(name)]

	return ok || s.files[name]
}
