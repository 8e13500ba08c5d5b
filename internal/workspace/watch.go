package workspace

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bimo-labs/bimo/internal/fserr"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is the quiet period Watch waits for before reporting.
const DefaultDebounce = 250 * time.Millisecond

// WatchOptions tunes Watch. The zero value is usable.
type WatchOptions struct {
	Debounce time.Duration
	Logger   *zerolog.Logger // nil discards watcher errors
	// OnReady, if set, runs once every existing directory is being watched.
	OnReady func()
}

// Watch reports changes anywhere under root. Bursts of write, create, remove
// and rename events are coalesced so onChange runs at most once per quiet
// period. Directories created while watching are added automatically. Watch
// blocks until ctx is cancelled and then returns nil.
func Watch(ctx context.Context, root string, opts WatchOptions, onChange func()) error {
	const op = "watch"
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}

	info, err := os.Stat(root)
	if err != nil {
		return fserr.Classify(op, root, err)
	}
	if !info.IsDir() {
		return fserr.Invalid(op, root, "not a directory")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fserr.Classify(op, root, err)
	}
	defer w.Close()

	if err := addTree(w, root); err != nil {
		return fserr.Classify(op, root, err)
	}

	timer := time.NewTimer(opts.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	if opts.OnReady != nil {
		opts.OnReady()
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if relevant(w, ev) {
				timer.Reset(opts.Debounce)
			}
		case <-timer.C:
			onChange()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Str("root", root).Msg("watch error")
		}
	}
}

func addTree(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && ignoredDir(d.Name()) {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}

func relevant(w *fsnotify.Watcher, ev fsnotify.Event) bool {
	if ev.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() && !ignoredDir(info.Name()) {
			_ = addTree(w, ev.Name)
		}
	}
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return !ignoredFile(filepath.Base(ev.Name))
}

func ignoredDir(name string) bool {
	switch name {
	case ".git", "node_modules", ".idea", ".vscode":
		return true
	default:
		return false
	}
}

// ignoredFile filters editor swap and backup files and the ".<name>.*.tmp"
// files WriteFile renames into place.
func ignoredFile(name string) bool {
	if strings.HasSuffix(name, "~") || strings.HasSuffix(name, ".swp") {
		return true
	}
	if !strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ".tmp") {
		return false
	}
	// Needs a target name and a random part: ".<name>.<rand>.tmp".
	inner := strings.TrimSuffix(strings.TrimPrefix(name, "."), ".tmp")
	dot := strings.LastIndexByte(inner, '.')
	return dot > 0 && dot < len(inner)-1
}
