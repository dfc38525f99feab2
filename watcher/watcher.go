// Package watcher follows a save directory while the game runs, and reports each character save.
package watcher

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"gdedit/character"
	"gdedit/journal"
	"gdedit/utils"
)

type Watcher struct {
	dir     string
	settle  time.Duration
	journal *journal.Journal
	log     *zap.SugaredLogger

	watcher *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup

	mu      sync.Mutex
	pending map[string]*time.Timer
	stopped bool
}

// New makes a watcher for dir.  The journal may be nil, in which case snapshots are only sent, not kept.
func New(dir string, settle time.Duration, j *journal.Journal, log *zap.SugaredLogger) *Watcher {
	return &Watcher{
		dir:     dir,
		settle:  settle,
		journal: j,
		log:     log,
		pending: map[string]*time.Timer{},
	}
}

// Start watches the save directory, its "main" subdirectory, and every character directory in them.
// Snapshots are sent on out until Stop is called.
func (w *Watcher) Start(out chan<- journal.Snapshot) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.watcher = watcher
	w.done = make(chan struct{})

	roots := []string{w.dir}
	if fi, err := os.Stat(filepath.Join(w.dir, "main")); err == nil && fi.IsDir() {
		roots = append(roots, filepath.Join(w.dir, "main"))
	}
	for _, root := range roots {
		if err := w.add(root); err != nil {
			watcher.Close()
			return err
		}
		entries, _ := os.ReadDir(root)
		for _, e := range entries {
			if e.IsDir() && strings.HasPrefix(e.Name(), "_") {
				if err := w.add(filepath.Join(root, e.Name())); err != nil {
					watcher.Close()
					return err
				}
			}
		}
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				w.handle_event(event, out)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				w.log.Warnw("watch error", "err", err)
			}
		}
	}()
	return nil
}

func (w *Watcher) add(dir string) error {
	w.log.Debugw("watching", "dir", dir)
	return w.watcher.Add(dir)
}

func (w *Watcher) handle_event(event fsnotify.Event, out chan<- journal.Snapshot) {
	// New character: start watching its directory
	if event.Has(fsnotify.Create) && strings.HasPrefix(filepath.Base(event.Name), "_") {
		if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
			if err := w.add(event.Name); err != nil {
				w.log.Warnw("can't watch new character", "dir", event.Name, "err", err)
			}
			return
		}
	}

	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}
	if !utils.IsCharacterFile(event.Name) {
		return
	}

	// The game writes in several goes; wait for it to settle, restarting the wait on every write.
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	if t, ok := w.pending[event.Name]; ok && t.Stop() {
		t.Reset(w.settle)
		return
	}
	// (if Stop failed, the old timer has already fired and is on its way; start a fresh one)
	path := event.Name
	var t *time.Timer
	w.wg.Add(1)
	t = time.AfterFunc(w.settle, func() {
		defer w.wg.Done()
		w.mu.Lock()
		if w.pending[path] == t {
			delete(w.pending, path)
		}
		w.mu.Unlock()
		w.handle_file(path, out)
	})
	w.pending[path] = t
}

func (w *Watcher) handle_file(path string, out chan<- journal.Snapshot) {
	c, err := character.Load(path)
	if err != nil {
		// Usually a file caught mid-write; the next write will trigger another go.
		w.log.Warnw("failed to read character", "path", path, "err", err)
		return
	}

	snap := journal.Take(c, path, time.Now())
	if w.journal != nil {
		if snap, err = w.journal.Record(snap); err != nil {
			w.log.Errorw("failed to record snapshot", "name", snap.Name, "err", err)
		}
	}
	w.log.Infow("character saved", "name", snap.Name, "level", snap.Level, "deaths", snap.Deaths)

	select {
	case out <- snap:
	case <-w.done:
	}
}

// Stop stops watching.  Saves still settling are dropped; nothing is sent after Stop returns.
func (w *Watcher) Stop() {
	w.mu.Lock()
	w.stopped = true
	for path, t := range w.pending {
		if t.Stop() {
			// never going to run, so it won't call Done itself
			w.wg.Done()
		}
		delete(w.pending, path)
	}
	w.mu.Unlock()

	close(w.done)
	w.watcher.Close()
	w.wg.Wait()
}
