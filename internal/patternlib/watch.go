// Copyright 2026 The Hashlife Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package patternlib

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// LoadDir reads every *.rle file directly inside dir into a fresh
// Library, keyed by file name with the .rle extension stripped.
func LoadDir(dir string) (*Library, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	l := New()
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".rle") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		l.Upsert(name, string(data))
	}
	return l, nil
}

// Watcher keeps a Library in sync with a directory of .rle files,
// reloading the whole directory on any create/write/remove/rename
// event. Mirrors the rest-of-pack's directory-watch idiom (watch the
// parent directory, react to its events) but — since a pattern
// library is small and reloaded wholesale, not line-streamed — without
// the per-file event-channel fan-out a log-tailing worker needs.
type Watcher struct {
	mu  sync.RWMutex
	lib *Library
	dir string
	log *logrus.Entry
	fsw *fsnotify.Watcher
}

// NewWatcher loads dir's current *.rle files and starts watching it
// for changes. Call Close to stop watching.
func NewWatcher(dir string) (*Watcher, error) {
	lib, err := LoadDir(dir)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{
		lib: lib,
		dir: dir,
		log: logrus.WithField("component", "patternlib.Watcher").WithField("dir", dir),
		fsw: fsw,
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".rle") {
				continue
			}
			w.reload()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Warn("pattern library watch error")
		}
	}
}

func (w *Watcher) reload() {
	lib, err := LoadDir(w.dir)
	if err != nil {
		w.log.WithError(err).Warn("pattern library reload failed, keeping previous contents")
		return
	}
	w.mu.Lock()
	w.lib = lib
	w.mu.Unlock()
	w.log.WithField("pattern_count", lib.Len()).Info("pattern library reloaded")
}

// Library returns the current Library snapshot. Safe to call
// concurrently with reloads; the returned *Library is never mutated
// after a reload replaces it, so callers may read from it freely.
func (w *Watcher) Library() *Library {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lib
}

// Close stops watching and releases the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
