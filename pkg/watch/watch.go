/*
 * Copyright 2021 National Library of Norway.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *       http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package watch reports files in watched directories once they stop changing.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const minPollInterval = 10 * time.Millisecond

// Watcher watches directories for new and modified regular files.
type Watcher struct {
	fs    *fsnotify.Watcher
	queue *Queue
	dirs  []string
}

// New creates a Watcher for dirs. Files already present in dirs are reported as settled on the first poll.
func New(delay time.Duration, dirs ...string) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{fs: fs, queue: NewQueue(delay), dirs: dirs}
	for _, dir := range dirs {
		if err := w.add(dir); err != nil {
			_ = fs.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) add(dir string) error {
	if err := w.fs.Add(dir); err != nil {
		return err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.Type().IsRegular() {
			w.queue.Settled(filepath.Join(dir, e.Name()))
		}
	}
	return nil
}

// Run calls settled for every file that has been quiet for the settle delay until ctx is cancelled or settled
// returns an error. The Watcher is closed when Run returns.
func (w *Watcher) Run(ctx context.Context, settled func(path string) error) error {
	defer func() { _ = w.fs.Close() }()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case event, ok := <-w.fs.Events:
				if !ok {
					return nil
				}
				w.handle(event)
			case err, ok := <-w.fs.Errors:
				if !ok {
					return nil
				}
				log.Warnf("watch error: %v", err)
			}
		}
	})
	g.Go(func() error {
		interval := w.queue.delay / 2
		if interval < minPollInterval {
			interval = minPollInterval
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			for _, p := range w.queue.Ready() {
				if err := settled(p); err != nil {
					return err
				}
			}
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}
		}
	})
	return g.Wait()
}

func (w *Watcher) handle(event fsnotify.Event) {
	switch {
	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		w.queue.Forget(event.Name)
	case event.Op&(fsnotify.Create|fsnotify.Write) != 0:
		fi, err := os.Stat(event.Name)
		if err != nil || !fi.Mode().IsRegular() {
			return
		}
		if w.queue.Touch(event.Name) {
			log.Debugf("modified file: %v", event.Name)
		}
	}
}
