package mcp

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce is how long to wait after the last write before
// reloading. Editors and atomic-save tools emit several events per
// save.
const reloadDebounce = 500 * time.Millisecond

// Reloader re-reads guard policy when a watched file changes on disk.
type Reloader struct {
	server  *Server
	watcher *fsnotify.Watcher
	paths   []string
}

// NewReloader creates a file watcher over the given paths. Empty and
// not-yet-existing paths are skipped.
func NewReloader(server *Server, paths []string) (*Reloader, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	r := &Reloader{server: server, watcher: watcher}
	for _, p := range paths {
		if !watchable(p) {
			continue
		}
		if err := watcher.Add(p); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("watch %q: %w", p, err)
		}
		r.paths = append(r.paths, p)
	}
	return r, nil
}

func watchable(p string) bool {
	if p == "" {
		return false
	}
	_, err := os.Stat(p)
	return err == nil
}

// Paths returns the files actually being watched.
func (r *Reloader) Paths() []string { return r.paths }

// Run consumes watcher events until ctx is cancelled. Write and
// create events arm a debounce timer; the reload happens only when
// the timer expires without another event.
func (r *Reloader) Run(ctx context.Context) error {
	defer r.watcher.Close()

	timer := time.NewTimer(reloadDebounce)
	if !timer.Stop() {
		<-timer.C
	}
	armed := false

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-r.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if armed && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(reloadDebounce)
			armed = true

		case <-timer.C:
			armed = false
			r.reload()

		case err, ok := <-r.watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "file watcher error: %v\n", err)
		}
	}
}

func (r *Reloader) reload() {
	if err := r.server.Guard().ReloadPolicy(); err != nil {
		fmt.Fprintf(os.Stderr, "policy reload failed: %v\n", err)
		return
	}
	fmt.Fprintln(os.Stderr, "policy reloaded")
}
