package harness

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// settingsWatcher reports changes of a single file. The directory is watched rather than the file, since editors
// often save by replacing the file. Events are forwarded to C and never handled on the watcher goroutine.
type settingsWatcher struct {
	w    *fsnotify.Watcher
	path string
	C    chan struct{}
	done chan struct{}
}

func newSettingsWatcher(path string) (*settingsWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating settings watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watching %s: %w", path, err)
	}
	sw := &settingsWatcher{
		w:    w,
		path: abs,
		C:    make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go sw.forward()
	log.Printf("Watching %s for changes", abs)
	return sw, nil
}

func (sw *settingsWatcher) forward() {
	defer close(sw.done)
	for {
		select {
		case event, ok := <-sw.w.Events:
			if !ok {
				return
			}
			if !isSettingsChange(event, sw.path) {
				continue
			}
			// a pending notification already covers this change
			select {
			case sw.C <- struct{}{}:
			default:
			}
		case err, ok := <-sw.w.Errors:
			if !ok {
				return
			}
			log.Printf("Settings watcher error: %v", err)
		}
	}
}

func isSettingsChange(event fsnotify.Event, path string) bool {
	if filepath.Clean(event.Name) != path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

// Close stops the watcher and waits for the forwarding goroutine to exit.
func (sw *settingsWatcher) Close() error {
	err := sw.w.Close()
	<-sw.done
	return err
}
