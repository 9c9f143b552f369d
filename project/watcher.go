package project

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceDelay = 100 * time.Millisecond

// Watch re-checks source files whenever they are created or written below the
// source directory and reports each result to onResult. It blocks until ctx
// is cancelled.
func (p *Project) Watch(ctx context.Context, onResult func(Result)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := p.watchTree(watcher, p.SrcDir); err != nil {
		return err
	}
	log.Infof("watching %s", p.SrcDir)

	// Files are checked once no event arrived for them for debounceDelay, so
	// that a create followed by writes yields a single result.
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(debounceDelay / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				if err := p.watchTree(watcher, event.Name); err != nil {
					log.Errorf("%v", err)
				}
				continue
			}
			if p.hasSourceExtension(event.Name) {
				pending[event.Name] = time.Now()
			}

		case now := <-ticker.C:
			for path, last := range pending {
				if now.Sub(last) < debounceDelay {
					continue
				}
				delete(pending, path)
				result, err := CheckFile(path)
				if err != nil {
					log.Warningf("%v", err)
					continue
				}
				onResult(result)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Errorf("watcher error: %v", err)
		}
	}
}

// watchTree adds dir and its subdirectories, skipping hidden ones.
func (p *Project) watchTree(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
