// internal/config/watch.go
//
// Hot reload on conf/ changes.
//
// Watch observes `<root>/conf` with fsnotify.  A write or create touching
// global.yaml or .env triggers Reload(); on success the callback receives
// the new Config.  A failed reload logs and keeps the previous Config.
package config

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch blocks until ctx is done.
func Watch(ctx context.Context, root string, onChange func(*Config)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(filepath.Join(root, "conf")); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			switch filepath.Base(ev.Name) {
			case "global.yaml", ".env":
			default:
				continue
			}
			cfg, err := LoadFrom(root)
			if err != nil {
				zap.S().Warnw("config reload failed, keeping previous", "file", ev.Name, "err", err)
				continue
			}
			zap.S().Infow("config reloaded", "file", ev.Name)
			if onChange != nil {
				onChange(cfg)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			zap.S().Warnw("config watcher error", "err", err)
		}
	}
}
