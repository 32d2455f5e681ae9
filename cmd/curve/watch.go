// Copyright ©2024 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// fileDebounce is how long we wait for the configuration contents to
// have stabilised, to work around some editors writing an empty file
// and then the buffer.
const fileDebounce = 10 * time.Millisecond

// watchConfig re-renders the configuration at path into dir whenever
// the file changes, until the context is cancelled. The directory
// holding the file is watched rather than the file itself so that
// rename-replace writes are seen. Render failures are logged and
// watching continues.
func watchConfig(ctx context.Context, path, dir string, log *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	err = watcher.Add(filepath.Dir(path))
	if err != nil {
		return err
	}
	log.LogAttrs(ctx, slog.LevelInfo, "watching", slog.String("path", path))

	target := filepath.Clean(path)
	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
				continue
			}
			timer.Reset(fileDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.LogAttrs(ctx, slog.LevelWarn, "watch error", slog.Any("error", err))
		case <-timer.C:
			log.LogAttrs(ctx, slog.LevelDebug, "configuration changed", slog.String("path", path))
			err = render(ctx, path, dir, log)
			if err != nil {
				log.LogAttrs(ctx, slog.LevelError, "render failed", slog.Any("error", err))
			}
		}
	}
}
