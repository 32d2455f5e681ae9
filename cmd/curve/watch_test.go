// Copyright ©2024 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kortschak/curve/internal/slogext"
)

const watchAnim = `
[anim.wave]
expr = 'sin(x + t)'
n = 16
frames = 2
`

func TestWatchConfig(t *testing.T) {
	dir := t.TempDir()
	out := t.TempDir()
	path := filepath.Join(dir, "anims.toml")
	err := os.WriteFile(path, []byte(watchAnim), 0o644)
	if err != nil {
		t.Fatalf("unexpected error writing config: %v", err)
	}

	log := slog.New(slogext.NewJSONHandler(io.Discard, nil))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- watchConfig(ctx, path, out, log)
	}()

	// Let the watcher install itself before the change is made.
	time.Sleep(200 * time.Millisecond)
	err = os.WriteFile(path, []byte(watchAnim), 0o644)
	if err != nil {
		t.Fatalf("unexpected error rewriting config: %v", err)
	}

	target := filepath.Join(out, "wave.gif")
	deadline := time.Now().Add(5 * time.Second)
	for {
		if _, err := os.Stat(target); err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("no render after configuration change")
		}
		time.Sleep(50 * time.Millisecond)
	}

	cancel()
	err = <-done
	if err != nil {
		t.Errorf("unexpected error from watcher: %v", err)
	}
}
