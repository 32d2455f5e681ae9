// Copyright ©2024 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The curve command renders expression-defined one dimensional curve
// animations to animated GIF files. Animations are described in a TOML
// configuration file, one [anim.<name>] table per animation, with the
// curve given as a CEL expression over the domain point x and the
// frame number t.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/kortschak/curve/internal/slogext"
	"github.com/kortschak/curve/internal/version"
)

// Exit status codes.
const (
	success       = 0
	internalError = 1 << (iota - 1)
	invocationError
)

func main() { os.Exit(Main()) }

func Main() int {
	config := flag.String("config", "", "TOML animation configuration (required)")
	out := flag.String("o", ".", "output directory")
	watch := flag.Bool("watch", false, "re-render when the configuration changes")
	logging := flag.String("log", "info", "logging level (debug, info, warn or error)")
	lines := flag.Bool("lines", false, "display source line details in logs")
	logStdout := flag.Bool("log_stdout", false, "log to stdout instead of stderr")
	v := flag.Bool("version", false, "print version and exit")
	flag.Parse()
	if *v {
		err := version.Print(os.Stdout)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return internalError
		}
		return success
	}
	if *config == "" {
		flag.Usage()
		return invocationError
	}

	var level slog.LevelVar
	err := level.UnmarshalText([]byte(*logging))
	if err != nil {
		flag.Usage()
		return invocationError
	}
	addSource := slogext.NewAtomicBool(*lines)
	w := os.Stderr
	if *logStdout {
		w = os.Stdout
	}
	log := slog.New(slogext.NewJSONHandler(w, &slogext.HandlerOptions{
		Level:     &level,
		AddSource: addSource,
	})).With(slog.String("component", "curve"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		<-c
		log.LogAttrs(ctx, slog.LevelInfo, "terminating")
		cancel()
	}()

	err = render(ctx, *config, *out, log)
	if err != nil {
		log.LogAttrs(ctx, slog.LevelError, "render failed", slog.Any("error", err))
		return internalError
	}
	if *watch {
		err = watchConfig(ctx, *config, *out, log)
		if err != nil {
			log.LogAttrs(ctx, slog.LevelError, "watch failed", slog.Any("error", err))
			return internalError
		}
	}
	return success
}
