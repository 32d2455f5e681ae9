// Copyright ©2024 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"maps"
	"os"
	"slices"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/cel-go/cel"

	"github.com/kortschak/curve"
	"github.com/kortschak/curve/internal/celmath"
)

// render renders all animations in the configuration at path into dir.
// Animations are rendered in name order; the first failure aborts the
// run.
func render(ctx context.Context, path, dir string, log *slog.Logger) error {
	cfg, err := loadConfig(path)
	if err != nil {
		return err
	}
	env, err := cel.NewEnv(
		cel.Variable("x", cel.DoubleType),
		cel.Variable("t", cel.DoubleType),
		celmath.Lib(),
	)
	if err != nil {
		return err
	}
	for _, name := range slices.Sorted(maps.Keys(cfg.Anim)) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		err = renderAnim(ctx, env, name, cfg.Anim[name], dir, log)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// renderAnim compiles one animation's expression and renders it to its
// GIF file, holding a file lock on a sidecar lock file for the
// duration of the write so that concurrent renders of the same output
// are serialised.
func renderAnim(ctx context.Context, env *cel.Env, name string, a animConfig, dir string, log *slog.Logger) error {
	ast, iss := env.Compile(a.Expr)
	if iss.Err() != nil {
		return fmt.Errorf("compile %q: %w", a.Expr, iss.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return err
	}

	cfg, err := a.curveConfig(name, dir)
	if err != nil {
		return err
	}

	lockFile := cfg.Path + ".lock"
	fl := flock.New(lockFile)
	err = fl.Lock()
	if err != nil {
		return err
	}
	defer func() {
		fl.Unlock()
		os.Remove(lockFile)
	}()

	frames := &exprFrames{prg: prg, n: a.frames()}
	start := time.Now()
	_, err = curve.Plot(frames.producer, cfg)
	if err != nil {
		return err
	}
	if frames.err != nil {
		return frames.err
	}
	log.LogAttrs(ctx, slog.LevelInfo, "rendered",
		slog.String("name", name),
		slog.String("path", cfg.Path),
		slog.Int("frames", frames.n),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}

// exprFrames adapts a compiled CEL program to a curve.Producer,
// evaluating the program at each domain point for each frame.
// Evaluation failures terminate the sequence and are recorded in err
// since the producer contract has no error channel.
type exprFrames struct {
	prg cel.Program
	n   int
	err error
}

func (e *exprFrames) producer(x []float64) iter.Seq[[]float64] {
	return func(yield func([]float64) bool) {
		for t := 0; t < e.n; t++ {
			y := make([]float64, len(x))
			for i, xi := range x {
				out, _, err := e.prg.Eval(map[string]any{"x": xi, "t": float64(t)})
				if err != nil {
					e.err = fmt.Errorf("eval at x=%v t=%d: %w", xi, t, err)
					return
				}
				v, ok := out.Value().(float64)
				if !ok {
					e.err = fmt.Errorf("expression result is not a double: %v", out.Value())
					return
				}
				y[i] = v
			}
			if !yield(y) {
				return
			}
		}
	}
}
