// Copyright ©2024 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package curve is a rudimentary animation library for one dimensional
// curves. It renders a fixed domain and a sequence of range values,
// one per frame, produced by a caller-supplied frame producer, to
// either an embeddable inline animation or an animated GIF file.
package curve

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"iter"
	"os"
	"reflect"
	"runtime"
	"strings"
	"time"

	"github.com/kortschak/curve/internal/animation"
	"github.com/kortschak/curve/internal/plot"
)

// Producer is a frame producer. It takes the fixed domain points and
// returns a lazy sequence of range value slices, one per animation
// frame. The sequence is consumed exactly once, in order, on demand;
// it may be finite or unbounded. Each yielded slice must have the same
// length as the domain.
type Producer func(x []float64) iter.Seq[[]float64]

// Config is the configuration for a Plot call. The zero value is not
// useful; start from DefaultConfig.
type Config struct {
	// XLim and YLim are the fixed horizontal and vertical plot
	// bounds. They are not validated here; malformed ranges
	// surface as errors from the plot surface.
	XLim, YLim [2]float64

	// N is the number of domain points.
	N int

	// Delay is the inter-frame delay in the rendered animation.
	// It affects playback pacing only.
	Delay time.Duration

	// MaxFrames bounds the number of frames pulled from the
	// producer. The producer is not consumed past the bound.
	MaxFrames int

	// Optional plot decorations.
	Title  string
	XLabel string
	YLabel string

	// Size is the rendered frame size in pixels.
	Size image.Point

	// LineColor is the curve colour. Nil selects a default.
	LineColor color.Color

	// GIF selects the file output path. When it is true, Plot
	// writes an animated GIF file and returns a nil Video.
	GIF bool

	// Path is the output file name for the GIF path. An empty
	// Path derives the name from the producer's function name
	// with a .gif extension.
	Path string
}

// DefaultConfig returns the default Plot configuration.
func DefaultConfig() Config {
	return Config{
		XLim:      [2]float64{0, 5},
		YLim:      [2]float64{-10, 10},
		N:         1000,
		Delay:     20 * time.Millisecond,
		MaxFrames: 1000,
		Size:      image.Point{X: 640, Y: 480},
	}
}

// Plot produces an animation from the frame producer. It works in two
// modes:
//   - return an embeddable Video of the animation for inline display
//   - write an animated GIF file of the animation
//
// The first mode is the default; the second is selected by Config.GIF.
// Exactly one output artifact is produced per call and the plot
// surface is released on every exit path. Failures in the producer,
// the plot surface or encoding propagate unchanged.
func Plot(frames Producer, cfg Config) (*Video, error) {
	if frames == nil {
		return nil, errors.New("curve: nil frame producer")
	}

	// The domain is fixed for the whole animation.
	x := Linspace(cfg.XLim[0], cfg.XLim[1], cfg.N)
	seq := frames(x)

	surface, err := plot.New(plot.Params{
		Width:     cfg.Size.X,
		Height:    cfg.Size.Y,
		XLim:      cfg.XLim,
		YLim:      cfg.YLim,
		Title:     cfg.Title,
		XLabel:    cfg.XLabel,
		YLabel:    cfg.YLabel,
		LineColor: cfg.LineColor,
	})
	if err != nil {
		return nil, err
	}
	defer surface.Close()

	err = surface.Clear()
	if err != nil {
		return nil, err
	}
	g, err := animation.NewGIF(surface.Bounds(), surface.Palette(), 0)
	if err != nil {
		return nil, err
	}
	for y := range seq {
		if g.Frames() >= cfg.MaxFrames {
			break
		}
		err = surface.SetData(x, y)
		if err != nil {
			return nil, err
		}
		frame, err := surface.Frame()
		if err != nil {
			return nil, err
		}
		g.AppendFrame(frame, cfg.Delay)
	}

	if cfg.GIF {
		path := cfg.Path
		if path == "" {
			path = producerName(frames) + ".gif"
		}
		f, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		err = g.EncodeTo(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return nil, f.Close()
	}

	var buf bytes.Buffer
	err = g.EncodeTo(&buf)
	if err != nil {
		return nil, err
	}
	return &Video{data: buf.Bytes(), frames: g.Frames(), delay: cfg.Delay}, nil
}

// producerName returns the file name stem for a producer, derived from
// its function symbol. Method values and closures have their symbol
// decorations stripped.
func producerName(p Producer) string {
	name := runtime.FuncForPC(reflect.ValueOf(p).Pointer()).Name()
	name = name[strings.LastIndexByte(name, '/')+1:]
	name = strings.TrimSuffix(name, "-fm")
	for {
		trimmed, ok := strings.CutSuffix(name, "]")
		if !ok {
			break
		}
		if i := strings.LastIndexByte(trimmed, '['); i >= 0 {
			name = trimmed[:i]
		} else {
			break
		}
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		return "animation"
	}
	return name
}

// Linspace returns n evenly spaced points over [lo, hi], endpoints
// inclusive. For n == 1 the single point is lo.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	x := make([]float64, n)
	if n == 1 {
		x[0] = lo
		return x
	}
	d := (hi - lo) / float64(n-1)
	for i := range x {
		x[i] = lo + float64(i)*d
	}
	x[n-1] = hi
	return x
}
