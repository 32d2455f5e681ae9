// Copyright ©2024 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package waves provides stock frame producers for the curve package.
package waves

import (
	"iter"
	"math"

	"github.com/fogleman/ease"

	"github.com/kortschak/curve"
)

// Travelling returns an unbounded producer of a travelling sine wave
// with the given amplitude and spatial frequency, advancing by speed
// radians per frame.
func Travelling(amp, freq, speed float64) curve.Producer {
	return func(x []float64) iter.Seq[[]float64] {
		return func(yield func([]float64) bool) {
			for t := 0; ; t++ {
				y := make([]float64, len(x))
				for i, xi := range x {
					y[i] = amp * math.Sin(2*math.Pi*freq*xi-speed*float64(t))
				}
				if !yield(y) {
					return
				}
			}
		}
	}
}

// Damped returns a finite producer of a decaying standing wave. The
// producer is exhausted when the envelope falls below a thousandth of
// the initial amplitude.
func Damped(amp, freq, decay float64) curve.Producer {
	return func(x []float64) iter.Seq[[]float64] {
		return func(yield func([]float64) bool) {
			for t := 0; ; t++ {
				env := amp * math.Exp(-decay*float64(t))
				if env < amp*1e-3 {
					return
				}
				y := make([]float64, len(x))
				for i, xi := range x {
					y[i] = env * math.Sin(2*math.Pi*freq*xi)
				}
				if !yield(y) {
					return
				}
			}
		}
	}
}

// Pulse returns a finite producer of a Gaussian pulse crossing the
// domain once, advancing by the given fraction of the domain per frame
// and gaining and fading with quadratic easing at either end of the
// crossing.
func Pulse(amp, width, speed float64) curve.Producer {
	return func(x []float64) iter.Seq[[]float64] {
		return func(yield func([]float64) bool) {
			if len(x) == 0 || speed <= 0 {
				return
			}
			lo, hi := x[0], x[len(x)-1]
			for u := 0.0; u <= 1; u += speed {
				c := lo + (hi-lo)*u
				y := make([]float64, len(x))
				for i, xi := range x {
					d := (xi - c) / width
					y[i] = amp * gain(u) * math.Exp(-d*d)
				}
				if !yield(y) {
					return
				}
			}
		}
	}
}

// gain eases the pulse height in over the first half of the crossing
// and out over the second.
func gain(u float64) float64 {
	d := 2 * u
	if d > 1 {
		d = 1 - (d - 1)
	}
	return ease.InOutQuad(d)
}

// Still returns a producer that yields a single frame of f evaluated
// over the domain.
func Still(f func(x float64) float64) curve.Producer {
	return func(x []float64) iter.Seq[[]float64] {
		return func(yield func([]float64) bool) {
			y := make([]float64, len(x))
			for i, xi := range x {
				y[i] = f(xi)
			}
			yield(y)
		}
	}
}
