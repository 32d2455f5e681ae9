// Copyright ©2024 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package curve

import (
	"image"
	"iter"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var linspaceTests = []struct {
	lo, hi float64
	n      int
	want   []float64
}{
	{lo: 0, hi: 1, n: 5, want: []float64{0, 0.25, 0.5, 0.75, 1}},
	{lo: 0, hi: 5, n: 2, want: []float64{0, 5}},
	{lo: -1, hi: 1, n: 3, want: []float64{-1, 0, 1}},
	{lo: 2, hi: 2, n: 3, want: []float64{2, 2, 2}},
	{lo: 0, hi: 1, n: 1, want: []float64{0}},
	{lo: 0, hi: 1, n: 0, want: nil},
	{lo: 0, hi: 1, n: -1, want: nil},
}

func TestLinspace(t *testing.T) {
	for _, test := range linspaceTests {
		got := Linspace(test.lo, test.hi, test.n)
		if !cmp.Equal(got, test.want, cmpopts.EquateApprox(0, 1e-12)) {
			t.Errorf("unexpected points for Linspace(%v, %v, %d):\n%s",
				test.lo, test.hi, test.n, cmp.Diff(got, test.want))
		}
		if test.n > 1 {
			if got[0] != test.lo || got[len(got)-1] != test.hi {
				t.Errorf("endpoints not inclusive for Linspace(%v, %v, %d): got [%v, %v]",
					test.lo, test.hi, test.n, got[0], got[len(got)-1])
			}
		}
	}
}

// twoFrames yields a zero frame and then a one frame, recording the
// domain it was given.
type twoFrames struct {
	x []float64
}

func (p *twoFrames) producer(x []float64) iter.Seq[[]float64] {
	p.x = x
	return func(yield func([]float64) bool) {
		for _, v := range []float64{0, 1} {
			y := make([]float64, len(x))
			for i := range y {
				y[i] = v
			}
			if !yield(y) {
				return
			}
		}
	}
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.XLim = [2]float64{0, 1}
	cfg.YLim = [2]float64{-1, 2}
	cfg.N = 5
	cfg.Size = image.Point{X: 320, Y: 240}
	return cfg
}

func TestPlotVideo(t *testing.T) {
	t.Chdir(t.TempDir())

	p := &twoFrames{}
	v, err := Plot(p.producer, testConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v == nil {
		t.Fatal("expected non-nil video")
	}
	if v.Frames() != 2 {
		t.Errorf("unexpected frame count: got %d, want 2", v.Frames())
	}
	g, err := v.Decode()
	if err != nil {
		t.Fatalf("unexpected error decoding video payload: %v", err)
	}
	if len(g.Image) != 2 {
		t.Errorf("unexpected decoded frame count: got %d, want 2", len(g.Image))
	}

	if len(p.x) != 5 {
		t.Fatalf("unexpected domain length: got %d, want 5", len(p.x))
	}
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	if !cmp.Equal(p.x, want, cmpopts.EquateApprox(0, 1e-12)) {
		t.Errorf("unexpected domain:\n%s", cmp.Diff(p.x, want))
	}

	ents, err := os.ReadDir(".")
	if err != nil {
		t.Fatalf("unexpected error reading work dir: %v", err)
	}
	if len(ents) != 0 {
		t.Errorf("unexpected file writes in video mode: %v", ents)
	}
}

// steps is a package-function producer used to check file name
// derivation.
func steps(x []float64) iter.Seq[[]float64] {
	return func(yield func([]float64) bool) {
		for _, v := range []float64{0, 1} {
			y := make([]float64, len(x))
			for i := range y {
				y[i] = v
			}
			if !yield(y) {
				return
			}
		}
	}
}

func TestPlotGIFDerivedName(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg := testConfig()
	cfg.GIF = true
	v, err := Plot(steps, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != nil {
		t.Errorf("expected nil video in gif mode, got %v", v)
	}
	f, err := os.Open("steps.gif")
	if err != nil {
		t.Fatalf("unexpected error opening output: %v", err)
	}
	defer f.Close()
	assertGIFFrames(t, f.Name(), 2)
}

func TestPlotGIFExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.gif")

	p := &twoFrames{}
	cfg := testConfig()
	cfg.GIF = true
	cfg.Path = path
	_, err := Plot(p.producer, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertGIFFrames(t, path, 2)
}

func assertGIFFrames(t *testing.T, path string, want int) {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error reading %s: %v", path, err)
	}
	if !strings.HasPrefix(string(b), "GIF8") {
		t.Fatalf("%s is not a GIF", path)
	}
	v := Video{data: b}
	g, err := v.Decode()
	if err != nil {
		t.Fatalf("unexpected error decoding %s: %v", path, err)
	}
	if len(g.Image) != want {
		t.Errorf("unexpected frame count in %s: got %d, want %d", path, len(g.Image), want)
	}
}

func TestPlotMaxFrames(t *testing.T) {
	var pulls int
	unbounded := func(x []float64) iter.Seq[[]float64] {
		return func(yield func([]float64) bool) {
			for {
				pulls++
				y := make([]float64, len(x))
				for i, xi := range x {
					y[i] = math.Sin(xi + float64(pulls))
				}
				if !yield(y) {
					return
				}
			}
		}
	}

	cfg := testConfig()
	cfg.MaxFrames = 7
	v, err := Plot(unbounded, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Frames() != 7 {
		t.Errorf("unexpected frame count: got %d, want 7", v.Frames())
	}
	if pulls > 8 {
		t.Errorf("producer pulled past the frame bound: %d pulls", pulls)
	}
}

func TestPlotMismatchedFrameLength(t *testing.T) {
	short := func(x []float64) iter.Seq[[]float64] {
		return func(yield func([]float64) bool) {
			yield(make([]float64, len(x)-1))
		}
	}

	_, err := Plot(short, testConfig())
	if err == nil {
		t.Fatal("expected error for mismatched frame length")
	}
	if !strings.Contains(err.Error(), "mismatched") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestPlotInvalidGeometry(t *testing.T) {
	p := &twoFrames{}

	cfg := testConfig()
	cfg.XLim = [2]float64{2, 2}
	_, err := Plot(p.producer, cfg)
	if err == nil {
		t.Error("expected error for degenerate x range")
	}

	cfg = testConfig()
	cfg.YLim = [2]float64{0, 0}
	_, err = Plot(p.producer, cfg)
	if err == nil {
		t.Error("expected error for degenerate y range")
	}

	cfg = testConfig()
	cfg.N = 0
	_, err = Plot(p.producer, cfg)
	if err == nil {
		t.Error("expected error for empty domain")
	}
}

func TestPlotNilProducer(t *testing.T) {
	_, err := Plot(nil, testConfig())
	if err == nil {
		t.Error("expected error for nil producer")
	}
}

func TestPlotDelayPassThrough(t *testing.T) {
	p := &twoFrames{}
	cfg := testConfig()
	cfg.Delay = 250 * time.Millisecond
	v, err := Plot(p.producer, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g, err := v.Decode()
	if err != nil {
		t.Fatalf("unexpected error decoding video payload: %v", err)
	}
	for i, d := range g.Delay {
		if d != 25 {
			t.Errorf("unexpected delay for frame %d: got %d, want 25", i, d)
		}
	}
}

var producerNameTests = []struct {
	name string
	p    Producer
	want string
}{
	{name: "function", p: steps, want: "steps"},
	{name: "method_value", p: (&twoFrames{}).producer, want: "producer"},
}

func TestProducerName(t *testing.T) {
	for _, test := range producerNameTests {
		got := producerName(test.p)
		if got != test.want {
			t.Errorf("unexpected name for %s: got %q, want %q", test.name, got, test.want)
		}
	}
}
