// Copyright ©2024 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package animation

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"
	"time"
)

var pal = color.Palette{color.White, color.Black}

func TestNewGIFBadBackground(t *testing.T) {
	_, err := NewGIF(image.Rect(0, 0, 4, 4), pal, 2)
	if err == nil {
		t.Error("expected error for background index outside palette")
	}
}

var delayTests = []struct {
	delay time.Duration
	want  int
}{
	{delay: 0, want: 0},
	{delay: 5 * time.Millisecond, want: 1},
	{delay: 10 * time.Millisecond, want: 1},
	{delay: 20 * time.Millisecond, want: 2},
	{delay: 250 * time.Millisecond, want: 25},
}

func TestAppendFrameDelay(t *testing.T) {
	for _, test := range delayTests {
		g, err := NewGIF(image.Rect(0, 0, 4, 4), pal, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		g.AppendFrame(image.NewPaletted(image.Rect(0, 0, 4, 4), pal), test.delay)
		if got := g.Delay[0]; got != test.want {
			t.Errorf("unexpected delay for %v: got %d, want %d", test.delay, got, test.want)
		}
	}
}

func TestEncodeEmpty(t *testing.T) {
	g, err := NewGIF(image.Rect(0, 0, 4, 4), pal, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = g.EncodeTo(&bytes.Buffer{})
	if err == nil {
		t.Error("expected error encoding zero frames")
	}
}

func TestAssembleAndDecode(t *testing.T) {
	rect := image.Rect(0, 0, 8, 8)
	g, err := NewGIF(rect, pal, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 3; i++ {
		f := image.NewPaletted(rect, pal)
		f.SetColorIndex(i, i, 1)
		g.AppendFrame(f, 20*time.Millisecond)
	}
	if g.Frames() != 3 {
		t.Fatalf("unexpected frame count: got %d, want 3", g.Frames())
	}

	var buf bytes.Buffer
	err = g.EncodeTo(&buf)
	if err != nil {
		t.Fatalf("unexpected error encoding: %v", err)
	}

	r := AsReadPeeker(bytes.NewReader(buf.Bytes()))
	if !IsGIF(r) {
		t.Fatal("encoded data is not recognised as GIF")
	}
	got, err := DecodeGIF(r)
	if err != nil {
		t.Fatalf("unexpected error decoding: %v", err)
	}
	if got.Frames() != 3 {
		t.Errorf("unexpected decoded frame count: got %d, want 3", got.Frames())
	}
	for i, d := range got.Delay {
		if d != 2 {
			t.Errorf("unexpected delay for frame %d: got %d, want 2", i, d)
		}
	}
}

func TestIsGIFNot(t *testing.T) {
	if IsGIF(AsReadPeeker(strings.NewReader("PNG is not a GIF"))) {
		t.Error("unexpected GIF identification")
	}
}

func TestDecodeInvalid(t *testing.T) {
	_, err := DecodeGIF(strings.NewReader("not a gif"))
	if err == nil {
		t.Error("expected error decoding junk")
	}
}
