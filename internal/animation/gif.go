// Copyright ©2024 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package animation provides assembly and decoding of animated GIF
// frame sequences.
package animation

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"
	"time"
)

// IsGIF returns whether the data held by r is a GIF image.
func IsGIF(r ReadPeeker) bool {
	return hasMagic("GIF8?a", r)
}

// ReadPeeker is an io.Reader that can also peek n bytes ahead.
type ReadPeeker interface {
	io.Reader
	Peek(n int) ([]byte, error)
}

// AsReadPeeker converts an io.Reader to a ReadPeeker.
func AsReadPeeker(r io.Reader) ReadPeeker {
	if r, ok := r.(ReadPeeker); ok {
		return r
	}
	return bufio.NewReader(r)
}

// hasMagic returns whether r starts with the provided magic bytes.
func hasMagic(magic string, r ReadPeeker) bool {
	b, err := r.Peek(len(magic))
	if err != nil || len(b) != len(magic) {
		return false
	}
	for i, c := range b {
		if magic[i] != c && magic[i] != '?' {
			return false
		}
	}
	return true
}

// GIF is an animated GIF assembled from a sequence of paletted frames.
// All frames share the global palette and bounds given to NewGIF.
type GIF struct {
	*gif.GIF
}

// NewGIF returns an empty GIF with the given frame bounds and global
// palette. The background index must be a valid index into pal.
func NewGIF(bound image.Rectangle, pal color.Palette, background byte) (*GIF, error) {
	if int(background) >= len(pal) {
		return nil, fmt.Errorf("background colour index not in palette: %d", background)
	}
	return &GIF{GIF: &gif.GIF{
		Config: image.Config{
			ColorModel: pal,
			Width:      bound.Dx(),
			Height:     bound.Dy(),
		},
		BackgroundIndex: background,
	}}, nil
}

// AppendFrame adds a frame to the animation with the given display
// delay. The delay is rounded down to the GIF timing resolution of
// 10ms; non-zero delays shorter than the resolution are stored as a
// single unit so that decoders do not interpret zero as unthrottled.
func (g *GIF) AppendFrame(frame *image.Paletted, delay time.Duration) {
	d := int(delay / (10 * time.Millisecond))
	if d < 1 && delay > 0 {
		d = 1
	}
	g.Image = append(g.Image, frame)
	g.Delay = append(g.Delay, d)
}

// Frames returns the number of frames held by the animation.
func (g *GIF) Frames() int {
	return len(g.Image)
}

// EncodeTo writes the animation to w in GIF format.
func (g *GIF) EncodeTo(w io.Writer) error {
	if len(g.Image) == 0 {
		return errors.New("no frames to encode")
	}
	return gif.EncodeAll(w, g.GIF)
}

// DecodeGIF returns a GIF decoded from the provided io.Reader. GIF
// delay, disposal and global background index values are checked for
// validity.
func DecodeGIF(r io.Reader) (*GIF, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, err
	}
	if len(g.Image) != len(g.Delay) && g.Delay != nil {
		return nil, fmt.Errorf("mismatched image count and delay count: %d != %d", len(g.Image), len(g.Delay))
	}
	if len(g.Image) != len(g.Disposal) && g.Disposal != nil {
		return nil, fmt.Errorf("mismatched image count and disposal count: %d != %d", len(g.Image), len(g.Disposal))
	}
	pal, ok := g.Config.ColorModel.(color.Palette)
	if idx := int(g.BackgroundIndex); ok && idx >= len(pal) {
		return nil, fmt.Errorf("global background colour index not in palette: %d", idx)
	}
	return &GIF{GIF: g}, nil
}
