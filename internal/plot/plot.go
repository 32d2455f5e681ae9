// Copyright ©2024 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plot renders a fixed-axes line plot into paletted animation
// frames. A Surface holds a static layer, rendered once, carrying the
// background, axes frame, tick marks and decorations, and a single
// line artifact that is replaced frame by frame.
package plot

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strconv"

	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/vector"

	"github.com/kortschak/curve/internal/text"
)

// Default surface geometry.
const (
	marginTop    = 24
	marginRight  = 16
	marginBottom = 36
	marginLeft   = 56

	tickLen   = 4
	tickCount = 5
)

// rampLevels is the number of blend levels between the background and
// the line colour held in the frame palette to absorb stroke
// anti-aliasing.
const rampLevels = 16

// Params configures a Surface.
type Params struct {
	// Width and Height are the full canvas size in pixels.
	Width, Height int

	// XLim and YLim are the fixed data bounds of the axes.
	XLim, YLim [2]float64

	// Optional decorations. Empty strings leave the
	// corresponding decoration unset.
	Title  string
	XLabel string
	YLabel string

	// LineColor is the colour of the line artifact. A nil
	// LineColor uses a default blue.
	LineColor color.Color

	// LineWidth is the stroke width in pixels. Zero or negative
	// uses a default of 2.
	LineWidth float64
}

// Surface is a plot surface with fixed axes and a single mutable line
// artifact. A Surface is bound to a single rendering run; it is not
// safe for concurrent use and must be released with Close.
type Surface struct {
	p    Params
	area image.Rectangle // data area within the canvas

	pal    color.Palette
	static *image.RGBA // background, axes and decorations
	buf    *image.RGBA // per-frame composite scratch

	x, y []float64 // current line data

	closed bool
}

var errClosed = errors.New("plot: use of closed surface")

// New returns a Surface for the given parameters. It returns an error
// for a non-positive canvas or a degenerate axis range since neither
// admits a data-to-pixel transform.
func New(p Params) (*Surface, error) {
	if p.Width <= 0 || p.Height <= 0 {
		return nil, fmt.Errorf("plot: non-positive canvas: %dx%d", p.Width, p.Height)
	}
	if p.XLim[0] == p.XLim[1] {
		return nil, fmt.Errorf("plot: degenerate x range: [%v, %v]", p.XLim[0], p.XLim[1])
	}
	if p.YLim[0] == p.YLim[1] {
		return nil, fmt.Errorf("plot: degenerate y range: [%v, %v]", p.YLim[0], p.YLim[1])
	}
	if p.LineColor == nil {
		p.LineColor = color.NRGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	}
	if p.LineWidth <= 0 {
		p.LineWidth = 2
	}
	area := image.Rect(marginLeft, marginTop, p.Width-marginRight, p.Height-marginBottom)
	if area.Dx() <= 0 || area.Dy() <= 0 {
		return nil, fmt.Errorf("plot: canvas too small for axes: %dx%d", p.Width, p.Height)
	}
	s := &Surface{
		p:    p,
		area: area,
		pal:  palette(p.LineColor),
	}
	s.static = image.NewRGBA(image.Rect(0, 0, p.Width, p.Height))
	s.buf = image.NewRGBA(s.static.Bounds())
	s.renderStatic()
	return s, nil
}

// palette returns the frame palette: a blend ramp from white to the
// line colour, plus black for the axes and text. Index 0 is the
// background.
func palette(line color.Color) color.Palette {
	pal := make(color.Palette, 0, rampLevels+1)
	lr, lg, lb, _ := line.RGBA()
	for i := 0; i < rampLevels; i++ {
		t := uint32(i)
		f := uint32(rampLevels - 1)
		pal = append(pal, color.RGBA64{
			R: uint16((0xffff*(f-t) + lr*t) / f),
			G: uint16((0xffff*(f-t) + lg*t) / f),
			B: uint16((0xffff*(f-t) + lb*t) / f),
			A: 0xffff,
		})
	}
	return append(pal, color.Black)
}

// renderStatic draws the background, axes frame, ticks and decorations
// into the static layer.
func (s *Surface) renderStatic() {
	draw.Draw(s.static, s.static.Bounds(), image.White, image.Point{}, draw.Src)

	// Axes frame.
	a := s.area
	s.hline(a.Min.Y, a.Min.X, a.Max.X)
	s.hline(a.Max.Y-1, a.Min.X, a.Max.X)
	s.vline(a.Min.X, a.Min.Y, a.Max.Y)
	s.vline(a.Max.X-1, a.Min.Y, a.Max.Y)

	fnt := basicfont.Face7x13
	for i := 0; i < tickCount; i++ {
		frac := float64(i) / (tickCount - 1)

		// Bottom ticks and labels.
		xv := s.p.XLim[0] + frac*(s.p.XLim[1]-s.p.XLim[0])
		px := a.Min.X + int(frac*float64(a.Dx()-1))
		s.vline(px, a.Max.Y, a.Max.Y+tickLen)
		label := strconv.FormatFloat(xv, 'g', 3, 64)
		lw := len(label) * (fnt.Width + 1) // region width in label cells
		lx := px - text.Width(label, fnt)/2
		text.Draw(region(s.static, image.Rect(lx, a.Max.Y+tickLen, lx+lw, a.Max.Y+tickLen+fnt.Height)),
			label, color.Black, fnt, 0, 0, false)

		// Left ticks and labels.
		yv := s.p.YLim[0] + frac*(s.p.YLim[1]-s.p.YLim[0])
		py := a.Max.Y - 1 - int(frac*float64(a.Dy()-1))
		s.hline(py, a.Min.X-tickLen, a.Min.X)
		label = strconv.FormatFloat(yv, 'g', 3, 64)
		lw = len(label) * (fnt.Width + 1)
		text.Draw(region(s.static, image.Rect(a.Min.X-tickLen-1-lw, py-fnt.Height/2, a.Min.X-tickLen-1, py+fnt.Height/2+1)),
			label, color.Black, fnt, 0, 0, false)
	}

	if s.p.Title != "" {
		text.Draw(region(s.static, image.Rect(a.Min.X, 0, a.Max.X, marginTop-2)),
			s.p.Title, color.Black, fnt, 0.5, 0.5, true)
	}
	if s.p.XLabel != "" {
		text.Draw(region(s.static, image.Rect(a.Min.X, s.p.Height-fnt.Height-2, a.Max.X, s.p.Height)),
			s.p.XLabel, color.Black, fnt, 0.5, 0, false)
	}
	if s.p.YLabel != "" {
		text.DrawVertical(region(s.static, image.Rect(0, a.Min.Y, fnt.Height+2, a.Max.Y)),
			s.p.YLabel, color.Black, fnt, 0, 0.5)
	}
}

// region returns the sub-image of img bounded by r as a draw.Image.
func region(img *image.RGBA, r image.Rectangle) draw.Image {
	return img.SubImage(r.Intersect(img.Bounds())).(*image.RGBA)
}

func (s *Surface) hline(y, x0, x1 int) {
	draw.Draw(s.static, image.Rect(x0, y, x1, y+1), image.Black, image.Point{}, draw.Src)
}

func (s *Surface) vline(x, y0, y1 int) {
	draw.Draw(s.static, image.Rect(x, y0, x+1, y1), image.Black, image.Point{}, draw.Src)
}

// SetData replaces the line artifact's data. The x and y slices must
// have equal non-zero length; SetData retains the slices.
func (s *Surface) SetData(x, y []float64) error {
	if s.closed {
		return errClosed
	}
	if len(x) == 0 {
		return errors.New("plot: empty domain")
	}
	if len(x) != len(y) {
		return fmt.Errorf("plot: mismatched data lengths: %d != %d", len(x), len(y))
	}
	s.x, s.y = x, y
	return nil
}

// Clear empties the line artifact.
func (s *Surface) Clear() error {
	if s.closed {
		return errClosed
	}
	s.x, s.y = nil, nil
	return nil
}

// Frame renders the current state of the surface to a paletted frame.
// Only the line layer is redrawn; the static layer is composited from
// its cached rendering.
func (s *Surface) Frame() (*image.Paletted, error) {
	if s.closed {
		return nil, errClosed
	}
	draw.Draw(s.buf, s.buf.Bounds(), s.static, image.Point{}, draw.Src)
	if len(s.x) != 0 {
		s.strokeLine()
	}
	dst := image.NewPaletted(s.buf.Bounds(), s.pal)
	draw.Draw(dst, dst.Bounds(), s.buf, image.Point{}, draw.Src)
	return dst, nil
}

// strokeLine rasterizes the current polyline into the data area of the
// composite buffer. The rasterizer is sized to the data area so that
// out-of-range data is clipped to the axes.
func (s *Surface) strokeLine() {
	a := s.area
	z := vector.NewRasterizer(a.Dx(), a.Dy())
	half := float32(s.p.LineWidth / 2)

	var prev [2]float32
	pen := false
	for i := range s.x {
		if math.IsNaN(s.x[i]) || math.IsNaN(s.y[i]) {
			pen = false
			continue
		}
		px, py := s.pixel(s.x[i], s.y[i])
		if pen {
			segment(z, prev[0], prev[1], px, py, half)
		}
		prev = [2]float32{px, py}
		pen = true
	}
	if len(s.x) == 1 && pen {
		// A single point has no segment; draw a dot.
		segment(z, prev[0]-half, prev[1], prev[0]+half, prev[1], half)
	}

	z.Draw(s.buf, a, image.NewUniform(s.p.LineColor), image.Point{})
}

// pixel maps a data point to data-area-local pixel coordinates.
func (s *Surface) pixel(x, y float64) (px, py float32) {
	a := s.area
	px = float32((x - s.p.XLim[0]) / (s.p.XLim[1] - s.p.XLim[0]) * float64(a.Dx()-1))
	py = float32(float64(a.Dy()-1) - (y-s.p.YLim[0])/(s.p.YLim[1]-s.p.YLim[0])*float64(a.Dy()-1))
	return px, py
}

// segment adds a stroked line segment to the rasterizer as a filled
// quad perpendicular to the segment direction.
func segment(z *vector.Rasterizer, x0, y0, x1, y1, half float32) {
	dx, dy := x1-x0, y1-y0
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		return
	}
	// Perpendicular unit vector scaled to the half width.
	nx, ny := -dy/l*half, dx/l*half
	z.MoveTo(x0+nx, y0+ny)
	z.LineTo(x1+nx, y1+ny)
	z.LineTo(x1-nx, y1-ny)
	z.LineTo(x0-nx, y0-ny)
	z.ClosePath()
}

// Palette returns the frame palette used by the surface.
func (s *Surface) Palette() color.Palette {
	return s.pal
}

// Bounds returns the full canvas bounds.
func (s *Surface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.p.Width, s.p.Height)
}

// Close releases the surface's pixel buffers. A closed surface cannot
// be reused.
func (s *Surface) Close() {
	s.closed = true
	s.static = nil
	s.buf = nil
	s.x, s.y = nil, nil
}
