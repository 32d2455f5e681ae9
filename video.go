// Copyright ©2024 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package curve

import (
	"bytes"
	"encoding/base64"
	"errors"
	"html/template"
	"image/gif"
	"io"
	"time"

	"github.com/kortschak/curve/internal/animation"
)

// Video is an embeddable inline animation. It holds the encoded
// animation payload in memory; it is not backed by a file.
type Video struct {
	data   []byte
	frames int
	delay  time.Duration
}

// Frames returns the number of animation frames held by the video.
func (v *Video) Frames() int {
	return v.frames
}

// Delay returns the inter-frame delay of the animation.
func (v *Video) Delay() time.Duration {
	return v.delay
}

// HTML returns an HTML fragment embedding the animation as a base64
// data URI, suitable for inline notebook display.
func (v *Video) HTML() template.HTML {
	var buf bytes.Buffer
	buf.WriteString(`<img alt="animation" src="data:image/gif;base64,`)
	enc := base64.NewEncoder(base64.StdEncoding, &buf)
	enc.Write(v.data)
	enc.Close()
	buf.WriteString(`">`)
	return template.HTML(buf.String())
}

// WriteTo writes the encoded animation payload to w, implementing
// io.WriterTo.
func (v *Video) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(v.data)
	return int64(n), err
}

// Decode returns the decoded animation held by the video.
func (v *Video) Decode() (*gif.GIF, error) {
	r := animation.AsReadPeeker(bytes.NewReader(v.data))
	if !animation.IsGIF(r) {
		return nil, errors.New("curve: video payload is not a GIF")
	}
	g, err := animation.DecodeGIF(r)
	if err != nil {
		return nil, err
	}
	return g.GIF, nil
}
