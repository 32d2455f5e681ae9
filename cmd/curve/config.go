// Copyright ©2024 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/kortschak/curve"
)

// configFile is the root of the TOML animation configuration.
type configFile struct {
	Anim map[string]animConfig `toml:"anim"`
}

// animConfig describes a single animation. Omitted fields fall back to
// the curve package defaults.
type animConfig struct {
	Expr    string    `toml:"expr"`
	XLim    []float64 `toml:"xlim"`
	YLim    []float64 `toml:"ylim"`
	N       int       `toml:"n"`
	DelayMS int       `toml:"delay_ms"`
	Frames  int       `toml:"frames"`
	Title   string    `toml:"title"`
	XLabel  string    `toml:"xlabel"`
	YLabel  string    `toml:"ylabel"`
	Color   string    `toml:"color"`
}

// defaultFrames is the number of frames rendered when an animation
// does not specify a frame count.
const defaultFrames = 100

func loadConfig(path string) (*configFile, error) {
	var cfg configFile
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, err
	}
	if len(cfg.Anim) == 0 {
		return nil, fmt.Errorf("no animations in %s", path)
	}
	for name, a := range cfg.Anim {
		if a.Expr == "" {
			return nil, fmt.Errorf("%s: missing expr", name)
		}
	}
	return &cfg, nil
}

// curveConfig translates the animation configuration to a curve.Config
// writing <name>.gif into dir.
func (c animConfig) curveConfig(name, dir string) (curve.Config, error) {
	cfg := curve.DefaultConfig()
	cfg.GIF = true
	cfg.Path = filepath.Join(dir, name+".gif")
	cfg.Title = c.Title
	cfg.XLabel = c.XLabel
	cfg.YLabel = c.YLabel
	switch len(c.XLim) {
	case 0:
	case 2:
		cfg.XLim = [2]float64{c.XLim[0], c.XLim[1]}
	default:
		return cfg, fmt.Errorf("xlim must have two elements: %v", c.XLim)
	}
	switch len(c.YLim) {
	case 0:
	case 2:
		cfg.YLim = [2]float64{c.YLim[0], c.YLim[1]}
	default:
		return cfg, fmt.Errorf("ylim must have two elements: %v", c.YLim)
	}
	if c.N != 0 {
		cfg.N = c.N
	}
	if c.DelayMS != 0 {
		cfg.Delay = time.Duration(c.DelayMS) * time.Millisecond
	}
	if c.Color != "" {
		col, err := colorful.Hex(c.Color)
		if err != nil {
			return cfg, fmt.Errorf("invalid color %q: %w", c.Color, err)
		}
		cfg.LineColor = col
	}
	return cfg, nil
}

// frames returns the configured frame count.
func (c animConfig) frames() int {
	if c.Frames <= 0 {
		return defaultFrames
	}
	return c.Frames
}
