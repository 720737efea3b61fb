package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"github.com/paulmach/orb/maptile"
)

// AlignAxis selects the canvas axis that is pre-scaled to land exactly on a
// power-of-two multiple of the tile size at the coarsest level.
type AlignAxis int

const (
	AlignNone AlignAxis = iota
	AlignWidth
	AlignHeight
)

func (a AlignAxis) String() string {
	switch a {
	case AlignWidth:
		return "width"
	case AlignHeight:
		return "height"
	default:
		return "none"
	}
}

// ParseAlignAxis 解析对齐方向: none, width, height
func ParseAlignAxis(s string) (AlignAxis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return AlignNone, nil
	case "width", "x":
		return AlignWidth, nil
	case "height", "y":
		return AlignHeight, nil
	}
	return AlignNone, ConfigError("unknown align axis %q", s)
}

// Level is one zoom level of a pyramid. Zoom is the on-disk label: 0 is the
// finest level.
type Level struct {
	Zoom   maptile.Zoom
	TilesX int
	TilesY int
	// Factor maps canvas pixels to level pixels.
	Factor float64
}

// Transform returns the canvas -> level pixel mapping. The per-tile shift
// is applied by the rasterizer.
func (l Level) Transform() gg.Matrix {
	return gg.Scale(l.Factor, l.Factor)
}

// Count 该层级瓦片数
func (l Level) Count() int {
	return l.TilesX * l.TilesY
}

func (l Level) String() string {
	return fmt.Sprintf("zoom %d: %dx%d tiles, factor %g", l.Zoom, l.TilesX, l.TilesY, l.Factor)
}

// ZoomPlan is the derived pyramid geometry for one layer.
type ZoomPlan struct {
	MaxZoom  int
	Prescale float64
	TileSize int
	// Levels are ordered coarsest first.
	Levels []Level
}

// Level returns the level with the given on-disk label.
func (p *ZoomPlan) Level(z int) (Level, bool) {
	if z < 0 || z > p.MaxZoom {
		return Level{}, false
	}
	return p.Levels[p.MaxZoom-z], true
}

// Total 全部层级的瓦片总数
func (p *ZoomPlan) Total() int64 {
	var n int64
	for _, l := range p.Levels {
		n += int64(l.Count())
	}
	return n
}

func ceilLog2(x float64) int {
	return int(math.Ceil(math.Log2(x)))
}

// PlanPyramid derives the zoom levels for a canvas of w x h pixels.
func PlanPyramid(w, h float64, tileSize int, align AlignAxis) (*ZoomPlan, error) {
	if tileSize <= 0 {
		return nil, ConfigError("tile size must be positive, got %d", tileSize)
	}
	if !(w > 0) || !(h > 0) || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return nil, ConfigError("canvas size %vx%v is invalid", w, h)
	}
	ts := float64(tileSize)

	maxZoom := ceilLog2(math.Max(w, h) / ts)
	if maxZoom < 0 {
		maxZoom = 0
	}

	prescale := 1.0
	scaledW, scaledH := w, h
	if align != AlignNone {
		nice := ts * math.Pow(2, float64(maxZoom))
		// The aligned axis is pinned to nice so float noise in prescale
		// can never spill it into an extra tile column or row.
		if align == AlignWidth {
			prescale = nice / w
			scaledW, scaledH = nice, prescale*h
			if z := ceilLog2(scaledH / ts); z > maxZoom {
				maxZoom = z
			}
		} else {
			prescale = nice / h
			scaledW, scaledH = prescale*w, nice
			if z := ceilLog2(scaledW / ts); z > maxZoom {
				maxZoom = z
			}
		}
	}

	plan := &ZoomPlan{
		MaxZoom:  maxZoom,
		Prescale: prescale,
		TileSize: tileSize,
		Levels:   make([]Level, 0, maxZoom+1),
	}
	for z := maxZoom; z >= 0; z-- {
		step := math.Pow(2, -float64(z))
		plan.Levels = append(plan.Levels, Level{
			Zoom:   maptile.Zoom(z),
			TilesX: tileCount(step*scaledW, ts),
			TilesY: tileCount(step*scaledH, ts),
			Factor: prescale * step,
		})
	}
	return plan, nil
}

func tileCount(size, ts float64) int {
	n := int(math.Ceil(size / ts))
	if n < 1 {
		n = 1
	}
	return n
}
