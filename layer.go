package main

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
	"github.com/paulmach/orb"
)

// Layer is one input asset placed on the shared canvas. It is immutable
// once loaded.
type Layer struct {
	Name    string
	Path    string
	Scale   float64
	XOffset float64
	YOffset float64
	// Rotate is in radians and applied innermost, after scale and offset.
	Rotate float64

	NaturalWidth  int
	NaturalHeight int

	asset Drawable
}

// LoadLayer 加载图层及其配置文件 (path + sidecarSuffix)
func LoadLayer(path, sidecarSuffix string) (*Layer, error) {
	var info LayerInfo
	if sidecarSuffix != "" {
		var err error
		info, err = readLayerInfo(path + sidecarSuffix)
		if err != nil {
			return nil, err
		}
	}
	asset, err := decodeAsset(path)
	if err != nil {
		return nil, err
	}
	return newLayer(path, info, asset)
}

func newLayer(path string, info LayerInfo, asset Drawable) (*Layer, error) {
	base := filepath.Base(path)
	l := &Layer{
		Name:  strings.TrimSuffix(base, filepath.Ext(base)),
		Path:  path,
		Scale: 1.0,
		asset: asset,
	}
	if info.Name != nil {
		l.Name = *info.Name
	}
	if info.Scale != nil {
		l.Scale = *info.Scale
	}
	if info.XOffset != nil {
		l.XOffset = *info.XOffset
	}
	if info.YOffset != nil {
		l.YOffset = *info.YOffset
	}
	if info.Rotate != nil {
		l.Rotate = *info.Rotate
	}
	l.NaturalWidth, l.NaturalHeight = asset.Size()

	if strings.ContainsAny(l.Name, `/\`) || l.Name == "." || l.Name == ".." {
		return nil, ConfigError("layer '%s': name %q is not usable as a directory", path, l.Name)
	}
	for _, f := range []struct {
		key string
		val float64
	}{
		{"scale", l.Scale},
		{"x-offset", l.XOffset},
		{"y-offset", l.YOffset},
		{"rotate", l.Rotate},
	} {
		if math.IsNaN(f.val) || math.IsInf(f.val, 0) {
			return nil, ConfigError("layer '%s': %s must be finite, got %v", l.Name, f.key, f.val)
		}
	}
	if !(l.Scale > 0) {
		return nil, ConfigError("layer '%s': scale must be positive, got %v", l.Name, l.Scale)
	}
	if !(l.Width() > 0) || !(l.Height() > 0) || math.IsInf(l.Width(), 0) || math.IsInf(l.Height(), 0) {
		return nil, ConfigError("layer '%s': footprint %vx%v is empty or unbounded", l.Name, l.Width(), l.Height())
	}
	return l, nil
}

// Width 图层在画布中的宽度 (含偏移)
func (l *Layer) Width() float64 {
	return l.XOffset + float64(l.NaturalWidth)*l.Scale
}

// Height 图层在画布中的高度 (含偏移)
func (l *Layer) Height() float64 {
	return l.YOffset + float64(l.NaturalHeight)*l.Scale
}

// Footprint is the canvas area reserved by the layer, anchored at the origin.
func (l *Layer) Footprint() orb.Bound {
	return orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{l.Width(), l.Height()}}
}

// Draw paints the layer into dc on top of the caller's transform, cell by
// cell on a grid of the given size. The context state is restored before
// returning.
func (l *Layer) Draw(dc *gg.Context, grid int) {
	dc.Push()
	defer dc.Pop()
	dc.Translate(l.XOffset, l.YOffset)
	dc.Scale(l.Scale, l.Scale)
	if l.Rotate != 0 {
		dc.Rotate(l.Rotate)
	}
	l.asset.Paint(dc, grid)
}

func (l *Layer) String() string {
	return fmt.Sprintf("%s(%dx%d*%g+%g,%g)", l.Name, l.NaturalWidth, l.NaturalHeight, l.Scale, l.XOffset, l.YOffset)
}
