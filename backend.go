package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Drawable is a decoded layer asset.
//
// Paint draws the asset at its natural size through the current matrix of
// dc, whose image must be an *image.RGBA. The target is rasterized cell by
// cell on a grid of the given size anchored at the device origin, so a
// cell gets the same pixels whether it is painted alone or as part of a
// larger target. Paint only writes into dc and may be called concurrently
// as long as every caller owns its own context.
type Drawable interface {
	Size() (width, height int)
	Paint(dc *gg.Context, grid int)
}

// Asset kinds, selected by file extension.
const (
	KindRaster = "raster"
	KindVector = "vector"
)

var assetKinds = map[string]string{
	".png":  KindRaster,
	".jpg":  KindRaster,
	".jpeg": KindRaster,
	".gif":  KindRaster,
	".bmp":  KindRaster,
	".tif":  KindRaster,
	".tiff": KindRaster,
	".webp": KindRaster,
	".svg":  KindVector,
}

// assetKind 根据扩展名判断资源类型
func assetKind(path string) (string, bool) {
	kind, ok := assetKinds[strings.ToLower(filepath.Ext(path))]
	return kind, ok
}

func decodeAsset(path string) (Drawable, error) {
	kind, ok := assetKind(path)
	if !ok {
		return nil, DecodeError(nil, "unsupported format for '%s'", path)
	}
	switch kind {
	case KindVector:
		return decodeVector(path)
	default:
		return decodeRaster(path)
	}
}

type rasterAsset struct {
	img image.Image
}

func decodeRaster(path string) (*rasterAsset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, DecodeError(err, "open '%s'", path)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, DecodeError(err, "decode '%s'", path)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, DecodeError(nil, "'%s' has no pixels", path)
	}
	return &rasterAsset{img: img}, nil
}

func (a *rasterAsset) Size() (int, int) {
	b := a.img.Bounds()
	return b.Dx(), b.Dy()
}

func (a *rasterAsset) Paint(dc *gg.Context, grid int) {
	dst := targetRGBA(dc)
	b := a.img.Bounds()
	m := contextMatrix(dc).Mult(rasterx.Identity.Translate(float64(-b.Min.X), float64(-b.Min.Y)))
	s2d := f64.Aff3{m.A, m.C, m.E, m.B, m.D, m.F}
	for _, cell := range gridCells(dst.Bounds(), grid) {
		draw.BiLinear.Transform(dst.SubImage(cell).(*image.RGBA), s2d, a.img, b, draw.Over, nil)
	}
}

// vectorAsset renders the single page of an SVG document. The viewBox gives
// the natural size; the icon's paths are never mutated after decoding.
type vectorAsset struct {
	icon          *oksvg.SvgIcon
	width, height int
}

func decodeVector(path string) (*vectorAsset, error) {
	icon, err := oksvg.ReadIcon(path, oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, DecodeError(err, "decode '%s'", path)
	}
	vb := icon.ViewBox
	if vb.W <= 0 || vb.H <= 0 {
		return nil, DecodeError(nil, "'%s' has no usable viewBox or size", path)
	}
	return &vectorAsset{
		icon:   icon,
		width:  int(math.Ceil(vb.W)),
		height: int(math.Ceil(vb.H)),
	}, nil
}

func (a *vectorAsset) Size() (int, int) {
	return a.width, a.height
}

func (a *vectorAsset) Paint(dc *gg.Context, grid int) {
	img := targetRGBA(dc)
	m := contextMatrix(dc).Mult(rasterx.Identity.Translate(-a.icon.ViewBox.X, -a.icon.ViewBox.Y))

	b := img.Bounds()
	dasher := rasterx.NewDasher(b.Dx(), b.Dy(), newGridScanner(img, grid))
	for _, p := range a.icon.SVGPaths {
		p.DrawTransformed(dasher, 1.0, m)
	}
}

func targetRGBA(dc *gg.Context) *image.RGBA {
	img, ok := dc.Image().(*image.RGBA)
	if !ok {
		panic(fmt.Sprintf("layer paint needs an RGBA target, got %T", dc.Image()))
	}
	return img
}

// contextMatrix recovers the current user->device matrix of dc, which gg
// only exposes through TransformPoint.
func contextMatrix(dc *gg.Context) rasterx.Matrix2D {
	x0, y0 := dc.TransformPoint(0, 0)
	x1, y1 := dc.TransformPoint(1, 0)
	x2, y2 := dc.TransformPoint(0, 1)
	return rasterx.Matrix2D{
		A: x1 - x0, B: y1 - y0,
		C: x2 - x0, D: y2 - y0,
		E: x0, F: y0,
	}
}
