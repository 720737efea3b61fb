package main

import (
	"image"
	"image/color"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// gridScanner is a rasterx.Scanner that records a path in device
// coordinates and rasterizes it cell by cell on a square grid anchored at
// the device origin. Each cell is rasterized relative to its own corner, so
// its coverage does not depend on the size or origin of the destination.
type gridScanner struct {
	dest *image.RGBA
	grid int
	clip image.Rectangle
	src  image.Image

	segs []pathSeg
	r    vector.Rasterizer

	minX, minY, maxX, maxY fixed.Int26_6
}

type pathSeg struct {
	p     fixed.Point26_6
	start bool
}

var _ rasterx.Scanner = (*gridScanner)(nil)

func newGridScanner(dest *image.RGBA, grid int) *gridScanner {
	s := &gridScanner{dest: dest, grid: grid}
	s.SetColor(color.Black)
	s.Clear()
	return s
}

func (s *gridScanner) extend(p fixed.Point26_6) {
	if p.X < s.minX {
		s.minX = p.X
	}
	if p.Y < s.minY {
		s.minY = p.Y
	}
	if p.X > s.maxX {
		s.maxX = p.X
	}
	if p.Y > s.maxY {
		s.maxY = p.Y
	}
}

func (s *gridScanner) Start(a fixed.Point26_6) {
	s.extend(a)
	s.segs = append(s.segs, pathSeg{p: a, start: true})
}

func (s *gridScanner) Line(b fixed.Point26_6) {
	s.extend(b)
	s.segs = append(s.segs, pathSeg{p: b})
}

func (s *gridScanner) GetPathExtent() fixed.Rectangle26_6 {
	return fixed.Rectangle26_6{
		Min: fixed.Point26_6{X: s.minX, Y: s.minY},
		Max: fixed.Point26_6{X: s.maxX, Y: s.maxY},
	}
}

// SetBounds is a no-op: the grid cells bound the rasterization.
func (s *gridScanner) SetBounds(w, h int) {}

// SetWinding is a no-op: the vector rasterizer only supports non-zero winding.
func (s *gridScanner) SetWinding(useNonZeroWinding bool) {}

func (s *gridScanner) SetColor(clr interface{}) {
	switch c := clr.(type) {
	case color.Color:
		s.src = image.NewUniform(c)
	case rasterx.ColorFunc:
		s.src = colorFuncImage(c)
	}
}

func (s *gridScanner) SetClip(rect image.Rectangle) {
	s.clip = rect
}

func (s *gridScanner) Clear() {
	s.segs = s.segs[:0]
	s.minX, s.minY = math.MaxInt32, math.MaxInt32
	s.maxX, s.maxY = -math.MaxInt32, -math.MaxInt32
}

// Draw composites the recorded path over dest, one grid cell at a time.
func (s *gridScanner) Draw() {
	if len(s.segs) == 0 {
		return
	}
	area := s.dest.Bounds()
	if s.clip != image.ZR {
		area = area.Intersect(s.clip)
	}
	area = area.Intersect(image.Rect(s.minX.Floor(), s.minY.Floor(), s.maxX.Ceil(), s.maxY.Ceil()))
	for _, cell := range gridCells(area, s.grid) {
		s.r.Reset(cell.Dx(), cell.Dy())
		ox, oy := fixed.I(cell.Min.X), fixed.I(cell.Min.Y)
		for _, seg := range s.segs {
			x, y := float32(seg.p.X-ox)/64, float32(seg.p.Y-oy)/64
			if seg.start {
				s.r.MoveTo(x, y)
			} else {
				s.r.LineTo(x, y)
			}
		}
		s.r.Draw(s.dest, cell, s.src, cell.Min)
	}
}

// gridCells splits area into its intersections with the cells of a square
// grid anchored at the origin. A non-positive grid yields area itself.
func gridCells(area image.Rectangle, grid int) []image.Rectangle {
	if area.Empty() {
		return nil
	}
	if grid <= 0 {
		return []image.Rectangle{area}
	}
	var cells []image.Rectangle
	for y := floorDiv(area.Min.Y, grid) * grid; y < area.Max.Y; y += grid {
		for x := floorDiv(area.Min.X, grid) * grid; x < area.Max.X; x += grid {
			cells = append(cells, image.Rect(x, y, x+grid, y+grid).Intersect(area))
		}
	}
	return cells
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// colorFuncImage adapts a rasterx gradient to an image sampled in device
// coordinates.
type colorFuncImage rasterx.ColorFunc

func (f colorFuncImage) ColorModel() color.Model { return color.RGBAModel }

func (f colorFuncImage) Bounds() image.Rectangle {
	return image.Rect(-1e9, -1e9, 1e9, 1e9)
}

func (f colorFuncImage) At(x, y int) color.Color { return f(x, y) }
