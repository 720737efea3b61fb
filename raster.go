package main

import (
	"context"
	"fmt"
	"image"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"github.com/paulmach/orb/maptile"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
	pb "gopkg.in/cheggaaa/pb.v1"
)

// Strategy chooses how a level is rasterized.
type Strategy int

const (
	// StrategyPlane draws each level once into a full-size plane and crops
	// tiles out of it. One draw per level, memory grows with the level area.
	StrategyPlane Strategy = iota
	// StrategyTile draws the layer once per tile into a tile-sized context.
	// Memory is bounded to one tile per worker.
	StrategyTile
)

func (s Strategy) String() string {
	if s == StrategyTile {
		return "tile"
	}
	return "plane"
}

// ParseStrategy 解析渲染策略: plane, tile
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "plane":
		return StrategyPlane, nil
	case "tile":
		return StrategyTile, nil
	}
	return StrategyPlane, ConfigError("unknown render strategy %q", s)
}

// Rasterizer writes the tiles of one layer pyramid below Root.
type Rasterizer struct {
	Root     string
	TileSize int
	Strategy Strategy
	Format   string
	Workers  int
	// Progress receives the per-level progress bars; nil disables them.
	Progress io.Writer
}

func (r *Rasterizer) workers() int {
	if r.Workers > 0 {
		return r.Workers
	}
	return runtime.NumCPU()
}

// Render regenerates the whole pyramid of layer. Any failure leaves the
// layer incomplete and is reported; there is no partial success.
func (r *Rasterizer) Render(ctx context.Context, layer *Layer, plan *ZoomPlan) error {
	if plan.TileSize != r.TileSize {
		return ConfigError("layer '%s': plan tile size %d does not match rasterizer tile size %d", layer.Name, plan.TileSize, r.TileSize)
	}
	format := r.Format
	if format == "" {
		format = PNG
	}
	if !validFormat(format) {
		return ConfigError("unknown tile format %q", format)
	}
	tm := &TileMap{Name: layer.Name, Root: r.Root, Format: format}
	if err := tm.Reset(); err != nil {
		return err
	}
	for _, level := range plan.Levels {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.renderLevel(ctx, layer, tm, level); err != nil {
			return err
		}
	}
	return nil
}

func (r *Rasterizer) renderLevel(ctx context.Context, layer *Layer, tm *TileMap, level Level) error {
	start := time.Now()
	logger := log.WithFields(logrus.Fields{"layer": layer.Name, "zoom": level.Zoom})
	logger.Debugf("render %s (%s)", level, r.Strategy)

	bar := pb.New(level.Count()).Prefix(fmt.Sprintf("%s zoom %d : ", layer.Name, level.Zoom))
	if r.Progress != nil {
		bar.Output = r.Progress
	} else {
		bar.Output = io.Discard
	}
	bar.SetRefreshRate(time.Second)
	bar.Start()

	var drawTile func(x, y int) image.Image
	switch r.Strategy {
	case StrategyTile:
		drawTile = r.tileDrawer(layer, level)
	default:
		drawTile = r.planeDrawer(layer, level)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers())
schedule:
	for x := 0; x < level.TilesX; x++ {
		for y := 0; y < level.TilesY; y++ {
			if gctx.Err() != nil {
				break schedule
			}
			x, y := x, y
			g.Go(func() error {
				tile := Tile{T: maptile.New(uint32(x), uint32(y), level.Zoom)}
				var err error
				tile.C, err = encodeTile(drawTile(x, y), tm.Format)
				if err != nil {
					return IOError(err, "encode tile %v of layer '%s'", tile.T, layer.Name)
				}
				if err := saveToFiles(tile, tm); err != nil {
					return err
				}
				bar.Increment()
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		bar.Finish()
		return err
	}
	if err := ctx.Err(); err != nil {
		bar.Finish()
		return err
	}
	bar.FinishPrint(fmt.Sprintf("%s zoom %d finished ~", layer.Name, level.Zoom))
	logger.Debugf("%d tiles in %dms", level.Count(), time.Since(start).Milliseconds())
	return nil
}

// newTileContext 新建瓦片画布, 背景为不透明白色. r is in level pixels, so
// a tile context keeps the absolute coordinates of its tile.
func newTileContext(r image.Rectangle) *gg.Context {
	dc := gg.NewContextForRGBA(image.NewRGBA(r))
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	return dc
}

func tileRect(x, y, ts int) image.Rectangle {
	return image.Rect(x*ts, y*ts, (x+1)*ts, (y+1)*ts)
}

// planeDrawer renders the whole level once and crops tiles out of it by a
// plain pixel copy. The plane is only read while cropping, so the returned
// func is safe for concurrent use.
func (r *Rasterizer) planeDrawer(layer *Layer, level Level) func(x, y int) image.Image {
	ts := r.TileSize
	plane := newTileContext(image.Rect(0, 0, level.TilesX*ts, level.TilesY*ts))
	plane.Scale(level.Factor, level.Factor)
	layer.Draw(plane, ts)
	img := plane.Image()

	return func(x, y int) image.Image {
		dst := image.NewRGBA(image.Rect(0, 0, ts, ts))
		draw.Copy(dst, image.Point{}, img, tileRect(x, y, ts), draw.Src, nil)
		return dst
	}
}

// tileDrawer draws the layer directly for each tile, using a fresh context
// per call so concurrent workers never share drawing state. The context
// covers the tile's own area of the level, so the layer is drawn with the
// same matrix and onto the same grid cell as in a plane.
func (r *Rasterizer) tileDrawer(layer *Layer, level Level) func(x, y int) image.Image {
	ts := r.TileSize
	return func(x, y int) image.Image {
		dc := newTileContext(tileRect(x, y, ts))
		dc.Scale(level.Factor, level.Factor)
		layer.Draw(dc, ts)
		return dc.Image()
	}
}
