package main

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/paulmach/orb/maptile"
)

// TileMap 单个图层的瓦片目录: <Root>/<Name>/<z>/<x>/<y>.<Format>
type TileMap struct {
	Name   string
	Root   string
	Format string
}

// Dir is the layer's pyramid directory.
func (m *TileMap) Dir() string {
	return filepath.Join(m.Root, m.Name)
}

// ColumnDir 瓦片列目录
func (m *TileMap) ColumnDir(z maptile.Zoom, x uint32) string {
	return filepath.Join(m.Dir(), strconv.Itoa(int(z)), strconv.FormatUint(uint64(x), 10))
}

// GetTilePath 获取瓦片文件路径
func (m *TileMap) GetTilePath(t maptile.Tile) string {
	return filepath.Join(m.ColumnDir(t.Z, t.X), strconv.FormatUint(uint64(t.Y), 10)+"."+m.Format)
}

// Reset removes any previous pyramid of the layer.
func (m *TileMap) Reset() error {
	if err := os.RemoveAll(m.Dir()); err != nil {
		return IOError(err, "remove old tiles of layer '%s'", m.Name)
	}
	return nil
}
