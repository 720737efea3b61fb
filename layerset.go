package main

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/paulmach/orb"
)

// LayerSet 一次运行的全部图层, 按名称排序
type LayerSet struct {
	Layers []*Layer
	Canvas orb.Bound
}

// LoadLayerSet loads every asset in dir. Sidecar files are skipped and any
// layer failing to load aborts the whole set.
func LoadLayerSet(dir, sidecarSuffix string) (*LayerSet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, IOError(err, "read layer directory '%s'", dir)
	}

	assets := make(map[string]bool)
	var sidecars []string
	var layers []*Layer
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if isSidecar(name, sidecarSuffix) {
			sidecars = append(sidecars, name)
			continue
		}
		assets[name] = true
		layer, err := LoadLayer(filepath.Join(dir, name), sidecarSuffix)
		if err != nil {
			return nil, err
		}
		log.Debugf("layer loaded: %s", layer)
		layers = append(layers, layer)
	}
	for _, s := range sidecars {
		if !assets[strings.TrimSuffix(s, sidecarSuffix)] {
			log.Warnf("layer config '%s' has no matching asset", filepath.Join(dir, s))
		}
	}
	return NewLayerSet(layers)
}

// NewLayerSet sorts layers by name and computes the shared canvas.
func NewLayerSet(layers []*Layer) (*LayerSet, error) {
	if len(layers) == 0 {
		return nil, ConfigError("no layers found")
	}
	sorted := make([]*Layer, len(layers))
	copy(sorted, layers)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	canvas := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{0, 0}}
	for i, l := range sorted {
		if i > 0 && sorted[i-1].Name == l.Name {
			return nil, ConfigError("layers '%s' and '%s' share the name '%s'", sorted[i-1].Path, l.Path, l.Name)
		}
		canvas = canvas.Union(l.Footprint())
	}
	return &LayerSet{Layers: sorted, Canvas: canvas}, nil
}

// Size returns the canvas width and height.
func (s *LayerSet) Size() (float64, float64) {
	return s.Canvas.Max.X(), s.Canvas.Max.Y()
}
