package main

import (
	"encoding/json"
	"sort"
)

// ManifestEntry is one layer as seen by the viewer.
type ManifestEntry struct {
	Name    string `json:"name"`
	MaxZoom int    `json:"max_zoom"`
}

// ManifestEntries lists the layers of set that have a plan, ordered by name.
// Layers without a plan (failed runs) are left out.
func ManifestEntries(set *LayerSet, plans map[string]*ZoomPlan) []ManifestEntry {
	entries := make([]ManifestEntry, 0, len(set.Layers))
	for _, l := range set.Layers {
		p, ok := plans[l.Name]
		if !ok {
			continue
		}
		entries = append(entries, ManifestEntry{Name: l.Name, MaxZoom: p.MaxZoom})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

// WriteManifest 原子写入图层清单 (先写临时文件再重命名)
func WriteManifest(path string, entries []ManifestEntry) error {
	sorted := make([]ManifestEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	data, err := json.Marshal(sorted)
	if err != nil {
		return IOError(err, "encode manifest")
	}
	if err := writeFileAtomic(path, data); err != nil {
		return IOError(err, "write manifest '%s'", path)
	}
	return nil
}
