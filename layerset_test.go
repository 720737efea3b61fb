package main

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadLayerSet(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "zeta.png"), solidImage(300, 100, color.White))
	writePNG(t, filepath.Join(dir, "alpha.png"), solidImage(50, 400, color.White))
	writePNG(t, filepath.Join(dir, "mid.png"), solidImage(10, 10, color.White))
	writeFile(t, filepath.Join(dir, "mid.png"+DefaultSidecarSuffix), "name: beta\nx-offset: 500\n")
	writeFile(t, filepath.Join(dir, "orphan.png"+DefaultSidecarSuffix), "scale: 2\n")
	writeFile(t, filepath.Join(dir, ".hidden"), "ignored")
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	set, err := LoadLayerSet(dir, DefaultSidecarSuffix)
	if err != nil {
		t.Fatalf("LoadLayerSet: %v", err)
	}
	var names []string
	for _, l := range set.Layers {
		names = append(names, l.Name)
	}
	want := []string{"alpha", "beta", "zeta"}
	if len(names) != len(want) {
		t.Fatalf("layers = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("layers = %v, want %v", names, want)
		}
	}
	w, h := set.Size()
	if w != 510 || h != 400 {
		t.Errorf("canvas = %gx%g, want 510x400", w, h)
	}
}

func TestLoadLayerSetErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, dir string)
		check func(error) bool
	}{
		{
			name:  "empty directory",
			setup: func(t *testing.T, dir string) {},
			check: IsConfigError,
		},
		{
			name: "unsupported file",
			setup: func(t *testing.T, dir string) {
				writePNG(t, filepath.Join(dir, "a.png"), solidImage(10, 10, color.White))
				writeFile(t, filepath.Join(dir, "notes.doc"), "hello")
			},
			check: IsDecodeError,
		},
		{
			name: "duplicate names",
			setup: func(t *testing.T, dir string) {
				writePNG(t, filepath.Join(dir, "a.png"), solidImage(10, 10, color.White))
				writePNG(t, filepath.Join(dir, "b.png"), solidImage(10, 10, color.White))
				writeFile(t, filepath.Join(dir, "b.png"+DefaultSidecarSuffix), "name: a\n")
			},
			check: IsConfigError,
		},
		{
			name: "bad override",
			setup: func(t *testing.T, dir string) {
				writePNG(t, filepath.Join(dir, "a.png"), solidImage(10, 10, color.White))
				writeFile(t, filepath.Join(dir, "a.png"+DefaultSidecarSuffix), "y-offset: up\n")
			},
			check: IsConfigError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			tt.setup(t, dir)
			set, err := LoadLayerSet(dir, DefaultSidecarSuffix)
			if !tt.check(err) {
				t.Errorf("LoadLayerSet = %v, %v", set, err)
			}
		})
	}
}

func TestLoadLayerSetMissingDirectory(t *testing.T) {
	_, err := LoadLayerSet(filepath.Join(t.TempDir(), "missing"), DefaultSidecarSuffix)
	if !IsIOError(err) {
		t.Errorf("err = %v, want an io error", err)
	}
}

func TestNewLayerSetOrderIndependent(t *testing.T) {
	mk := func(name string, w, h int) *Layer {
		l, err := newLayer(name+".png", LayerInfo{}, &rasterAsset{img: solidImage(w, h, color.White)})
		if err != nil {
			t.Fatal(err)
		}
		return l
	}
	a, b, c := mk("a", 10, 30), mk("b", 20, 10), mk("c", 5, 5)
	s1, err := NewLayerSet([]*Layer{c, a, b})
	if err != nil {
		t.Fatal(err)
	}
	s2, err := NewLayerSet([]*Layer{b, c, a})
	if err != nil {
		t.Fatal(err)
	}
	for i := range s1.Layers {
		if s1.Layers[i] != s2.Layers[i] {
			t.Errorf("order differs at %d: %s vs %s", i, s1.Layers[i].Name, s2.Layers[i].Name)
		}
	}
	if w, h := s1.Size(); w != 20 || h != 30 {
		t.Errorf("canvas = %gx%g, want 20x30", w, h)
	}
}
