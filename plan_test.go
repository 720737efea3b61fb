package main

import (
	"math"
	"testing"
)

func TestPlanPyramid(t *testing.T) {
	tests := []struct {
		name      string
		w, h      float64
		tileSize  int
		align     AlignAxis
		maxZoom   int
		prescale  float64
		finestX   int
		finestY   int
		coarsestX int
		coarsestY int
	}{
		{"wide canvas", 1000, 600, 256, AlignNone, 2, 1, 4, 3, 1, 1},
		{"smaller than a tile", 100, 50, 256, AlignNone, 0, 1, 1, 1, 1, 1},
		{"exactly one tile", 256, 256, 256, AlignNone, 0, 1, 1, 1, 1, 1},
		{"one pixel over", 257, 10, 256, AlignNone, 1, 1, 2, 1, 1, 1},
		{"small tiles", 1000, 600, 64, AlignNone, 4, 1, 16, 10, 1, 1},
		{"align width", 1000, 600, 256, AlignWidth, 2, 1.024, 4, 3, 1, 1},
		{"align height grows zoom", 1000, 600, 256, AlignHeight, 3, 1024.0 / 600, 7, 4, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := PlanPyramid(tt.w, tt.h, tt.tileSize, tt.align)
			if err != nil {
				t.Fatalf("PlanPyramid: %v", err)
			}
			if plan.MaxZoom != tt.maxZoom {
				t.Errorf("MaxZoom = %d, want %d", plan.MaxZoom, tt.maxZoom)
			}
			if math.Abs(plan.Prescale-tt.prescale) > 1e-9 {
				t.Errorf("Prescale = %v, want %v", plan.Prescale, tt.prescale)
			}
			if len(plan.Levels) != tt.maxZoom+1 {
				t.Fatalf("got %d levels, want %d", len(plan.Levels), tt.maxZoom+1)
			}
			finest, _ := plan.Level(0)
			if finest.TilesX != tt.finestX || finest.TilesY != tt.finestY {
				t.Errorf("finest grid = %dx%d, want %dx%d", finest.TilesX, finest.TilesY, tt.finestX, tt.finestY)
			}
			if math.Abs(finest.Factor-tt.prescale) > 1e-9 {
				t.Errorf("finest factor = %v, want %v", finest.Factor, tt.prescale)
			}
			coarsest, _ := plan.Level(plan.MaxZoom)
			if coarsest.TilesX != tt.coarsestX || coarsest.TilesY != tt.coarsestY {
				t.Errorf("coarsest grid = %dx%d, want %dx%d", coarsest.TilesX, coarsest.TilesY, tt.coarsestX, tt.coarsestY)
			}
		})
	}
}

func TestPlanPyramidLevelOrder(t *testing.T) {
	plan, err := PlanPyramid(1000, 600, 256, AlignNone)
	if err != nil {
		t.Fatal(err)
	}
	for i, l := range plan.Levels {
		if want := plan.MaxZoom - i; int(l.Zoom) != want {
			t.Errorf("Levels[%d].Zoom = %d, want %d", i, l.Zoom, want)
		}
	}
	mid, ok := plan.Level(1)
	if !ok {
		t.Fatal("Level(1) not found")
	}
	if mid.TilesX != 2 || mid.TilesY != 2 || mid.Factor != 0.5 {
		t.Errorf("Level(1) = %s, want 2x2 tiles at factor 0.5", mid)
	}
	if _, ok := plan.Level(3); ok {
		t.Error("Level(3) should not exist")
	}
	if _, ok := plan.Level(-1); ok {
		t.Error("Level(-1) should not exist")
	}
	if got := plan.Total(); got != 12+4+1 {
		t.Errorf("Total() = %d, want 17", got)
	}
}

// Every level grid covers the scaled canvas, and one column or row less
// would not.
func TestPlanPyramidCoverage(t *testing.T) {
	sizes := [][2]float64{{1, 1}, {255, 17}, {256, 512}, {300, 4000}, {1023.5, 99.9}, {5000, 5000}}
	for _, align := range []AlignAxis{AlignNone, AlignWidth, AlignHeight} {
		for _, ts := range []int{64, 256, 500} {
			for _, s := range sizes {
				plan, err := PlanPyramid(s[0], s[1], ts, align)
				if err != nil {
					t.Fatalf("PlanPyramid(%v, %d, %s): %v", s, ts, align, err)
				}
				for _, l := range plan.Levels {
					w, h := s[0]*l.Factor, s[1]*l.Factor
					tsf := float64(ts)
					if float64(l.TilesX)*tsf < w-1e-6 || float64(l.TilesY)*tsf < h-1e-6 {
						t.Errorf("%v ts=%d %s %s does not cover %gx%g", s, ts, align, l, w, h)
					}
					if l.TilesX > 1 && float64(l.TilesX-1)*tsf >= w+1e-6 {
						t.Errorf("%v ts=%d %s %s has an empty column", s, ts, align, l)
					}
					if l.TilesY > 1 && float64(l.TilesY-1)*tsf >= h+1e-6 {
						t.Errorf("%v ts=%d %s %s has an empty row", s, ts, align, l)
					}
				}
				coarsest := plan.Levels[0]
				if align == AlignNone && (coarsest.TilesX != 1 || coarsest.TilesY != 1) {
					t.Errorf("%v ts=%d coarsest level is %dx%d, want 1x1", s, ts, coarsest.TilesX, coarsest.TilesY)
				}
			}
		}
	}
}

func TestPlanPyramidSmallerTilesNeverReduceZoom(t *testing.T) {
	for _, s := range [][2]float64{{100, 100}, {1000, 600}, {4097, 3}} {
		prev := -1
		for _, ts := range []int{1024, 512, 256, 128, 64} {
			plan, err := PlanPyramid(s[0], s[1], ts, AlignNone)
			if err != nil {
				t.Fatal(err)
			}
			if plan.MaxZoom < prev {
				t.Errorf("%v: MaxZoom dropped from %d to %d at tile size %d", s, prev, plan.MaxZoom, ts)
			}
			prev = plan.MaxZoom
		}
	}
}

func TestPlanPyramidInvalid(t *testing.T) {
	tests := []struct {
		name     string
		w, h     float64
		tileSize int
	}{
		{"zero tile size", 100, 100, 0},
		{"negative tile size", 100, 100, -256},
		{"zero width", 0, 100, 256},
		{"negative height", 100, -1, 256},
		{"nan", math.NaN(), 100, 256},
		{"inf", math.Inf(1), 100, 256},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PlanPyramid(tt.w, tt.h, tt.tileSize, AlignNone)
			if !IsConfigError(err) {
				t.Errorf("err = %v, want a config error", err)
			}
		})
	}
}

func TestParseAlignAxis(t *testing.T) {
	tests := []struct {
		in      string
		want    AlignAxis
		wantErr bool
	}{
		{"", AlignNone, false},
		{"none", AlignNone, false},
		{"Width", AlignWidth, false},
		{"x", AlignWidth, false},
		{" height ", AlignHeight, false},
		{"y", AlignHeight, false},
		{"diagonal", AlignNone, true},
	}
	for _, tt := range tests {
		got, err := ParseAlignAxis(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAlignAxis(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAlignAxis(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
