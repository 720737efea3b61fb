package main

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/teris-io/shortid"
)

// RunTask loads the layer set and runs the whole pipeline with the global
// configuration.
func RunTask(ctx context.Context) error {
	start := time.Now()
	log.Infof("%s %s", conf.App.Title, conf.App.Version)

	set, err := LoadLayerSet(conf.Input.Directory, conf.Input.SidecarSuffix)
	if err != nil {
		return err
	}
	task, err := NewTask(set, conf)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	// 注册安全退出
	if SafeExitInst != nil {
		SafeExitInst.Register(cancel)
	}

	if err := task.Run(ctx); err != nil {
		return err
	}
	log.Infof("%.3fs finished...", time.Since(start).Seconds())
	return nil
}

// Task 切片任务
type Task struct {
	ID           string
	Layers       *LayerSet
	Align        AlignAxis
	ManifestPath string
	Rasterizer   *Rasterizer

	plans map[string]*ZoomPlan
}

// NewTask 创建切片任务
func NewTask(set *LayerSet, c *Conf) (*Task, error) {
	align, err := ParseAlignAxis(c.Pyramid.Align)
	if err != nil {
		return nil, err
	}
	strategy, err := ParseStrategy(c.Pyramid.Strategy)
	if err != nil {
		return nil, err
	}
	id, _ := shortid.Generate()

	var progress io.Writer
	if c.Task.Progress {
		progress = os.Stdout
	}
	return &Task{
		ID:           id,
		Layers:       set,
		Align:        align,
		ManifestPath: c.Output.Manifest,
		Rasterizer: &Rasterizer{
			Root:     c.Output.Directory,
			TileSize: c.Pyramid.TileSize,
			Strategy: strategy,
			Format:   c.Output.Format,
			Workers:  c.Task.Workers,
			Progress: progress,
		},
	}, nil
}

// Run regenerates every layer pyramid and the manifest. A layer that fails
// to render is skipped in the manifest and reported in the returned error;
// the remaining layers are still rendered.
func (task *Task) Run(ctx context.Context) error {
	w, h := task.Layers.Size()
	log.Infof("Task %s: %d layers, canvas %gx%g, tile %d, align %s, strategy %s",
		task.ID, len(task.Layers.Layers), w, h, task.Rasterizer.TileSize, task.Align, task.Rasterizer.Strategy)

	if err := removeAll(task.Rasterizer.Root); err != nil {
		return err
	}

	task.plans = make(map[string]*ZoomPlan)
	var failed []string
	for _, layer := range task.Layers.Layers {
		plan, err := task.renderLayer(ctx, layer)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if !IsIOError(err) {
				return err
			}
			log.Errorf("layer %s failed: %s", layer.Name, err)
			failed = append(failed, layer.Name)
			continue
		}
		task.plans[layer.Name] = plan
	}

	entries := ManifestEntries(task.Layers, task.plans)
	if err := WriteManifest(task.ManifestPath, entries); err != nil {
		return err
	}
	log.Infof("manifest %s written with %d layers", task.ManifestPath, len(entries))

	if len(failed) > 0 {
		return IOError(nil, "%d layer(s) failed: %s", len(failed), strings.Join(failed, ", "))
	}
	return nil
}

// Plan returns the zoom plan computed for a rendered layer.
func (task *Task) Plan(name string) (*ZoomPlan, bool) {
	p, ok := task.plans[name]
	return p, ok
}

func (task *Task) renderLayer(ctx context.Context, layer *Layer) (*ZoomPlan, error) {
	start := time.Now()
	w, h := task.Layers.Size()
	plan, err := PlanPyramid(w, h, task.Rasterizer.TileSize, task.Align)
	if err != nil {
		return nil, err
	}
	log.Infof("Task layer: %s starting, max zoom %d, prescale %g, %d tiles", layer.Name, plan.MaxZoom, plan.Prescale, plan.Total())
	for _, level := range plan.Levels {
		log.Debugf("layer %s %s", layer.Name, level)
	}
	if err := task.Rasterizer.Render(ctx, layer, plan); err != nil {
		return nil, err
	}
	log.Infof("Task layer: %s finished in %s", layer.Name, time.Since(start).Round(time.Millisecond))
	return plan, nil
}
