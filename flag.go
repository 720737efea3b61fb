package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultConfigPath = "./conf/conf.toml"

var (
	configPath string
	logLevel   string
)

// flagKeys maps command line flags onto their config keys.
var flagKeys = map[string]string{
	"input":     "input.directory",
	"output":    "output.directory",
	"manifest":  "output.manifest",
	"format":    "output.format",
	"tile-size": "pyramid.tileSize",
	"align":     "pyramid.align",
	"strategy":  "pyramid.strategy",
	"workers":   "task.workers",
	"progress":  "task.progress",
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "layertiler",
		Short:         "Cut image layers into zoomable tile pyramids",
		Long:          "layertiler reads every layer in the input directory, regenerates the tile pyramid of each layer and writes the layer manifest for the viewer.",
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// 开始安全退出任务
			InitSafeExit()
			defer SafeExitInst.Exit()
			// 初始化配置
			if err := InitConf(configPath, cmd.Flags().Changed("config")); err != nil {
				return err
			}
			// 初始化日志
			if err := InitLog(logLevel); err != nil {
				return err
			}
			// 开始任务
			return RunTask(cmd.Context())
		},
	}

	f := cmd.Flags()
	f.StringVarP(&configPath, "config", "c", defaultConfigPath, "set config `file`")
	f.StringVarP(&logLevel, "log-level", "l", "info", "set log level")
	f.String("input", "layers", "layer directory")
	f.String("output", "web/images/tiles", "tile output directory, cleared on every run")
	f.String("manifest", "web/js/layers.json", "layer manifest path")
	f.String("format", PNG, "tile format (png, jpg)")
	f.Int("tile-size", TileSize, "tile edge length in pixels")
	f.String("align", "none", "pre-scale axis aligned to the tile grid (none, width, height)")
	f.String("strategy", "plane", "render strategy (plane, tile)")
	f.Int("workers", 0, "concurrent tile workers, 0 uses all CPUs")
	f.Bool("progress", true, "show per level progress bars")
	for name, key := range flagKeys {
		if err := viper.BindPFlag(key, f.Lookup(name)); err != nil {
			panic(err)
		}
	}
	return cmd
}
