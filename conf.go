package main

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Version 程序版本
const Version = "v0.1.0"

var conf *Conf

type Conf struct {
	App struct {
		Version string `mapstructure:"version"`
		Title   string `mapstructure:"title"`
	} `mapstructure:"app"`
	Input struct {
		Directory     string `mapstructure:"directory"`
		SidecarSuffix string `mapstructure:"sidecarSuffix"`
	} `mapstructure:"input"`
	Output struct {
		Directory      string `mapstructure:"directory"`
		Manifest       string `mapstructure:"manifest"`
		Format         string `mapstructure:"format"`
		LogDir         string `mapstructure:"logDir"`
		OutputTerminal bool   `mapstructure:"outputTerminal"`
	} `mapstructure:"output"`
	Task struct {
		Workers  int  `mapstructure:"workers"`
		Progress bool `mapstructure:"progress"`
	} `mapstructure:"task"`
	Pyramid struct {
		TileSize int    `mapstructure:"tileSize"`
		Align    string `mapstructure:"align"`
		Strategy string `mapstructure:"strategy"`
	} `mapstructure:"pyramid"`
}

func setDefaults() {
	viper.SetDefault("app.version", Version)
	viper.SetDefault("app.title", "Layer Tiler")
	viper.SetDefault("input.directory", "layers")
	viper.SetDefault("input.sidecarSuffix", DefaultSidecarSuffix)
	viper.SetDefault("output.directory", "web/images/tiles")
	viper.SetDefault("output.manifest", "web/js/layers.json")
	viper.SetDefault("output.format", PNG)
	viper.SetDefault("output.outputTerminal", true)
	viper.SetDefault("task.workers", 0)
	viper.SetDefault("task.progress", true)
	viper.SetDefault("pyramid.tileSize", TileSize)
	viper.SetDefault("pyramid.align", "none")
	viper.SetDefault("pyramid.strategy", "plane")
}

// InitConf 初始化配置. A missing config file is only an error when the path
// was given explicitly; otherwise the defaults apply.
func InitConf(cfgFile string, explicit bool) error {
	setDefaults()
	viper.SetEnvPrefix("LAYERTILER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	if cfgFile == "" {
		cfgFile = defaultConfigPath
	}
	if _, err := os.Stat(cfgFile); err == nil {
		viper.SetConfigType("toml")
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return &Error{Code: ErrCodeConfig, Message: "read config file '" + cfgFile + "'", Cause: err}
		}
	} else if explicit {
		return ConfigError("config file '%s' does not exist", cfgFile)
	}

	conf = &Conf{}
	if err := viper.Unmarshal(conf); err != nil {
		return &Error{Code: ErrCodeConfig, Message: "parse config", Cause: err}
	}
	return conf.validate()
}

func (c *Conf) validate() error {
	if c.Pyramid.TileSize <= 0 {
		return ConfigError("pyramid.tileSize must be positive, got %d", c.Pyramid.TileSize)
	}
	if _, err := ParseAlignAxis(c.Pyramid.Align); err != nil {
		return err
	}
	if _, err := ParseStrategy(c.Pyramid.Strategy); err != nil {
		return err
	}
	if !validFormat(c.Output.Format) {
		return ConfigError("output.format must be %s or %s, got %q", PNG, JPG, c.Output.Format)
	}
	if c.Task.Workers < 0 {
		return ConfigError("task.workers must not be negative, got %d", c.Task.Workers)
	}
	if c.Input.Directory == "" || c.Output.Directory == "" || c.Output.Manifest == "" {
		return ConfigError("input.directory, output.directory and output.manifest are required")
	}
	return nil
}
