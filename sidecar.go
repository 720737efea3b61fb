package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// DefaultSidecarSuffix 图层配置文件后缀, e.g. map.png -> map.png.txt
const DefaultSidecarSuffix = ".txt"

// LayerInfo holds the per-layer overrides read from a sidecar file. Nil
// fields fall back to their defaults.
type LayerInfo struct {
	Name    *string
	Scale   *float64
	XOffset *float64
	YOffset *float64
	Rotate  *float64
}

var sidecarKeys = map[string]bool{
	"name":     true,
	"scale":    true,
	"x-offset": true,
	"y-offset": true,
	"rotate":   true,
}

func isSidecar(name, suffix string) bool {
	return suffix != "" && strings.HasSuffix(name, suffix)
}

// readLayerInfo 读取图层配置, 文件不存在时全部使用默认值
func readLayerInfo(path string) (LayerInfo, error) {
	var info LayerInfo
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return info, nil
	}
	if err != nil {
		return info, IOError(err, "open layer config '%s'", path)
	}
	defer f.Close()

	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(f); err != nil {
		return info, &Error{Code: ErrCodeConfig, Message: "parse layer config '" + path + "'", Cause: err}
	}
	for _, key := range v.AllKeys() {
		if !sidecarKeys[key] {
			log.Warnf("layer config '%s': unknown key '%s' ignored", path, key)
		}
	}

	if v.IsSet("name") {
		name, err := cast.ToStringE(v.Get("name"))
		if err != nil || strings.TrimSpace(name) == "" {
			return info, ConfigError("layer config '%s': name must be a non-empty string", path)
		}
		info.Name = &name
	}
	for _, o := range []struct {
		key string
		dst **float64
	}{
		{"scale", &info.Scale},
		{"x-offset", &info.XOffset},
		{"y-offset", &info.YOffset},
		{"rotate", &info.Rotate},
	} {
		if !v.IsSet(o.key) {
			continue
		}
		num, err := toNumber(v.Get(o.key))
		if err != nil {
			return info, ConfigError("layer config '%s': %s is not a number (%v)", path, o.key, v.Get(o.key))
		}
		*o.dst = &num
	}
	return info, nil
}

// toNumber accepts YAML integers, floats and numeric strings. Booleans and
// anything else are rejected instead of being coerced to 0 or 1.
func toNumber(raw interface{}) (float64, error) {
	switch n := raw.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return cast.ToFloat64E(n)
	case string:
		return strconv.ParseFloat(strings.TrimSpace(n), 64)
	}
	return 0, fmt.Errorf("unsupported value type %T", raw)
}
