package main

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/paulmach/orb/maptile"
)

// TileSize 默认瓦片大小
const TileSize = 256

// Tile 自定义瓦片存储
type Tile struct {
	T maptile.Tile
	C []byte
}

// Constants representing TileFormat types
const (
	PNG = "png"
	JPG = "jpg"
)

// jpegQuality is only used for the jpg tile format.
const jpegQuality = 90

var pngEncoder = png.Encoder{CompressionLevel: png.DefaultCompression}

func validFormat(format string) bool {
	return format == PNG || format == JPG
}

// encodeTile 按格式编码瓦片
func encodeTile(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case JPG:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality})
	default:
		err = pngEncoder.Encode(&buf, img)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
