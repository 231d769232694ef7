package provider

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/roofsolar/planner/pkg/core"
)

// ErrEmptyImage is returned for an empty imagery payload.
var ErrEmptyImage = errors.New("empty image payload")

// Decode reads the format and pixel size of an imagery payload without
// decoding the pixels.
func Decode(data []byte) (core.Image, error) {
	if len(data) == 0 {
		return core.Image{}, ErrEmptyImage
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return core.Image{}, fmt.Errorf("failed to decode image: %w", err)
	}
	return core.Image{
		Data:        data,
		ContentType: "image/" + format,
		Format:      format,
		Width:       cfg.Width,
		Height:      cfg.Height,
	}, nil
}
