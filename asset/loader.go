package asset

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"math"
	"os"
	"path/filepath"

	"github.com/lixenwraith/ninja-engine/engine"
)

// Loader resolves image paths under Root and converts them to sprites
// Scale resizes the source image (nearest neighbor) before conversion
type Loader struct {
	Root  string
	Scale float64
}

// NewLoader returns a loader rooted at root with the given graphics scale
func NewLoader(root string, scale float64) (*Loader, error) {
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return nil, &engine.ConfigurationError{Field: "graphics_scale", Value: scale, Reason: "must be a finite value greater than zero"}
	}
	return &Loader{Root: root, Scale: scale}, nil
}

// Load decodes the image at path (relative to Root) into a sprite
// key, when non-nil, marks a color as transparent
// Returns *engine.AssetNotFoundError when the file does not exist
func (l *Loader) Load(path string, key color.Color) (*Sprite, error) {
	full := path
	if l.Root != "" && !filepath.IsAbs(path) {
		full = filepath.Join(l.Root, path)
	}

	f, err := os.Open(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &engine.AssetNotFoundError{Path: full, Err: err}
		}
		return nil, fmt.Errorf("asset %s: open: %w", full, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("asset %s: decode: %w", full, err)
	}

	if l.Scale > 0 && l.Scale != 1 {
		img = Scale(img, l.Scale)
	}
	return FromImage(img, key), nil
}

// Scale resizes img by factor using nearest-neighbor sampling, never below 1×1
func Scale(img image.Image, factor float64) image.Image {
	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	if srcW == 0 || srcH == 0 {
		return img
	}
	dstW := max(1, int(math.Round(float64(srcW)*factor)))
	dstH := max(1, int(math.Round(float64(srcH)*factor)))

	dst := image.NewNRGBA(image.Rect(0, 0, dstW, dstH))
	for y := 0; y < dstH; y++ {
		sy := bounds.Min.Y + min(srcH-1, y*srcH/dstH)
		for x := 0; x < dstW; x++ {
			sx := bounds.Min.X + min(srcW-1, x*srcW/dstW)
			dst.Set(x, y, img.At(sx, sy))
		}
	}
	return dst
}
