package asset

import (
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"
)

// Half-block glyphs: each terminal cell carries two vertically stacked pixels
const (
	upperHalf = '▀'
	lowerHalf = '▄'
)

// Cell is one terminal cell of a sprite
// Transparent cells are skipped on blit; KeepBg cells draw their glyph over
// whatever background is already on screen
type Cell struct {
	Rune        rune
	Fg          tcell.Color
	Bg          tcell.Color
	KeepBg      bool
	Transparent bool
}

// Sprite is a decoded image converted to terminal cells, row-major
type Sprite struct {
	Width  int
	Height int
	Cells  []Cell
}

// Size implements engine.Drawable, in cells
func (s *Sprite) Size() (int, int) {
	return s.Width, s.Height
}

// At returns the cell at (x, y), ok false when out of bounds
func (s *Sprite) At(x, y int) (Cell, bool) {
	if x < 0 || y < 0 || x >= s.Width || y >= s.Height {
		return Cell{}, false
	}
	return s.Cells[y*s.Width+x], true
}

// NewSolidSprite returns a w×h block of background color c
func NewSolidSprite(w, h int, c tcell.Color) *Sprite {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	cells := make([]Cell, w*h)
	for i := range cells {
		cells[i] = Cell{Rune: ' ', Fg: c, Bg: c}
	}
	return &Sprite{Width: w, Height: h, Cells: cells}
}

// FromImage converts img into a sprite using half blocks, two pixel rows per cell
// Pixels matching key (when non-nil) or with alpha below half are transparent
func FromImage(img image.Image, key color.Color) *Sprite {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := (bounds.Dy() + 1) / 2
	if w == 0 || h == 0 {
		return &Sprite{}
	}

	var keyR, keyG, keyB uint8
	if key != nil {
		keyR, keyG, keyB, _ = rgba8(key)
	}
	sample := func(x, y int) (tcell.Color, bool) {
		if y >= bounds.Max.Y {
			return tcell.ColorDefault, false
		}
		r, g, b, a := rgba8(img.At(x, y))
		if a < 128 {
			return tcell.ColorDefault, false
		}
		if key != nil && r == keyR && g == keyG && b == keyB {
			return tcell.ColorDefault, false
		}
		return tcell.NewRGBColor(int32(r), int32(g), int32(b)), true
	}

	cells := make([]Cell, w*h)
	for cy := 0; cy < h; cy++ {
		for cx := 0; cx < w; cx++ {
			x := bounds.Min.X + cx
			y := bounds.Min.Y + cy*2
			top, topOK := sample(x, y)
			bottom, bottomOK := sample(x, y+1)

			var c Cell
			switch {
			case topOK && bottomOK:
				c = Cell{Rune: upperHalf, Fg: top, Bg: bottom}
			case topOK:
				c = Cell{Rune: upperHalf, Fg: top, KeepBg: true}
			case bottomOK:
				c = Cell{Rune: lowerHalf, Fg: bottom, KeepBg: true}
			default:
				c = Cell{Transparent: true}
			}
			cells[cy*w+cx] = c
		}
	}

	return &Sprite{Width: w, Height: h, Cells: cells}
}

// rgba8 returns non-premultiplied 8-bit channels
func rgba8(c color.Color) (r, g, b, a uint8) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return n.R, n.G, n.B, n.A
}
