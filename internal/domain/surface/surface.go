package surface

import (
	"fmt"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a straight (non-premultiplied) RGBA colour.
type Color = color.RGBA

// Font is a CSS-like font descriptor such as "14px sans-serif". Surfaces
// that cannot honour it fall back to their built-in face.
type Font string

const (
	DefaultFont   Font = "16px monospace"
	SansFont      Font = "14px sans-serif"
	MonospaceFont Font = "14px monospace"
)

// Size is a width/height pair in logical pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rect is an axis-aligned rectangle. X/Y is the top-left corner; the right
// and bottom edges are exclusive.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Surface is the drawing target the desktop paints into. All coordinates
// are logical pixels with the origin at the top-left of the screen. Text is
// positioned by its baseline.
type Surface interface {
	Size() Size
	Clear(c Color)
	DrawRect(x, y, w, h int, c Color)
	DrawLine(x1, y1, x2, y2 int, c Color)
	DrawText(text string, x, y int, c Color, font Font)
	MeasureText(text string) Size
}

// Presenter is implemented by surfaces that buffer a frame and need an
// explicit flush once the compositor finishes painting it.
type Presenter interface {
	Present()
}

// Hex parses "#RGB" or "#RRGGBB" into an opaque colour.
func Hex(s string) (Color, error) {
	if len(s) == 4 && s[0] == '#' {
		s = string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b, A: 0xff}, nil
}

// MustHex is Hex for package-level palettes; it panics on malformed input.
func MustHex(s string) Color {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// WithAlpha returns c with its alpha channel replaced.
func WithAlpha(c Color, alpha float64) Color {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	c.A = uint8(alpha*255 + 0.5)
	return c
}

// Blend composites src over dst and returns an opaque result.
func Blend(dst, src Color) Color {
	switch src.A {
	case 0xff:
		return src
	case 0:
		return dst
	}
	under := colorful.Color{R: float64(dst.R) / 255, G: float64(dst.G) / 255, B: float64(dst.B) / 255}
	over := colorful.Color{R: float64(src.R) / 255, G: float64(src.G) / 255, B: float64(src.B) / 255}
	r, g, b := under.BlendRgb(over, float64(src.A)/255).RGB255()
	return Color{R: r, G: g, B: b, A: 0xff}
}
