package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/surface"
)

// Surface paints into an in-memory RGBA image. It backs the headless mode
// and frame snapshots.
type Surface struct {
	img  *image.RGBA
	face font.Face
}

// New returns a surface of the given logical size.
func New(width, height int) *Surface {
	return &Surface{
		img:  image.NewRGBA(image.Rect(0, 0, width, height)),
		face: basicfont.Face7x13,
	}
}

// Image returns the backing image.
func (s *Surface) Image() *image.RGBA { return s.img }

func (s *Surface) Size() surface.Size {
	b := s.img.Bounds()
	return surface.Size{Width: b.Dx(), Height: b.Dy()}
}

func (s *Surface) Clear(c surface.Color) {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(straight(c)), image.Point{}, draw.Src)
}

func (s *Surface) DrawRect(x, y, w, h int, c surface.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	r := image.Rect(x, y, x+w, y+h).Intersect(s.img.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(s.img, r, image.NewUniform(straight(c)), image.Point{}, draw.Over)
}

func (s *Surface) DrawLine(x1, y1, x2, y2 int, c surface.Color) {
	bounds := s.img.Bounds()
	dx, dy := abs(x2-x1), -abs(y2-y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx + dy
	for {
		if image.Pt(x1, y1).In(bounds) {
			s.img.SetRGBA(x1, y1, surface.Blend(s.img.RGBAAt(x1, y1), c))
		}
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x1 += sx
		}
		if e2 <= dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawText draws with a fixed 7x13 face; the font descriptor is ignored.
func (s *Surface) DrawText(text string, x, y int, c surface.Color, _ surface.Font) {
	d := font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(straight(c)),
		Face: s.face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func (s *Surface) MeasureText(text string) surface.Size {
	return surface.Size{
		Width:  font.MeasureString(s.face, text).Ceil(),
		Height: s.face.Metrics().Height.Ceil(),
	}
}

// WritePNG encodes the current frame.
func (s *Surface) WritePNG(w io.Writer) error {
	if err := png.Encode(w, s.img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG writes the current frame to path, creating parent directories.
func (s *Surface) SavePNG(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create snapshot dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := s.WritePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// straight reinterprets c as non-premultiplied for the image/draw package.
func straight(c surface.Color) color.NRGBA {
	return color.NRGBA(c)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
