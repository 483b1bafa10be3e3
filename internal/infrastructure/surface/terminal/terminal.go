package terminal

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/surface"
)

// ErrInvalidCell is returned for non-positive cell dimensions.
var ErrInvalidCell = errors.New("cell size must be positive")

const (
	horizontalRune = '─'
	verticalRune   = '│'
	dotRune        = '·'
)

// Surface paints the desktop onto a terminal. Each character cell stands
// for CellWidth x CellHeight logical pixels; a cell takes the colour of
// the last rectangle that touched it.
type Surface struct {
	screen       tcell.Screen
	cellW, cellH int

	cols, rows int
	bg         []surface.Color
}

// New wraps an initialised screen.
func New(screen tcell.Screen, cellW, cellH int) (*Surface, error) {
	if cellW <= 0 || cellH <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidCell, cellW, cellH)
	}
	s := &Surface{screen: screen, cellW: cellW, cellH: cellH}
	s.Sync()
	return s, nil
}

// Open creates, initialises and wraps the terminal screen.
func Open(cellW, cellH int) (*Surface, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init terminal screen: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()
	return New(screen, cellW, cellH)
}

// Screen returns the underlying tcell screen.
func (s *Surface) Screen() tcell.Screen { return s.screen }

// CellSize returns the logical pixel size of one cell.
func (s *Surface) CellSize() (w, h int) { return s.cellW, s.cellH }

// Sync picks up a new terminal size.
func (s *Surface) Sync() {
	cols, rows := s.screen.Size()
	if cols != s.cols || rows != s.rows {
		s.cols, s.rows = cols, rows
		s.bg = make([]surface.Color, cols*rows)
	}
}

// Close restores the terminal.
func (s *Surface) Close() {
	s.screen.Fini()
}

func (s *Surface) Size() surface.Size {
	return surface.Size{Width: s.cols * s.cellW, Height: s.rows * s.cellH}
}

func (s *Surface) Clear(c surface.Color) {
	for i := range s.bg {
		s.bg[i] = c
	}
	style := tcell.StyleDefault.Background(toTcell(c))
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			s.screen.SetContent(col, row, ' ', nil, style)
		}
	}
}

func (s *Surface) DrawRect(x, y, w, h int, c surface.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	c0, r0 := s.cell(x, y)
	c1, r1 := s.cell(x+w-1, y+h-1)
	for row := max(r0, 0); row <= min(r1, s.rows-1); row++ {
		for col := max(c0, 0); col <= min(c1, s.cols-1); col++ {
			i := row*s.cols + col
			s.bg[i] = surface.Blend(s.bg[i], c)
			s.screen.SetContent(col, row, ' ', nil, tcell.StyleDefault.Background(toTcell(s.bg[i])))
		}
	}
}

func (s *Surface) DrawLine(x1, y1, x2, y2 int, c surface.Color) {
	r := dotRune
	switch {
	case y1 == y2:
		r = horizontalRune
	case x1 == x2:
		r = verticalRune
	}

	last := -1
	plotLine(x1, y1, x2, y2, func(x, y int) {
		col, row := s.cell(x, y)
		if i := row*s.cols + col; s.inside(col, row) && i != last {
			last = i
			s.put(col, row, r, c)
		}
	})
}

// DrawText places text on the row containing the baseline y - 1.
func (s *Surface) DrawText(text string, x, y int, c surface.Color, _ surface.Font) {
	col, row := s.cell(x, y-1)
	for _, r := range text {
		if s.inside(col, row) {
			s.put(col, row, r, c)
		}
		col += max(1, runewidth.RuneWidth(r))
	}
}

func (s *Surface) MeasureText(text string) surface.Size {
	return surface.Size{Width: runewidth.StringWidth(text) * s.cellW, Height: s.cellH}
}

// Present flushes the frame to the terminal.
func (s *Surface) Present() {
	s.screen.Show()
}

func (s *Surface) put(col, row int, r rune, fg surface.Color) {
	style := tcell.StyleDefault.
		Foreground(toTcell(fg)).
		Background(toTcell(s.bg[row*s.cols+col]))
	s.screen.SetContent(col, row, r, nil, style)
}

func (s *Surface) cell(x, y int) (col, row int) {
	return floorDiv(x, s.cellW), floorDiv(y, s.cellH)
}

func (s *Surface) inside(col, row int) bool {
	return col >= 0 && row >= 0 && col < s.cols && row < s.rows
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

func toTcell(c surface.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// plotLine walks the integer points from (x1, y1) to (x2, y2) inclusive.
func plotLine(x1, y1, x2, y2 int, plot func(x, y int)) {
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
		plot(x1, y1)
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

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
