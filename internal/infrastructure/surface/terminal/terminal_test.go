package terminal

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/surface"
)

func newSimSurface(t *testing.T, cols, rows int) (*Surface, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	screen.SetSize(cols, rows)
	t.Cleanup(screen.Fini)

	s, err := New(screen, 8, 16)
	require.NoError(t, err)
	return s, screen
}

func background(t *testing.T, screen tcell.SimulationScreen, col, row int) tcell.Color {
	t.Helper()
	_, _, style, _ := screen.GetContent(col, row)
	_, bg, _ := style.Decompose()
	return bg
}

func TestNewRejectsBadCells(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	_, err := New(screen, 0, 16)
	assert.ErrorIs(t, err, ErrInvalidCell)
}

func TestSizeIsLogical(t *testing.T) {
	s, _ := newSimSurface(t, 80, 25)
	assert.Equal(t, surface.Size{Width: 640, Height: 400}, s.Size())
	assert.Equal(t, surface.Size{Width: 40, Height: 16}, s.MeasureText("hello"))
}

func TestDrawRectCoversTouchedCells(t *testing.T) {
	s, screen := newSimSurface(t, 10, 5)
	grey := surface.MustHex("#333333")
	red := surface.MustHex("#FF3333")

	s.Clear(grey)
	s.DrawRect(8, 16, 16, 16, red)

	assert.Equal(t, toTcell(red), background(t, screen, 1, 1))
	assert.Equal(t, toTcell(red), background(t, screen, 2, 1))
	assert.Equal(t, toTcell(grey), background(t, screen, 3, 1))
	assert.Equal(t, toTcell(grey), background(t, screen, 1, 2))
}

func TestDrawTextKeepsBackground(t *testing.T) {
	s, screen := newSimSurface(t, 20, 3)
	blue := surface.MustHex("#3355AA")
	white := surface.MustHex("#FFFFFF")

	s.DrawRect(0, 0, 160, 16, blue)
	s.DrawText("Hi", 8, 15, white, surface.DefaultFont)

	mainc, _, style, _ := screen.GetContent(1, 0)
	fg, bg, _ := style.Decompose()
	assert.Equal(t, 'H', mainc)
	assert.Equal(t, toTcell(white), fg)
	assert.Equal(t, toTcell(blue), bg)

	mainc, _, _, _ = screen.GetContent(2, 0)
	assert.Equal(t, 'i', mainc)
}

func TestDrawLineRunes(t *testing.T) {
	s, screen := newSimSurface(t, 10, 10)
	black := surface.MustHex("#000000")

	s.DrawLine(0, 8, 79, 8, black)
	s.DrawLine(4, 20, 4, 60, black)

	mainc, _, _, _ := screen.GetContent(5, 0)
	assert.Equal(t, horizontalRune, mainc)
	mainc, _, _, _ = screen.GetContent(0, 2)
	assert.Equal(t, verticalRune, mainc)
}

func TestClipping(t *testing.T) {
	s, _ := newSimSurface(t, 4, 2)
	c := surface.MustHex("#FFFFFF")

	assert.NotPanics(t, func() {
		s.DrawRect(-100, -100, 1000, 1000, c)
		s.DrawLine(-50, -50, 500, 500, c)
		s.DrawText("far away", 1000, 1000, c, surface.DefaultFont)
		s.DrawText("left", -40, 10, c, surface.DefaultFont)
	})
}

func TestPlotLineEndpoints(t *testing.T) {
	var pts [][2]int
	plotLine(0, 0, 3, 1, func(x, y int) { pts = append(pts, [2]int{x, y}) })

	require.NotEmpty(t, pts)
	assert.Equal(t, [2]int{0, 0}, pts[0])
	assert.Equal(t, [2]int{3, 1}, pts[len(pts)-1])
	assert.Len(t, pts, 4)
}
