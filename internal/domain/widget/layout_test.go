package widget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/event"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/surface"
)

// stub records what it was drawn into and the events it received.
type stub struct {
	min, pref surface.Size
	consume   bool
	focused   bool
	drawn     []surface.Rect
	events    []event.Event
}

func (p *stub) Draw(_ surface.Surface, r surface.Rect) { p.drawn = append(p.drawn, r) }
func (p *stub) HandleEvent(e event.Event) bool {
	p.events = append(p.events, e)
	return p.consume
}
func (p *stub) MinSize() surface.Size       { return p.min }
func (p *stub) PreferredSize() surface.Size { return p.pref }
func (p *stub) SetFocused(f bool)           { p.focused = f }
func (p *stub) Focused() bool               { return p.focused }

func TestLayoutFlexPartition(t *testing.T) {
	tests := []struct {
		name        string
		orientation Orientation
		flex        []int
		padding     int
		rect        surface.Rect
		want        []surface.Rect
	}{
		{
			name:        "horizontal 1:3 over 400",
			orientation: Horizontal,
			flex:        []int{1, 3},
			rect:        surface.Rect{X: 0, Y: 0, Width: 400, Height: 100},
			want: []surface.Rect{
				{X: 0, Y: 0, Width: 100, Height: 100},
				{X: 100, Y: 0, Width: 300, Height: 100},
			},
		},
		{
			name:        "vertical with padding and offset origin",
			orientation: Vertical,
			flex:        []int{1, 1},
			padding:     10,
			rect:        surface.Rect{X: 5, Y: 20, Width: 50, Height: 110},
			want: []surface.Rect{
				{X: 5, Y: 20, Width: 50, Height: 50},
				{X: 5, Y: 80, Width: 50, Height: 50},
			},
		},
		{
			name:        "floors each share",
			orientation: Horizontal,
			flex:        []int{1, 1, 1},
			rect:        surface.Rect{Width: 100, Height: 10},
			want: []surface.Rect{
				{X: 0, Width: 33, Height: 10},
				{X: 33, Width: 33, Height: 10},
				{X: 66, Width: 33, Height: 10},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLayout(tt.orientation)
			l.SetPadding(tt.padding)
			stubs := make([]*stub, len(tt.flex))
			for i, f := range tt.flex {
				stubs[i] = &stub{}
				l.AddWidget(stubs[i], f)
			}

			l.Draw(surface.NewRecorder(800, 600), tt.rect)

			for i, p := range stubs {
				require.Len(t, p.drawn, 1)
				assert.Equal(t, tt.want[i], p.drawn[0], "child %d", i)
			}
		})
	}
}

func TestLayoutDegenerate(t *testing.T) {
	rec := surface.NewRecorder(100, 100)

	empty := NewLayout(Vertical)
	empty.Draw(rec, surface.Rect{Width: 100, Height: 100})
	assert.False(t, empty.HandleEvent(event.NewPointer(event.MouseDown, 1, 1, 0)))

	zero := NewLayout(Vertical)
	p := &stub{consume: true}
	zero.AddWidget(p, 0)
	zero.Draw(rec, surface.Rect{Width: 100, Height: 100})
	assert.Empty(t, p.drawn)
	assert.False(t, zero.HandleEvent(event.NewPointer(event.MouseDown, 1, 1, 0)))
	assert.Empty(t, rec.Calls)
}

func TestLayoutHitTestsAndTranslates(t *testing.T) {
	l := NewLayout(Horizontal)
	left, right := &stub{consume: true}, &stub{consume: true}
	l.AddWidget(left, 1)
	l.AddWidget(right, 3)
	l.Resize(surface.Size{Width: 400, Height: 100})

	assert.True(t, l.HandleEvent(event.NewPointer(event.MouseDown, 150, 40, 0)))

	assert.Empty(t, left.events)
	require.Len(t, right.events, 1)
	x, y, _ := right.events[0].Position()
	assert.Equal(t, 50, x)
	assert.Equal(t, 40, y)
}

func TestLayoutNonPositionalStopsAtConsumer(t *testing.T) {
	l := NewLayout(Vertical)
	a, b, c := &stub{}, &stub{consume: true}, &stub{consume: true}
	l.Add(a)
	l.Add(b)
	l.Add(c)

	assert.True(t, l.HandleEvent(event.NewKey("x")))
	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 1)
	assert.Empty(t, c.events)
}

func TestLayoutNested(t *testing.T) {
	inner := NewLayout(Vertical)
	top, bottom := &stub{consume: true}, &stub{consume: true}
	inner.Add(top)
	inner.Add(bottom)

	outer := NewLayout(Horizontal)
	outer.Add(&stub{})
	outer.Add(inner)
	outer.Resize(surface.Size{Width: 200, Height: 100})

	assert.True(t, outer.HandleEvent(event.NewPointer(event.MouseDown, 110, 70, 0)))
	require.Len(t, bottom.events, 1)
	x, y, _ := bottom.events[0].Position()
	assert.Equal(t, 10, x)
	assert.Equal(t, 20, y)
	assert.Empty(t, top.events)
}

func TestLayoutBlursFocusedSiblings(t *testing.T) {
	l := NewLayout(Vertical)
	first := &stub{focused: true}
	second := &stub{consume: true}
	l.Add(first)
	l.Add(second)
	l.Resize(surface.Size{Width: 100, Height: 100})

	l.HandleEvent(event.NewPointer(event.MouseDown, 10, 80, 0))
	assert.False(t, first.focused)
}

func TestLayoutReleaseReachesPressedChild(t *testing.T) {
	l := NewLayout(Horizontal)
	a, b := &stub{consume: true}, &stub{consume: true}
	l.Add(a)
	l.Add(b)
	l.Resize(surface.Size{Width: 200, Height: 50})

	l.HandleEvent(event.NewPointer(event.MouseDown, 10, 10, 0))
	l.HandleEvent(event.NewPointer(event.MouseUp, 150, 10, 0))

	require.Len(t, a.events, 2)
	assert.Equal(t, event.MouseUp, a.events[1].Type)
	x, _, _ := a.events[1].Position()
	assert.Equal(t, 150, x, "release outside is still reported in the pressed child's coordinates")
	require.Len(t, b.events, 1)
}

func TestLayoutRemoveWidget(t *testing.T) {
	l := NewLayout(Vertical)
	a, b := &stub{}, &stub{}
	l.Add(a)
	l.Add(b)

	assert.True(t, l.RemoveWidget(a))
	assert.False(t, l.RemoveWidget(a))
	assert.Equal(t, []Widget{b}, l.Children())
}

func TestLayoutSizes(t *testing.T) {
	l := NewLayout(Vertical)
	l.SetPadding(4)
	l.Add(&stub{min: surface.Size{Width: 10, Height: 20}, pref: surface.Size{Width: 50, Height: 60}})
	l.Add(&stub{min: surface.Size{Width: 30, Height: 5}, pref: surface.Size{Width: 20, Height: 10}})

	assert.Equal(t, surface.Size{Width: 30, Height: 29}, l.MinSize())
	assert.Equal(t, surface.Size{Width: 50, Height: 74}, l.PreferredSize())

	h := NewLayout(Horizontal)
	h.Add(NewButton("a", nil))
	h.Add(NewButton("b", nil))
	assert.Equal(t, surface.Size{Width: 160, Height: 30}, h.MinSize())
}
