package desktop

import (
	"strings"
	"unicode/utf8"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/event"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/input"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/surface"
)

const (
	messageCharWidth   = 8
	messageMinWidth    = 300
	messageTitleHeight = 30
	messageLineHeight  = 20
	messageButtonH     = 30
)

var (
	overlayColor       = surface.WithAlpha(surface.MustHex("#000000"), 0.5)
	messageBodyColor   = surface.MustHex("#EEEEEE")
	messageTitleColor  = surface.MustHex("#3355AA")
	messageButtonColor = surface.MustHex("#DDDDDD")
	messageTextColor   = surface.MustHex("#000000")
)

// MessageButton is one choice in a MessageBox.
type MessageButton struct {
	Text     string
	Callback func()
}

// MessageBox is a centred modal dialog painted in the top band. While
// shown it listens for presses on its buttons.
type MessageBox struct {
	screen  surface.Size
	source  input.Source
	token   event.Token
	visible bool

	title   string
	lines   []string
	buttons []MessageButton
	rect    surface.Rect
}

// NewMessageBox returns a hidden message box for a screen of the given
// size.
func NewMessageBox(screen surface.Size, src input.Source) *MessageBox {
	return &MessageBox{screen: screen, source: src}
}

// Visible reports whether the box is shown.
func (m *MessageBox) Visible() bool { return m.visible }

// Bounds returns the dialog rectangle.
func (m *MessageBox) Bounds() surface.Rect { return m.rect }

// Show displays the dialog. With no buttons a single "OK" that hides it is
// used.
func (m *MessageBox) Show(title, message string, buttons ...MessageButton) {
	if m.visible {
		m.Hide()
	}
	if len(buttons) == 0 {
		buttons = []MessageButton{{Text: "OK", Callback: m.Hide}}
	}
	m.title = title
	m.lines = strings.Split(message, "\n")
	m.buttons = buttons

	width := max(messageMinWidth, utf8.RuneCountInString(title)*messageCharWidth+40)
	for _, line := range m.lines {
		width = max(width, utf8.RuneCountInString(line)*messageCharWidth+40)
	}
	height := 80 + len(m.lines)*messageLineHeight
	m.rect = surface.Rect{
		X:      (m.screen.Width - width) / 2,
		Y:      (m.screen.Height - height) / 2,
		Width:  width,
		Height: height,
	}

	m.visible = true
	m.token = m.source.OnPointerDown(m.handlePress)
}

// Hide removes the dialog and stops listening for presses.
func (m *MessageBox) Hide() {
	if !m.visible {
		return
	}
	m.visible = false
	m.source.Unsubscribe(m.token)
	m.token = 0
}

func (m *MessageBox) buttonRect(i int) surface.Rect {
	w := m.rect.Width / len(m.buttons)
	return surface.Rect{
		X:      m.rect.X + i*w,
		Y:      m.rect.Y + m.rect.Height - 40,
		Width:  w,
		Height: messageButtonH,
	}
}

func (m *MessageBox) handlePress(x, y, button int) {
	if !m.visible || button != input.ButtonLeft || !m.rect.Contains(x, y) {
		return
	}
	for i, b := range m.buttons {
		if m.buttonRect(i).Contains(x, y) {
			if b.Callback != nil {
				b.Callback()
			}
			return
		}
	}
}

func (m *MessageBox) Draw(s surface.Surface) {
	if !m.visible {
		return
	}
	r := m.rect

	s.DrawRect(0, 0, m.screen.Width, m.screen.Height, overlayColor)
	s.DrawRect(r.X, r.Y, r.Width, r.Height, messageBodyColor)
	s.DrawRect(r.X, r.Y, r.Width, messageTitleHeight, messageTitleColor)
	s.DrawText(m.title, r.X+10, r.Y+20, statusTextColor, surface.DefaultFont)

	for i, line := range m.lines {
		s.DrawText(line, r.X+20, r.Y+50+i*messageLineHeight, messageTextColor, surface.DefaultFont)
	}

	for i, b := range m.buttons {
		br := m.buttonRect(i)
		s.DrawRect(br.X+5, br.Y, br.Width-10, br.Height, messageButtonColor)
		tw := utf8.RuneCountInString(b.Text) * messageCharWidth
		s.DrawText(b.Text, br.X+(br.Width-tw)/2, br.Y+20, messageTextColor, surface.DefaultFont)
	}
}

// ZIndex is zero so the box takes the band it is added in.
func (m *MessageBox) ZIndex() int { return 0 }
