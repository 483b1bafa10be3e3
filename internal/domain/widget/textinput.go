package widget

import (
	"time"
	"unicode/utf8"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/event"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/surface"
)

const (
	inputPadding = 8
	blinkPeriod  = 500 * time.Millisecond
)

var (
	inputBorderColor      = surface.MustHex("#CCCCCC")
	inputFocusBorderColor = surface.MustHex("#4A90E2")
	placeholderColor      = surface.MustHex("#999999")
)

// TextInput is a single-line editable field. It takes focus on press and
// edits on DOM-named keys while focused.
type TextInput struct {
	bounds

	text        []rune
	placeholder string
	cursor      int
	focused     bool
	onChange    func(text string)
	font        surface.Font

	cursorVisible bool
	blink         time.Duration
}

// NewTextInput returns an empty field; onChange may be nil.
func NewTextInput(placeholder string, onChange func(text string)) *TextInput {
	return &TextInput{
		placeholder:   placeholder,
		onChange:      onChange,
		font:          surface.MonospaceFont,
		cursorVisible: true,
	}
}

func (t *TextInput) Text() string        { return string(t.text) }
func (t *TextInput) Placeholder() string { return t.placeholder }
func (t *TextInput) Cursor() int         { return t.cursor }
func (t *TextInput) Focused() bool       { return t.focused }

// SetFocused gives or removes keyboard focus.
func (t *TextInput) SetFocused(focused bool) {
	t.focused = focused
	t.cursorVisible = true
	t.blink = 0
}

// SetText replaces the content, moves the cursor to the end and notifies
// onChange.
func (t *TextInput) SetText(text string) {
	t.text = []rune(text)
	t.cursor = len(t.text)
	t.changed()
}

func (t *TextInput) changed() {
	if t.onChange != nil {
		t.onChange(string(t.text))
	}
}

func (t *TextInput) Draw(s surface.Surface, r surface.Rect) {
	t.Resize(surface.Size{Width: r.Width, Height: r.Height})

	s.DrawRect(r.X, r.Y, r.Width, r.Height, checkboxFill)
	border := inputBorderColor
	if t.focused {
		border = inputFocusBorderColor
	}
	outline(s, r, border)

	display, color := string(t.text), inkColor
	if len(t.text) == 0 {
		display, color = t.placeholder, placeholderColor
	}
	textX := r.X + inputPadding
	if display != "" {
		s.DrawText(display, textX, baseline(r.Y, r.Height), color, t.font)
	}

	if t.focused && t.cursorVisible {
		cx := textX + s.MeasureText(string(t.text[:t.cursor])).Width
		s.DrawLine(cx, r.Y+inputPadding, cx, r.Y+r.Height-inputPadding, inkColor)
	}
}

func (t *TextInput) HandleEvent(e event.Event) bool {
	switch e.Type {
	case event.MouseDown:
		x, y, _ := e.Position()
		if !t.inside(x, y) {
			return false
		}
		t.SetFocused(true)
		return true
	case event.KeyPress:
		if !t.focused || e.Key == nil || e.Key.Key == "" {
			return false
		}
		t.edit(e.Key.Key)
		t.cursorVisible = true
		t.blink = 0
		return true
	case event.Tick:
		if t.focused && e.Tick != nil {
			t.blink += e.Tick.Elapsed
			if t.blink >= blinkPeriod {
				t.blink = 0
				t.cursorVisible = !t.cursorVisible
			}
		}
	}
	return false
}

func (t *TextInput) edit(key string) {
	switch key {
	case "Backspace":
		if t.cursor > 0 {
			t.text = append(t.text[:t.cursor-1], t.text[t.cursor:]...)
			t.cursor--
			t.changed()
		}
	case "Delete":
		if t.cursor < len(t.text) {
			t.text = append(t.text[:t.cursor], t.text[t.cursor+1:]...)
			t.changed()
		}
	case "ArrowLeft":
		if t.cursor > 0 {
			t.cursor--
		}
	case "ArrowRight":
		if t.cursor < len(t.text) {
			t.cursor++
		}
	case "Home":
		t.cursor = 0
	case "End":
		t.cursor = len(t.text)
	default:
		if utf8.RuneCountInString(key) != 1 {
			return
		}
		r, _ := utf8.DecodeRuneInString(key)
		t.text = append(t.text[:t.cursor], append([]rune{r}, t.text[t.cursor:]...)...)
		t.cursor++
		t.changed()
	}
}

func (t *TextInput) MinSize() surface.Size       { return surface.Size{Width: 100, Height: 30} }
func (t *TextInput) PreferredSize() surface.Size { return surface.Size{Width: 200, Height: 40} }
