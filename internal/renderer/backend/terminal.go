package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/potato/internal/renderer/core"
)

// Terminal is a Backend drawing on a tcell screen.
type Terminal struct {
	mu       sync.Mutex
	screen   tcell.Screen
	onResize func(width, height int)
}

// NewTerminal opens the controlling terminal. Init must be called before
// drawing.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return newTerminalWithScreen(screen), nil
}

// newTerminalWithScreen wraps an existing screen, e.g. a tcell simulation screen.
func newTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

// locked runs fn with the screen lock held.
func (t *Terminal) locked(fn func(tcell.Screen)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fn(t.screen)
}

func (t *Terminal) Init() error {
	var err error
	t.locked(func(s tcell.Screen) { err = s.Init() })
	return err
}

func (t *Terminal) Shutdown() {
	t.locked(tcell.Screen.Fini)
}

func (t *Terminal) Size() (width, height int) {
	t.locked(func(s tcell.Screen) { width, height = s.Size() })
	return width, height
}

func (t *Terminal) OnResize(callback func(width, height int)) {
	t.locked(func(tcell.Screen) { t.onResize = callback })
}

// SetCell writes cell. The trailing half of a wide rune is left to tcell,
// which fills it when the leading half is drawn.
func (t *Terminal) SetCell(x, y int, cell core.Cell) {
	if cell.IsContinuation() {
		return
	}
	style := toTcellStyle(cell.Style)
	t.locked(func(s tcell.Screen) { s.SetContent(x, y, cell.Rune, nil, style) })
}

func (t *Terminal) GetCell(x, y int) core.Cell {
	var (
		r     rune
		style tcell.Style
	)
	t.locked(func(s tcell.Screen) {
		r, _, style, _ = s.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
	})
	return core.Cell{Rune: r, Width: core.RuneWidth(r), Style: fromTcellStyle(style)}
}

func (t *Terminal) Clear() {
	t.locked(tcell.Screen.Clear)
}

func (t *Terminal) Show() {
	t.locked(tcell.Screen.Show)
}

// PollEvent blocks for the next terminal event. Events the host has no
// use for come back as EventNone.
func (t *Terminal) PollEvent() Event {
	switch ev := t.screen.PollEvent().(type) {
	case *tcell.EventKey:
		return Event{Type: EventKey, Key: keyFromTcell[ev.Key()], Rune: ev.Rune()}
	case *tcell.EventResize:
		w, h := ev.Size()
		var handler func(int, int)
		t.locked(func(s tcell.Screen) {
			s.Sync()
			handler = t.onResize
		})
		if handler != nil {
			handler(w, h)
		}
		return Event{Type: EventResize, Width: w, Height: h}
	case *tcell.EventInterrupt:
		return Event{Type: EventInterrupt}
	default:
		return Event{Type: EventNone}
	}
}

// PostEvent queues a key or interrupt. Other event types are dropped.
func (t *Terminal) PostEvent(event Event) {
	var ev tcell.Event
	switch event.Type {
	case EventKey:
		key, ok := keyToTcell[event.Key]
		if !ok {
			key = tcell.KeyRune
		}
		ev = tcell.NewEventKey(key, event.Rune, tcell.ModNone)
	case EventInterrupt:
		ev = tcell.NewEventInterrupt(nil)
	default:
		return
	}
	_ = t.screen.PostEvent(ev)
}

// Keys the host distinguishes. Anything else maps to KeyNone.
var keyToTcell = map[Key]tcell.Key{
	KeyRune:   tcell.KeyRune,
	KeyEscape: tcell.KeyEscape,
	KeyEnter:  tcell.KeyEnter,
	KeyCtrlC:  tcell.KeyCtrlC,
}

var keyFromTcell = func() map[tcell.Key]Key {
	m := make(map[tcell.Key]Key, len(keyToTcell))
	for k, tk := range keyToTcell {
		m[tk] = k
	}
	return m
}()

// attrMasks pairs each cell attribute with its tcell mask.
var attrMasks = []struct {
	attr core.Attribute
	mask tcell.AttrMask
}{
	{core.AttrBold, tcell.AttrBold},
	{core.AttrItalic, tcell.AttrItalic},
	{core.AttrUnderline, tcell.AttrUnderline},
	{core.AttrStrikethrough, tcell.AttrStrikeThrough},
}

func toTcellStyle(s core.Style) tcell.Style {
	var mask tcell.AttrMask
	for _, m := range attrMasks {
		if s.Attributes.Has(m.attr) {
			mask |= m.mask
		}
	}
	return tcell.StyleDefault.
		Foreground(toTcellColor(s.Foreground)).
		Background(toTcellColor(s.Background)).
		Attributes(mask)
}

func fromTcellStyle(ts tcell.Style) core.Style {
	fg, bg, mask := ts.Decompose()
	s := core.Style{Foreground: fromTcellColor(fg), Background: fromTcellColor(bg)}
	for _, m := range attrMasks {
		if mask&m.mask != 0 {
			s.Attributes = s.Attributes.With(m.attr)
		}
	}
	return s
}

func toTcellColor(c core.Color) tcell.Color {
	if c.IsDefault() {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func fromTcellColor(tc tcell.Color) core.Color {
	if tc == tcell.ColorDefault {
		return core.ColorDefault
	}
	r, g, b := tc.RGB()
	return core.ColorFromRGB(uint8(r), uint8(g), uint8(b))
}
