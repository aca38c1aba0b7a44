// Package term previews the sign in a terminal with tcell.
package term

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/jrudolph/twaeng-pop-sign/internal/render"
)

const cellWidth = 3 // two block runes and a gap per node

// Terminal is a render.Driver that paints one colored block per node, Cols
// nodes per row, with a status line below.
type Terminal struct {
	mu     sync.Mutex
	screen tcell.Screen
	cols   int
	status string
	onQuit func()
	closed bool
}

// New takes over the terminal. onQuit runs (once per key press) when Esc,
// Ctrl-C or q is pressed.
func New(cols int, onQuit func()) (*Terminal, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %v", err)
	}
	return NewWithScreen(s, cols, onQuit)
}

// NewWithScreen uses an existing, uninitialized screen.
func NewWithScreen(s tcell.Screen, cols int, onQuit func()) (*Terminal, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %v", err)
	}
	if cols <= 0 {
		cols = 25
	}
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.HideCursor()
	s.Clear()
	return &Terminal{screen: s, cols: cols, onQuit: onQuit}, nil
}

// SetStatus sets the text shown below the sign.
func (t *Terminal) SetStatus(s string) {
	t.mu.Lock()
	t.status = s
	t.mu.Unlock()
}

// Write paints the frame and handles pending key events.
func (t *Terminal) Write(buf []render.Color) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return fmt.Errorf("term: closed")
	}
	t.poll()

	for i, c := range buf {
		x, y := t.cell(i)
		st := tcell.StyleDefault.
			Background(tcell.ColorBlack).
			Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
		t.screen.SetContent(x, y, '█', nil, st)
		t.screen.SetContent(x+1, y, '█', nil, st)
	}

	_, y := t.cell(len(buf) - 1)
	y += 2
	w, _ := t.screen.Size()
	st := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	runes := []rune(t.status)
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(runes) {
			r = runes[x]
		}
		t.screen.SetContent(x, y, r, nil, st)
	}
	t.screen.Show()
	return nil
}

func (t *Terminal) cell(i int) (x, y int) {
	if i < 0 {
		i = 0
	}
	return (i%t.cols)*cellWidth + 1, (i/t.cols)*2 + 1
}

func (t *Terminal) poll() {
	for t.screen.HasPendingEvent() {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventResize:
			t.screen.Sync()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				if t.onQuit != nil {
					t.onQuit()
				}
			}
		}
	}
}

// Close restores the terminal.
func (t *Terminal) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.closed {
		t.closed = true
		t.screen.Fini()
	}
	return nil
}
