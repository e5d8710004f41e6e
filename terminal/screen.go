package terminal

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/ninja-engine/asset"
	"github.com/lixenwraith/ninja-engine/engine"
	"github.com/lixenwraith/ninja-engine/vmath"
)

// Screen is the tcell-backed display and OS event source
//
// Blit/Present/PollEvents run on the frame loop goroutine; a background poller
// forwards tcell events through a buffered channel so PollEvents never blocks
type Screen struct {
	screen   tcell.Screen
	keyboard *Keyboard
	log      engine.Logger

	clearStyle tcell.Style
	title      string

	eventCh chan tcell.Event
	stopCh  chan struct{}
	doneCh  chan struct{}

	mu      sync.Mutex
	running bool
	closed  bool
}

// NewScreen initializes the real terminal
func NewScreen(keyboard *Keyboard, log engine.Logger) (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("terminal init: %w", err)
	}
	return NewScreenFrom(s, keyboard, log), nil
}

// NewScreenFrom wraps an initialized tcell screen, e.g. a simulation screen in tests
func NewScreenFrom(s tcell.Screen, keyboard *Keyboard, log engine.Logger) *Screen {
	if keyboard == nil {
		keyboard = NewKeyboard(DefaultHoldWindow, nil)
	}
	if log == nil {
		log = engine.NopLogger{}
	}
	s.HideCursor()
	return &Screen{
		screen:     s,
		keyboard:   keyboard,
		log:        log,
		clearStyle: tcell.StyleDefault,
		eventCh:    make(chan tcell.Event, 256),
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// Keyboard returns the device state fed by key events
func (s *Screen) Keyboard() *Keyboard {
	return s.keyboard
}

// Start launches the event poller
func (s *Screen) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running || s.closed {
		return
	}
	s.running = true
	go s.pollLoop()
}

// pollLoop forwards tcell events until the screen is finalized
func (s *Screen) pollLoop() {
	defer close(s.doneCh)

	defer func() {
		if r := recover(); r != nil {
			EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mTERMINAL POLL CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	for {
		// nil after Fini
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case s.eventCh <- ev:
		case <-s.stopCh:
			return
		}
	}
}

// PollEvents drains pending events without blocking, returns true on a quit chord
func (s *Screen) PollEvents() bool {
	for {
		select {
		case ev := <-s.eventCh:
			if s.handleEvent(ev) {
				return true
			}
		default:
			return false
		}
	}
}

func (s *Screen) handleEvent(ev tcell.Event) (quit bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if isQuit(ev) {
			return true
		}
		s.keyboard.Press(KeyName(ev))
	case *tcell.EventResize:
		w, h := ev.Size()
		s.log.Debug("terminal resized", "width", w, "height", h)
		s.screen.Sync()
	}
	return false
}

// Blit draws d with its top-left cell at pos, clipped to the screen
// Only *asset.Sprite is drawable on a terminal
func (s *Screen) Blit(d engine.Drawable, pos vmath.Vec2) {
	sprite, ok := d.(*asset.Sprite)
	if !ok {
		return
	}
	x0, y0 := pos.Round()
	sw, sh := s.screen.Size()

	for cy := 0; cy < sprite.Height; cy++ {
		y := y0 + cy
		if y < 0 || y >= sh {
			continue
		}
		for cx := 0; cx < sprite.Width; cx++ {
			x := x0 + cx
			if x < 0 || x >= sw {
				continue
			}
			c := sprite.Cells[cy*sprite.Width+cx]
			if c.Transparent {
				continue
			}
			bg := c.Bg
			if c.KeepBg {
				_, _, under, _ := s.screen.GetContent(x, y)
				_, bg, _ = under.Decompose()
			}
			s.screen.SetContent(x, y, c.Rune, nil, tcell.StyleDefault.Foreground(c.Fg).Background(bg))
		}
	}
}

// Present shows the frame and clears the back buffer for the next one
func (s *Screen) Present() {
	s.screen.Show()
	s.screen.Fill(' ', s.clearStyle)
}

// Size returns the terminal size in cells
func (s *Screen) Size() (int, int) {
	return s.screen.Size()
}

// SetTitle sets the terminal window title where supported
func (s *Screen) SetTitle(title string) {
	s.title = title
	s.screen.SetTitle(title)
}

// Title returns the last title set
func (s *Screen) Title() string {
	return s.title
}

// Fill sets the color the screen is cleared to between frames
func (s *Screen) Fill(c tcell.Color) {
	s.clearStyle = tcell.StyleDefault.Background(c)
	s.screen.Fill(' ', s.clearStyle)
}

// Close stops the poller and restores the terminal, safe to call twice
func (s *Screen) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	running := s.running
	s.mu.Unlock()

	close(s.stopCh)
	// Fini unblocks PollEvent with nil
	s.screen.Fini()
	if running {
		<-s.doneCh
	}
	return nil
}
