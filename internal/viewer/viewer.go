// Package viewer is the interactive tcell frontend: a top-down map of the
// gallery with the camera, the zones and the HUD overlays.
package viewer

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Versifine/galleria/internal/hud"
	"github.com/Versifine/galleria/internal/input"
	"github.com/Versifine/galleria/internal/session"
)

const (
	defaultTickInterval = 16 * time.Millisecond
	defaultMovePulse    = 180 * time.Millisecond
	defaultCellPixels   = 8.0
	// Terminal cells are about twice as tall as wide.
	cellAspect = 2.0
	// Columns per world unit on the map.
	mapScale = 2.0
	// Pointer delta of one arrow key press, in pixels.
	arrowLookStep = 44.0
)

type Options struct {
	TickInterval time.Duration
	MovePulse    time.Duration
	// CellPixels converts mouse motion in cells to pointer pixels.
	CellPixels float64
}

type Viewer struct {
	sess       *session.Session
	screen     tcell.Screen
	pulser     *input.Pulser
	clock      session.FrameClock
	tick       time.Duration
	cellPixels float64

	menuOpen  bool
	mouseDown bool
	lastX     int
	lastY     int
	tracking  bool
}

// New wraps an initialised screen. The caller owns the screen and calls Fini.
func New(sess *session.Session, screen tcell.Screen, opts Options) *Viewer {
	if opts.TickInterval <= 0 {
		opts.TickInterval = defaultTickInterval
	}
	if opts.MovePulse <= 0 {
		opts.MovePulse = defaultMovePulse
	}
	if opts.CellPixels <= 0 {
		opts.CellPixels = defaultCellPixels
	}
	return &Viewer{
		sess:       sess,
		screen:     screen,
		pulser:     input.NewPulser(sess.Keyboard(), opts.MovePulse),
		tick:       opts.TickInterval,
		cellPixels: opts.CellPixels,
	}
}

// Run drives the session from screen events and a frame ticker until ctx is
// done or the user quits.
func (v *Viewer) Run(ctx context.Context) error {
	if v == nil || v.sess == nil || v.screen == nil {
		return errors.New("viewer is not initialised")
	}
	v.screen.EnableMouse(tcell.MouseMotionEvents)
	v.screen.HideCursor()
	defer v.screen.DisableMouse()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(v.tick)
	defer ticker.Stop()

	v.draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-eventChan:
			if !v.handleEvent(ev, time.Now()) {
				slog.Info("Viewer closed by user")
				return nil
			}
		case now := <-ticker.C:
			v.step(now)
			v.draw()
		}
	}
}

func (v *Viewer) step(now time.Time) {
	v.pulser.Expire(now)
	v.sess.Frame(v.clock.Tick(now))
}

// handleEvent reports false when the viewer should quit.
func (v *Viewer) handleEvent(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.handleKey(ev.Key(), ev.Rune(), now)
	case *tcell.EventMouse:
		x, y := ev.Position()
		v.handleMouse(x, y, ev.Buttons())
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *Viewer) handleKey(key tcell.Key, r rune, now time.Time) bool {
	switch key {
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyEscape:
		if v.menuOpen {
			v.menuOpen = false
			return true
		}
		v.sess.Escape()
		v.tracking = false
	case tcell.KeyEnter:
		v.sess.Enter()
	case tcell.KeyLeft:
		v.sess.MouseMove(-arrowLookStep, 0)
	case tcell.KeyRight:
		v.sess.MouseMove(arrowLookStep, 0)
	case tcell.KeyUp:
		v.sess.MouseMove(0, -arrowLookStep)
	case tcell.KeyDown:
		v.sess.MouseMove(0, arrowLookStep)
	case tcell.KeyRune:
		v.handleRune(r, now)
	}
	return true
}

func (v *Viewer) handleRune(r rune, now time.Time) {
	if code, ok := input.CodeForRune(r); ok && v.pulser.Press(code, now) {
		return
	}
	if i, ok := hud.MenuIndex(r); ok {
		if err := v.sess.TeleportIndex(i); err == nil {
			v.menuOpen = false
		}
		return
	}
	switch r {
	case 't', 'T':
		v.menuOpen = !v.menuOpen
	case 'x', 'X':
		v.pulser.Clear()
	}
}

// handleMouse turns a primary click into the engage gesture and, while
// engaged, cell motion into pointer deltas.
func (v *Viewer) handleMouse(x, y int, buttons tcell.ButtonMask) {
	pressed := buttons&tcell.Button1 != 0
	if pressed && !v.mouseDown {
		if !v.sess.Entered() {
			v.sess.Enter()
		} else if v.menuOpen {
			v.clickMenu(x, y)
		} else {
			v.sess.Click()
		}
	}
	v.mouseDown = pressed

	if !v.sess.Snapshot().Engaged {
		v.tracking = false
		return
	}
	if v.tracking {
		dx := float64(x-v.lastX) * v.cellPixels
		dy := float64(y-v.lastY) * v.cellPixels * cellAspect
		if dx != 0 || dy != 0 {
			v.sess.MouseMove(dx, dy)
		}
	}
	v.lastX, v.lastY = x, y
	v.tracking = true
}

func (v *Viewer) clickMenu(x, y int) {
	for i, r := range v.menuRows() {
		if y == r.y && x >= r.x && x < r.x+len([]rune(r.text)) {
			if err := v.sess.TeleportIndex(i); err == nil {
				v.menuOpen = false
			}
			return
		}
	}
}
