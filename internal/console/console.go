// Package console is the raw-terminal frontend. Terminals report key presses
// but never releases, so movement keys are held for a short pulse and
// auto-repeat keeps them held.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/Versifine/galleria/internal/event"
	"github.com/Versifine/galleria/internal/hud"
	"github.com/Versifine/galleria/internal/input"
	"github.com/Versifine/galleria/internal/session"
)

const (
	defaultTickInterval = 16 * time.Millisecond
	defaultMovePulse    = 180 * time.Millisecond
	// lookStep is the pointer delta, in pixels, of one arrow key press.
	lookStep = 44.0
)

const (
	keyCtrlC     = 3
	keyBackspace = 8
	keyLF        = 10
	keyCR        = 13
	keyEsc       = 27
	keyDelete    = 127
)

type Options struct {
	In           io.Reader
	Out          io.Writer
	TickInterval time.Duration
	MovePulse    time.Duration
	Bus          *event.Bus
}

type Console struct {
	sess         *session.Session
	pulser       *input.Pulser
	in           io.Reader
	out          io.Writer
	tickInterval time.Duration
	clock        session.FrameClock

	commandMode bool
	commandBuf  []rune
	statusWidth int
	quit        bool
}

type chunk struct {
	data []byte
	err  error
}

func New(sess *session.Session, opts Options) *Console {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = defaultTickInterval
	}
	if opts.MovePulse <= 0 {
		opts.MovePulse = defaultMovePulse
	}
	c := &Console{
		sess:         sess,
		pulser:       input.NewPulser(sess.Keyboard(), opts.MovePulse),
		in:           opts.In,
		out:          opts.Out,
		tickInterval: opts.TickInterval,
	}
	if opts.Bus != nil {
		opts.Bus.Subscribe(event.EventHoverChanged, c.onHoverChanged)
	}
	return c
}

// Run owns the session until ctx is done, the input closes or Ctrl+C is
// pressed. Stdin is switched to raw mode when it is a terminal.
func (c *Console) Run(ctx context.Context) error {
	if c == nil || c.sess == nil {
		return errors.New("console session is nil")
	}

	if f, ok := c.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("set terminal raw mode: %w", err)
		}
		defer func() {
			_ = term.Restore(fd, oldState)
			c.printf("\r\n")
		}()
	}

	c.printf("[galleria] console started (W/Z/S/A/Q/D pulse, arrows look, Enter to start, : command, Ctrl+C quit)\r\n")
	if !c.sess.Entered() {
		c.printLines(hud.Welcome(c.sess.Keyboard().KeyMap()))
	}
	c.renderStatusLine()

	chunks := make(chan chunk, 16)
	go c.readLoop(ctx, chunks)

	ticker := time.NewTicker(c.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			c.tick(now)
		case ch := <-chunks:
			if ch.err != nil {
				if errors.Is(ch.err, io.EOF) || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("read console input: %w", ch.err)
			}
			c.handleInput(ch.data, time.Now())
			if c.quit {
				return nil
			}
		}
	}
}

// readLoop may stay blocked in Read after Run returns; stdin has no
// cancellable read, and the goroutine ends with the process.
func (c *Console) readLoop(ctx context.Context, out chan<- chunk) {
	buf := make([]byte, 64)
	for {
		n, err := c.in.Read(buf)
		if n > 0 {
			data := make([]byte, n)
			copy(data, buf[:n])
			select {
			case out <- chunk{data: data}:
			case <-ctx.Done():
				return
			}
		}
		if err != nil {
			select {
			case out <- chunk{err: err}:
			case <-ctx.Done():
			}
			return
		}
	}
}

func (c *Console) tick(now time.Time) {
	c.pulser.Expire(now)
	c.sess.Frame(c.clock.Tick(now))
	c.renderStatusLine()
}

// handleInput processes one read from the terminal. Escape sequences arrive
// whole in a single read; a lone ESC is the Escape key.
func (c *Console) handleInput(data []byte, now time.Time) {
	for i := 0; i < len(data); i++ {
		b := data[i]
		if b == keyEsc && i+2 < len(data) && data[i+1] == '[' {
			c.handleArrow(data[i+2])
			i += 2
			continue
		}
		if c.commandMode {
			c.handleCommandByte(b)
			continue
		}
		c.handleKey(b, now)
		if c.quit {
			return
		}
	}
	c.renderStatusLine()
}

func (c *Console) handleKey(b byte, now time.Time) {
	if code, ok := input.CodeForRune(rune(b)); ok && c.pulser.Press(code, now) {
		return
	}
	switch b {
	case ':':
		c.enterCommandMode()
	case 'x', 'X':
		c.pulser.Clear()
	case keyCR, keyLF:
		if c.sess.Enter() {
			c.printf("\r\n[galleria] welcome dismissed, :look on to capture the view\r\n")
		}
	case keyEsc:
		c.sess.Escape()
	case keyCtrlC:
		c.quit = true
	}
}

func (c *Console) handleArrow(b byte) {
	if c.commandMode {
		return
	}
	switch b {
	case 'D': // left
		c.sess.MouseMove(-lookStep, 0)
	case 'C': // right
		c.sess.MouseMove(lookStep, 0)
	case 'A': // up
		c.sess.MouseMove(0, -lookStep)
	case 'B': // down
		c.sess.MouseMove(0, lookStep)
	}
}

func (c *Console) enterCommandMode() {
	c.commandMode = true
	c.commandBuf = c.commandBuf[:0]
	c.printf("\r\n:")
}

func (c *Console) handleCommandByte(b byte) {
	switch b {
	case keyCR, keyLF:
		cmd := strings.TrimSpace(string(c.commandBuf))
		c.commandMode = false
		c.commandBuf = c.commandBuf[:0]
		c.printf("\r\n")
		if cmd != "" {
			c.executeCommand(cmd)
		}
	case keyEsc:
		c.commandMode = false
		c.commandBuf = c.commandBuf[:0]
		c.printf("\r\n[galleria] command cancelled\r\n")
	case keyBackspace, keyDelete:
		if len(c.commandBuf) > 0 {
			c.commandBuf = c.commandBuf[:len(c.commandBuf)-1]
		}
		buf := string(c.commandBuf)
		c.printf("\r:%s ", buf)
		c.printf("\r:%s", buf)
	case keyCtrlC:
		c.quit = true
	default:
		if b < 32 || b > 126 {
			return
		}
		c.commandBuf = append(c.commandBuf, rune(b))
		c.printf("\r:%s", string(c.commandBuf))
	}
}

func (c *Console) executeCommand(cmd string) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case "help":
		c.printHelp()
	case "state":
		snap := c.sess.Snapshot()
		pos := snap.Pose.Position
		c.printf("[galleria] pos=(%.3f,%.3f,%.3f) vel=(%.3f,%.3f) yaw=%.3f pitch=%.3f frames=%d skipped=%d\r\n",
			pos.X, pos.Y, pos.Z,
			snap.Velocity.X, snap.Velocity.Z,
			snap.Pose.Orientation.Yaw, snap.Pose.Orientation.Pitch,
			snap.Frames, c.sess.Skipped(),
		)
	case "zones":
		for _, e := range hud.Menu(c.sess.Registry().Zones()) {
			c.printf("  %s\r\n", e.String())
		}
	case "tp":
		if len(parts) != 2 {
			c.printf("[galleria] usage: :tp <zone id or menu number>\r\n")
			return
		}
		c.teleport(parts[1])
	case "look":
		c.handleLookCommand(parts)
	case "enter":
		c.sess.Enter()
	case "quit", "q":
		c.quit = true
	default:
		c.printf("[galleria] unknown command: %s\r\n", parts[0])
	}
}

func (c *Console) teleport(target string) {
	var err error
	if n, convErr := strconv.Atoi(target); convErr == nil {
		err = c.sess.TeleportIndex(n - 1)
	} else {
		err = c.sess.Teleport(target)
	}
	if err != nil {
		c.printf("[galleria] %v\r\n", err)
		return
	}
	pos := c.sess.Snapshot().Pose.Position
	c.printf("[galleria] teleported to (%.3f, %.3f, %.3f)\r\n", pos.X, pos.Y, pos.Z)
}

func (c *Console) handleLookCommand(parts []string) {
	if len(parts) != 2 || (parts[1] != "on" && parts[1] != "off") {
		c.printf("[galleria] usage: :look on|off\r\n")
		return
	}
	on := parts[1] == "on"
	if on && !c.sess.Entered() {
		c.printf("[galleria] press Enter first\r\n")
		return
	}
	c.sess.SetLook(on)
}

func (c *Console) onHoverChanged(raw any) {
	evt, ok := raw.(event.HoverChangedEvent)
	if !ok || evt.Current == "" {
		return
	}
	z, ok := c.sess.Registry().Lookup(evt.Current)
	if !ok {
		slog.Debug("Hovered zone missing from registry", "zone", evt.Current)
		return
	}
	c.printf("\r\n")
	c.printLines(hud.InfoPanel(z, 60))
}

func (c *Console) printHelp() {
	c.printf("[galleria] keys:\r\n")
	for _, line := range hud.Controls(c.sess.Keyboard().KeyMap()) {
		c.printf("  %s\r\n", line)
	}
	c.printf("  Movement keys pulse for %s\r\n", c.pulser.Window())
	c.printf("  Arrows: look (after :look on)\r\n")
	c.printf("  Esc: release look\r\n")
	c.printf("  X: clear all input\r\n")
	c.printf("  Enter: dismiss welcome\r\n")
	c.printf("[galleria] commands:\r\n")
	c.printf("  :tp <zone id or number>\r\n")
	c.printf("  :zones\r\n")
	c.printf("  :look on|off\r\n")
	c.printf("  :state\r\n")
	c.printf("  :enter\r\n")
	c.printf("  :quit\r\n")
	c.printf("  :help\r\n")
}

func (c *Console) renderStatusLine() {
	if c.commandMode {
		return
	}
	line := hud.StatusLine(c.sess.Snapshot())

	padding := ""
	if c.statusWidth > len(line) {
		padding = strings.Repeat(" ", c.statusWidth-len(line))
	}
	c.printf("\r%s%s", line, padding)
	if len(line) > c.statusWidth {
		c.statusWidth = len(line)
	}
}

func (c *Console) printLines(lines []string) {
	for _, line := range lines {
		c.printf("%s\r\n", line)
	}
}

func (c *Console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}
