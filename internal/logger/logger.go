package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Config struct {
	Level  string
	Format string // "text", "json", "console"
	Output io.Writer
	// File, when set, receives the log instead of Output. Interactive
	// frontends own the terminal, so they log to a file.
	File string
	// RawTerminal ends console lines with CRLF for terminals in raw mode.
	RawTerminal bool
}

var (
	mu   sync.Mutex
	lg   *slog.Logger
	sink *os.File
)

// Init installs the process logger and makes it the slog default. Calling it
// again replaces the previous logger and closes its file.
func Init(cfg Config) error {
	var file *os.File
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		file = f
		cfg.Output = f
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	l := slog.New(newHandler(cfg))

	mu.Lock()
	prev := sink
	lg, sink = l, file
	mu.Unlock()

	slog.SetDefault(l)
	if prev != nil {
		_ = prev.Close()
	}
	return nil
}

// Close flushes and closes the log file, if any, and falls back to stdout.
func Close() error {
	mu.Lock()
	f := sink
	sink = nil
	lg = nil
	mu.Unlock()
	if f == nil {
		return nil
	}
	return f.Close()
}

func L() *slog.Logger {
	mu.Lock()
	l := lg
	mu.Unlock()
	if l == nil {
		_ = Init(Config{Level: "debug", Format: "console"})
		return L()
	}
	return l
}

// NewSessionID returns a random id used to correlate one exploration session.
func NewSessionID() string {
	return uuid.NewString()
}

// WithSession returns the process logger tagged with a session id.
func WithSession(id string) *slog.Logger {
	return L().With("session", id)
}

func newHandler(cfg Config) slog.Handler {
	level := parseLevel(cfg.Level)
	switch cfg.Format {
	case "json":
		return slog.NewJSONHandler(cfg.Output, &slog.HandlerOptions{Level: level})
	case "text":
		return slog.NewTextHandler(cfg.Output, &slog.HandlerOptions{Level: level})
	default:
		eol := "\n"
		if cfg.RawTerminal {
			eol = "\r\n"
		}
		return &consoleHandler{mu: &sync.Mutex{}, w: cfg.Output, level: level, eol: eol}
	}
}

func parseLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// consoleHandler outputs human-friendly log lines:
//
//	12:00:00 INFO  Zone entered  session=1c0e... zone=malta distance=3.2
type consoleHandler struct {
	mu    *sync.Mutex
	w     io.Writer
	level slog.Level
	eol   string
	attrs []slog.Attr
	group string
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Time.Format(time.TimeOnly))
	b.WriteByte(' ')
	b.WriteString(levelTag(r.Level))
	b.WriteByte(' ')
	b.WriteString(r.Message)

	for _, a := range h.attrs {
		b.WriteString(formatAttr(h.group, a))
	}
	r.Attrs(func(a slog.Attr) bool {
		b.WriteString(formatAttr(h.group, a))
		return true
	})

	eol := h.eol
	if eol == "" {
		eol = "\n"
	}
	b.WriteString(eol)

	if h.mu != nil {
		h.mu.Lock()
		defer h.mu.Unlock()
	}
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &consoleHandler{
		mu:    h.mu,
		w:     h.w,
		level: h.level,
		eol:   h.eol,
		attrs: append(append([]slog.Attr{}, h.attrs...), attrs...),
		group: h.group,
	}
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	prefix := name
	if h.group != "" {
		prefix = h.group + "." + name
	}
	return &consoleHandler{
		mu:    h.mu,
		w:     h.w,
		level: h.level,
		eol:   h.eol,
		attrs: append([]slog.Attr{}, h.attrs...),
		group: prefix,
	}
}

func levelTag(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "ERROR"
	case l >= slog.LevelWarn:
		return "WARN "
	case l >= slog.LevelInfo:
		return "INFO "
	default:
		return "DEBUG"
	}
}

func formatAttr(group string, a slog.Attr) string {
	key := a.Key
	if group != "" {
		key = group + "." + key
	}
	return fmt.Sprintf("  %s=%v", key, a.Value)
}
