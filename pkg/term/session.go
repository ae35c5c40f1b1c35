// ABOUTME: Session owns the raw-mode lifecycle, cached dimensions, and signal interplay
// ABOUTME: One session per process; every engine call takes the session explicitly

package term

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/signalforge/termkit/internal/log"
	"github.com/signalforge/termkit/pkg/style"
)

// session state flags. AltScreen and CursorHidden are only set while Raw is
// set; ExitRaw clears all three.
const (
	flagRaw = 1 << iota
	flagAltScreen
	flagCursorHidden
)

// Session is the terminal session engine. It is not safe for concurrent use:
// the design assumes a single logical thread of control, and the only true
// concurrency is signal delivery, which is confined to the watcher goroutine.
type Session struct {
	in  *os.File
	out *os.File
	buf *Buffer

	mu    sync.Mutex // guards flags, termios state, and dimensions against the signal watcher
	flags uint8
	saved *unix.Termios
	raw   *unix.Termios

	cols int
	rows int

	level    style.Level
	resizeFn func()

	signals *signalWatcher
}

// New returns a Session bound to stdin/stdout in cooked mode.
func New() *Session {
	return NewWithFiles(os.Stdin, os.Stdout)
}

// NewWithFiles returns a Session bound to the given descriptors. Tests use
// this with a pty pair.
func NewWithFiles(in, out *os.File) *Session {
	s := &Session{
		in:   in,
		out:  out,
		cols: 80,
		rows: 24,
	}
	s.buf = NewBuffer(out)
	return s
}

// Buffer exposes the session's output buffer for renderers.
func (s *Session) Buffer() *Buffer {
	return s.buf
}

// IsRaw reports whether raw mode is active.
func (s *Session) IsRaw() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flags&flagRaw != 0
}

// EnterRaw switches the terminal into raw mode: no line buffering, no echo,
// no signal characters. Idempotent; calling it while already raw is a no-op
// success. The saved settings are restored verbatim by ExitRaw.
func (s *Session) EnterRaw() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.flags&flagRaw != 0 {
		return nil
	}

	fd := int(s.in.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("entering raw mode: %w", ErrNotATTY)
	}

	saved, err := getTermios(fd)
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	raw := rawTermios(saved)
	if err := setTermios(fd, raw); err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}

	s.saved = saved
	s.raw = raw
	s.flags |= flagRaw

	s.updateSizeLocked()
	s.level = detectColorLevel(int(s.out.Fd()))
	s.signals = newSignalWatcher(s)
	s.signals.start()

	log.Debug("raw mode entered (cols=%d rows=%d color=%d)", s.cols, s.rows, s.level)
	return nil
}

// ExitRaw restores the terminal to its pre-EnterRaw state: flushes pending
// output, unhides the cursor, leaves the alternate screen, restores the saved
// settings, and tears down signal watching. Idempotent. When the restore
// syscall itself fails the in-memory flags are still cleared so the session
// is never stuck reporting raw mode.
func (s *Session) ExitRaw() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exitRawLocked()
}

func (s *Session) exitRawLocked() error {
	if s.flags&flagRaw == 0 {
		return nil
	}

	s.buf.Flush()

	if s.flags&flagCursorHidden != 0 {
		s.buf.WriteString(csiShowCursor)
	}
	if s.flags&flagAltScreen != 0 {
		s.buf.WriteString(csiLeaveAltScreen)
	}
	s.buf.Flush()

	var restoreErr error
	if err := setTermios(int(s.in.Fd()), s.saved); err != nil {
		restoreErr = fmt.Errorf("%w: %v", ErrRestoreFailed, err)
	}

	// Flags clear unconditionally: a partially failed restore must not leave
	// the session claiming to be raw.
	s.flags = 0

	if s.signals != nil {
		s.signals.stop()
		s.signals = nil
	}

	log.Debug("raw mode exited (restore err=%v)", restoreErr)
	return restoreErr
}

// restoreCookedLocked reapplies the saved settings without touching flags or
// buffers. This is the minimal restore path shared by the terminate and
// suspend signal paths; it must not allocate or render.
func (s *Session) restoreCookedLocked() {
	if s.saved != nil {
		_ = setTermios(int(s.in.Fd()), s.saved)
	}
}

// terminateRestore is the pre-death restore run for interrupt and terminate
// signals: put the line discipline back and clear the flags, skipping the
// flush/cursor/alt-screen work a full ExitRaw would do. The process is about
// to die, so leftover screen state does not matter but a broken shell would.
func (s *Session) terminateRestore() {
	s.mu.Lock()
	s.restoreCookedLocked()
	s.flags = 0
	s.mu.Unlock()
}

// reapplyRawLocked reinstates raw settings after a suspend/resume cycle.
func (s *Session) reapplyRawLocked() {
	if s.flags&flagRaw != 0 && s.raw != nil {
		_ = setTermios(int(s.in.Fd()), s.raw)
		s.updateSizeLocked()
	}
}

// Size returns the cached terminal dimensions. If a resize signal arrived
// since the last query, the dimensions are refreshed first and the resize
// callback (if registered) is invoked synchronously from this call.
func (s *Session) Size() (cols, rows int) {
	var fn func()

	s.mu.Lock()
	if s.signals != nil && s.signals.pendingResize.Swap(false) {
		s.updateSizeLocked()
		fn = s.resizeFn
	}
	cols, rows = s.cols, s.rows
	s.mu.Unlock()

	// The callback runs outside the lock and outside signal context.
	if fn != nil {
		fn()
	}
	return cols, rows
}

// Cols returns the cached column count, consuming any pending resize.
func (s *Session) Cols() int {
	cols, _ := s.Size()
	return cols
}

// OnResize registers a callback invoked when a cached resize is consumed by
// Size. One slot; later registrations overwrite earlier ones.
func (s *Session) OnResize(fn func()) {
	s.mu.Lock()
	s.resizeFn = fn
	s.mu.Unlock()
}

func (s *Session) updateSizeLocked() {
	if cols, rows, err := getWinsize(int(s.out.Fd())); err == nil {
		if cols > 0 {
			s.cols = cols
		}
		if rows > 0 {
			s.rows = rows
		}
	}
}

// ColorLevel returns the capability tier detected at the last raw-mode entry.
func (s *Session) ColorLevel() style.Level {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

// SupportsColor reports at least basic 16-color support.
func (s *Session) SupportsColor() bool { return s.ColorLevel() >= style.Level16 }

// Supports256Color reports 256-color support.
func (s *Session) Supports256Color() bool { return s.ColorLevel() >= style.Level256 }

// SupportsTrueColor reports 24-bit color support.
func (s *Session) SupportsTrueColor() bool { return s.ColorLevel() >= style.LevelTrueColor }

// Style applies st to text at the session's detected capability level.
func (s *Session) Style(text string, st style.Style) string {
	return st.Apply(text, s.ColorLevel())
}

// detectColorLevel inspects COLORTERM and TERM the way the usual CLI
// heuristics do, falling back to basic color when stdout is a tty.
func detectColorLevel(outFd int) style.Level {
	colorterm := os.Getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return style.LevelTrueColor
	}

	if t := os.Getenv("TERM"); t != "" {
		switch {
		case strings.Contains(t, "truecolor") || strings.Contains(t, "24bit"):
			return style.LevelTrueColor
		case strings.Contains(t, "256"):
			return style.Level256
		case strings.Contains(t, "color") || strings.Contains(t, "xterm") ||
			strings.Contains(t, "screen") || strings.Contains(t, "vt100") ||
			strings.Contains(t, "linux") || strings.Contains(t, "ansi"):
			return style.Level16
		case t == "dumb":
			return style.LevelNone
		}
	}

	if term.IsTerminal(outFd) {
		return style.Level16
	}
	return style.LevelNone
}
