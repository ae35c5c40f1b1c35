// ABOUTME: Buffered screen and cursor primitives plus the cursor position query
// ABOUTME: Each public operation flushes so its effect is visible immediately

package term

import (
	"fmt"

	"golang.org/x/sys/unix"
)

const (
	csiClearScreen    = "\x1b[2J\x1b[H"
	csiClearLine      = "\x1b[2K\r"
	csiShowCursor     = "\x1b[?25h"
	csiHideCursor     = "\x1b[?25l"
	csiEnterAltScreen = "\x1b[?1049h"
	csiLeaveAltScreen = "\x1b[?1049l"
)

// Clear erases the screen and homes the cursor.
func (s *Session) Clear() {
	s.buf.WriteString(csiClearScreen)
	s.buf.Flush()
}

// ClearLine erases the current line and returns the cursor to column 0.
func (s *Session) ClearLine() {
	s.buf.WriteString(csiClearLine)
	s.buf.Flush()
}

// CursorTo moves the cursor to a 0-indexed column and row.
func (s *Session) CursorTo(col, row int) {
	fmt.Fprintf(s.buf, "\x1b[%d;%dH", row+1, col+1)
	s.buf.Flush()
}

// CursorUp moves the cursor up n lines. Non-positive n is a no-op.
func (s *Session) CursorUp(n int) { s.cursorMove(n, 'A') }

// CursorDown moves the cursor down n lines.
func (s *Session) CursorDown(n int) { s.cursorMove(n, 'B') }

// CursorForward moves the cursor right n columns.
func (s *Session) CursorForward(n int) { s.cursorMove(n, 'C') }

// CursorBack moves the cursor left n columns.
func (s *Session) CursorBack(n int) { s.cursorMove(n, 'D') }

func (s *Session) cursorMove(n int, final byte) {
	if n > 0 {
		fmt.Fprintf(s.buf, "\x1b[%d%c", n, final)
		s.buf.Flush()
	}
}

// ShowCursor makes the cursor visible and clears the hidden flag.
func (s *Session) ShowCursor() {
	s.buf.WriteString(csiShowCursor)
	s.mu.Lock()
	s.flags &^= flagCursorHidden
	s.mu.Unlock()
	s.buf.Flush()
}

// HideCursor hides the cursor. Only meaningful in raw mode; the flag is
// cleared (and the cursor restored) on ExitRaw.
func (s *Session) HideCursor() {
	s.buf.WriteString(csiHideCursor)
	s.mu.Lock()
	if s.flags&flagRaw != 0 {
		s.flags |= flagCursorHidden
	}
	s.mu.Unlock()
	s.buf.Flush()
}

// EnterAltScreen switches to the alternate screen buffer.
func (s *Session) EnterAltScreen() {
	s.buf.WriteString(csiEnterAltScreen)
	s.mu.Lock()
	if s.flags&flagRaw != 0 {
		s.flags |= flagAltScreen
	}
	s.mu.Unlock()
	s.buf.Flush()
}

// LeaveAltScreen returns to the primary screen buffer.
func (s *Session) LeaveAltScreen() {
	s.buf.WriteString(csiLeaveAltScreen)
	s.mu.Lock()
	s.flags &^= flagAltScreen
	s.mu.Unlock()
	s.buf.Flush()
}

// CursorPos asks the terminal itself for the current cursor position via the
// DSR report. Unlike ReadKey this is a synchronous write+read round trip:
// pending output is flushed, the query goes out unbuffered, and the reply is
// read byte-at-a-time with a 100ms deadline per byte. Requires raw mode.
// Coordinates are 0-indexed.
func (s *Session) CursorPos() (col, row int, err error) {
	if !s.IsRaw() {
		return 0, 0, ErrNotRaw
	}

	s.buf.Flush()
	if _, err := s.out.Write([]byte("\x1b[6n")); err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrCursorQuery, err)
	}

	inFd := int(s.in.Fd())
	reply := make([]byte, 0, 32)
	for len(reply) < 32 {
		fds := []unix.PollFd{{Fd: int32(inFd), Events: unix.POLLIN}}
		n, err := unix.Poll(fds, 100)
		if err != nil || n <= 0 {
			return 0, 0, ErrCursorQuery
		}

		var b [1]byte
		if n, err := s.in.Read(b[:]); err != nil || n != 1 {
			return 0, 0, ErrCursorQuery
		}
		if b[0] == 'R' {
			break
		}
		reply = append(reply, b[0])
	}

	// Reply shape: ESC [ rows ; cols (final R already consumed).
	if len(reply) < 2 || reply[0] != 0x1b || reply[1] != '[' {
		return 0, 0, ErrCursorQuery
	}
	var r, c int
	if _, err := fmt.Sscanf(string(reply[2:]), "%d;%d", &r, &c); err != nil {
		return 0, 0, ErrCursorQuery
	}
	return c - 1, r - 1, nil
}
