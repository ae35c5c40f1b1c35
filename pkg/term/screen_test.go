// ABOUTME: Tests for screen/cursor escape output using an os.Pipe capture
// ABOUTME: Raw mode is not required for these primitives

package term

import (
	"os"
	"testing"
)

// pipeSession binds a session to a pipe and returns a reader for its output.
func pipeSession(t *testing.T) (*Session, func() string) {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		r.Close()
		w.Close()
	})

	s := NewWithFiles(r, w)
	read := func() string {
		buf := make([]byte, 256)
		n, err := r.Read(buf)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		return string(buf[:n])
	}
	return s, read
}

func TestScreenPrimitives(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		op   func(*Session)
		want string
	}{
		{name: "clear", op: (*Session).Clear, want: "\x1b[2J\x1b[H"},
		{name: "clear line", op: (*Session).ClearLine, want: "\x1b[2K\r"},
		{name: "cursor to origin", op: func(s *Session) { s.CursorTo(0, 0) }, want: "\x1b[1;1H"},
		{name: "cursor to col row", op: func(s *Session) { s.CursorTo(4, 9) }, want: "\x1b[10;5H"},
		{name: "cursor up", op: func(s *Session) { s.CursorUp(3) }, want: "\x1b[3A"},
		{name: "cursor down", op: func(s *Session) { s.CursorDown(1) }, want: "\x1b[1B"},
		{name: "cursor forward", op: func(s *Session) { s.CursorForward(2) }, want: "\x1b[2C"},
		{name: "cursor back", op: func(s *Session) { s.CursorBack(5) }, want: "\x1b[5D"},
		{name: "show cursor", op: (*Session).ShowCursor, want: "\x1b[?25h"},
		{name: "hide cursor", op: (*Session).HideCursor, want: "\x1b[?25l"},
		{name: "enter alt screen", op: (*Session).EnterAltScreen, want: "\x1b[?1049h"},
		{name: "leave alt screen", op: (*Session).LeaveAltScreen, want: "\x1b[?1049l"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, read := pipeSession(t)
			tt.op(s)
			if got := read(); got != tt.want {
				t.Errorf("emitted %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCursorMoveZeroIsNoop(t *testing.T) {
	t.Parallel()

	s, _ := pipeSession(t)
	s.CursorUp(0)
	s.CursorDown(-1)
	if s.buf.Buffered() != 0 {
		t.Errorf("non-positive moves buffered %d bytes", s.buf.Buffered())
	}
}

func TestAltScreenFlagOnlyInRaw(t *testing.T) {
	t.Parallel()

	s, read := pipeSession(t)
	s.EnterAltScreen()
	read()
	// Not raw, so the flag must not be set even though the sequence was
	// written.
	if s.flags&flagAltScreen != 0 {
		t.Error("alt-screen flag set outside raw mode")
	}
}
