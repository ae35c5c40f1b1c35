// ABOUTME: Sentinel errors for the terminal session engine
// ABOUTME: Callers match with errors.Is; rendering-path failures never use these

package term

import "errors"

var (
	// ErrNotATTY reports a raw-mode entry attempt when stdin is not a
	// controlling terminal.
	ErrNotATTY = errors.New("not a tty")

	// ErrRestoreFailed reports that the OS rejected restoring the saved
	// terminal settings. In-memory state is still cleared so the session
	// never reports itself stuck in raw mode.
	ErrRestoreFailed = errors.New("restoring terminal settings failed")

	// ErrNotRaw reports an interactive operation attempted outside raw mode.
	ErrNotRaw = errors.New("terminal not in raw mode")

	// ErrReadFailed reports a failed read from the input descriptor.
	ErrReadFailed = errors.New("reading input failed")

	// ErrTimeout reports that a timed key read saw no input in time.
	ErrTimeout = errors.New("read timed out")

	// ErrCursorQuery reports a failed or malformed cursor position report.
	ErrCursorQuery = errors.New("cursor position query failed")
)
