// ABOUTME: Blocking and timed single-key reads from the raw input descriptor
// ABOUTME: Flushes buffered output before waiting so prompts are visible

package term

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"

	"github.com/signalforge/termkit/pkg/key"
)

// inputChunkSize bounds one read from the descriptor. An escape sequence
// always fits; anything longer is multiple keys.
const inputChunkSize = 32

// ReadKey waits for one keypress and decodes it. A negative timeout blocks
// indefinitely; otherwise the wait is bounded and ErrTimeout is returned when
// nothing arrives. Requires raw mode.
//
// Known limitation: one chunk is read per call and only the first key in it
// is decoded; bytes beyond that key (fast typing, pastes) are dropped rather
// than queued.
func (s *Session) ReadKey(timeout time.Duration) (key.Key, error) {
	if !s.IsRaw() {
		return key.Key{}, ErrNotRaw
	}

	s.buf.Flush()

	inFd := int(s.in.Fd())
	pollTimeout := -1
	if timeout >= 0 {
		pollTimeout = int(timeout.Milliseconds())
	}

	fds := []unix.PollFd{{Fd: int32(inFd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, pollTimeout)
	if err != nil {
		return key.Key{}, fmt.Errorf("%w: %v", ErrReadFailed, err)
	}
	if n == 0 {
		return key.Key{}, ErrTimeout
	}

	buf := make([]byte, inputChunkSize)
	nr, err := s.in.Read(buf)
	if err != nil || nr <= 0 {
		return key.Key{}, ErrReadFailed
	}

	return key.Decode(buf[:nr]), nil
}
