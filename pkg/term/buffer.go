// ABOUTME: Fixed-capacity output buffer that batches terminal writes
// ABOUTME: Auto-flushes when full; one write syscall per explicit Flush

package term

import "io"

// bufferSize matches the batching granularity the renderers assume: a whole
// table or progress frame usually fits in one flush.
const bufferSize = 8192

// Buffer accumulates bytes destined for the terminal and writes them out in
// as few syscalls as possible. Write never issues a syscall unless the buffer
// fills; Flush issues exactly one. Write errors are deliberately dropped,
// terminal output is best-effort.
type Buffer struct {
	w   io.Writer
	buf [bufferSize]byte
	n   int
}

// NewBuffer returns a Buffer that flushes to w.
func NewBuffer(w io.Writer) *Buffer {
	return &Buffer{w: w}
}

// Write copies p into the buffer, flushing whenever it fills.
func (b *Buffer) Write(p []byte) (int, error) {
	written := len(p)
	for len(p) > 0 {
		n := copy(b.buf[b.n:], p)
		b.n += n
		p = p[n:]
		if b.n == bufferSize {
			b.Flush()
		}
	}
	return written, nil
}

// WriteString copies s into the buffer.
func (b *Buffer) WriteString(s string) {
	_, _ = b.Write([]byte(s))
}

// Flush writes all pending bytes in a single call and resets the cursor.
func (b *Buffer) Flush() {
	if b.n == 0 {
		return
	}
	_, _ = b.w.Write(b.buf[:b.n])
	b.n = 0
}

// Buffered returns the number of pending bytes. Exposed for tests.
func (b *Buffer) Buffered() int {
	return b.n
}
