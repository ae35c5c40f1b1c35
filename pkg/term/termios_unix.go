// ABOUTME: Termios capture, raw-mode derivation, and restore via x/sys/unix
// ABOUTME: The raw configuration reads byte-by-byte with no timer (VMIN=0, VTIME=0)

//go:build unix

package term

import "golang.org/x/sys/unix"

// getTermios captures the current line-discipline settings for fd.
func getTermios(fd int) (*unix.Termios, error) {
	return unix.IoctlGetTermios(fd, ioctlReadTermios)
}

// setTermios applies settings to fd after draining output and flushing
// pending input, like tcsetattr(TCSAFLUSH).
func setTermios(fd int, t *unix.Termios) error {
	return unix.IoctlSetTermios(fd, ioctlWriteTermios, t)
}

// rawTermios derives the raw-mode configuration from saved cooked settings:
// no break-to-interrupt, no CR translation, no parity check, no bit
// stripping, no flow control, no output post-processing, 8-bit characters,
// no echo, no canonical buffering, no extended processing, no signal
// characters. Reads return immediately with whatever is available.
func rawTermios(saved *unix.Termios) *unix.Termios {
	raw := *saved
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Cflag |= unix.CS8
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 0
	return &raw
}

// getWinsize queries the kernel for the terminal dimensions of fd.
func getWinsize(fd int) (cols, rows int, err error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Col), int(ws.Row), nil
}
