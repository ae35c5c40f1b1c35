// ABOUTME: BSD/darwin ioctl request values for termios get/set
// ABOUTME: The set request is the drain-and-flush variant matching TCSAFLUSH

//go:build darwin || freebsd || netbsd || openbsd || dragonfly

package term

import "golang.org/x/sys/unix"

const (
	ioctlReadTermios  = unix.TIOCGETA
	ioctlWriteTermios = unix.TIOCSETAF
)
