// ABOUTME: Linux ioctl request values for termios get/set
// ABOUTME: The set request is the drain-and-flush variant matching TCSAFLUSH

package term

import "golang.org/x/sys/unix"

const (
	ioctlReadTermios  = unix.TCGETS
	ioctlWriteTermios = unix.TCSETSF
)
