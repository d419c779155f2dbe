package wijjit

import "golang.org/x/sys/unix"

// peekAvailable returns the number of bytes waiting on the descriptor.
// The ioctl request differs per OS; see the termios files.
func peekAvailable(fd int) (int, error) {
	return unix.IoctlGetInt(fd, ioctlPeek)
}
