package player

import (
	"errors"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// PollStdin waits up to timeout for a single byte on stdin, returning
// ok=false when nothing arrived. The bounded wait keeps the session loop
// responsive to player exits without a reader goroutine contending for
// stdin with the overlays.
func PollStdin(timeout time.Duration) (byte, bool, error) {
	fds := []unix.PollFd{{Fd: int32(os.Stdin.Fd()), Events: unix.POLLIN}}

	n, err := unix.Poll(fds, int(timeout.Milliseconds()))
	if err != nil {
		// Interrupted by a signal: treat as an empty poll, the loop's
		// signal channel handles the rest.
		if errors.Is(err, unix.EINTR) {
			return 0, false, nil
		}
		return 0, false, err
	}
	if n == 0 {
		return 0, false, nil
	}

	var buf [1]byte
	if _, err := os.Stdin.Read(buf[:]); err != nil {
		return 0, false, err
	}

	return buf[0], true, nil
}
