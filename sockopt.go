//go:build unix

package statsd

import (
	"net"

	"golang.org/x/sys/unix"
)

// setSendBufferSize grows the kernel send buffer of the socket towards hint.
// The kernel refuses datagrams larger than the socket send buffer, so a
// larger buffer raises the burst of packets that can be in flight before
// writes start failing with ENOBUFS.
func setSendBufferSize(conn *net.UDPConn, hint int) error {
	raw, err := conn.SyscallConn()
	if err != nil {
		return err
	}

	var serr error
	cerr := raw.Control(func(fd uintptr) {
		bufsize, err := unix.GetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_SNDBUF)
		if err != nil {
			serr = err
			return
		}

		// The kernel applies a 2x factor on the socket buffer size, only
		// half of it is available to write datagrams from user-space.
		bufsize /= 2

		// Halve the request until the kernel accepts it, or keep the
		// default if it was already large enough.
		for hint > bufsize && hint > 0 {
			if err := unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_SNDBUF, hint); err == nil {
				break
			}
			hint /= 2
		}
	})
	if cerr != nil {
		return cerr
	}
	return serr
}
