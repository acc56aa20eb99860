//go:build !unix

package statsd

import "net"

// Send buffer tuning relies on SO_SNDBUF semantics this platform does not
// share, the hint is ignored.
func setSendBufferSize(conn *net.UDPConn, hint int) error {
	return nil
}
