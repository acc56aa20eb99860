package statsd

import (
	"fmt"
	"net"
)

// UDPTransportConfig carries the configuration options that can be set when
// dialing a UDP transport.
type UDPTransportConfig struct {
	// Address of the statsd server. Defaults to DefaultAddress, a bare host
	// gets the default port appended.
	Address string

	// BufferSizeHint asks the kernel for a send buffer large enough to
	// absorb bursts of sizehint bytes, halving the request until the kernel
	// accepts it. Zero leaves the system default untouched.
	BufferSizeHint int
}

// UDPTransport sends each packet as one datagram over a connected UDP
// socket. The zero value is not usable, transports are created with DialUDP
// or DialUDPConfig.
type UDPTransport struct {
	conn net.Conn
}

// DialUDP opens a UDP transport to the statsd server at address.
func DialUDP(address string) (*UDPTransport, error) {
	return DialUDPConfig(UDPTransportConfig{Address: address})
}

// DialUDPConfig opens a UDP transport using config.
func DialUDPConfig(config UDPTransportConfig) (*UDPTransport, error) {
	if len(config.Address) == 0 {
		config.Address = DefaultAddress
	}
	if _, port, _ := net.SplitHostPort(config.Address); len(port) == 0 {
		config.Address = net.JoinHostPort(config.Address, DefaultPort)
	}

	conn, err := net.Dial("udp", config.Address)
	if err != nil {
		return nil, err
	}

	if config.BufferSizeHint > 0 {
		if err := setSendBufferSize(conn.(*net.UDPConn), config.BufferSizeHint); err != nil {
			conn.Close()
			return nil, err
		}
	}

	return &UDPTransport{conn: conn}, nil
}

// Send satisfies the Transport interface. Each call produces one datagram.
func (t *UDPTransport) Send(b []byte) error {
	if len(b) > MaxPacketSize {
		return fmt.Errorf("statsd: dropping packet of %d bytes, the maximum datagram size is %d", len(b), MaxPacketSize)
	}
	_, err := t.conn.Write(b)
	return err
}

// Close satisfies the Transport interface.
func (t *UDPTransport) Close() error {
	return t.conn.Close()
}
