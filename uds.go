package statsd

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"time"
)

// defaultUDSWriteTimeout bounds unixgram writes, which block when the
// receiving buffer is full. The value matches the official datadog client.
const defaultUDSWriteTimeout = 1 * time.Millisecond

// UDSTransportConfig carries the configuration options that can be set when
// dialing a unixgram transport.
type UDSTransportConfig struct {
	// Path of the unix datagram socket the statsd server listens on.
	Path string

	// WriteTimeout bounds each send. Defaults to 1ms: a full receiver is
	// treated like a lossy network, not a reason to block the application.
	WriteTimeout time.Duration
}

// UDSTransport sends each packet as one datagram over a unix socket, the
// transport dogstatsd exposes for co-located agents.
//
// The connection is established lazily on the first send and dropped after
// a non-timeout error, so a statsd server restarting behind the socket only
// costs the packets sent while it was away.
type UDSTransport struct {
	addr         net.Addr
	writeTimeout time.Duration

	connMu sync.RWMutex // so that the failing conn can be replaced on error
	conn   net.Conn
}

// DialUDS opens a unixgram transport to the socket at path.
func DialUDS(path string) (*UDSTransport, error) {
	return DialUDSConfig(UDSTransportConfig{Path: path})
}

// DialUDSConfig opens a unixgram transport using config.
func DialUDSConfig(config UDSTransportConfig) (*UDSTransport, error) {
	if len(config.Path) == 0 {
		return nil, fmt.Errorf("statsd: no socket path configured for the unixgram transport")
	}
	if config.WriteTimeout == 0 {
		config.WriteTimeout = defaultUDSWriteTimeout
	}

	addr, err := net.ResolveUnixAddr("unixgram", config.Path)
	if err != nil {
		return nil, err
	}

	// Connection is deferred to the first send so the transport can be
	// created before the server side of the socket exists.
	return &UDSTransport{addr: addr, writeTimeout: config.WriteTimeout}, nil
}

// Send satisfies the Transport interface.
func (t *UDSTransport) Send(b []byte) error {
	if len(b) > MaxPacketSize {
		return fmt.Errorf("statsd: dropping packet of %d bytes, the maximum datagram size is %d", len(b), MaxPacketSize)
	}

	conn, err := t.ensureConnection()
	if err != nil {
		return err
	}

	if err := conn.SetWriteDeadline(time.Now().Add(t.writeTimeout)); err != nil {
		return err
	}

	_, err = conn.Write(b)
	if err != nil {
		var netErr net.Error
		if !errors.As(err, &netErr) || !netErr.Timeout() {
			// The server went away, reconnect on the next packet.
			t.unsetConnection()
		}
	}
	return err
}

// Close satisfies the Transport interface.
func (t *UDSTransport) Close() error {
	t.connMu.Lock()
	defer t.connMu.Unlock()
	if t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn = nil
	return err
}

func (t *UDSTransport) ensureConnection() (net.Conn, error) {
	t.connMu.RLock()
	conn := t.conn
	t.connMu.RUnlock()

	if conn != nil {
		return conn, nil
	}

	t.connMu.Lock()
	defer t.connMu.Unlock()
	if t.conn != nil {
		return t.conn, nil
	}

	conn, err := net.Dial(t.addr.Network(), t.addr.String())
	if err != nil {
		return nil, err
	}
	t.conn = conn
	return conn, nil
}

func (t *UDSTransport) unsetConnection() {
	t.connMu.Lock()
	defer t.connMu.Unlock()
	if t.conn != nil {
		t.conn.Close()
		t.conn = nil
	}
}
