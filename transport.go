package statsd

const (
	// DefaultAddress is the default address of a local statsd server.
	DefaultAddress = "localhost:8125"

	// DefaultPort is the port appended to addresses that carry none.
	DefaultPort = "8125"

	// MaxPacketSize is the maximum UDP payload an IPv4 datagram can carry,
	// transports refuse packets larger than this.
	MaxPacketSize = 65507
)

// Transport is the byte sink a client writes serialized packets to.
//
// One Send call carries exactly one packet. Transports never split, merge,
// retry, or buffer packets: delivery is fire and forget, matching the
// statsd contract. Implementations must be safe for concurrent use.
//
// Transports are owned by the code that created them, not by the clients
// sharing them. Closing the transport when the program is done with it is
// the only teardown this package requires.
type Transport interface {
	Send(b []byte) error
	Close() error
}

// Discard is a Transport that drops every packet. Clients constructed
// without a transport use it, which turns metric submission into a no-op
// with all validation still in place.
var Discard Transport = discard{}

type discard struct{}

func (discard) Send(b []byte) error { return nil }

func (discard) Close() error { return nil }
