// Package statsdtest provides tools for testing code instrumented with the
// statsd package: an in-memory transport recording the packets a client
// sends, a parser turning dogstatsd datagrams back into structured form,
// and a loopback UDP server capturing real traffic.
package statsdtest

import (
	"sync"
	"sync/atomic"

	"github.com/segmentio/statsd"
)

var _ statsd.Transport = (*Transport)(nil)

// Transport is a statsd transport that records packets for inspection.
type Transport struct {
	sync.Mutex
	packets []string
	close   int32

	// Err, when set, is returned by every Send call without recording the
	// packet, simulating a transport failure.
	Err error
}

// Send records a copy of b, or fails with the injected error.
func (t *Transport) Send(b []byte) error {
	t.Lock()
	defer t.Unlock()
	if t.Err != nil {
		return t.Err
	}
	t.packets = append(t.packets, string(b))
	return nil
}

// Close increments the close counter.
func (t *Transport) Close() error {
	atomic.AddInt32(&t.close, 1)
	return nil
}

// Packets returns a copy of the recorded packets.
func (t *Transport) Packets() []string {
	t.Lock()
	defer t.Unlock()
	p := make([]string, len(t.packets))
	copy(p, t.packets)
	return p
}

// Reset removes all packets held by the transport.
func (t *Transport) Reset() {
	t.Lock()
	t.packets = t.packets[:0]
	t.Unlock()
}

// CloseCalls returns the number of times Close has been invoked.
func (t *Transport) CloseCalls() int {
	return int(atomic.LoadInt32(&t.close))
}
