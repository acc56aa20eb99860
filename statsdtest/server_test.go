package statsdtest

import (
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/segmentio/statsd"
)

func TestServer(t *testing.T) {
	a := uint32(0)
	b := uint32(0)

	srv, err := NewServer(HandlerFunc(func(p Packet, _ net.Addr) {
		switch p.Name {
		case "statsdtest.A":
			atomic.AddUint32(&a, uint32(p.Value.Int()))

		case "statsdtest.B":
			atomic.StoreUint32(&b, uint32(p.Value.Int())) // gauge

		default:
			t.Error("unexpected packet:", p)
		}
	}))
	if err != nil {
		t.Fatal(err)
	}

	transport, err := statsd.DialUDP(srv.Addr())
	if err != nil {
		t.Fatal(err)
	}

	client := statsd.NewClient(transport)

	client.Incr("statsdtest.A", nil, 1)
	client.Incr("statsdtest.A", nil, 1)
	client.Incr("statsdtest.A", nil, 1)

	client.Gauge("statsdtest.B", 1, nil, 1)
	client.Gauge("statsdtest.B", 2, nil, 1)
	client.Gauge("statsdtest.B", 3, nil, 1)

	// Give time for the server to receive the metrics.
	time.Sleep(100 * time.Millisecond)

	if err := transport.Close(); err != nil {
		t.Error(err)
	}
	if err := srv.Close(); err != nil {
		t.Error(err)
	}

	if n := atomic.LoadUint32(&a); n != 3 { // three increments (+1, +1, +1)
		t.Error("statsdtest.A: bad value:", n)
	}

	if n := atomic.LoadUint32(&b); n != 3 { // three assignments (=1, =2, =3)
		t.Error("statsdtest.B: bad value:", n)
	}
}

func TestServerPacketContent(t *testing.T) {
	packets := make(chan Packet, 1)

	srv, err := NewServer(HandlerFunc(func(p Packet, _ net.Addr) {
		packets <- p
	}))
	if err != nil {
		t.Fatal(err)
	}
	defer srv.Close()

	transport, err := statsd.DialUDP(srv.Addr())
	if err != nil {
		t.Fatal(err)
	}
	defer transport.Close()

	client := statsd.NewClient(transport)
	client.Histogram("song.length", 240, []statsd.Tag{statsd.T("genre", "jazz")}, 1)

	select {
	case p := <-packets:
		if p.Name != "song.length" || p.Type != "h" || p.Value != statsd.IntValue(240) || p.Rate != 1 {
			t.Errorf("bad packet: %#v", p)
		}
		if len(p.Tags) != 1 || p.Tags[0] != statsd.T("genre", "jazz") {
			t.Errorf("bad tags: %#v", p.Tags)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no packet received before the timeout")
	}
}

func TestServerSplitsDatagrams(t *testing.T) {
	count := uint32(0)

	srv, err := NewServer(HandlerFunc(func(p Packet, _ net.Addr) {
		atomic.AddUint32(&count, 1)
	}))
	if err != nil {
		t.Fatal(err)
	}

	transport, err := statsd.DialUDP(srv.Addr())
	if err != nil {
		t.Fatal(err)
	}

	// Other statsd clients batch multiple metrics into one datagram, the
	// capture server splits them back apart.
	transport.Send([]byte("page.views:1|c\nfuel.level:0.5|g\nusers.uniques:bob|s"))

	// A malformed line is dropped without disturbing its neighbors.
	transport.Send([]byte("not a packet\npage.views:1|c"))

	time.Sleep(100 * time.Millisecond)

	transport.Close()
	srv.Close()

	if n := atomic.LoadUint32(&count); n != 4 {
		t.Error("bad packet count:", n)
	}
}
