package statsdtest

import (
	"bytes"
	"errors"
	"io"
	"net"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// Handler defines the interface that types must satisfy to process packets
// received by a capture server.
type Handler interface {
	// HandlePacket is called for every packet the server receives, with
	// the address it was sent from. Datagrams carrying a malformed packet
	// are dropped.
	HandlePacket(Packet, net.Addr)
}

// HandlerFunc makes it possible for function types to be used as packet
// handlers on capture servers.
type HandlerFunc func(Packet, net.Addr)

// HandlePacket calls f(p, a).
func (f HandlerFunc) HandlePacket(p Packet, a net.Addr) {
	f(p, a)
}

// ListenAndServe starts a statsd capture server, listening for UDP
// datagrams on addr and forwarding the parsed packets to handler.
func ListenAndServe(addr string, handler Handler) (err error) {
	var conn net.PacketConn

	if conn, err = net.ListenPacket("udp", addr); err != nil {
		return err
	}

	err = Serve(conn, handler)
	return err
}

// Serve runs a statsd capture server, listening for datagrams on conn and
// forwarding the parsed packets to handler. It returns nil when conn is
// closed.
func Serve(conn net.PacketConn, handler Handler) error {
	defer conn.Close()

	concurrency := runtime.GOMAXPROCS(-1)
	if concurrency <= 0 {
		concurrency = 1
	}

	err := conn.SetDeadline(time.Time{})
	if err != nil {
		return err
	}

	var errgrp errgroup.Group

	for i := 0; i < concurrency; i++ {
		errgrp.Go(func() error {
			return serve(conn, handler)
		})
	}

	err = errgrp.Wait()
	switch {
	default:
		return err
	case err == nil:
	case errors.Is(err, net.ErrClosed):
	case errors.Is(err, io.EOF):
	case errors.Is(err, io.ErrClosedPipe):
	case errors.Is(err, io.ErrUnexpectedEOF):
	}

	return nil
}

func serve(conn net.PacketConn, handler Handler) error {
	b := make([]byte, 65536)

	for {
		n, a, err := conn.ReadFrom(b)
		if err != nil {
			return err
		}

		for s := b[:n]; len(s) != 0; {
			off := bytes.IndexByte(s, '\n')
			if off < 0 {
				off = len(s)
			} else {
				off++
			}

			ln := s[:off]
			s = s[off:]

			p, err := ParsePacket(string(ln))
			if err != nil {
				continue
			}

			handler.HandlePacket(p, a)
		}
	}
}

// Server is a capture server running in the background, for tests that
// need to observe the datagrams a client actually puts on the wire.
type Server struct {
	conn net.PacketConn
	done chan struct{}
	err  error
}

// NewServer starts a capture server on a random loopback port, forwarding
// the packets it receives to handler.
func NewServer(handler Handler) (*Server, error) {
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}

	srv := &Server{
		conn: conn,
		done: make(chan struct{}),
	}

	go func() {
		defer close(srv.done)
		srv.err = Serve(conn, handler)
	}()

	return srv, nil
}

// Addr returns the address the server listens on, in a form suitable for
// statsd.DialUDP.
func (s *Server) Addr() string {
	return s.conn.LocalAddr().String()
}

// Close shuts the server down and waits for the reader goroutines to
// drain.
func (s *Server) Close() error {
	s.conn.Close()
	<-s.done
	return s.err
}
