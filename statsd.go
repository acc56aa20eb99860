// Package statsd provides a small, allocation-conscious client for statsd
// compatible metric servers.
//
// The package separates three concerns so that each can be swapped or tested
// in isolation:
//
//   - a Client builds immutable metric events from method calls, applies the
//     sampling decision, and owns the submission pipeline,
//   - a Serializer renders one event into one wire packet in a specific
//     statsd dialect (Dogstatsd, Telegraf, Graphite, or plain statsd),
//   - a Transport carries packets to the server (UDP, unixgram, or an
//     in-memory recorder from the statsdtest package).
//
// A minimal program looks like this:
//
//	transport, err := statsd.DialUDP("localhost:8125")
//	if err != nil {
//	    // ...
//	}
//	defer transport.Close()
//
//	client := statsd.NewClient(transport)
//	client.Incr("requests", []statsd.Tag{statsd.T("endpoint", "/x")}, 1)
//
// which sends the datagram:
//
//	requests:1|c|#endpoint:/x
//
// Transport failures never surface through the metric methods, a client that
// cannot reach its server must not take the application down with it.
// Failures are delivered to the ClientConfig.OnError observer instead, which
// defaults to dropping them. The errors returned by the metric methods are
// programming errors only: invalid sample rates, invalid metric names, and
// unsupported metric kinds.
//
// Clients are safe for concurrent use. Serializers and default tags are
// immutable after construction and transports serialize their own writes.
package statsd

import "time"

// ClientInterface is the capability set shared by every client flavor in
// this package. *Client implements it, and so does debugstatsd.Client, which
// lets callers compose logging decorators with real clients transparently.
//
// The rate argument of every method must be in (0, 1]. A rate of 1 submits
// the metric on every call, a rate of 0.1 submits it for roughly one call in
// ten and annotates the packet so the server can scale counts back up.
type ClientInterface interface {
	// Count adds value to the counter identified by name.
	Count(name string, value int64, tags []Tag, rate float64) error

	// Incr adds 1 to the counter identified by name.
	Incr(name string, tags []Tag, rate float64) error

	// Decr subtracts 1 from the counter identified by name.
	Decr(name string, tags []Tag, rate float64) error

	// Gauge sets the gauge identified by name to value.
	Gauge(name string, value float64, tags []Tag, rate float64) error

	// GaugeDelta adjusts the gauge identified by name by value instead of
	// setting it. Negative adjustments produce two ordered packets, see the
	// method documentation on Client.
	GaugeDelta(name string, value float64, tags []Tag, rate float64) error

	// Timing records value as a duration for the timer identified by name.
	// The wire value is expressed in milliseconds.
	Timing(name string, value time.Duration, tags []Tag, rate float64) error

	// Set counts member as one occurrence of a unique value in the set
	// identified by name.
	Set(name string, member string, tags []Tag, rate float64) error

	// Histogram records value in the histogram identified by name.
	Histogram(name string, value float64, tags []Tag, rate float64) error

	// Distribution records value in the distribution identified by name.
	// Dialects without a native distribution kind map it to a documented
	// fallback, they never drop it.
	Distribution(name string, value float64, tags []Tag, rate float64) error
}
