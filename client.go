package statsd

import (
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"time"
)

// ClientConfig carries the configuration options that can be set when
// creating a client.
type ClientConfig struct {
	// Transport the serialized packets are sent through. The transport is
	// shared, not owned: closing it remains the creator's responsibility.
	// A nil transport falls back to Discard, turning submission into a
	// validated no-op.
	Transport Transport

	// Serializer selecting the wire dialect. Defaults to
	// DogstatsdSerializer.
	Serializer Serializer

	// Namespace is an optional prefix applied to every metric name, joined
	// with a '.'.
	Namespace string

	// Tags attached to every metric sent by the client. Call-level tags
	// override them on name collision.
	Tags []Tag

	// Rand is the source of the uniform [0, 1) draws backing sampling
	// decisions. Defaults to math/rand/v2's Float64, which is safe for
	// concurrent use. A custom source must be safe for concurrent use as
	// well.
	Rand func() float64

	// OnError observes transport failures, which are never returned by the
	// metric methods: a statsd server going away must not break the
	// application emitting to it. Defaults to dropping the errors.
	OnError func(error)
}

// Client submits metrics to a statsd server.
//
// The client owns the submission pipeline: it validates the sample rate,
// makes the sampling decision, builds the immutable event, serializes it in
// the configured dialect, and hands the packet to the transport. The errors
// returned by its methods are programming errors (invalid rate, invalid
// name, unsupported kind), transport failures go to the OnError observer.
//
// Clients are safe for concurrent use and need no teardown of their own,
// releasing the transport is the only cleanup.
type Client struct {
	transport  Transport
	serializer Serializer
	prefix     string
	tags       []Tag
	rand       func() float64
	onError    func(error)
}

// NewClient creates a client sending dogstatsd packets through t.
func NewClient(t Transport) *Client {
	return newClient(setClientConfigDefaults(ClientConfig{Transport: t}))
}

// NewClientWith creates a client using config.
//
// The serializer is probed for every kind of the Kind enumeration so that
// an incompatible client/serializer pairing fails here, once, instead of on
// every call.
func NewClientWith(config ClientConfig) (*Client, error) {
	config = setClientConfigDefaults(config)

	for k := Kind(0); k < kindCount; k++ {
		if _, err := config.Serializer.TypeCode(k); err != nil {
			return nil, err
		}
	}

	return newClient(config), nil
}

func setClientConfigDefaults(config ClientConfig) ClientConfig {
	if config.Transport == nil {
		config.Transport = Discard
	}
	if config.Serializer == nil {
		config.Serializer = DogstatsdSerializer{}
	}
	if config.Rand == nil {
		config.Rand = rand.Float64
	}
	if config.OnError == nil {
		config.OnError = func(error) {}
	}
	return config
}

func newClient(config ClientConfig) *Client {
	prefix := config.Namespace
	if len(prefix) != 0 && !strings.HasSuffix(prefix, ".") {
		prefix += "."
	}
	return &Client{
		transport:  config.Transport,
		serializer: config.Serializer,
		prefix:     prefix,
		tags:       mergeTags(nil, config.Tags),
		rand:       config.Rand,
		onError:    config.OnError,
	}
}

// Count adds value to the counter identified by name.
func (c *Client) Count(name string, value int64, tags []Tag, rate float64) error {
	return c.send(Counter, name, IntValue(value), tags, rate, false)
}

// Incr adds 1 to the counter identified by name.
func (c *Client) Incr(name string, tags []Tag, rate float64) error {
	return c.Count(name, 1, tags, rate)
}

// Decr subtracts 1 from the counter identified by name.
func (c *Client) Decr(name string, tags []Tag, rate float64) error {
	return c.Count(name, -1, tags, rate)
}

// Gauge sets the gauge identified by name to value. The packet carries the
// absolute value, negative included: resetting semantics only apply to
// deltas, see GaugeDelta.
func (c *Client) Gauge(name string, value float64, tags []Tag, rate float64) error {
	return c.send(Gauge, name, FloatValue(value), tags, rate, false)
}

// GaugeDelta adjusts the gauge identified by name by value. The wire value
// carries an explicit sign (+10, -5).
//
// A negative adjustment could be read back as an absolute assignment by a
// server that never saw the gauge, so it is preceded by a zero reset: the
// client emits name:0|g strictly before name:-5|g on the same transport.
// One sampling decision governs the pair, both packets are sent or neither
// is. Ordering is guaranteed, atomicity across the two datagrams is not.
func (c *Client) GaugeDelta(name string, value float64, tags []Tag, rate float64) error {
	if !(value < 0) {
		return c.send(Gauge, name, FloatValue(value), tags, rate, true)
	}

	if err := checkRate(rate); err != nil {
		return err
	}
	if !c.sample(rate) {
		return nil
	}

	reset := c.makeEvent(Gauge, name, FloatValue(0), tags, rate, false)
	if err := c.emit(reset); err != nil {
		return err
	}

	delta := reset
	delta.Value = FloatValue(value)
	delta.Delta = true
	return c.emit(delta)
}

// Timing records value for the timer identified by name. The wire value is
// the duration expressed in milliseconds.
func (c *Client) Timing(name string, value time.Duration, tags []Tag, rate float64) error {
	return c.send(Timer, name, FloatValue(float64(value)/float64(time.Millisecond)), tags, rate, false)
}

// Set counts member as one occurrence of a unique value in the set
// identified by name. The member is opaque: framing characters are
// substituted, nothing else is interpreted.
func (c *Client) Set(name string, member string, tags []Tag, rate float64) error {
	return c.send(Set, name, StringValue(member), tags, rate, false)
}

// Histogram records value in the histogram identified by name.
func (c *Client) Histogram(name string, value float64, tags []Tag, rate float64) error {
	return c.send(Histogram, name, FloatValue(value), tags, rate, false)
}

// Distribution records value in the distribution identified by name.
func (c *Client) Distribution(name string, value float64, tags []Tag, rate float64) error {
	return c.send(Distribution, name, FloatValue(value), tags, rate, false)
}

func (c *Client) send(kind Kind, name string, value Value, tags []Tag, rate float64, delta bool) error {
	if err := checkRate(rate); err != nil {
		return err
	}
	if !c.sample(rate) {
		return nil
	}
	return c.emit(c.makeEvent(kind, name, value, tags, rate, delta))
}

func checkRate(rate float64) error {
	// The negated comparison also rejects NaN.
	if !(rate > 0 && rate <= 1) {
		return &InvalidSampleRateError{Rate: rate}
	}
	return nil
}

func (c *Client) sample(rate float64) bool {
	return rate == 1 || c.rand() < rate
}

func (c *Client) makeEvent(kind Kind, name string, value Value, tags []Tag, rate float64, delta bool) Event {
	return Event{
		Name:  c.prefix + name,
		Kind:  kind,
		Value: value,
		Rate:  rate,
		Tags:  mergeTags(c.tags, tags),
		Delta: delta,
	}
}

func (c *Client) emit(e Event) error {
	b, err := c.serializer.AppendEvent(make([]byte, 0, 256), e)
	if err != nil {
		return err
	}
	if err := c.transport.Send(b); err != nil {
		c.fail(err)
	}
	return nil
}

// fail reports a transport error to the observer, shielding the emission
// path from observers that panic.
func (c *Client) fail(err error) {
	defer func() {
		if v := recover(); v != nil {
			fmt.Fprintf(os.Stderr, "statsd: panic calling the error observer: %v\n", v)
		}
	}()
	c.onError(err)
}
