// Package debugstatsd makes it easy to see the metrics a program produces
// while debugging or developing a new instrumentation strategy.
//
//   - It implements the statsd.ClientInterface, so it drops in anywhere a
//     regular client is accepted.
//   - Every metric call is written as exactly one structured log record,
//     before any sampling decision, carrying the metric kind, name, value,
//     sample rate, tags, and the delta flag for gauges.
//
// # Standalone
//
// With a zero Config the client only logs. Nothing is serialized, nothing
// is sent, no sampling takes place, but sample rates are still validated so
// that misuse shows up in development:
//
//	client := debugstatsd.New(debugstatsd.Config{})
//
//	client.Incr("page.views", nil, 1)
//	client.Gauge("active_users", 42, nil, 1)
//
// Typical output with the default text handler:
//
//	level=DEBUG msg=metric kind=counter name=page.views value=1 rate=1
//	level=DEBUG msg=metric kind=gauge name=active_users value=42 rate=1 delta=false
//
// # Wrapping
//
// With Inner set, the client logs the record then forwards the call
// unchanged to the inner client, whose return value passes through.
// Sampling, serialization, and transport remain entirely the inner
// client's business:
//
//	client := debugstatsd.NewClient(statsd.NewClient(transport))
package debugstatsd

import (
	"context"
	"log/slog"
	"time"

	"github.com/segmentio/statsd"
)

var _ statsd.ClientInterface = (*Client)(nil)

// Config carries the configuration options that can be set when creating a
// debug client.
type Config struct {
	// Log receives the metric records. Defaults to slog.Default().
	Log *slog.Logger

	// Level the records are emitted at. Defaults to slog.LevelDebug.
	// Passing a *slog.LevelVar makes the level adjustable at runtime.
	Level slog.Leveler

	// Inner is the client the calls are forwarded to after being logged.
	// When nil the debug client runs standalone and only logs.
	Inner statsd.ClientInterface
}

// Client logs every metric call as a structured record, optionally
// forwarding the call to an inner client.
//
// Clients are safe for concurrent use as long as the logger and the inner
// client are.
type Client struct {
	log   *slog.Logger
	level slog.Leveler
	inner statsd.ClientInterface
}

// New creates a debug client using config.
func New(config Config) *Client {
	if config.Log == nil {
		config.Log = slog.Default()
	}
	if config.Level == nil {
		config.Level = slog.LevelDebug
	}
	return &Client{
		log:   config.Log,
		level: config.Level,
		inner: config.Inner,
	}
}

// NewClient creates a debug client logging to slog.Default() and forwarding
// every call to inner.
func NewClient(inner statsd.ClientInterface) *Client {
	return New(Config{Inner: inner})
}

// Count logs and forwards a counter increment of value.
func (c *Client) Count(name string, value int64, tags []statsd.Tag, rate float64) error {
	c.record(statsd.Counter, name, slog.Int64("value", value), tags, rate)
	if c.inner != nil {
		return c.inner.Count(name, value, tags, rate)
	}
	return checkRate(rate)
}

// Incr logs and forwards a counter increment of 1.
func (c *Client) Incr(name string, tags []statsd.Tag, rate float64) error {
	c.record(statsd.Counter, name, slog.Int64("value", 1), tags, rate)
	if c.inner != nil {
		return c.inner.Incr(name, tags, rate)
	}
	return checkRate(rate)
}

// Decr logs and forwards a counter decrement of 1.
func (c *Client) Decr(name string, tags []statsd.Tag, rate float64) error {
	c.record(statsd.Counter, name, slog.Int64("value", -1), tags, rate)
	if c.inner != nil {
		return c.inner.Decr(name, tags, rate)
	}
	return checkRate(rate)
}

// Gauge logs and forwards an absolute gauge assignment.
func (c *Client) Gauge(name string, value float64, tags []statsd.Tag, rate float64) error {
	c.record(statsd.Gauge, name, slog.Float64("value", value), tags, rate, slog.Bool("delta", false))
	if c.inner != nil {
		return c.inner.Gauge(name, value, tags, rate)
	}
	return checkRate(rate)
}

// GaugeDelta logs and forwards a gauge adjustment.
func (c *Client) GaugeDelta(name string, value float64, tags []statsd.Tag, rate float64) error {
	c.record(statsd.Gauge, name, slog.Float64("value", value), tags, rate, slog.Bool("delta", true))
	if c.inner != nil {
		return c.inner.GaugeDelta(name, value, tags, rate)
	}
	return checkRate(rate)
}

// Timing logs and forwards a timer observation.
func (c *Client) Timing(name string, value time.Duration, tags []statsd.Tag, rate float64) error {
	c.record(statsd.Timer, name, slog.Duration("value", value), tags, rate)
	if c.inner != nil {
		return c.inner.Timing(name, value, tags, rate)
	}
	return checkRate(rate)
}

// Set logs and forwards a set membership observation.
func (c *Client) Set(name string, member string, tags []statsd.Tag, rate float64) error {
	c.record(statsd.Set, name, slog.String("value", member), tags, rate)
	if c.inner != nil {
		return c.inner.Set(name, member, tags, rate)
	}
	return checkRate(rate)
}

// Histogram logs and forwards a histogram observation.
func (c *Client) Histogram(name string, value float64, tags []statsd.Tag, rate float64) error {
	c.record(statsd.Histogram, name, slog.Float64("value", value), tags, rate)
	if c.inner != nil {
		return c.inner.Histogram(name, value, tags, rate)
	}
	return checkRate(rate)
}

// Distribution logs and forwards a distribution observation.
func (c *Client) Distribution(name string, value float64, tags []statsd.Tag, rate float64) error {
	c.record(statsd.Distribution, name, slog.Float64("value", value), tags, rate)
	if c.inner != nil {
		return c.inner.Distribution(name, value, tags, rate)
	}
	return checkRate(rate)
}

func (c *Client) record(kind statsd.Kind, name string, value slog.Attr, tags []statsd.Tag, rate float64, extra ...slog.Attr) {
	attrs := make([]slog.Attr, 0, 5+len(extra))
	attrs = append(attrs,
		slog.String("kind", kind.String()),
		slog.String("name", name),
		value,
		slog.Float64("rate", rate),
	)
	attrs = append(attrs, extra...)
	if len(tags) != 0 {
		attrs = append(attrs, tagGroup(tags))
	}
	c.log.LogAttrs(context.Background(), c.level.Level(), "metric", attrs...)
}

func tagGroup(tags []statsd.Tag) slog.Attr {
	args := make([]any, 0, len(tags))
	for _, t := range tags {
		args = append(args, slog.String(t.Name, t.Value))
	}
	return slog.Group("tags", args...)
}

func checkRate(rate float64) error {
	if !(rate > 0 && rate <= 1) {
		return &statsd.InvalidSampleRateError{Rate: rate}
	}
	return nil
}
