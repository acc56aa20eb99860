// Package procstats emits Go runtime and process health metrics through a
// statsd client at a fixed period.
//
//	collector := procstats.StartCollector(client)
//	defer collector.Stop()
package procstats

import (
	"time"

	"github.com/segmentio/statsd"
)

// A Collector is a background task periodically taking measurements and
// emitting them as metrics.
type Collector interface {
	// Stop interrupts the collection and waits for the background task to
	// finish. It is safe to call Stop multiple times.
	Stop()
}

// Stats is the interface implemented by the measurement sources a
// collector drives. GoStats and DelayStats are the sources provided by
// this package.
type Stats interface {
	// Collect takes the measurements and emits them through client, with
	// tags attached to every metric.
	Collect(client statsd.ClientInterface, tags []statsd.Tag) error
}

// Config carries the configuration options that can be set when starting a
// collector.
type Config struct {
	// Client the metrics are emitted through.
	Client statsd.ClientInterface

	// Period between two collections. Defaults to 5 seconds.
	Period time.Duration

	// Tags attached to every metric emitted by the collector.
	Tags []statsd.Tag

	// Stats are the sources collected on every tick. Defaults to the Go
	// runtime stats of the current process.
	Stats []Stats

	// OnError observes collection failures. Defaults to dropping the
	// errors.
	OnError func(error)
}

// StartCollector starts collecting Go runtime stats every 5 seconds,
// emitting them through client.
func StartCollector(client statsd.ClientInterface) Collector {
	return StartCollectorWith(Config{Client: client})
}

// StartCollectorWith starts a collector using config.
func StartCollectorWith(config Config) Collector {
	config = setConfigDefaults(config)

	collec := &collector{
		client:  config.Client,
		stats:   config.Stats,
		tags:    config.Tags,
		onError: config.OnError,
		tick:    time.NewTicker(config.Period),
		done:    make(chan struct{}),
		join:    make(chan struct{}),
	}

	go collec.run()
	return collec
}

func setConfigDefaults(config Config) Config {
	if config.Period == 0 {
		config.Period = 5 * time.Second
	}
	if config.Stats == nil {
		config.Stats = []Stats{NewGoStats()}
	}
	if config.OnError == nil {
		config.OnError = func(error) {}
	}
	return config
}

type collector struct {
	client  statsd.ClientInterface
	stats   []Stats
	tags    []statsd.Tag
	onError func(error)
	tick    *time.Ticker
	done    chan struct{}
	join    chan struct{}
}

func (c *collector) Stop() {
	c.stop()
	c.wait()
}

func (c *collector) stop() {
	defer func() { recover() }()
	close(c.done)
}

func (c *collector) wait() {
	<-c.join
}

func (c *collector) run() {
	defer close(c.join)
	defer c.tick.Stop()
	for {
		select {
		case <-c.tick.C:
			c.collect()

		case <-c.done:
			return
		}
	}
}

func (c *collector) collect() {
	for _, s := range c.stats {
		if err := s.Collect(c.client, c.tags); err != nil {
			c.onError(err)
		}
	}
}
