package statsd

import (
	"sync/atomic"
	"time"
)

// A Clock measures the duration of a section of code and reports it as a
// timer metric when stopped.
//
// Clocks report exactly once: the first Stop records the elapsed time,
// later calls are no-ops. This makes the pattern
//
//	clock := statsd.NewClock(client, "handler.time", nil, 1)
//	defer clock.Stop()
//
// safe even when the function also stops the clock explicitly on some code
// path, and makes the deferred stop record the duration while a panic
// unwinds.
type Clock struct {
	client  ClientInterface
	name    string
	tags    []Tag
	rate    float64
	start   time.Time
	stopped atomic.Bool
}

// NewClock starts measuring a duration reported on c as a timer named name
// when the clock is stopped.
func NewClock(c ClientInterface, name string, tags []Tag, rate float64) *Clock {
	return NewClockAt(c, name, tags, rate, time.Now())
}

// NewClockAt is like NewClock but uses start as the measurement origin
// instead of reading the wall clock.
func NewClockAt(c ClientInterface, name string, tags []Tag, rate float64, start time.Time) *Clock {
	return &Clock{
		client: c,
		name:   name,
		tags:   copyTags(tags),
		rate:   rate,
		start:  start,
	}
}

// Stop reports the time elapsed since the clock was created. Only the
// first call reports, later calls return nil without recording anything.
//
// The error, if any, is the one returned by the underlying Timing call.
func (k *Clock) Stop() error {
	return k.StopAt(time.Now())
}

// StopAt is like Stop but uses now as the measurement end instead of
// reading the wall clock.
func (k *Clock) StopAt(now time.Time) error {
	if k.stopped.Swap(true) {
		return nil
	}
	return k.client.Timing(k.name, now.Sub(k.start), k.tags, k.rate)
}

// Timed measures the execution of fn and reports its duration on c as a
// timer named name.
//
// The duration is recorded exactly once whether fn returns or panics. When
// fn panics the timing is recorded while the panic unwinds, then the panic
// continues to propagate.
func Timed(c ClientInterface, name string, tags []Tag, rate float64, fn func()) error {
	clock := NewClock(c, name, tags, rate)
	defer clock.Stop()
	fn()
	return clock.Stop()
}
