package procstats

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/segmentio/statsd"
	"github.com/segmentio/statsd/statsdtest"
)

type testStats struct {
	calls int32
	err   error
}

func (s *testStats) Collect(client statsd.ClientInterface, tags []statsd.Tag) error {
	atomic.AddInt32(&s.calls, 1)
	if s.err != nil {
		return s.err
	}
	return client.Incr("test.collections", tags, 1)
}

func TestCollector(t *testing.T) {
	transport := &statsdtest.Transport{}
	source := &testStats{}

	c := StartCollectorWith(Config{
		Client: statsd.NewClient(transport),
		Period: time.Millisecond,
		Tags:   []statsd.Tag{statsd.T("service", "test")},
		Stats:  []Stats{source},
	})

	// Let the collector do a few runs.
	time.Sleep(50 * time.Millisecond)
	c.Stop()

	if atomic.LoadInt32(&source.calls) == 0 {
		t.Error("the source was never collected")
	}

	packets := transport.Packets()
	if len(packets) == 0 {
		t.Error("no metrics were reported by the collector")
	}

	for _, packet := range packets {
		p, err := statsdtest.ParsePacket(packet)
		if err != nil {
			t.Error(err)
			continue
		}
		if p.Name != "test.collections" {
			t.Error("invalid metric name:", p.Name)
		}
		if len(p.Tags) != 1 || p.Tags[0] != statsd.T("service", "test") {
			t.Error("invalid metric tags:", p.Tags)
		}
	}
}

func TestCollectorStop(t *testing.T) {
	c := StartCollector(statsd.NewClient(nil))

	// Stopping multiple times is a no-op, the second call must not panic
	// nor block.
	c.Stop()
	c.Stop()
}

func TestCollectorStopsCollecting(t *testing.T) {
	source := &testStats{}

	c := StartCollectorWith(Config{
		Client: statsd.NewClient(nil),
		Period: time.Millisecond,
		Stats:  []Stats{source},
	})

	time.Sleep(10 * time.Millisecond)
	c.Stop()

	calls := atomic.LoadInt32(&source.calls)
	time.Sleep(10 * time.Millisecond)

	if n := atomic.LoadInt32(&source.calls); n != calls {
		t.Error("the source was collected after the collector was stopped")
	}
}

func TestCollectorOnError(t *testing.T) {
	boom := errors.New("boom")
	errs := make(chan error, 1)

	c := StartCollectorWith(Config{
		Client: statsd.NewClient(nil),
		Period: time.Millisecond,
		Stats:  []Stats{&testStats{err: boom}},
		OnError: func(err error) {
			select {
			case errs <- err:
			default:
			}
		},
	})
	defer c.Stop()

	select {
	case err := <-errs:
		if err != boom {
			t.Error("bad collection error:", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("no collection error was reported")
	}
}
