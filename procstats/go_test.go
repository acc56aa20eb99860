package procstats

import (
	"reflect"
	"runtime/debug"
	"strings"
	"testing"
	"time"

	"github.com/segmentio/statsd"
	"github.com/segmentio/statsd/statsdtest"
)

func TestGoStats(t *testing.T) {
	transport := &statsdtest.Transport{}
	client := statsd.NewClient(transport)

	gostats := NewGoStats()
	if err := gostats.Collect(client, []statsd.Tag{statsd.T("service", "test")}); err != nil {
		t.Fatal(err)
	}

	packets := transport.Packets()
	if len(packets) == 0 {
		t.Error("no metrics were reported by the go stats source")
	}

	names := make(map[string]bool, len(packets))

	for _, packet := range packets {
		p, err := statsdtest.ParsePacket(packet)
		if err != nil {
			t.Error(err)
			continue
		}

		switch {
		case strings.HasPrefix(p.Name, "go.runtime."):
		case strings.HasPrefix(p.Name, "go.memstats."):
		default:
			t.Error("invalid metric name:", p.Name)
		}

		tags := make(map[string]string, len(p.Tags))
		for _, tag := range p.Tags {
			tags[tag.Name] = tag.Value
		}
		if tags["runtime"] != "go" || tags["service"] != "test" || tags["version"] == "" {
			t.Error("invalid metric tags:", p.Tags)
		}

		names[p.Name] = true
	}

	for _, name := range []string{
		"go.runtime.cpu.num",
		"go.runtime.goroutine.num",
		"go.memstats.heap.alloc.bytes",
		"go.memstats.gc_next.bytes",
	} {
		if !names[name] {
			t.Error("missing metric:", name)
		}
	}
}

func TestGoStatsCountsOnce(t *testing.T) {
	transport := &statsdtest.Transport{}
	client := statsd.NewClient(transport)

	gostats := NewGoStats()
	if err := gostats.Collect(client, nil); err != nil {
		t.Fatal(err)
	}

	// Force a GC pass between collections so the second one has exactly one
	// new pause to report.
	debug.FreeOSMemory()
	transport.Reset()

	if err := gostats.Collect(client, nil); err != nil {
		t.Fatal(err)
	}

	pauses := 0
	for _, packet := range transport.Packets() {
		p, err := statsdtest.ParsePacket(packet)
		if err != nil {
			t.Error(err)
			continue
		}
		if p.Name == "go.memstats.gc_pause" {
			pauses++
		}
	}

	if pauses == 0 {
		t.Error("no gc pause was reported after a forced collection")
	}
}

func TestStripOutdatedGCPauses(t *testing.T) {
	now := time.Now()

	gc := &debug.GCStats{}
	gc.LastGC = now.Add(-time.Second) // 1s ago
	gc.NumGC = 10                     // 10th GC pass
	gc.PauseTotal = time.Millisecond  // 1ms pauses total
	gc.Pause = []time.Duration{
		100 * time.Microsecond,
		100 * time.Microsecond,
		100 * time.Microsecond,
		100 * time.Microsecond,
		100 * time.Microsecond,
		100 * time.Microsecond,
		100 * time.Microsecond,
		100 * time.Microsecond,
		100 * time.Microsecond,
		100 * time.Microsecond,
	}
	gc.PauseEnd = []time.Time{
		now.Add(-time.Second).Add(-100 * time.Microsecond),
		now.Add(-time.Second).Add(-200 * time.Microsecond),
		now.Add(-time.Second).Add(-300 * time.Microsecond),
		now.Add(-time.Second).Add(-400 * time.Microsecond),
		now.Add(-time.Second).Add(-500 * time.Microsecond),
		now.Add(-time.Second).Add(-600 * time.Microsecond),
		now.Add(-time.Second).Add(-700 * time.Microsecond),
		now.Add(-time.Second).Add(-800 * time.Microsecond),
		now.Add(-time.Second).Add(-900 * time.Microsecond),
		now.Add(-time.Second).Add(-1 * time.Millisecond),
	}

	stripOutdatedGCPauses(gc, 8) // last observed the 8th pass

	if !reflect.DeepEqual(gc, &debug.GCStats{
		LastGC:     now.Add(-time.Second),
		NumGC:      10,
		PauseTotal: time.Millisecond,
		Pause: []time.Duration{
			100 * time.Microsecond,
			100 * time.Microsecond,
		},
		PauseEnd: []time.Time{
			now.Add(-time.Second).Add(-100 * time.Microsecond),
			now.Add(-time.Second).Add(-200 * time.Microsecond),
		},
	}) {
		t.Errorf("invalid gc stats after stripping outdated pauses:\n%#v", *gc)
	}
}
