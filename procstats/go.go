package procstats

import (
	"runtime"
	"runtime/debug"
	"time"

	"github.com/segmentio/statsd"
	"github.com/segmentio/statsd/version"
)

// GoStats reports metrics on the Go runtime of the current process:
// scheduler and cgo activity, heap state, and garbage collection, with the
// individual GC pauses emitted as timer observations.
//
// Cumulative runtime numbers (cgo calls, GC runs) are emitted as counter
// increments covering the time since the previous collection, absolute
// ones as gauges. Every metric is tagged with runtime:go and the Go
// version, on top of the tags passed by the collector.
type GoStats struct {
	ms   runtime.MemStats
	gc   debug.GCStats
	tags []statsd.Tag

	lastNumGC      int64
	lastNumCgoCall int64
}

// NewGoStats creates a source of Go runtime metrics.
func NewGoStats() *GoStats {
	g := &GoStats{
		tags: []statsd.Tag{
			statsd.T("runtime", "go"),
			statsd.T("version", version.GoVersion()),
		},
	}
	g.lastNumCgoCall = runtime.NumCgoCall()

	debug.ReadGCStats(&g.gc)
	g.lastNumGC = g.gc.NumGC

	return g
}

// Collect satisfies the Stats interface.
func (g *GoStats) Collect(client statsd.ClientInterface, tags []statsd.Tag) error {
	runtime.ReadMemStats(&g.ms)
	debug.ReadGCStats(&g.gc)
	stripOutdatedGCPauses(&g.gc, g.lastNumGC)

	tags = append(g.tags[:len(g.tags):len(g.tags)], tags...)

	numCgoCall := runtime.NumCgoCall()
	now := time.Now()

	var firstErr error
	emit := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	emit(client.Gauge("go.runtime.cpu.num", float64(runtime.NumCPU()), tags, 1))
	emit(client.Gauge("go.runtime.goroutine.num", float64(runtime.NumGoroutine()), tags, 1))
	emit(client.Count("go.runtime.cgo.calls", numCgoCall-g.lastNumCgoCall, tags, 1))

	emit(client.Gauge("go.memstats.heap.alloc.bytes", float64(g.ms.HeapAlloc), tags, 1))
	emit(client.Gauge("go.memstats.heap.sys.bytes", float64(g.ms.HeapSys), tags, 1))
	emit(client.Gauge("go.memstats.heap.idle.bytes", float64(g.ms.HeapIdle), tags, 1))
	emit(client.Gauge("go.memstats.heap.inuse.bytes", float64(g.ms.HeapInuse), tags, 1))
	emit(client.Gauge("go.memstats.heap.objects.count", float64(g.ms.HeapObjects), tags, 1))
	emit(client.Gauge("go.memstats.stack.inuse.bytes", float64(g.ms.StackInuse), tags, 1))

	emit(client.Count("go.memstats.gc.count", g.gc.NumGC-g.lastNumGC, tags, 1))
	emit(client.Gauge("go.memstats.gc_next.bytes", float64(g.ms.NextGC), tags, 1))
	if !g.gc.LastGC.IsZero() {
		emit(client.Gauge("go.memstats.gc_last.seconds", now.Sub(g.gc.LastGC).Seconds(), tags, 1))
	}
	emit(client.Gauge("go.memstats.gc_cpu.fraction", g.ms.GCCPUFraction, tags, 1))

	for _, pause := range g.gc.Pause {
		emit(client.Timing("go.memstats.gc_pause", pause, tags, 1))
	}

	g.lastNumGC = g.gc.NumGC
	g.lastNumCgoCall = numCgoCall

	return firstErr
}

// stripOutdatedGCPauses trims the pause history to the collections that
// happened after the previous Collect call, so a pause is reported exactly
// once. ReadGCStats returns the most recent pauses first.
func stripOutdatedGCPauses(gc *debug.GCStats, lastNumGC int64) {
	for i := range gc.Pause {
		if num := gc.NumGC - int64(i); num <= lastNumGC {
			gc.Pause = gc.Pause[:i]
			gc.PauseEnd = gc.PauseEnd[:i]
			break
		}
	}
}
