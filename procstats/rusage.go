package procstats

import (
	"time"

	"github.com/segmentio/statsd"
)

// RusageStats reports the resource usage counters the kernel keeps for the
// current process: CPU time split by user and system, peak memory, page
// faults, block I/O operations, and context switches.
//
// The counters are cumulative, so each collection emits the activity since
// the previous one, CPU time as timer observations and event counts as
// counter increments. Peak memory is an absolute value and is emitted as a
// gauge. The first collection only records the baseline.
type RusageStats struct {
	last rusageInfo
	init bool
}

// NewRusageStats creates a source of resource usage metrics for the
// current process.
func NewRusageStats() *RusageStats {
	return &RusageStats{}
}

// Collect satisfies the Stats interface.
func (r *RusageStats) Collect(client statsd.ClientInterface, tags []statsd.Tag) error {
	info, err := collectRusageInfo()
	if err != nil {
		return err
	}

	if !r.init {
		r.last, r.init = info, true
		return nil
	}

	var firstErr error
	emit := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	emit(client.Timing("proc.rusage.utime", info.utime-r.last.utime, tags, 1))
	emit(client.Timing("proc.rusage.stime", info.stime-r.last.stime, tags, 1))
	emit(client.Gauge("proc.rusage.maxrss.bytes", float64(info.maxrss), tags, 1))
	emit(client.Count("proc.rusage.minflt.count", info.minflt-r.last.minflt, tags, 1))
	emit(client.Count("proc.rusage.majflt.count", info.majflt-r.last.majflt, tags, 1))
	emit(client.Count("proc.rusage.inblock.count", info.inblock-r.last.inblock, tags, 1))
	emit(client.Count("proc.rusage.oublock.count", info.oublock-r.last.oublock, tags, 1))
	emit(client.Count("proc.rusage.nvcsw.count", info.nvcsw-r.last.nvcsw, tags, 1))
	emit(client.Count("proc.rusage.nivcsw.count", info.nivcsw-r.last.nivcsw, tags, 1))

	r.last = info
	return firstErr
}

// rusageInfo holds the cumulative resource usage counters of a process,
// with maxrss normalized to bytes across platforms.
type rusageInfo struct {
	utime   time.Duration
	stime   time.Duration
	maxrss  int64
	minflt  int64
	majflt  int64
	inblock int64
	oublock int64
	nvcsw   int64
	nivcsw  int64
}
