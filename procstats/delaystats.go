package procstats

import (
	"os"
	"time"

	"github.com/segmentio/statsd"
)

// DelayStats reports the Linux delay accounting numbers of a process: the
// time its tasks spent waiting for a CPU, for block I/O, for swap-in, and
// for page reclaim.
//
// The kernel counters are cumulative, so each collection emits the delay
// accumulated since the previous one as a timer observation. The first
// collection only records the baseline.
//
// Reading the counters requires Linux and either root privileges or
// CAP_NET_RAW. On other platforms Collect returns a descriptive error.
type DelayStats struct {
	pid  int
	last DelayInfo
	init bool
}

// NewDelayStats creates a source of delay metrics for the current process.
func NewDelayStats() *DelayStats {
	return NewDelayStatsWith(os.Getpid())
}

// NewDelayStatsWith creates a source of delay metrics for the process
// identified by pid.
func NewDelayStatsWith(pid int) *DelayStats {
	return &DelayStats{pid: pid}
}

// Collect satisfies the Stats interface.
func (d *DelayStats) Collect(client statsd.ClientInterface, tags []statsd.Tag) error {
	info, err := CollectDelayInfo(d.pid)
	if err != nil {
		return err
	}

	if !d.init {
		d.last, d.init = info, true
		return nil
	}

	var firstErr error
	emit := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	emit(client.Timing("proc.delay.cpu", info.CPUDelay-d.last.CPUDelay, tags, 1))
	emit(client.Timing("proc.delay.blockio", info.BlockIODelay-d.last.BlockIODelay, tags, 1))
	emit(client.Timing("proc.delay.swapin", info.SwapInDelay-d.last.SwapInDelay, tags, 1))
	emit(client.Timing("proc.delay.freepages", info.FreePagesDelay-d.last.FreePagesDelay, tags, 1))

	d.last = info
	return firstErr
}

// DelayInfo holds the cumulative delay accounting counters of a process.
type DelayInfo struct {
	CPUDelay       time.Duration
	BlockIODelay   time.Duration
	SwapInDelay    time.Duration
	FreePagesDelay time.Duration
}

// CollectDelayInfo reads the delay accounting counters of the process
// identified by pid.
func CollectDelayInfo(pid int) (DelayInfo, error) {
	return collectDelayInfo(pid)
}
