package procstats

import (
	"os"
	"strings"
	"testing"

	"github.com/segmentio/statsd"
	"github.com/segmentio/statsd/statsdtest"
)

func TestCollectDelayInfo(t *testing.T) {
	info, err := CollectDelayInfo(os.Getpid())
	if err != nil {
		t.Skip("delay accounting is unavailable:", err)
	}

	if info.CPUDelay < 0 || info.BlockIODelay < 0 || info.SwapInDelay < 0 || info.FreePagesDelay < 0 {
		t.Errorf("negative delay counters: %+v", info)
	}
}

func TestDelayStats(t *testing.T) {
	transport := &statsdtest.Transport{}
	client := statsd.NewClient(transport)

	d := NewDelayStats()

	if err := d.Collect(client, nil); err != nil {
		t.Skip("delay accounting is unavailable:", err)
	}

	// The first collection only records the baseline.
	if packets := transport.Packets(); len(packets) != 0 {
		t.Error("the baseline collection emitted metrics:", packets)
	}

	if err := d.Collect(client, nil); err != nil {
		t.Fatal(err)
	}

	packets := transport.Packets()
	if len(packets) != 4 {
		t.Error("bad metric count:", len(packets))
	}

	for _, packet := range packets {
		p, err := statsdtest.ParsePacket(packet)
		if err != nil {
			t.Error(err)
			continue
		}
		if !strings.HasPrefix(p.Name, "proc.delay.") {
			t.Error("invalid metric name:", p.Name)
		}
		if p.Type != "ms" {
			t.Error("invalid metric type:", p.Type)
		}
	}
}
