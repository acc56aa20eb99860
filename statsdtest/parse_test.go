package statsdtest

import (
	"reflect"
	"testing"

	"github.com/segmentio/statsd"
)

func TestParsePacketSuccess(t *testing.T) {
	tests := []struct {
		s string
		p Packet
	}{
		{
			s: "page.views:1|c",
			p: Packet{
				Name:  "page.views",
				Type:  "c",
				Value: statsd.IntValue(1),
				Rate:  1,
			},
		},

		{
			s: "page.views:1|c\n",
			p: Packet{
				Name:  "page.views",
				Type:  "c",
				Value: statsd.IntValue(1),
				Rate:  1,
			},
		},

		{
			s: "fuel.level:0.5|g",
			p: Packet{
				Name:  "fuel.level",
				Type:  "g",
				Value: statsd.FloatValue(0.5),
				Rate:  1,
			},
		},

		{
			s: "temperature:-3|g",
			p: Packet{
				Name:  "temperature",
				Type:  "g",
				Value: statsd.IntValue(-3),
				Rate:  1,
			},
		},

		{
			s: "queue.size:+10|g",
			p: Packet{
				Name:  "queue.size",
				Type:  "g",
				Value: statsd.IntValue(10),
				Rate:  1,
			},
		},

		{
			s: "song.length:240|h|@0.5",
			p: Packet{
				Name:  "song.length",
				Type:  "h",
				Value: statsd.IntValue(240),
				Rate:  0.5,
			},
		},

		{
			s: "response.size:512|d",
			p: Packet{
				Name:  "response.size",
				Type:  "d",
				Value: statsd.IntValue(512),
				Rate:  1,
			},
		},

		{
			s: "request.rtt:1.5|ms",
			p: Packet{
				Name:  "request.rtt",
				Type:  "ms",
				Value: statsd.FloatValue(1.5),
				Rate:  1,
			},
		},

		{
			s: "users.uniques:h3x4d3c1m4l|s",
			p: Packet{
				Name:  "users.uniques",
				Type:  "s",
				Value: statsd.StringValue("h3x4d3c1m4l"),
				Rate:  1,
			},
		},

		{
			// Only the first colon separates the name, set members keep
			// the rest.
			s: "users.online:bob:1|s",
			p: Packet{
				Name:  "users.online",
				Type:  "s",
				Value: statsd.StringValue("bob:1"),
				Rate:  1,
			},
		},

		{
			s: "users.online:1|c|#country:china",
			p: Packet{
				Name:  "users.online",
				Type:  "c",
				Value: statsd.IntValue(1),
				Rate:  1,
				Tags:  []statsd.Tag{statsd.T("country", "china")},
			},
		},

		{
			s: "users.online:1|c|@0.5|#country:china",
			p: Packet{
				Name:  "users.online",
				Type:  "c",
				Value: statsd.IntValue(1),
				Rate:  0.5,
				Tags:  []statsd.Tag{statsd.T("country", "china")},
			},
		},

		{
			s: "users.online:1|c|#beta,country:china",
			p: Packet{
				Name:  "users.online",
				Type:  "c",
				Value: statsd.IntValue(1),
				Rate:  1,
				Tags: []statsd.Tag{
					statsd.T("beta", ""),
					statsd.T("country", "china"),
				},
			},
		},
	}

	for _, test := range tests {
		if p, err := ParsePacket(test.s); err != nil {
			t.Error(err)
		} else if !reflect.DeepEqual(p, test.p) {
			t.Errorf("%#v:\n- %#v\n- %#v", test.s, test.p, p)
		}
	}
}

func TestParsePacketFailure(t *testing.T) {
	tests := []string{
		"",
		":10|c",             // missing name
		"name:|c",           // missing value
		"name",              // missing value
		"name:1",            // missing type
		"name:1|",           // missing type
		"name:1|c|???",      // malformed sample rate
		"name:1|c|@abc",     // malformed sample rate
		"name:1|c|@0.5|???", // malformed tags
	}

	for _, test := range tests {
		if _, err := ParsePacket(test); err == nil {
			t.Errorf("%#v: expected parsing error", test)
		}
	}
}
