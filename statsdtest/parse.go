package statsdtest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/segmentio/statsd"
)

// Packet is the parsed form of a dogstatsd datagram.
type Packet struct {
	Name  string
	Type  string
	Value statsd.Value
	Rate  float64
	Tags  []statsd.Tag
}

// ParsePacket parses a single dogstatsd datagram.
//
// The value is parsed as an integer when it looks like one, as a float when
// it looks like a float, and kept verbatim otherwise, which is how set
// members come back. The sample rate defaults to 1 when the packet carries
// none.
func ParsePacket(s string) (p Packet, err error) {
	var next = strings.TrimSpace(s)
	var name string
	var val string
	var typ string
	var rate string
	var tags string

	val, next = nextToken(next, '|')
	typ, next = nextToken(next, '|')
	rate, tags = nextToken(next, '|')
	name, val = split(val, ':')

	if len(name) == 0 {
		err = fmt.Errorf("statsdtest: %#v is missing a metric name", s)
		return
	}

	if len(val) == 0 {
		err = fmt.Errorf("statsdtest: %#v is missing a metric value", s)
		return
	}

	if len(typ) == 0 {
		err = fmt.Errorf("statsdtest: %#v is missing a metric type", s)
		return
	}

	if len(rate) != 0 {
		switch rate[0] {
		case '#': // no sample rate, just tags
			rate, tags = "", rate
		case '@':
			rate = rate[1:]
		default:
			err = fmt.Errorf("statsdtest: %#v has a malformed sample rate", s)
			return
		}
	}

	if len(tags) != 0 {
		switch tags[0] {
		case '#':
			tags = tags[1:]
		default:
			err = fmt.Errorf("statsdtest: %#v has malformed tags", s)
			return
		}
	}

	sampleRate := 1.0

	if len(rate) != 0 {
		if sampleRate, err = strconv.ParseFloat(rate, 64); err != nil {
			err = fmt.Errorf("statsdtest: %#v has a malformed sample rate", s)
			return
		}
	}

	p = Packet{
		Name:  name,
		Type:  typ,
		Value: parseValue(val),
		Rate:  sampleRate,
	}

	if len(tags) != 0 {
		p.Tags = make([]statsd.Tag, 0, strings.Count(tags, ",")+1)

		for len(tags) != 0 {
			var tag string

			if tag, tags = nextToken(tags, ','); len(tag) != 0 {
				name, value := split(tag, ':')
				p.Tags = append(p.Tags, statsd.T(name, value))
			}
		}
	}

	return
}

func parseValue(s string) statsd.Value {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return statsd.IntValue(v)
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return statsd.FloatValue(v)
	}
	return statsd.StringValue(s)
}

// split cuts s on the first occurrence of b. Metric names cannot contain
// the separator, values can, set members in particular.
func split(s string, b byte) (head string, tail string) {
	if off := strings.IndexByte(s, b); off >= 0 {
		head, tail = s[:off], s[off+1:]
	} else {
		head = s
	}
	return
}

func nextToken(s string, b byte) (token string, next string) {
	if off := strings.IndexByte(s, b); off >= 0 {
		token, next = s[:off], s[off+1:]
	} else {
		token = s
	}
	return
}
