package statsd

import (
	"math"
	"strconv"
)

// Serializer is the strategy that renders metric events into a statsd
// dialect's wire format.
//
// Implementations must be immutable after construction: a single serializer
// value is shared by every goroutine submitting metrics through a client.
// The four dialects of this package (DogstatsdSerializer, TelegrafSerializer,
// GraphiteSerializer, PlainSerializer) form a closed set sharing one
// rendering engine, custom implementations are possible but rarely needed.
type Serializer interface {
	// AppendEvent appends the wire representation of e to b and returns the
	// extended slice. The packet contains no newline: one event maps to
	// exactly one packet. When the event cannot be represented (empty or
	// reserved metric name, kind outside the enumeration) the original
	// slice is returned together with the error and nothing was rendered.
	AppendEvent(b []byte, e Event) ([]byte, error)

	// TypeCode returns the wire type code the dialect uses for a metric
	// kind, resolving documented fallbacks for kinds the dialect has no
	// native representation for. Kinds outside the enumeration produce an
	// UnsupportedMetricKindError, which is how client construction probes a
	// serializer for compatibility.
	TypeCode(k Kind) (string, error)
}

// charset is a byte membership table.
type charset [256]bool

func makeCharset(chars string) charset {
	var c charset
	for i := 0; i < len(chars); i++ {
		c[chars[i]] = true
	}
	return c
}

// kindCodes maps every metric kind to its wire type code.
type kindCodes [kindCount]string

type tagPlacement int

const (
	// tagsInSuffix renders the tag block after the type code and sample
	// rate, the way dogstatsd does.
	tagsInSuffix tagPlacement = iota

	// tagsInName glues the tag block to the metric name, the way the
	// InfluxDB line protocol and graphite tagged carbon do.
	tagsInName

	// tagsOmitted suppresses the tag block entirely for dialects without a
	// tag syntax.
	tagsOmitted
)

// dialect is the data-driven description of one statsd wire syntax. The
// exported serializer types are thin views over a package-level dialect
// value each.
type dialect struct {
	name         string
	codes        kindCodes
	tagFirst     string // opens the tag block
	tagSep       byte   // separates tags after the first
	tagKV        byte   // separates a tag name from its value
	placement    tagPlacement
	bareTags     bool // whether a tag without value is representable
	nameReserved charset
	tagReserved  charset
}

// valueReserved holds the bytes that would corrupt packet framing when they
// appear in a string value. The value position only needs protection from
// the field separator and the record separator, every dialect parses the
// rest of the packet from the other side.
var valueReserved = makeCharset("|\n")

func (d *dialect) typeCode(k Kind) (string, error) {
	if k < 0 || k >= kindCount {
		return "", &UnsupportedMetricKindError{Kind: k, Dialect: d.name}
	}
	return d.codes[k], nil
}

func (d *dialect) checkName(name string) error {
	if len(name) == 0 {
		return &InvalidMetricNameError{Name: name, Dialect: d.name}
	}
	for i := 0; i < len(name); i++ {
		if d.nameReserved[name[i]] {
			return &InvalidMetricNameError{Name: name, Dialect: d.name}
		}
	}
	return nil
}

// replacement returns the effective substitute byte for reserved characters.
// A zero or reserved configuration falls back to '_' so that substitution
// stays idempotent.
func (d *dialect) replacement(r byte) byte {
	if r == 0 || d.nameReserved[r] || d.tagReserved[r] || valueReserved[r] {
		return '_'
	}
	return r
}

func appendEvent(b []byte, e Event, d *dialect, repl byte) ([]byte, error) {
	code, err := d.typeCode(e.Kind)
	if err != nil {
		return b, err
	}
	if err := d.checkName(e.Name); err != nil {
		return b, err
	}

	repl = d.replacement(repl)

	b = append(b, e.Name...)
	if d.placement == tagsInName {
		b = appendTags(b, e.Tags, d, repl)
	}
	b = append(b, ':')
	b = appendValue(b, e, repl)
	b = append(b, '|')
	b = append(b, code...)
	if e.Rate < 1 {
		b = append(b, '|', '@')
		b = strconv.AppendFloat(b, e.Rate, 'f', -1, 64)
	}
	if d.placement == tagsInSuffix {
		b = appendTags(b, e.Tags, d, repl)
	}
	return b, nil
}

func appendTags(b []byte, tags []Tag, d *dialect, repl byte) []byte {
	first := true
	for _, t := range tags {
		if len(t.Name) == 0 {
			continue
		}
		if len(t.Value) == 0 && !d.bareTags {
			continue
		}
		if first {
			b = append(b, d.tagFirst...)
			first = false
		} else {
			b = append(b, d.tagSep)
		}
		b = appendSanitized(b, t.Name, &d.tagReserved, repl)
		if len(t.Value) != 0 {
			b = append(b, d.tagKV)
			b = appendSanitized(b, t.Value, &d.tagReserved, repl)
		}
	}
	return b
}

func appendValue(b []byte, e Event, repl byte) []byte {
	switch v := e.Value; v.Type() {
	case Int:
		if e.Delta && v.Int() >= 0 {
			b = append(b, '+')
		}
		b = strconv.AppendInt(b, v.Int(), 10)
	case Float:
		f := normalizeFloat(v.Float())
		if e.Delta && !math.Signbit(f) {
			b = append(b, '+')
		}
		b = strconv.AppendFloat(b, f, 'f', -1, 64)
	case String:
		b = appendSanitized(b, v.String(), &valueReserved, repl)
	default:
		b = append(b, '0')
	}
	return b
}

func appendSanitized(b []byte, s string, reserved *charset, repl byte) []byte {
	for i := 0; i < len(s); i++ {
		if c := s[i]; reserved[c] {
			b = append(b, repl)
		} else {
			b = append(b, c)
		}
	}
	return b
}

func normalizeFloat(f float64) float64 {
	switch {
	case math.IsNaN(f):
		return 0
	case math.IsInf(f, +1):
		return +math.MaxFloat64
	case math.IsInf(f, -1):
		return -math.MaxFloat64
	default:
		return f
	}
}
