package statsd

// PlainSerializer renders events in the original Etsy statsd dialect:
//
//	name:value|type[|@rate]
//
// The dialect predates metric tagging, so tags carried by an event are not
// representable and do not appear in the packet. They are still visible to
// observers and wrapping clients, the loss is confined to the wire. Programs
// that rely on tags should pick one of the tagged dialects instead.
//
// Histogram and Distribution map to the timer type code, Etsy statsd
// computes the same percentile aggregates for it.
type PlainSerializer struct {
	// Replacement is the byte substituted for reserved characters found in
	// set members. The zero value means '_'.
	Replacement byte
}

var plainDialect = dialect{
	name: "statsd",
	codes: kindCodes{
		Counter:      "c",
		Gauge:        "g",
		Timer:        "ms",
		Set:          "s",
		Histogram:    "ms",
		Distribution: "ms",
	},
	placement:    tagsOmitted,
	nameReserved: makeCharset(":|@\n"),
}

// AppendEvent satisfies the Serializer interface.
func (s PlainSerializer) AppendEvent(b []byte, e Event) ([]byte, error) {
	return appendEvent(b, e, &plainDialect, s.Replacement)
}

// TypeCode satisfies the Serializer interface.
func (s PlainSerializer) TypeCode(k Kind) (string, error) {
	return plainDialect.typeCode(k)
}
