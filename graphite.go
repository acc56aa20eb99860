package statsd

// GraphiteSerializer renders events in the graphite dialect, which carries
// tags in the metric name section separated by semicolons, the syntax of
// tagged carbon series:
//
//	name;tag=value;tag2=value2:value|type[|@rate]
//
// Histogram and Distribution have no representation in graphite backed
// statsd servers and both map to the timer type code, which shares the
// aggregation semantics. Tags without a value are omitted from the packet.
type GraphiteSerializer struct {
	// Replacement is the byte substituted for reserved characters found in
	// tag names, tag values, and set members. The zero value means '_'.
	Replacement byte
}

var graphiteDialect = dialect{
	name: "graphite",
	codes: kindCodes{
		Counter:      "c",
		Gauge:        "g",
		Timer:        "ms",
		Set:          "s",
		Histogram:    "ms",
		Distribution: "ms",
	},
	tagFirst:     ";",
	tagSep:       ';',
	tagKV:        '=',
	placement:    tagsInName,
	bareTags:     false,
	nameReserved: makeCharset(":|@;= \n"),
	tagReserved:  makeCharset(":|@;=\n"),
}

// AppendEvent satisfies the Serializer interface.
func (s GraphiteSerializer) AppendEvent(b []byte, e Event) ([]byte, error) {
	return appendEvent(b, e, &graphiteDialect, s.Replacement)
}

// TypeCode satisfies the Serializer interface.
func (s GraphiteSerializer) TypeCode(k Kind) (string, error) {
	return graphiteDialect.typeCode(k)
}
