package statsd

// TelegrafSerializer renders events in the telegraf dialect, which borrows
// the tag syntax of the InfluxDB line protocol and glues it to the metric
// name:
//
//	name,tag=value,tag2=value2:value|type[|@rate]
//
// Distribution has no representation in telegraf and maps to the histogram
// type code. The line protocol cannot express a tag without a value, such
// tags are omitted from the packet.
type TelegrafSerializer struct {
	// Replacement is the byte substituted for reserved characters found in
	// tag names, tag values, and set members. The zero value means '_'.
	Replacement byte
}

var telegrafDialect = dialect{
	name: "telegraf",
	codes: kindCodes{
		Counter:      "c",
		Gauge:        "g",
		Timer:        "ms",
		Set:          "s",
		Histogram:    "h",
		Distribution: "h",
	},
	tagFirst:     ",",
	tagSep:       ',',
	tagKV:        '=',
	placement:    tagsInName,
	bareTags:     false,
	nameReserved: makeCharset(":|@,= \n"),
	tagReserved:  makeCharset(":|@,= \n"),
}

// AppendEvent satisfies the Serializer interface.
func (s TelegrafSerializer) AppendEvent(b []byte, e Event) ([]byte, error) {
	return appendEvent(b, e, &telegrafDialect, s.Replacement)
}

// TypeCode satisfies the Serializer interface.
func (s TelegrafSerializer) TypeCode(k Kind) (string, error) {
	return telegrafDialect.typeCode(k)
}
