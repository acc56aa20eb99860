package statsd

// DogstatsdSerializer renders events in the dogstatsd dialect understood by
// the Datadog agent and by veneur:
//
//	name:value|type[|@rate][|#tag:value,tag2:value2]
//
// Every kind of the Kind enumeration has a native type code in this dialect.
// Tags without a value are rendered bare (|#production). This is the dialect
// clients use when none is configured.
type DogstatsdSerializer struct {
	// Replacement is the byte substituted for reserved characters found in
	// tag names, tag values, and set members. The zero value means '_', and
	// configured bytes that are themselves reserved fall back to '_' so
	// that sanitization stays idempotent.
	Replacement byte
}

var dogstatsdDialect = dialect{
	name: "dogstatsd",
	codes: kindCodes{
		Counter:      "c",
		Gauge:        "g",
		Timer:        "ms",
		Set:          "s",
		Histogram:    "h",
		Distribution: "d",
	},
	tagFirst:     "|#",
	tagSep:       ',',
	tagKV:        ':',
	placement:    tagsInSuffix,
	bareTags:     true,
	nameReserved: makeCharset(":|@#\n"),
	tagReserved:  makeCharset(":|@#,\n"),
}

// AppendEvent satisfies the Serializer interface.
func (s DogstatsdSerializer) AppendEvent(b []byte, e Event) ([]byte, error) {
	return appendEvent(b, e, &dogstatsdDialect, s.Replacement)
}

// TypeCode satisfies the Serializer interface.
func (s DogstatsdSerializer) TypeCode(k Kind) (string, error) {
	return dogstatsdDialect.typeCode(k)
}
