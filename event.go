package statsd

// Event is the immutable in-memory representation of one metric submission.
//
// Events are built by clients after the sampling decision was made: an event
// handed to a serializer is always rendered and sent. The struct is exported
// so custom serializers and debugging tools can be written outside of this
// package, but programs are expected to treat events as read-only. Clients
// never mutate an event after handing it off, and serializers must not
// retain references to it.
type Event struct {
	// Name is the final metric name, with the client namespace already
	// applied. Serializers validate it against their dialect and never
	// rewrite it.
	Name string

	// Kind is the metric kind, one of the constants of the Kind
	// enumeration.
	Kind Kind

	// Value carries the measurement. Set metrics carry strings, every other
	// kind carries a number.
	Value Value

	// Rate is the sample rate the submission was made with, in (0, 1].
	// Serializers annotate the packet with it when it is less than 1.
	Rate float64

	// Tags is the merged, sorted list of tags attached to the event. The
	// slice is shared, not copied: readers must not modify it.
	Tags []Tag

	// Delta marks gauge values that are adjustments rather than absolute
	// values. Serializers render delta values with an explicit sign. The
	// field has no meaning for kinds other than Gauge.
	Delta bool
}
