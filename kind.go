package statsd

// Kind is an enumeration representing the kind of a metric.
type Kind int

const (
	// Counter is the kind of metrics representing monotonic counts.
	Counter Kind = iota

	// Gauge is the kind of metrics representing point-in-time values.
	Gauge

	// Timer is the kind of metrics representing durations in milliseconds.
	Timer

	// Set is the kind of metrics counting unique members.
	Set

	// Histogram is the kind of metrics representing value distributions
	// aggregated by the server.
	Histogram

	// Distribution is the kind of metrics representing globally aggregated
	// value distributions.
	Distribution

	// kindCount is the number of metric kinds, it must come last.
	kindCount
)

// String returns a human-readable representation of the metric kind, which
// is the empty string for values outside the enumeration.
func (k Kind) String() string {
	switch k {
	case Counter:
		return "counter"
	case Gauge:
		return "gauge"
	case Timer:
		return "timer"
	case Set:
		return "set"
	case Histogram:
		return "histogram"
	case Distribution:
		return "distribution"
	default:
		return ""
	}
}
