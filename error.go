package statsd

import (
	"fmt"
	"strconv"
)

// InvalidSampleRateError is returned by client methods when the sample rate
// argument falls outside of (0, 1]. The metric is not submitted.
type InvalidSampleRateError struct {
	Rate float64
}

func (e *InvalidSampleRateError) Error() string {
	return "statsd: invalid sample rate " + strconv.FormatFloat(e.Rate, 'g', -1, 64) + ", must be in (0, 1]"
}

// InvalidMetricNameError is returned when a metric name is empty or contains
// a character reserved by the dialect's wire syntax. Names are rejected, not
// rewritten: a mistyped name is a programming error that silent sanitization
// would hide.
type InvalidMetricNameError struct {
	Name    string
	Dialect string
}

func (e *InvalidMetricNameError) Error() string {
	if len(e.Name) == 0 {
		return fmt.Sprintf("statsd: empty metric name (%s dialect)", e.Dialect)
	}
	return fmt.Sprintf("statsd: metric name %q contains characters reserved by the %s dialect", e.Name, e.Dialect)
}

// UnsupportedMetricKindError is returned when a serializer has no wire
// representation for a metric kind. The predefined dialects map every kind
// of the enumeration, so this error only shows up with out-of-range kinds or
// with custom serializers, in which case client construction reports it once
// instead of failing every call.
type UnsupportedMetricKindError struct {
	Kind    Kind
	Dialect string
}

func (e *UnsupportedMetricKindError) Error() string {
	if s := e.Kind.String(); len(s) != 0 {
		return fmt.Sprintf("statsd: the %s dialect does not support %s metrics", e.Dialect, s)
	}
	return fmt.Sprintf("statsd: unknown metric kind %d (%s dialect)", int(e.Kind), e.Dialect)
}
