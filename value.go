package statsd

import (
	"math"
	"strconv"
)

// ValueType is an enumeration representing the type of data carried by a
// metric value.
type ValueType int

const (
	// Null is the type of the zero-value of Value. Serializers render null
	// values as 0.
	Null ValueType = iota

	// Int is the type of values constructed with IntValue.
	Int

	// Float is the type of values constructed with FloatValue.
	Float

	// String is the type of values constructed with StringValue. Only set
	// metrics carry string values, they hold the opaque member identifier.
	String
)

// Value is a small tagged union carrying the measurement of a metric event.
//
// Values are immutable, comparable, and cheap to copy. Numeric values are
// stored as their bit pattern so the zero-value of the struct is a valid
// null value.
type Value struct {
	typ ValueType
	num uint64
	str string
}

// IntValue returns a value carrying v as a signed integer.
func IntValue(v int64) Value {
	return Value{typ: Int, num: uint64(v)}
}

// FloatValue returns a value carrying v as a 64 bit floating point number.
func FloatValue(v float64) Value {
	return Value{typ: Float, num: math.Float64bits(v)}
}

// StringValue returns a value carrying v as an opaque string.
func StringValue(v string) Value {
	return Value{typ: String, str: v}
}

// Type returns the type of data carried by the value.
func (v Value) Type() ValueType {
	return v.typ
}

// Int returns the integer carried by the value, or zero if the value is not
// of type Int.
func (v Value) Int() int64 {
	if v.typ != Int {
		return 0
	}
	return int64(v.num)
}

// Float returns the floating point number carried by the value, or zero if
// the value is not of type Float.
func (v Value) Float() float64 {
	if v.typ != Float {
		return 0
	}
	return math.Float64frombits(v.num)
}

// String returns a representation of the value: the raw string for String
// values, and the minimal decimal representation for numeric values.
func (v Value) String() string {
	switch v.typ {
	case Int:
		return strconv.FormatInt(int64(v.num), 10)
	case Float:
		return strconv.FormatFloat(math.Float64frombits(v.num), 'f', -1, 64)
	case String:
		return v.str
	default:
		return "0"
	}
}

// Interface returns the value as one of int64, float64, string, or nil for
// null values. It exists so observers and loggers can report values without
// switching on the type themselves.
func (v Value) Interface() interface{} {
	switch v.typ {
	case Int:
		return int64(v.num)
	case Float:
		return math.Float64frombits(v.num)
	case String:
		return v.str
	default:
		return nil
	}
}
