package octotable

import (
	"math"
	"strconv"
	"strings"
	"time"
)

var ZeroValue = Value{}

// Value is a single typed cell extracted from a record.
type Value struct {
	TypeID   TypeID
	Int      int
	Float    float64
	Boolean  bool
	Str      string
	Time     time.Time
	Duration time.Duration
	List     []Value
}

func NewNull() Value {
	return Value{
		TypeID: TypeIDNull,
	}
}

func NewInt(value int) Value {
	return Value{
		TypeID: TypeIDInt,
		Int:    value,
	}
}

func NewFloat(value float64) Value {
	return Value{
		TypeID: TypeIDFloat,
		Float:  value,
	}
}

func NewBoolean(value bool) Value {
	return Value{
		TypeID:  TypeIDBoolean,
		Boolean: value,
	}
}

func NewString(value string) Value {
	return Value{
		TypeID: TypeIDString,
		Str:    value,
	}
}

func NewTime(value time.Time) Value {
	return Value{
		TypeID: TypeIDTime,
		Time:   value,
	}
}

func NewDuration(value time.Duration) Value {
	return Value{
		TypeID:   TypeIDDuration,
		Duration: value,
	}
}

func NewList(value []Value) Value {
	return Value{
		TypeID: TypeIDList,
		List:   value,
	}
}

// NewStringList is a shorthand for a list of strings, like the capitals of a country.
func NewStringList(values []string) Value {
	out := make([]Value, len(values))
	for i := range values {
		out[i] = NewString(values[i])
	}
	return NewList(out)
}

func (value Value) IsNull() bool {
	return value.TypeID == TypeIDNull
}

// Compare returns -1, 0 or 1. Ints and floats are compared numerically with each other,
// other differing types are ordered by their type ID, so nulls always come first.
func (value Value) Compare(other Value) int {
	if value.TypeID != other.TypeID {
		if value.TypeID.IsNumeric() && other.TypeID.IsNumeric() {
			return compareFloats(value.asFloat(), other.asFloat())
		}
		return compareOrdered(value.TypeID, other.TypeID)
	}

	switch value.TypeID {
	case TypeIDNull:
		return 0
	case TypeIDInt:
		return compareOrdered(value.Int, other.Int)
	case TypeIDFloat:
		return compareFloats(value.Float, other.Float)
	case TypeIDBoolean:
		return compareOrdered(boolToInt(value.Boolean), boolToInt(other.Boolean))
	case TypeIDString:
		return compareOrdered(value.Str, other.Str)
	case TypeIDTime:
		if comp := compareOrdered(value.Time.Unix(), other.Time.Unix()); comp != 0 {
			return comp
		}
		return compareOrdered(value.Time.Nanosecond(), other.Time.Nanosecond())
	case TypeIDDuration:
		return compareOrdered(value.Duration, other.Duration)
	case TypeIDList:
		for i := 0; i < len(value.List) && i < len(other.List); i++ {
			if comp := value.List[i].Compare(other.List[i]); comp != 0 {
				return comp
			}
		}
		return compareOrdered(len(value.List), len(other.List))
	default:
		panic("impossible, type switch bug")
	}
}

func compareOrdered[T ~int | ~int64 | ~string](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (value Value) asFloat() float64 {
	if value.TypeID == TypeIDInt {
		return float64(value.Int)
	}
	return value.Float
}

// NaN sorts before every other float so that the ordering stays total.
func compareFloats(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return -1
	case bNaN:
		return 1
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// String returns the display text of the value. It's also the text the default filter matches against.
func (value Value) String() string {
	builder := &strings.Builder{}
	value.append(builder)
	return builder.String()
}

func (value Value) append(builder *strings.Builder) {
	switch value.TypeID {
	case TypeIDNull:

	case TypeIDInt:
		builder.WriteString(strconv.Itoa(value.Int))

	case TypeIDFloat:
		builder.WriteString(strconv.FormatFloat(value.Float, 'f', -1, 64))

	case TypeIDBoolean:
		builder.WriteString(strconv.FormatBool(value.Boolean))

	case TypeIDString:
		builder.WriteString(value.Str)

	case TypeIDTime:
		builder.WriteString(value.Time.Format(time.RFC3339))

	case TypeIDDuration:
		builder.WriteString(value.Duration.String())

	case TypeIDList:
		for i, v := range value.List {
			v.append(builder)
			if i != len(value.List)-1 {
				builder.WriteString(", ")
			}
		}

	default:
		panic("impossible, type switch bug")
	}
}
