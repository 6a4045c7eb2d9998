package logger

import (
	"fmt"
	"time"

	"github.com/philipp01105/nlogconf/core"
)

// Field constructors. Records carry these as their context.

func String(key, val string) core.Field {
	return core.Field{Key: key, Type: core.StringType, Str: val}
}

func Int(key string, val int) core.Field {
	return core.Field{Key: key, Type: core.IntType, Int64: int64(val)}
}

func Int64(key string, val int64) core.Field {
	return core.Field{Key: key, Type: core.Int64Type, Int64: val}
}

func Float64(key string, val float64) core.Field {
	return core.Field{Key: key, Type: core.Float64Type, Float64: val}
}

func Bool(key string, val bool) core.Field {
	f := core.Field{Key: key, Type: core.BoolType}
	if val {
		f.Int64 = 1
	}
	return f
}

func Time(key string, val time.Time) core.Field {
	return core.Field{Key: key, Type: core.TimeType, Int64: val.UnixNano()}
}

func Duration(key string, val time.Duration) core.Field {
	return core.Field{Key: key, Type: core.DurationType, Int64: int64(val)}
}

// Err stores err under "error". A nil error gives an empty string.
func Err(err error) core.Field {
	f := core.Field{Key: "error", Type: core.ErrorType}
	if err != nil {
		f.Str = err.Error()
	}
	return f
}

// Stringer stores the result of val.String() at call time.
func Stringer(key string, val fmt.Stringer) core.Field {
	return String(key, val.String())
}

// Any picks a typed field for common value types and stores anything
// else as is. Handlers render untyped values with %v.
func Any(key string, val interface{}) core.Field {
	switch v := val.(type) {
	case string:
		return String(key, v)
	case int:
		return Int(key, v)
	case int64:
		return Int64(key, v)
	case float64:
		return Float64(key, v)
	case bool:
		return Bool(key, v)
	case time.Time:
		return Time(key, v)
	case time.Duration:
		return Duration(key, v)
	case error:
		f := Err(v)
		f.Key = key
		return f
	default:
		return core.Field{Key: key, Type: core.AnyType, Any: val}
	}
}
