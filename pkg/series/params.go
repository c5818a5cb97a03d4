package series

import (
	"math"
	"strconv"
	"strings"
)

// ResolveLength resolves a window length against a series of n samples.
// Unset, non-positive or unparseable lengths mean the whole series.
func ResolveLength(v any, n int) int {
	if l, ok := toInt(v); ok && l > 0 {
		return l
	}
	return n
}

// ResolveOffset coerces an optional shift to an int. Defaults to 0.
func ResolveOffset(v any) int {
	if o, ok := toInt(v); ok {
		return o
	}
	return 0
}

// ResolveDrift coerces an optional lag to a positive int. Defaults to 1.
func ResolveDrift(v any) int {
	if d, ok := toInt(v); ok && d > 0 {
		return d
	}
	return 1
}

func toInt(v any) (int, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case int:
		return x, true
	case int8:
		return int(x), true
	case int16:
		return int(x), true
	case int32:
		return int(x), true
	case int64:
		return int(x), true
	case uint:
		return int(x), true
	case uint8:
		return int(x), true
	case uint16:
		return int(x), true
	case uint32:
		return int(x), true
	case uint64:
		return int(x), true
	case float32:
		return floatToInt(float64(x))
	case float64:
		return floatToInt(x)
	case string:
		s := strings.TrimSpace(x)
		if i, err := strconv.Atoi(s); err == nil {
			return i, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return floatToInt(f)
		}
		return 0, false
	case *int:
		if x == nil {
			return 0, false
		}
		return *x, true
	default:
		return 0, false
	}
}

func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}
