package datatype

import "math"

// Numeric coerces any numeric kind to float64 so Integer and Decimal values
// compare by numeric value rather than representation.
func Numeric(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	default:
		return 0, false
	}
}

// isIntegral reports whether the value is an integer kind, or a float whose
// fractional part is zero.
func isIntegral(value any) bool {
	switch v := value.(type) {
	case float64:
		return v == math.Trunc(v)
	case float32:
		f := float64(v)
		return f == math.Trunc(f)
	}
	_, ok := Numeric(value)
	return ok
}
