package dataset

import "time"

// IsMissing reports whether a value is the missing marker.
func IsMissing(v interface{}) bool {
	return v == nil
}

// AsFloat converts a scalar value to float64 for numeric computation.
// Supports the integer and float widths that the extractors produce.
func AsFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int16:
		return float64(n), true
	case int8:
		return float64(n), true
	case uint64:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint8:
		return float64(n), true
	default:
		return 0, false
	}
}

// IsNumericColumn reports whether every non-missing value in the slice is
// numeric and at least one non-missing value exists.
func IsNumericColumn(values []interface{}) bool {
	seen := false
	for _, v := range values {
		if IsMissing(v) {
			continue
		}
		if _, ok := AsFloat(v); !ok {
			return false
		}
		seen = true
	}
	return seen
}

// IsTextColumn reports whether every non-missing value in the slice is a
// string and at least one non-missing value exists.
func IsTextColumn(values []interface{}) bool {
	seen := false
	for _, v := range values {
		if IsMissing(v) {
			continue
		}
		if _, ok := v.(string); !ok {
			return false
		}
		seen = true
	}
	return seen
}

// IsTime reports whether the value is a timestamp.
func IsTime(v interface{}) bool {
	_, ok := v.(time.Time)
	return ok
}
