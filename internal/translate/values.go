package translate

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// toInt64 accepts the integer shapes produced by Go callers, encoding/json,
// yaml and CLI flags.
func toInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}

		return int64(v), true
	case float32:
		return floatToInt64(float64(v))
	case float64:
		return floatToInt64(v)
	case json.Number:
		n, err := v.Int64()

		return n, err == nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)

		return n, err == nil
	default:
		return 0, false
	}
}

func floatToInt64(f float64) (int64, bool) {
	if f != math.Trunc(f) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}

	return int64(f), true
}

// toString renders scalars the way the API expects string parameters.
func toString(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case fmt.Stringer:
		return v.String(), true
	case bool:
		return "", false
	default:
		if n, ok := toInt64(v); ok {
			return strconv.FormatInt(n, 10), true
		}

		return "", false
	}
}

// isAbsent reports whether value is nil or a nil slice. An empty but
// non-nil slice is present and clears the list server side.
func isAbsent(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return true
	case []interface{}:
		return v == nil
	case []string:
		return v == nil
	case []int:
		return v == nil
	default:
		return false
	}
}

// toList accepts []interface{} and typed slices of strings or ints.
func toList(value interface{}) ([]interface{}, bool) {
	switch v := value.(type) {
	case []interface{}:
		return v, true
	case []string:
		out := make([]interface{}, len(v))
		for i, s := range v {
			out[i] = s
		}

		return out, true
	case []int:
		out := make([]interface{}, len(v))
		for i, n := range v {
			out[i] = n
		}

		return out, true
	default:
		return nil, false
	}
}
