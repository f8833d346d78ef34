package validators

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Validator checks a candidate value and returns its normalized form. A nil
// normalized value with a nil error means "unset".
type Validator interface {
	Validate(value any) (any, error)
}

// ValidatorFunc adapts a function into a Validator.
type ValidatorFunc func(value any) (any, error)

// Validate calls the underlying function.
func (fn ValidatorFunc) Validate(value any) (any, error) {
	return fn(value)
}

// Number accepts integer and floating point values inside the closed interval
// [Min, Max] and normalizes them to float64. Values are never clamped.
type Number struct {
	Path string
	Min  float64
	Max  float64
}

var _ Validator = Number{}

// NewNumber returns a Number validator for the attribute at path.
func NewNumber(path string, lo, hi float64) Number {
	return Number{Path: path, Min: lo, Max: hi}
}

// Validate implements Validator.
func (n Number) Validate(value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	f, ok := toFloat64(value)
	if !ok {
		return nil, wrongType(n.Path, value, "expected an int or float")
	}
	if math.IsNaN(f) || f < n.Min || f > n.Max {
		return nil, outOfRange(n.Path, value, fmt.Sprintf("expected a number in the interval [%s, %s]", formatFloat(n.Min), formatFloat(n.Max)))
	}
	return f, nil
}

// Describe returns the human-readable constraint, matching the wording used
// in the generated attribute documentation.
func (n Number) Describe() string {
	return fmt.Sprintf("An int or float in the interval [%s, %s]", formatFloat(n.Min), formatFloat(n.Max))
}

// ParseNumber converts textual input (flags, prompts) into a float64. Blank
// input yields nil so callers can treat it as "leave unset".
func ParseNumber(raw string) (any, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil, &ValueError{Value: raw, Reason: "not a number", Kind: ErrWrongType}
	}
	return f, nil
}

func toFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
