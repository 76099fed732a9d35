package ho

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Location is where a parameter's value is placed in the outgoing request.
type Location string

// Parameter locations.
const (
	LocationPath  Location = "path"
	LocationQuery Location = "query"
	LocationBody  Location = "body"
)

// ParamType is a parameter's declared type. Values supplied at call time
// are coerced to it before the request is built.
type ParamType string

// Parameter types. TypeAny performs no coercion.
const (
	TypeString  ParamType = "string"
	TypeNumber  ParamType = "number"
	TypeInteger ParamType = "integer"
	TypeBoolean ParamType = "boolean"
	TypeAny     ParamType = "any"
)

func (t ParamType) valid() bool {
	switch t {
	case TypeString, TypeNumber, TypeInteger, TypeBoolean, TypeAny:
		return true
	}
	return false
}

// ParameterSpec describes one parameter of an operation. Name is unique
// within the operation; Key is the wire name the value is emitted under
// (the query key or path placeholder, usually equal to Name). Default is
// set only when Required is false.
type ParameterSpec struct {
	Name     string
	Key      string
	Location Location
	Type     ParamType
	Required bool
	Default  any
}

// coerce converts v to the parameter's declared type. Numeric results are
// normalized to int64/float64 so downstream formatting is uniform.
func coerce(name string, t ParamType, v any) (any, error) {
	switch t {
	case TypeAny:
		return v, nil
	case TypeString:
		return formatValue(v), nil
	case TypeInteger:
		switch val := v.(type) {
		case int:
			return int64(val), nil
		case int64:
			return val, nil
		case float64:
			if val != math.Trunc(val) {
				return nil, &TypeMismatchError{Name: name, Type: t, Value: v}
			}
			return int64(val), nil
		case string:
			n, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
			if err != nil {
				return nil, &TypeMismatchError{Name: name, Type: t, Value: v}
			}
			return n, nil
		}
	case TypeNumber:
		switch val := v.(type) {
		case int:
			return float64(val), nil
		case int64:
			return float64(val), nil
		case float64:
			return val, nil
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
			if err != nil {
				return nil, &TypeMismatchError{Name: name, Type: t, Value: v}
			}
			return f, nil
		}
	case TypeBoolean:
		switch val := v.(type) {
		case bool:
			return val, nil
		case int:
			if val == 0 || val == 1 {
				return val == 1, nil
			}
		case string:
			switch strings.ToLower(strings.TrimSpace(val)) {
			case "true", "1":
				return true, nil
			case "false", "0":
				return false, nil
			}
		}
	}
	return nil, &TypeMismatchError{Name: name, Type: t, Value: v}
}

// formatValue renders a bound value for URL substitution or query
// assembly.
func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
