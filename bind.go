package endpoint

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Bind returns a Schema that binds string-keyed input onto T's fields and
// validates the result. It is meant for query strings and route parameters,
// where every value arrives as text and numeric fields need coercion.
//
// Accepted inputs: url.Values, map[string][]string, map[string]string,
// map[string]any (values stringified), or nil. Fields are matched by the
// `query` tag, falling back to the lowercased field name. Supported field
// types: string, bool, all int/uint widths, floats, time.Time, pointers to
// those, and []string for repeated keys.
//
// Example:
//
//	type ListQuery struct {
//	    Limit int      `query:"limit" validate:"min=1,max=100"`
//	    Tags  []string `query:"tag"`
//	}
//
//	schema := endpoint.Bind[ListQuery]()
func Bind[T any]() Schema[T] {
	return SchemaFunc[T](func(v any) (T, error) {
		var out T

		values, err := stringValues(v)
		if err != nil {
			return out, asValidationError(err)
		}

		rv := reflect.ValueOf(&out).Elem()
		if rv.Kind() == reflect.Struct {
			if err := bindFields(rv, values); err != nil {
				return out, err
			}
		}

		if err := checkStruct(&out); err != nil {
			return out, err
		}
		return out, nil
	})
}

func stringValues(v any) (url.Values, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case url.Values:
		return t, nil
	case map[string][]string:
		return url.Values(t), nil
	case map[string]string:
		out := make(url.Values, len(t))
		for k, val := range t {
			out[k] = []string{val}
		}
		return out, nil
	case map[string]any:
		out := make(url.Values, len(t))
		for k, val := range t {
			out[k] = []string{fmt.Sprint(val)}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("cannot bind %T", v)
	}
}

func bindFields(rv reflect.Value, values url.Values) error {
	rt := rv.Type()
	var issues []Issue

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		fv := rv.Field(i)
		if !fv.CanSet() {
			continue
		}

		name := field.Tag.Get("query")
		if name == "-" {
			continue
		}
		if name == "" {
			name = strings.ToLower(field.Name)
		}

		vals, ok := values[name]
		if !ok || len(vals) == 0 {
			continue
		}

		if isStringSlice(fv) {
			fv.Set(reflect.ValueOf(append([]string(nil), vals...)))
			continue
		}

		if err := setField(fv, vals[0]); err != nil {
			issues = append(issues, Issue{Path: name, Message: err.Error()})
		}
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

func isStringSlice(fv reflect.Value) bool {
	return fv.Kind() == reflect.Slice && fv.Type().Elem().Kind() == reflect.String
}

var timeType = reflect.TypeOf(time.Time{})

// setField assigns a string value to a field, coercing to the field's type.
func setField(fv reflect.Value, value string) error {
	if fv.Kind() == reflect.Pointer {
		if fv.IsNil() {
			fv.Set(reflect.New(fv.Type().Elem()))
		}
		return setField(fv.Elem(), value)
	}

	if fv.Type() == timeType {
		t, err := parseTime(value)
		if err != nil {
			return fmt.Errorf("must be a valid timestamp")
		}
		fv.Set(reflect.ValueOf(t))
		return nil
	}

	switch fv.Kind() {
	case reflect.String:
		fv.SetString(value)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("must be a boolean")
		}
		fv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, fv.Type().Bits())
		if err != nil {
			return fmt.Errorf("must be an integer")
		}
		fv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, fv.Type().Bits())
		if err != nil {
			return fmt.Errorf("must be a non-negative integer")
		}
		fv.SetUint(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(value, fv.Type().Bits())
		if err != nil {
			return fmt.Errorf("must be a number")
		}
		fv.SetFloat(n)
	default:
		return fmt.Errorf("unsupported field type %s", fv.Type())
	}
	return nil
}

func parseTime(s string) (time.Time, error) {
	layouts := []string{time.RFC3339Nano, time.RFC3339, time.DateTime, time.DateOnly}
	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
