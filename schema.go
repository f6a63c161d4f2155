package endpoint

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Schema validates and coerces an unknown value into a typed value, or
// rejects it with field-level detail. The engine behind a Schema is
// pluggable; JSON and Bind cover the common cases, and SchemaFunc adapts
// anything else.
type Schema[T any] interface {
	Parse(v any) (T, error)
}

// SchemaFunc adapts a plain function into a Schema.
type SchemaFunc[T any] func(v any) (T, error)

// Parse implements the Schema interface.
func (f SchemaFunc[T]) Parse(v any) (T, error) { return f(v) }

// None is the slot type for inputs an endpoint does not accept. A slot typed
// None carries no data and its raw input is never read.
type None struct{}

// validatable is the interface for payload-level validation, run after
// schema validation. Compatible with github.com/go-ozzo/ozzo-validation/v4.
type validatable interface {
	Validate() error
}

// Issue is a single field-level validation failure.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError reports why a schema rejected its input. Error returns a
// summary joining every issue; Issues carries the structured detail.
type ValidationError struct {
	Issues []Issue
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		if issue.Path == "" {
			parts[i] = issue.Message
			continue
		}
		parts[i] = issue.Path + ": " + issue.Message
	}
	return strings.Join(parts, "; ")
}

// validate is the shared go-playground/validator instance. Struct info is
// cached by the library, so a single instance is both cheaper and safe for
// concurrent use.
var (
	validateOnce sync.Once
	validateInst *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		// Report issues against json field names, not Go field names.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		validateInst = v
	})
	return validateInst
}

// checkStruct runs tag validation and the Validatable layer on a decoded
// value. Non-struct types skip tag validation.
func checkStruct(v any) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.Struct {
		if err := structValidator().Struct(v); err != nil {
			return translateValidator(err)
		}
	}
	return checkValidatable(v)
}

func checkValidatable(v any) error {
	if c, ok := v.(validatable); ok {
		if err := c.Validate(); err != nil {
			return asValidationError(err)
		}
	}
	return nil
}

// asValidationError wraps an arbitrary validation failure so it classifies
// as a schema rejection. Already-structured errors pass through.
func asValidationError(err error) error {
	if ve, ok := err.(*ValidationError); ok {
		return ve
	}
	return &ValidationError{Issues: []Issue{{Message: err.Error()}}}
}

// translateValidator converts go-playground field errors into a
// ValidationError with human-readable messages.
func translateValidator(err error) error {
	ferrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return asValidationError(err)
	}
	issues := make([]Issue, 0, len(ferrs))
	for _, fe := range ferrs {
		issues = append(issues, Issue{
			Path:    fieldPath(fe),
			Message: fieldMessage(fe),
		})
	}
	return &ValidationError{Issues: issues}
}

// fieldPath strips the root struct name from the namespace, leaving a
// dotted path of json field names.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "uuid":
		return "must be a valid UUID"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "lt":
		return fmt.Sprintf("must be less than %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed on the %q rule", fe.Tag())
	}
}

// JSON returns a Schema that decodes JSON input into T and validates it.
//
// Accepted inputs: []byte, json.RawMessage, string, nil (decodes the zero
// value), or any already-decoded value, which is round-tripped through JSON.
// After decoding, struct tags are checked with go-playground/validator and
// then T's Validate method runs if it has one.
//
// Example:
//
//	type CreateUser struct {
//	    Name  string `json:"name" validate:"required,min=3"`
//	    Email string `json:"email" validate:"required,email"`
//	}
//
//	schema := endpoint.JSON[CreateUser]()
func JSON[T any]() Schema[T] {
	return SchemaFunc[T](func(v any) (T, error) {
		var out T

		raw, err := rawJSON(v)
		if err != nil {
			return out, asValidationError(err)
		}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &out); err != nil {
				return out, asValidationError(err)
			}
		}

		if err := checkStruct(&out); err != nil {
			return out, err
		}
		return out, nil
	})
}

func rawJSON(v any) (json.RawMessage, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		return t, nil
	case []byte:
		return t, nil
	case string:
		return []byte(t), nil
	default:
		return json.Marshal(v)
	}
}
