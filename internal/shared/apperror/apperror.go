// Package apperror classifies errors so that transports can map them to status codes.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Kind is the error category visible to clients.
type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

// Status maps a Kind to its HTTP status code.
func (k Kind) Status() int {
	switch k {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified error. Fields holds per-field validation messages.
type Error struct {
	Kind   Kind
	Msg    string
	Fields map[string][]string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Msg == "" {
		return e.Err.Error()
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// New returns a classified error with a client-facing message.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf is New with formatting.
func Newf(kind Kind, format string, args ...any) *Error {
	return New(kind, fmt.Sprintf(format, args...))
}

func BadRequest(msg string) *Error { return New(KindBadRequest, msg) }
func NotFound(msg string) *Error   { return New(KindNotFound, msg) }
func Conflict(msg string) *Error   { return New(KindConflict, msg) }
func Forbidden(msg string) *Error  { return New(KindForbidden, msg) }

// Invalid builds a BadRequest error carrying field-level problems.
func Invalid(fields map[string][]string) *Error {
	return &Error{Kind: KindBadRequest, Msg: "validation failed", Fields: fields}
}

// KindOf returns the Kind of the first classified error in err's chain.
// Unclassified errors are internal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// FieldErrors accumulates per-field messages.
type FieldErrors map[string][]string

// Add records a problem for field.
func (f FieldErrors) Add(field, problem string) {
	f[field] = append(f[field], problem)
}

// Err returns nil when no problems were recorded.
func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	return Invalid(f)
}

// FromValidationError converts validator errors into a field-level BadRequest.
// Any other binding error becomes a plain BadRequest.
func FromValidationError(err error) *Error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return &Error{Kind: KindBadRequest, Msg: "invalid request", Err: err}
	}

	problems := FieldErrors{}
	for _, fe := range ve {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			problems.Add(field, "This field is required")
		case "min", "gte":
			problems.Add(field, "Ensure this value is greater than or equal to "+fe.Param())
		case "max", "lte":
			problems.Add(field, "Ensure this value is less than or equal to "+fe.Param())
		case "oneof":
			problems.Add(field, "Must be one of: "+fe.Param())
		case "email":
			problems.Add(field, "Enter a valid email address")
		default:
			problems.Add(field, "Invalid value provided")
		}
	}
	return Invalid(problems)
}

// UseJSONFieldNames makes gin's validator report json tag names.
func UseJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
}
