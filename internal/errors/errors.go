package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure into one of the client-facing categories.
type Kind int

const (
	// KindInternal is any failure that is not part of the public taxonomy.
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

// Status returns the HTTP status code for the kind.
func (k Kind) Status() int {
	switch k {
	case KindValidation:
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

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Locations a field error can point at.
const (
	LocationBody  = "body"
	LocationQuery = "query"
	LocationPath  = "path"
)

// FieldError describes a problem with a single request field.
type FieldError struct {
	Field    string   `json:"field"`
	Location string   `json:"location"`
	Messages []string `json:"messages"`
}

// ErrorResponse represents the error envelope returned to clients.
type ErrorResponse struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	Status  int          `json:"status"`
}

// Error is a domain error carrying its taxonomy kind.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status for the error.
func (e *Error) StatusCode() int {
	return e.Kind.Status()
}

// ToErrorResponse converts an Error to the wire envelope.
func (e *Error) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Message: e.Message,
		Errors:  e.Fields,
		Status:  e.StatusCode(),
	}
}

// Validation returns a 400 error, optionally listing offending fields.
func Validation(message string, fields ...FieldError) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// Unauthorized returns a 401 error.
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// Forbidden returns a 403 error.
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// NotFound returns a 404 error.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Conflict returns a 409 error naming the field whose uniqueness was violated.
func Conflict(field string, cause error) *Error {
	return &Error{
		Kind:    KindConflict,
		Message: "Validation Error",
		Fields: []FieldError{{
			Field:    field,
			Location: LocationBody,
			Messages: []string{fmt.Sprintf("%q already exists", field)},
		}},
		Err: cause,
	}
}

// KindOf returns the kind of err, or KindInternal when err is not a domain error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// MapErrorToHTTP maps any error to the envelope sent to clients.
// Errors outside the taxonomy never leak their message.
func MapErrorToHTTP(err error) ErrorResponse {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.ToErrorResponse()
	}
	return ErrorResponse{
		Message: "internal server error",
		Status:  http.StatusInternalServerError,
	}
}
