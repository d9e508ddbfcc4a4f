// Package apperrors defines the error taxonomy shared by services and
// repositories, and the single table that maps it to HTTP status codes.
package apperrors

import (
	"errors"
	"net/http"
)

// Kind classifies an Error. Handlers never inspect error strings; they
// map the kind through HTTPStatus.
type Kind int

const (
	Validation Kind = iota
	NotFound
	Unauthenticated
	Forbidden
	Conflict
	Internal
)

// Error is the failure type crossing the service boundary. Message is
// user-facing; Err, when set, carries the underlying cause for logs.
type Error struct {
	Kind        Kind
	Message     string
	MissingTags []string // set on strict-reconciliation failures
	Err         error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind of err, defaulting to Internal for errors
// that did not originate in this taxonomy.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// statusByKind is the one dispatch table from taxonomy to HTTP.
var statusByKind = map[Kind]int{
	Validation:      http.StatusBadRequest,
	NotFound:        http.StatusNotFound,
	Unauthenticated: http.StatusUnauthorized,
	Forbidden:       http.StatusForbidden,
	Conflict:        http.StatusConflict,
	Internal:        http.StatusInternalServerError,
}

// HTTPStatus returns the status code for err's kind.
func HTTPStatus(err error) int {
	if code, ok := statusByKind[KindOf(err)]; ok {
		return code
	}
	return http.StatusInternalServerError
}
