// Package apperr defines the error kinds surfaced at the HTTP boundary.
// Use cases raise a kind on first detection; middleware.ErrorHandler maps it
// to a status code and the structured error body.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error.
type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindNoContent
	KindConflict
	KindPersistence
	KindConfiguration
)

// kindInfo giữ status code và title hiển thị trong ErrorMessage
var kindInfo = map[Kind]struct {
	Status int
	Title  string
}{
	KindInternal:      {http.StatusInternalServerError, "InternalServer"},
	KindBadRequest:    {http.StatusBadRequest, "Badrequest"},
	KindUnauthorized:  {http.StatusUnauthorized, "UnauthorizedAccessException"},
	KindForbidden:     {http.StatusForbidden, "Unauthorized access"},
	KindNotFound:      {http.StatusNotFound, "NotFound"},
	KindNoContent:     {http.StatusNoContent, "NoContent"},
	KindConflict:      {http.StatusConflict, "Conflict"},
	KindPersistence:   {http.StatusInternalServerError, "InternalServer"},
	KindConfiguration: {http.StatusInternalServerError, "InternalServer"},
}

// Status returns the HTTP status code for the kind.
func (k Kind) Status() int {
	return kindInfo[k].Status
}

// Title returns the ErrorMessage value written for the kind.
func (k Kind) Title() string {
	return kindInfo[k].Title
}

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindNoContent:
		return "no_content"
	case KindConflict:
		return "conflict"
	case KindPersistence:
		return "persistence"
	case KindConfiguration:
		return "configuration"
	}
	return "internal"
}

// Error is an error tagged with a Kind and a caller-facing description.
type Error struct {
	Kind        Kind
	Description string
	Err         error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Description, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Description)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error of the given kind.
func New(kind Kind, description string) *Error {
	return &Error{Kind: kind, Description: description}
}

// Wrap creates an Error of the given kind around cause.
func Wrap(kind Kind, cause error, description string) *Error {
	return &Error{Kind: kind, Description: description, Err: cause}
}

func Unauthorized(description string) *Error { return New(KindUnauthorized, description) }
func Forbidden(description string) *Error    { return New(KindForbidden, description) }

// Persistence wraps a backend failure.
func Persistence(cause error) *Error {
	return Wrap(KindPersistence, cause, "a persistence error occurred")
}

// Configuration wraps a configuration failure.
func Configuration(cause error) *Error {
	return Wrap(KindConfiguration, cause, "server configuration error")
}

// KindOf returns the Kind of the first *Error in err's chain,
// or KindInternal when there is none.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// DescriptionOf returns the description carried by err, falling back to
// err.Error() for untyped errors.
func DescriptionOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Description
	}
	return err.Error()
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// StatusOf returns the HTTP status for err. Untyped errors map to 500.
func StatusOf(err error) int {
	return KindOf(err).Status()
}
