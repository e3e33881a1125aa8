package tracking

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a tracking failure so the HTTP layer can pick a status code.
type Kind string

const (
	KindInvalidInput     Kind = "InvalidInput"
	KindStoreUnavailable Kind = "StoreUnavailable"
)

// Error is the structured failure returned by the validator and the tracking store.
type Error struct {
	Kind    Kind
	Message string
	Details map[string]string
	Cause   error
}

// Sentinels for errors.Is; they match any *Error of the same kind.
var (
	ErrInvalidInput     = &Error{Kind: KindInvalidInput}
	ErrStoreUnavailable = &Error{Kind: KindStoreUnavailable}
)

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// HTTPStatus maps the kind onto a response code.
func (e *Error) HTTPStatus() int {
	if e.Kind == KindInvalidInput {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func InvalidInput(msg string, details map[string]string) *Error {
	return &Error{Kind: KindInvalidInput, Message: msg, Details: details}
}

// StoreUnavailable wraps a persistence failure. op names the store call that failed.
func StoreUnavailable(op string, cause error) *Error {
	return &Error{Kind: KindStoreUnavailable, Message: op, Cause: cause}
}

func IsInvalidInput(err error) bool { return errors.Is(err, ErrInvalidInput) }

func IsStoreUnavailable(err error) bool { return errors.Is(err, ErrStoreUnavailable) }
