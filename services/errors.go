package services

import "errors"

// Kind classifies a service failure so handlers can map it to an HTTP status
// without inspecting message text.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindForbidden
	KindConflict
	KindValidation
	KindUnauthorized
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func notFound(msg string) *Error     { return &Error{Kind: KindNotFound, Message: msg} }
func forbidden(msg string) *Error    { return &Error{Kind: KindForbidden, Message: msg} }
func conflict(msg string) *Error     { return &Error{Kind: KindConflict, Message: msg} }
func invalid(msg string) *Error      { return &Error{Kind: KindValidation, Message: msg} }
func unauthorized(msg string) *Error { return &Error{Kind: KindUnauthorized, Message: msg} }

// KindOf returns the failure kind, or KindUnknown for errors that did not
// originate in this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
