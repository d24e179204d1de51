package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindNotFound Kind = iota + 1
	KindValidation
	KindDuplicateAttribute
	KindMissingAttributeValue
	KindInvalidSku
	KindAttributeLimitExceeded
	KindUnauthorized
)

// ErrTokenExpired marks an expired bearer token; the authentication
// middleware turns it into an immediate 401.
var ErrTokenExpired = errors.New("jwt_token_expired")

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Message: entity + " not found"}
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func DuplicateAttribute(name string) *Error {
	return &Error{Kind: KindDuplicateAttribute, Message: fmt.Sprintf("attribute %q already exists", name)}
}

func MissingAttributeValue() *Error {
	return &Error{Kind: KindMissingAttributeValue, Message: "attribute value must not be blank"}
}

func InvalidSku(msg string) *Error {
	return &Error{Kind: KindInvalidSku, Message: msg}
}

func AttributeLimitExceeded() *Error {
	return &Error{Kind: KindAttributeLimitExceeded, Message: "product already has the maximum number of attributes"}
}

func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

// KindOf unwraps err and reports its domain kind, or 0 for unknown errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// HTTPStatus maps a domain error to the response status used by the
// error-handling middleware. Unknown errors are internal.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation, KindDuplicateAttribute, KindMissingAttributeValue, KindInvalidSku, KindAttributeLimitExceeded:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
