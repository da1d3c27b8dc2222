// Package apperror defines the error kinds the order and payment services
// return. Controllers map a Kind to an HTTP status.
package apperror

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindNotFound         Kind = "not_found"
	KindPermissionDenied Kind = "permission_denied"
	KindValidation       Kind = "validation"
	KindConflict         Kind = "conflict"
	KindGatewayTransport Kind = "gateway_transport"
	KindGatewayBusiness  Kind = "gateway_business"
	KindActivation       Kind = "activation_failed"
)

type Error struct {
	Kind    Kind
	Message string
	// Code is the machine readable failure code (gateway status, transport code).
	Code string
	// Fields holds per-field validation messages.
	Fields map[string]string
	Err    error
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

func NotFound(what string) *Error {
	return &Error{Kind: KindNotFound, Message: what + " not found"}
}

func PermissionDenied(message string) *Error {
	return &Error{Kind: KindPermissionDenied, Message: message}
}

func Validation(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func GatewayTransport(code string, err error) *Error {
	return &Error{Kind: KindGatewayTransport, Message: "payment gateway unreachable", Code: code, Err: err}
}

func GatewayBusiness(code string) *Error {
	return &Error{Kind: KindGatewayBusiness, Message: "payment gateway rejected the request", Code: code}
}

func Activation(err error) *Error {
	return &Error{Kind: KindActivation, Message: "operation failed", Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
