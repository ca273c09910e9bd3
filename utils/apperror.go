package utils

import (
	"errors"
	"fmt"
)

// ErrorKind classifies domain failures by condition.
type ErrorKind string

const (
	KindNotFound   ErrorKind = "NOT_FOUND"
	KindBadRequest ErrorKind = "BAD_REQUEST"
	KindInternal   ErrorKind = "INTERNAL_SERVER_ERROR"
)

// AppError is the error type returned by the service layer.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(format string, args ...interface{}) error {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func BadRequest(format string, args ...interface{}) error {
	return &AppError{Kind: KindBadRequest, Message: fmt.Sprintf(format, args...)}
}

func Internal(format string, args ...interface{}) error {
	return &AppError{Kind: KindInternal, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind ErrorKind, err error, format string, args ...interface{}) error {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of the first AppError in the chain, or KindInternal.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsNotFound reports whether err is a not-found failure.
func IsNotFound(err error) bool {
	return err != nil && KindOf(err) == KindNotFound
}
