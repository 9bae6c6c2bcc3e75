package application

import (
	"errors"
	"fmt"
	"net/http"
)

// Client-facing messages for failures whose detail must stay server-side.
const (
	MessageDispatchFailed = "failed to send application"
	MessageInternal       = "internal server error"
	MessageSent           = "application sent"
)

// ValidationError is a rejected submission: a missing required field or a
// file part that breaks its type, size or count constraint.
// Its message is shown to the client.
type ValidationError struct {
	Err     error
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// DispatchError means the mail provider did not accept the notification.
type DispatchError struct {
	Err error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch application: %v", e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// UnexpectedError wraps any other fault, such as a storage read failure.
type UnexpectedError struct {
	Err error
	Op  string
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UnexpectedError) Unwrap() error {
	return e.Err
}

// statusRule maps one error kind to a status code and a client message.
type statusRule struct {
	match func(err error) (message string, ok bool)
	code  int
}

// statusTable is evaluated top to bottom; the first match wins.
var statusTable = []statusRule{
	{
		code: http.StatusBadRequest,
		match: func(err error) (string, bool) {
			var verr *ValidationError
			if errors.As(err, &verr) {
				return verr.Message, true
			}
			return "", false
		},
	},
	{
		code: http.StatusInternalServerError,
		match: func(err error) (string, bool) {
			var derr *DispatchError
			return MessageDispatchFailed, errors.As(err, &derr)
		},
	},
	{
		code: http.StatusInternalServerError,
		match: func(err error) (string, bool) {
			var uerr *UnexpectedError
			return MessageInternal, errors.As(err, &uerr)
		},
	},
}

// StatusCode maps any error to an HTTP status and a client-facing message.
// It is total: errors outside the table are a 500 with a generic message.
func StatusCode(err error) (int, string) {
	for _, rule := range statusTable {
		if msg, ok := rule.match(err); ok {
			return rule.code, msg
		}
	}
	return http.StatusInternalServerError, MessageInternal
}
