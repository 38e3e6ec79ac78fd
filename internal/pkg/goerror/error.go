// Package goerror carries a client-facing message and an HTTP mapping alongside a Go error.
package goerror

import (
	"fmt"
	"net/http"
)

// Type is the broad category of an Error.
type Type int

const (
	TypeServer Type = iota
	TypeBusiness
	TypeValidation
)

var typeNames = map[Type]string{
	TypeServer:     "ERROR_TYPE_SERVER",
	TypeBusiness:   "ERROR_TYPE_BUSINESS",
	TypeValidation: "ERROR_TYPE_VALIDATION",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "ERROR_TYPE_UNKNOWN"
}

// Code selects the HTTP status of an Error.
type Code int

const (
	CodeInternal Code = iota
	CodeInvalidFormat
	CodeInvalidInput
	CodeNotFound
	CodeTooManyRequest
	CodeUnauthorized
	CodeTimeout
	// CodeMissingIdentity: the caller did not name the user or device.
	CodeMissingIdentity
	// CodeMethodNotAllowed: the endpoint does not support the operation.
	CodeMethodNotAllowed
)

var codes = map[Code]struct {
	name   string
	status int
}{
	CodeInternal:         {"ERROR_CODE_INTERNAL", http.StatusInternalServerError},
	CodeInvalidFormat:    {"ERROR_CODE_INVALID_FORMAT", http.StatusBadRequest},
	CodeInvalidInput:     {"ERROR_CODE_INVALID_INPUT", http.StatusUnprocessableEntity},
	CodeNotFound:         {"ERROR_CODE_NOT_FOUND", http.StatusNotFound},
	CodeTooManyRequest:   {"ERROR_CODE_TOO_MANY_REQUESTS", http.StatusTooManyRequests},
	CodeUnauthorized:     {"ERROR_CODE_UNAUTHORIZED", http.StatusUnauthorized},
	CodeTimeout:          {"ERROR_CODE_TIMEOUT", http.StatusRequestTimeout},
	CodeMissingIdentity:  {"ERROR_CODE_MISSING_IDENTITY", http.StatusBadRequest},
	CodeMethodNotAllowed: {"ERROR_CODE_METHOD_NOT_ALLOWED", http.StatusMethodNotAllowed},
}

// String returns the code name. Unknown codes read as internal.
func (c Code) String() string {
	if v, ok := codes[c]; ok {
		return v.name
	}
	return codes[CodeInternal].name
}

// Error is the error type understood by the HTTP layer. msg is shown to clients,
// err is the cause kept for errors.Is and logs.
type Error struct {
	err     error
	msg     string
	errType Type
	code    Code
	fields  map[string]string
}

func (e *Error) Error() string {
	switch {
	case e.err != nil:
		return e.err.Error()
	case e.msg != "":
		return e.msg
	default:
		return e.errType.String()
	}
}

// String includes every attribute, for logs.
func (e *Error) String() string {
	return fmt.Sprintf("%s/%s: %q (cause: %v)", e.errType, e.code, e.msg, e.err)
}

func (e *Error) Msg() string   { return e.msg }
func (e *Error) Type() Type    { return e.errType }
func (e *Error) Code() Code    { return e.code }
func (e *Error) Unwrap() error { return e.err }

// Fields maps request field names to messages. Nil unless built by NewInvalidInput.
func (e *Error) Fields() map[string]string { return e.fields }

// StatusCode returns the HTTP status for the error code.
func (e *Error) StatusCode() int {
	if v, ok := codes[e.code]; ok {
		return v.status
	}
	return http.StatusInternalServerError
}

const (
	msgInvalidBody = "Invalid request body"
	msgValidation  = "Validation error"
)

// NewServer hides err behind a generic 500 message.
func NewServer(err error) error {
	return &Error{err: err, msg: "Internal server error", errType: TypeServer, code: CodeInternal}
}

func NewBusiness(msg string, code Code) error {
	return &Error{msg: msg, errType: TypeBusiness, code: code}
}

// NewBusinessWrap is NewBusiness with err as the cause.
func NewBusinessWrap(err error, msg string, code Code) error {
	return &Error{err: err, msg: msg, errType: TypeBusiness, code: code}
}

// NewInvalidFormat reports an unreadable request. The first msg, if any, replaces the default message.
func NewInvalidFormat(msgs ...string) error {
	msg := msgInvalidBody
	if len(msgs) > 0 {
		msg = msgs[0]
	}
	return NewInvalidFormatWrap(nil, msg)
}

// NewInvalidFormatWrap is NewInvalidFormat with err as the cause.
func NewInvalidFormatWrap(err error, msg string) error {
	return &Error{err: err, msg: msg, errType: TypeValidation, code: CodeInvalidFormat}
}

// NewInvalidInput reports well-formed input that breaks a rule (422). kv holds
// field/message pairs; an odd count is treated as a malformed body (400).
func NewInvalidInput(err error, kv ...string) error {
	if len(kv)%2 != 0 {
		return NewInvalidFormatWrap(err, msgInvalidBody)
	}

	e := &Error{err: err, msg: msgValidation, errType: TypeValidation, code: CodeInvalidInput}
	if len(kv) > 0 {
		e.fields = make(map[string]string, len(kv)/2)
		for i := 0; i < len(kv); i += 2 {
			e.fields[kv[i]] = kv[i+1]
		}
	}
	return e
}
