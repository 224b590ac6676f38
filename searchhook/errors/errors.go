package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

type ErrorKind string

const (
	ErrMalformedKey        ErrorKind = "malformed_key"
	ErrUnknownOperatorPair ErrorKind = "unknown_operator_pair"
	ErrOperandArity        ErrorKind = "invalid_operand_arity"
	ErrUnresolvedPath      ErrorKind = "unresolved_path"
	ErrSchema              ErrorKind = "schema"
	ErrSQL                 ErrorKind = "sql"
	ErrIO                  ErrorKind = "io"
	ErrConfig              ErrorKind = "config"
)

type Error struct {
	Kind    ErrorKind
	Message string
	Key     string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	base := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Key != "" {
		base = fmt.Sprintf("%s (key=%s)", base, e.Key)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", base, e.Cause)
	}
	return base
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func New(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Wrap(kind ErrorKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// MalformedKey reports a filter key that carries none of the valid operator suffixes.
func MalformedKey(key string, valid []string) *Error {
	return &Error{
		Kind:    ErrMalformedKey,
		Key:     key,
		Message: fmt.Sprintf("no operator suffix matched; valid operators: %s", strings.Join(valid, ", ")),
	}
}

func UnknownOperatorPair(operator, combinator string) *Error {
	return &Error{
		Kind:    ErrUnknownOperatorPair,
		Message: fmt.Sprintf("no builder registered for operator %q with combinator %q", operator, combinator),
	}
}

func OperandArity(operator, msg string) *Error {
	return &Error{Kind: ErrOperandArity, Message: fmt.Sprintf("%s: %s", operator, msg)}
}

func UnresolvedPath(key, segment string) *Error {
	return &Error{
		Kind:    ErrUnresolvedPath,
		Key:     key,
		Message: fmt.Sprintf("segment %q matches no field or relation", segment),
	}
}

func SchemaError(msg string) *Error {
	return &Error{Kind: ErrSchema, Message: msg}
}

// WithKey annotates err with the filter key it came from. An *Error is copied
// with Key set; a wrapper around one is wrapped again so its context survives.
// Errors that carry no *Error are returned unchanged.
func WithKey(err error, key string) error {
	if e, ok := err.(*Error); ok {
		cp := *e
		cp.Key = key
		return &cp
	}
	var inner *Error
	if !stderrors.As(err, &inner) {
		return err
	}
	return &Error{Kind: inner.Kind, Message: "apply filter", Key: key, Cause: err}
}

func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
