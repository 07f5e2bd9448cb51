package deploy

import (
	"fmt"
	"strings"
)

// DecodeErrorKind identifies the decode stage failure variant.
type DecodeErrorKind int

const (
	ErrTruncatedData DecodeErrorKind = iota
	ErrInvalidOffset
	ErrSelectorMismatch
	ErrMalformedHex
	ErrMalformedJSON
	ErrShapeMismatch
)

func (k DecodeErrorKind) String() string {
	switch k {
	case ErrTruncatedData:
		return "truncated data"
	case ErrInvalidOffset:
		return "invalid offset"
	case ErrSelectorMismatch:
		return "selector mismatch"
	case ErrMalformedHex:
		return "malformed hex"
	case ErrMalformedJSON:
		return "malformed json"
	case ErrShapeMismatch:
		return "shape mismatch"
	default:
		return fmt.Sprintf("decode error(%d)", int(k))
	}
}

// DecodeError is a typed decode failure. Detail names the offending field or
// slot so callers can produce a specific user-facing message.
type DecodeError struct {
	Kind   DecodeErrorKind
	Detail string
	cause  error
}

func newDecodeError(kind DecodeErrorKind, detail string, cause error) *DecodeError {
	return &DecodeError{Kind: kind, Detail: detail, cause: cause}
}

func (e *DecodeError) Error() string {
	msg := e.Kind.String()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

func (e *DecodeError) Unwrap() error {
	return e.cause
}

// Is matches DecodeErrors by kind, so callers can use errors.Is with a bare
// &DecodeError{Kind: ...} sentinel.
func (e *DecodeError) Is(target error) bool {
	other, ok := target.(*DecodeError)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// UnsupportedFunctionError reports a call whose function is not deployToken.
type UnsupportedFunctionError struct {
	Name string
}

func (e *UnsupportedFunctionError) Error() string {
	return fmt.Sprintf("unsupported function: %s", e.Name)
}

// MissingFieldsError accumulates every structurally required field absent
// from a decoded call, so all problems surface together.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}
