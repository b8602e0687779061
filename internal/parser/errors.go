package parser

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes parse failures.
type ErrorKind string

const (
	KindMissingMarker   ErrorKind = "MISSING_MARKER"
	KindMalformedLine   ErrorKind = "MALFORMED_LINE"
	KindNonNumericToken ErrorKind = "NON_NUMERIC_TOKEN"
	KindEmptyData       ErrorKind = "EMPTY_DATA"
)

// Sentinel errors, one per kind. A *ParseError matches its sentinel with errors.Is.
var (
	ErrMissingMarker   = errors.New("data marker not found")
	ErrMalformedLine   = errors.New("malformed data line")
	ErrNonNumericToken = errors.New("non-numeric token")
	ErrEmptyData       = errors.New("data block has no measurements")
)

// ParseError describes why a data file could not be parsed.
type ParseError struct {
	Kind ErrorKind
	Line int    // 1-based line in the input, 0 when not tied to a line
	Text string // offending line or token
	Err  error  // underlying error, e.g. from strconv
}

func (e *ParseError) Error() string {
	msg := e.sentinel().Error()
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	if e.Text != "" {
		msg = fmt.Sprintf("%s %q", msg, e.Text)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrMalformedLine) and friends match on kind.
func (e *ParseError) Is(target error) bool {
	return target == e.sentinel()
}

func (e *ParseError) sentinel() error {
	switch e.Kind {
	case KindMissingMarker:
		return ErrMissingMarker
	case KindMalformedLine:
		return ErrMalformedLine
	case KindNonNumericToken:
		return ErrNonNumericToken
	case KindEmptyData:
		return ErrEmptyData
	}
	return errors.New(string(e.Kind))
}

// KindOf returns the ErrorKind of err, or "" if err is not a *ParseError.
func KindOf(err error) ErrorKind {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}
