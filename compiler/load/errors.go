package load

import (
	"errors"
	"strings"
)

// ErrMalformedDiagram indicates that the diagram document could not be parsed.
var ErrMalformedDiagram = errors.New("load: malformed diagram")

// ParseError is returned for documents that cannot be turned into records.
type ParseError struct {
	Page    string // page name (if applicable)
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("load: parse error")
	if e.Page != "" {
		b.WriteString(" on page ")
		b.WriteString(e.Page)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches ErrMalformedDiagram.
func (e *ParseError) Is(target error) bool {
	return target == ErrMalformedDiagram
}

func newParseError(page, message string, cause error) *ParseError {
	return &ParseError{Page: page, Message: message, Cause: cause}
}

// IsParseError reports whether the error is a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
