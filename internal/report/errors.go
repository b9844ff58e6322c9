package report

import (
	"errors"
	"fmt"
)

// ErrorKind is the machine-readable classification of an analysis failure.
type ErrorKind string

const (
	// KindDocumentParse covers unreadable or corrupt PDF bytes and documents
	// with zero extractable pages.
	KindDocumentParse ErrorKind = "document_parse_error"
	// KindNoTablesFound is returned when the table strategy was selected but
	// the locator found no geometric tables.
	KindNoTablesFound ErrorKind = "no_tables_found"
	// KindInsufficientSeries marks an NLDFT series with fewer than two points.
	// The analysis service downgrades this to absent derived metrics rather
	// than failing the request; the kind exists for callers that invoke the
	// metrics calculator directly.
	KindInsufficientSeries ErrorKind = "insufficient_series"
)

// Error is the structured failure crossing the core boundary. Underlying
// parser errors are wrapped, never surfaced raw.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds a structured error of the given kind wrapping cause, which
// may be nil.
func NewError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// IsKind reports whether err is a structured analysis error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
