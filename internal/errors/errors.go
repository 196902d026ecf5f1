package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// Kind classifies a parse failure.
type Kind string

const (
	// KindNotFound means the backing file, sheet or table is absent. A bulk
	// read skips these; a direct single-table request surfaces them.
	KindNotFound Kind = "NOT_FOUND"
	// KindStructuralParse means the source exists but the expected markers
	// or shape were not found. Never skipped: it indicates an unexpected
	// upstream export format.
	KindStructuralParse Kind = "STRUCTURAL_PARSE"
	// KindAmbiguousMetadata means a metadata guess needed a fallback
	// heuristic. Non-fatal, reported as a warning.
	KindAmbiguousMetadata Kind = "AMBIGUOUS_METADATA"
	// KindInternal covers everything else.
	KindInternal Kind = "INTERNAL"
)

// Error is a classified parse error carrying the source identifier (file,
// sheet or table name) it came from.
type Error struct {
	Kind    Kind   `json:"kind"`
	Source  string `json:"source,omitempty"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Source != "" {
		msg = fmt.Sprintf("%s: %s", e.Source, msg)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode maps the error kind to an HTTP status for the transport layer.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindStructuralParse:
		return http.StatusUnprocessableEntity
	case KindAmbiguousMetadata:
		return http.StatusOK
	default:
		return http.StatusInternalServerError
	}
}

// Render implements the render.Renderer interface for chi/render.
func (e *Error) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode())
	return nil
}

// NotFound builds a NotFound error for the given source.
func NotFound(source, format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Source: source, Message: fmt.Sprintf(format, args...)}
}

// NotFoundWrap wraps an underlying cause (e.g. os.ErrNotExist) as NotFound.
func NotFoundWrap(source string, err error) *Error {
	return &Error{Kind: KindNotFound, Source: source, Message: "source not found", Err: err}
}

// Structural builds a StructuralParse error for the given source.
func Structural(source, format string, args ...any) *Error {
	return &Error{Kind: KindStructuralParse, Source: source, Message: fmt.Sprintf(format, args...)}
}

// StructuralWrap wraps an underlying cause as StructuralParse.
func StructuralWrap(source string, err error) *Error {
	return &Error{Kind: KindStructuralParse, Source: source, Message: "unexpected source structure", Err: err}
}

// Ambiguous builds an AmbiguousMetadata error.
func Ambiguous(source, format string, args ...any) *Error {
	return &Error{Kind: KindAmbiguousMetadata, Source: source, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps an unclassified failure.
func Internal(source string, err error) *Error {
	return &Error{Kind: KindInternal, Source: source, Message: "internal error", Err: err}
}

// KindOf returns the Kind of err, or KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsNotFound reports whether err is a NotFound parse error.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// IsStructural reports whether err is a StructuralParse error.
func IsStructural(err error) bool {
	return KindOf(err) == KindStructuralParse
}
