package types

import (
	"errors"
	"fmt"
)

// =============================================================================
// ERROR TAXONOMY
// =============================================================================
//
// Every failure that crosses a package boundary is an *Error of one of two
// kinds. Callers match broadly with errors.Is(err, ErrDomain) or narrowly with
// ErrNotFound / ErrProcessing.

// ErrDomain is the root of the taxonomy.
var ErrDomain = errors.New("commerce error")

// ErrNotFound matches errors for logical names that resolve to no file.
var ErrNotFound = errors.New("file not found")

// ErrProcessing matches errors raised while reading, writing or computing.
var ErrProcessing = errors.New("data processing error")

// Kind classifies a domain error.
type Kind int

const (
	// KindNotFound is a logical name that resolves to no physical path.
	KindNotFound Kind = iota + 1

	// KindProcessing covers malformed data, missing columns, bad arguments
	// and any wrapped I/O failure.
	KindProcessing
)

// String returns the kind name used in error messages.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindProcessing:
		return "processing"
	default:
		return "unknown"
	}
}

// Error is the concrete domain error.
type Error struct {
	// Kind is the error category.
	Kind Kind

	// Op is the operation that failed (e.g. "read", "write", "search").
	Op string

	// Path is the logical name or physical path involved, if any.
	Path string

	// Msg is a human-readable description.
	Msg string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Msg
	if e.Path != "" {
		msg = fmt.Sprintf("%s %s: %s", e.Op, e.Path, msg)
	} else if e.Op != "" {
		msg = fmt.Sprintf("%s: %s", e.Op, msg)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes the cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the taxonomy sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrDomain:
		return true
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrProcessing:
		return e.Kind == KindProcessing
	}
	return false
}

// NotFound builds a KindNotFound error.
func NotFound(op, path, msg string) *Error {
	return &Error{Kind: KindNotFound, Op: op, Path: path, Msg: msg}
}

// Processingf builds a KindProcessing error with a formatted message.
func Processingf(op, path, format string, args ...any) *Error {
	return &Error{Kind: KindProcessing, Op: op, Path: path, Msg: fmt.Sprintf(format, args...)}
}

// WrapProcessing wraps err as a KindProcessing error. Errors already in the
// taxonomy are returned unchanged so their kind survives.
func WrapProcessing(op, path, msg string, err error) error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		return err
	}
	return &Error{Kind: KindProcessing, Op: op, Path: path, Msg: msg, Err: err}
}
