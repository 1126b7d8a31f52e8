package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies compilation failures.
type ErrorKind string

const (
	KindTypeMismatch       ErrorKind = "type_mismatch"
	KindUnsupportedVersion ErrorKind = "unsupported_version"
	KindDeserialization    ErrorKind = "deserialization"
	KindSerialization      ErrorKind = "serialization"
	KindValidation         ErrorKind = "validation"
)

// Sentinels for errors.Is checks against a CompilationError kind.
var (
	ErrTypeMismatch       = &CompilationError{Kind: KindTypeMismatch}
	ErrUnsupportedVersion = &CompilationError{Kind: KindUnsupportedVersion}
	ErrDeserialization    = &CompilationError{Kind: KindDeserialization}
	ErrSerialization      = &CompilationError{Kind: KindSerialization}
	ErrValidation         = &CompilationError{Kind: KindValidation}
)

// CompilationError reports a failure at any pipeline stage. Path is a slash
// separated location inside the input document ("/properties/name").
type CompilationError struct {
	Kind    ErrorKind
	Path    string
	Message string
	Cause   error
}

// NewError builds a CompilationError.
func NewError(kind ErrorKind, path, format string, args ...any) *CompilationError {
	return &CompilationError{Kind: kind, Path: path, Message: fmt.Sprintf(format, args...)}
}

// WrapError builds a CompilationError that keeps cause for errors.As.
func WrapError(kind ErrorKind, path string, cause error, format string, args ...any) *CompilationError {
	err := NewError(kind, path, format, args...)
	err.Cause = cause
	return err
}

func (e *CompilationError) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = strings.ReplaceAll(string(e.Kind), "_", " ")
	}
	if e.Cause != nil {
		msg = msg + ": " + e.Cause.Error()
	}
	if e.Path == "" {
		return msg
	}
	return fmt.Sprintf("%s at %s", msg, e.Path)
}

func (e *CompilationError) Unwrap() error {
	return e.Cause
}

// Is matches any CompilationError of the same kind, so sentinels work with
// errors.Is regardless of path and message.
func (e *CompilationError) Is(target error) bool {
	t, ok := target.(*CompilationError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// ErrorKindOf extracts the kind of a CompilationError anywhere in err's chain.
func ErrorKindOf(err error) (ErrorKind, bool) {
	var compErr *CompilationError
	if errors.As(err, &compErr) {
		return compErr.Kind, true
	}
	return "", false
}

// JoinPath appends segments to a slash separated document path.
func JoinPath(base string, segments ...string) string {
	var b strings.Builder
	b.WriteString(base)
	for _, segment := range segments {
		b.WriteByte('/')
		segment = strings.ReplaceAll(segment, "~", "~0")
		segment = strings.ReplaceAll(segment, "/", "~1")
		b.WriteString(segment)
	}
	return b.String()
}
