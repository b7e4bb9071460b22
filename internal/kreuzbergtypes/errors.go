package kreuzbergtypes

import (
	"errors"
	"fmt"
)

// ErrorKind classifies engine errors into the closed taxonomy consumers can
// switch on without type-asserting concrete structs.
type ErrorKind string

const (
	ErrorKindValidation        ErrorKind = "validation"
	ErrorKindParsing           ErrorKind = "parsing"
	ErrorKindOCR               ErrorKind = "ocr"
	ErrorKindMissingDependency ErrorKind = "missing_dependency"
	ErrorKindMemoryLimit       ErrorKind = "memory_limit"
	ErrorKindSystem            ErrorKind = "system"
)

// kreuzbergError is implemented by every error type in the taxonomy.
type kreuzbergError interface {
	error
	Kind() ErrorKind
	Unwrap() error
}

// ValidationError reports a configuration or input value that failed a
// precondition check (e.g. rejected legacy config keys, bad chunk overlap).
type ValidationError struct {
	Message string
	Context map[string]any
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("validation error: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Unwrap() error   { return e.Err }
func (e *ValidationError) Kind() ErrorKind { return ErrorKindValidation }
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// NewValidationError builds a ValidationError with optional structured context.
func NewValidationError(message string, context map[string]any) *ValidationError {
	return &ValidationError{Message: message, Context: context}
}

// ParsingError reports a failure decoding a document's native format.
type ParsingError struct {
	Message  string
	MimeType string
	Err      error
}

func (e *ParsingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parsing error (%s): %s: %v", e.MimeType, e.Message, e.Err)
	}
	return fmt.Sprintf("parsing error (%s): %s", e.MimeType, e.Message)
}

func (e *ParsingError) Unwrap() error   { return e.Err }
func (e *ParsingError) Kind() ErrorKind { return ErrorKindParsing }
func (e *ParsingError) Is(target error) bool {
	_, ok := target.(*ParsingError)
	return ok
}

// NewParsingError builds a ParsingError wrapping the underlying decode failure.
func NewParsingError(message, mimeType string, err error) *ParsingError {
	return &ParsingError{Message: message, MimeType: mimeType, Err: err}
}

// OcrError reports an OCR backend failure (engine missing, recognition failed).
type OcrError struct {
	Message string
	Backend string
	Err     error
}

func (e *OcrError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ocr error (%s): %s: %v", e.Backend, e.Message, e.Err)
	}
	return fmt.Sprintf("ocr error (%s): %s", e.Backend, e.Message)
}

func (e *OcrError) Unwrap() error   { return e.Err }
func (e *OcrError) Kind() ErrorKind { return ErrorKindOCR }
func (e *OcrError) Is(target error) bool {
	_, ok := target.(*OcrError)
	return ok
}

// NewOcrError builds an OcrError for the named backend.
func NewOcrError(message, backend string, err error) *OcrError {
	return &OcrError{Message: message, Backend: backend, Err: err}
}

// MissingDependencyError reports an external tool or library that was not
// found on the host (e.g. tesseract binary, office conversion CLI).
type MissingDependencyError struct {
	Dependency string
	Err        error
}

func (e *MissingDependencyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("missing dependency %q: %v", e.Dependency, e.Err)
	}
	return fmt.Sprintf("missing dependency %q", e.Dependency)
}

func (e *MissingDependencyError) Unwrap() error   { return e.Err }
func (e *MissingDependencyError) Kind() ErrorKind { return ErrorKindMissingDependency }
func (e *MissingDependencyError) Is(target error) bool {
	_, ok := target.(*MissingDependencyError)
	return ok
}

// NewMissingDependencyError builds a MissingDependencyError naming the absent dependency.
func NewMissingDependencyError(dependency string, err error) *MissingDependencyError {
	return &MissingDependencyError{Dependency: dependency, Err: err}
}

// MemoryLimitError reports that processing a document would exceed a
// configured memory budget.
type MemoryLimitError struct {
	LimitBytes int64
	Requested  int64
}

func (e *MemoryLimitError) Error() string {
	return fmt.Sprintf("memory limit exceeded: requested %d bytes, limit %d bytes", e.Requested, e.LimitBytes)
}

func (e *MemoryLimitError) Unwrap() error   { return nil }
func (e *MemoryLimitError) Kind() ErrorKind { return ErrorKindMemoryLimit }
func (e *MemoryLimitError) Is(target error) bool {
	_, ok := target.(*MemoryLimitError)
	return ok
}

// NewMemoryLimitError builds a MemoryLimitError.
func NewMemoryLimitError(requested, limit int64) *MemoryLimitError {
	return &MemoryLimitError{Requested: requested, LimitBytes: limit}
}

// SystemError is an opaque fatal error category (I/O failures, panics
// recovered at a scope boundary) that must propagate unchanged.
type SystemError struct {
	Message string
	Err     error
}

func (e *SystemError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("system error: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("system error: %s", e.Message)
}

func (e *SystemError) Unwrap() error   { return e.Err }
func (e *SystemError) Kind() ErrorKind { return ErrorKindSystem }
func (e *SystemError) Is(target error) bool {
	_, ok := target.(*SystemError)
	return ok
}

// NewSystemError builds a SystemError wrapping err unchanged.
func NewSystemError(message string, err error) *SystemError {
	return &SystemError{Message: message, Err: err}
}

// Wrap adds context to err while preserving its chain for errors.Is/As.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to err while preserving its chain.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is is a re-export of errors.Is for callers that only import this package.
func Is(err, target error) bool { return errors.Is(err, target) }

// As is a re-export of errors.As for callers that only import this package.
func As(err error, target any) bool { return errors.As(err, target) }

// KindOf extracts the ErrorKind of err if it (or something in its chain)
// implements kreuzbergError, returning ("", false) otherwise.
func KindOf(err error) (ErrorKind, bool) {
	var ke kreuzbergError
	if errors.As(err, &ke) {
		return ke.Kind(), true
	}
	return "", false
}
