package kreuzberg

import "github.com/stackvity/kreuzberg-go/internal/kreuzbergtypes"

// The error taxonomy lives in internal/kreuzbergtypes for the same
// import-cycle reason as the result/config types; re-exported here by alias
// and function wrapper so existing call sites (errors.Is/As-friendly
// construction, Wrap/Wrapf, KindOf) are unaffected.
type (
	ErrorKind              = kreuzbergtypes.ErrorKind
	ValidationError        = kreuzbergtypes.ValidationError
	ParsingError           = kreuzbergtypes.ParsingError
	OcrError               = kreuzbergtypes.OcrError
	MissingDependencyError = kreuzbergtypes.MissingDependencyError
	MemoryLimitError       = kreuzbergtypes.MemoryLimitError
	SystemError            = kreuzbergtypes.SystemError
)

const (
	ErrorKindValidation        = kreuzbergtypes.ErrorKindValidation
	ErrorKindParsing           = kreuzbergtypes.ErrorKindParsing
	ErrorKindOCR               = kreuzbergtypes.ErrorKindOCR
	ErrorKindMissingDependency = kreuzbergtypes.ErrorKindMissingDependency
	ErrorKindMemoryLimit       = kreuzbergtypes.ErrorKindMemoryLimit
	ErrorKindSystem            = kreuzbergtypes.ErrorKindSystem
)

// NewValidationError builds a ValidationError with optional structured context.
func NewValidationError(message string, context map[string]any) *ValidationError {
	return kreuzbergtypes.NewValidationError(message, context)
}

// NewParsingError builds a ParsingError wrapping the underlying decode failure.
func NewParsingError(message, mimeType string, err error) *ParsingError {
	return kreuzbergtypes.NewParsingError(message, mimeType, err)
}

// NewOcrError builds an OcrError for the named backend.
func NewOcrError(message, backend string, err error) *OcrError {
	return kreuzbergtypes.NewOcrError(message, backend, err)
}

// NewMissingDependencyError builds a MissingDependencyError naming the absent dependency.
func NewMissingDependencyError(dependency string, err error) *MissingDependencyError {
	return kreuzbergtypes.NewMissingDependencyError(dependency, err)
}

// NewMemoryLimitError builds a MemoryLimitError.
func NewMemoryLimitError(requested, limit int64) *MemoryLimitError {
	return kreuzbergtypes.NewMemoryLimitError(requested, limit)
}

// NewSystemError builds a SystemError wrapping err unchanged.
func NewSystemError(message string, err error) *SystemError {
	return kreuzbergtypes.NewSystemError(message, err)
}

// Wrap adds context to err while preserving its chain for errors.Is/As.
func Wrap(err error, message string) error { return kreuzbergtypes.Wrap(err, message) }

// Wrapf adds formatted context to err while preserving its chain.
func Wrapf(err error, format string, args ...any) error {
	return kreuzbergtypes.Wrapf(err, format, args...)
}

// Is is a re-export of errors.Is for callers that only import this package.
func Is(err, target error) bool { return kreuzbergtypes.Is(err, target) }

// As is a re-export of errors.As for callers that only import this package.
func As(err error, target any) bool { return kreuzbergtypes.As(err, target) }

// KindOf extracts the ErrorKind of err if it (or something in its chain)
// implements the internal error-taxonomy interface, returning ("", false) otherwise.
func KindOf(err error) (ErrorKind, bool) { return kreuzbergtypes.KindOf(err) }
