package descriptor

import "fmt"

// SourceConfigErrorType categorizes template configuration errors.
type SourceConfigErrorType int

const (
	// SourceConfigNotFound indicates the template configuration file is missing.
	SourceConfigNotFound SourceConfigErrorType = iota
	// SourceConfigUnreadable indicates the file exists but could not be read.
	SourceConfigUnreadable
	// SourceConfigMalformed indicates the file is not valid JSON.
	SourceConfigMalformed
	// SourceConfigNotAnObject indicates the file holds JSON that is not an object.
	SourceConfigNotAnObject
)

// String returns the string representation of the error type.
func (t SourceConfigErrorType) String() string {
	switch t {
	case SourceConfigNotFound:
		return "NotFound"
	case SourceConfigUnreadable:
		return "Unreadable"
	case SourceConfigMalformed:
		return "Malformed"
	case SourceConfigNotAnObject:
		return "NotAnObject"
	default:
		return "Unknown"
	}
}

// SourceConfigError reports a template whose configuration cannot be used.
// Generation is never attempted after one.
type SourceConfigError struct {
	Type    SourceConfigErrorType
	Message string
	// File is the configuration file path.
	File  string
	Cause error
}

// Error implements the error interface.
func (e *SourceConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template configuration %s [%s]: %s: %v", e.File, e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("template configuration %s [%s]: %s", e.File, e.Type, e.Message)
}

// Unwrap returns the underlying cause error.
func (e *SourceConfigError) Unwrap() error {
	return e.Cause
}

func newSourceConfigError(typ SourceConfigErrorType, file, message string, cause error) *SourceConfigError {
	return &SourceConfigError{
		Type:    typ,
		Message: message,
		File:    file,
		Cause:   cause,
	}
}
