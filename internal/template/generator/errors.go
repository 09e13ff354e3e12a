package generator

import "fmt"

// GeneratorErrorType categorizes generator errors.
type GeneratorErrorType int

const (
	// GeneratorInvalidOptions indicates GenerateOptions are incomplete.
	GeneratorInvalidOptions GeneratorErrorType = iota
	// GeneratorDestinationNotFound indicates no project root placeholder
	// directory could be identified in the template root.
	GeneratorDestinationNotFound
	// GeneratorDestinationExists indicates the destination exists and
	// overwriting was not allowed.
	GeneratorDestinationExists
	// GeneratorRenderFailed indicates a path or file body failed to render.
	GeneratorRenderFailed
	// GeneratorIOFailed indicates a filesystem read, write, create or delete failed.
	GeneratorIOFailed
	// GeneratorPathError indicates an invalid or unsafe path was encountered.
	GeneratorPathError
	// GeneratorCancelled indicates the context was cancelled mid-run.
	GeneratorCancelled
)

// String returns the string representation of the error type.
func (t GeneratorErrorType) String() string {
	switch t {
	case GeneratorInvalidOptions:
		return "InvalidOptions"
	case GeneratorDestinationNotFound:
		return "DestinationNotFound"
	case GeneratorDestinationExists:
		return "DestinationExists"
	case GeneratorRenderFailed:
		return "RenderFailed"
	case GeneratorIOFailed:
		return "IOFailed"
	case GeneratorPathError:
		return "PathError"
	case GeneratorCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// GeneratorError represents generator-specific errors.
type GeneratorError struct {
	// Type categorizes the error.
	Type GeneratorErrorType
	// Message is the error message.
	Message string
	// File is the template-relative or output path related to the error (if applicable).
	File string
	// Cause is the underlying error (if any).
	Cause error
}

// Error implements the error interface.
func (e *GeneratorError) Error() string {
	if e.File != "" {
		if e.Cause != nil {
			return fmt.Sprintf("%s (file: %s): %v", e.Message, e.File, e.Cause)
		}
		return fmt.Sprintf("%s (file: %s)", e.Message, e.File)
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}

	return e.Message
}

// Unwrap returns the underlying cause error for error unwrapping.
func (e *GeneratorError) Unwrap() error {
	return e.Cause
}

// newGeneratorError creates a new GeneratorError.
func newGeneratorError(typ GeneratorErrorType, message, file string, cause error) *GeneratorError {
	return &GeneratorError{
		Type:    typ,
		Message: message,
		File:    file,
		Cause:   cause,
	}
}
