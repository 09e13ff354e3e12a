package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/baasman/cakecutter/internal/config"
	"github.com/baasman/cakecutter/internal/template/descriptor"
	"github.com/baasman/cakecutter/internal/template/generator"
	"github.com/baasman/cakecutter/internal/template/provider"
)

// AppErrorType represents the type of application error.
type AppErrorType int

const (
	// ValidationFailed indicates invalid workflow options.
	ValidationFailed AppErrorType = iota
	// Unsupported indicates a requested feature that is not available.
	Unsupported
)

// AppError represents an application-layer error.
type AppError struct {
	// Type is the error type.
	Type AppErrorType
	// Message is the error message.
	Message string
	// Cause is the underlying error.
	Cause error
}

// Error returns the error message.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new AppError.
func NewAppError(errType AppErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// NewValidationError creates a validation error.
func NewValidationError(message string, cause error) *AppError {
	return NewAppError(ValidationFailed, message, cause)
}

// NewUnsupportedError creates an unsupported feature error.
func NewUnsupportedError(message string) *AppError {
	return NewAppError(Unsupported, message, nil)
}

// ErrorKind is the user-facing category of a failed run.
type ErrorKind int

const (
	// KindOther is any error without a more specific kind.
	KindOther ErrorKind = iota
	// KindSourceConfig is a missing or malformed template configuration file.
	KindSourceConfig
	// KindDestinationNotFound means no project root placeholder directory was found.
	KindDestinationNotFound
	// KindDestinationExists means the destination exists and overwrite is off.
	KindDestinationExists
	// KindRender is a substitution failure in a path or file body.
	KindRender
	// KindIO is a filesystem or path failure while writing the project.
	KindIO
	// KindProvider is a failure to acquire the template source.
	KindProvider
	// KindConfig is an unusable user configuration.
	KindConfig
	// KindInvalidOptions is a rejected flag or option combination.
	KindInvalidOptions
	// KindCancelled means the run was interrupted.
	KindCancelled
)

// String returns the string representation of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindSourceConfig:
		return "template configuration error"
	case KindDestinationNotFound:
		return "destination resolution error"
	case KindDestinationExists:
		return "destination exists"
	case KindRender:
		return "render error"
	case KindIO:
		return "I/O error"
	case KindProvider:
		return "template source error"
	case KindConfig:
		return "configuration error"
	case KindInvalidOptions:
		return "invalid options"
	case KindCancelled:
		return "cancelled"
	default:
		return "error"
	}
}

// ExitCode returns the process exit code for the kind.
func (k ErrorKind) ExitCode() int {
	switch k {
	case KindSourceConfig:
		return 2
	case KindDestinationNotFound:
		return 3
	case KindDestinationExists:
		return 4
	case KindRender:
		return 5
	case KindIO:
		return 6
	case KindProvider:
		return 7
	case KindConfig:
		return 8
	default:
		return 1
	}
}

// Classify returns the kind of err. A nil error is KindOther.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindOther
	}

	var genErr *generator.GeneratorError
	if errors.As(err, &genErr) {
		switch genErr.Type {
		case generator.GeneratorDestinationNotFound:
			return KindDestinationNotFound
		case generator.GeneratorDestinationExists:
			return KindDestinationExists
		case generator.GeneratorRenderFailed:
			return KindRender
		case generator.GeneratorIOFailed, generator.GeneratorPathError:
			return KindIO
		case generator.GeneratorInvalidOptions:
			return KindInvalidOptions
		case generator.GeneratorCancelled:
			return KindCancelled
		}
	}

	var srcErr *descriptor.SourceConfigError
	if errors.As(err, &srcErr) {
		return KindSourceConfig
	}
	var provErr *provider.ProviderError
	if errors.As(err, &provErr) {
		return KindProvider
	}
	var cfgErr *config.ConfigError
	if errors.As(err, &cfgErr) {
		return KindConfig
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return KindInvalidOptions
	}
	if errors.Is(err, context.Canceled) {
		return KindCancelled
	}
	return KindOther
}
