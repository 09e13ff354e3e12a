package render

import "fmt"

// RenderErrorType represents the type of rendering error.
type RenderErrorType int

const (
	// UndefinedVariable indicates a placeholder references a key missing from the context.
	UndefinedVariable RenderErrorType = iota
	// UnknownFilter indicates a placeholder uses a filter that does not exist.
	UnknownFilter
	// InvalidSyntax indicates malformed placeholder, comment or block syntax.
	InvalidSyntax
	// Cancelled indicates rendering stopped because the context was cancelled.
	Cancelled
)

// String returns the string representation of the error type.
func (t RenderErrorType) String() string {
	switch t {
	case UndefinedVariable:
		return "UndefinedVariable"
	case UnknownFilter:
		return "UnknownFilter"
	case InvalidSyntax:
		return "InvalidSyntax"
	case Cancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// RenderError represents a template rendering error with detailed context.
type RenderError struct {
	// Type is the error type.
	Type RenderErrorType
	// Message is the error message.
	Message string
	// Expr is the offending placeholder text, if any.
	Expr string
	// Line is the line number where the error occurred (1-indexed, 0 if unknown).
	Line int
	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	switch {
	case e.Line > 0 && e.Expr != "":
		return fmt.Sprintf("line %d: %s (expression: %s)", e.Line, e.Message, e.Expr)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	case e.Expr != "":
		return fmt.Sprintf("%s (expression: %s)", e.Message, e.Expr)
	default:
		return e.Message
	}
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *RenderError) Unwrap() error {
	return e.Cause
}

func newRenderError(typ RenderErrorType, message, expr string, line int) *RenderError {
	return &RenderError{
		Type:    typ,
		Message: message,
		Expr:    expr,
		Line:    line,
	}
}
