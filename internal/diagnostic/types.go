package diagnostic

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"flexmap/internal/common"
)

// Stable diagnostic codes.
const (
	CodeUnmappedElement     = "unmapped_element"
	CodeUnmappedAttribute   = "unmapped_attribute"
	CodeInvalidValue        = "invalid_value"
	CodeUnresolvedReference = "unresolved_reference"
	CodeInvalidOption       = "invalid_option"
	CodeUnknownPackage      = "unknown_package"
	CodeContainmentConflict = "containment_conflict"
	CodeSyntaxError         = "syntax_error"
)

// Diagnostics holds the diagnostics of one load in emission order.
type Diagnostics struct {
	Items []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Line is the 1-based source line, 0 when unknown.
	Line int
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message string, line int) {
	d.Items = append(d.Items, Diagnostic{
		Severity: DiagnosticError,
		Code:     code,
		Message:  message,
		Line:     line,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message string, line int, suggestions ...string) {
	d.Items = append(d.Items, Diagnostic{
		Severity:    DiagnosticWarning,
		Code:        code,
		Message:     message,
		Line:        line,
		Suggestions: suggestions,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message string, line int) {
	d.Items = append(d.Items, Diagnostic{
		Severity: DiagnosticInfo,
		Code:     code,
		Message:  message,
		Line:     line,
	})
}

// All returns a copy of every diagnostic in emission order.
func (d *Diagnostics) All() []Diagnostic {
	return append([]Diagnostic(nil), d.Items...)
}

// Errors returns the error diagnostics in emission order.
func (d *Diagnostics) Errors() []Diagnostic {
	return d.filter(DiagnosticError)
}

// Warnings returns the warning diagnostics in emission order.
func (d *Diagnostics) Warnings() []Diagnostic {
	return d.filter(DiagnosticWarning)
}

func (d *Diagnostics) filter(s DiagnosticSeverity) []Diagnostic {
	var result []Diagnostic

	for _, item := range d.Items {
		if item.Severity == s {
			result = append(result, item)
		}
	}

	return result
}

// WithCode returns the diagnostics carrying the given code.
func (d *Diagnostics) WithCode(code string) []Diagnostic {
	var result []Diagnostic

	for _, item := range d.Items {
		if item.Code == code {
			result = append(result, item)
		}
	}

	return result
}

// Len returns the number of diagnostics.
func (d *Diagnostics) Len() int {
	return len(d.Items)
}

// Reset drops every diagnostic.
func (d *Diagnostics) Reset() {
	d.Items = nil
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	for _, item := range d.Items {
		if item.Severity == DiagnosticError {
			return true
		}
	}

	return false
}

// HasWarnings returns true if there are any warning diagnostics.
func (d *Diagnostics) HasWarnings() bool {
	return len(d.Warnings()) > 0
}

// Merge appends the diagnostics of other.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Items = append(d.Items, other.Items...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return !d.HasErrors()
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors() {
		parts = append(parts, e.String())
	}

	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if d.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", d.Line, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	return msg
}
