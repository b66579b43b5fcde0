package validate

import (
	"fmt"
	"strings"
)

// Severity classifies a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Diagnostic is a single finding about a declaration.
type Diagnostic struct {
	Severity Severity
	Path     string // e.g. "com.example.Foo#bar(I)V"
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Severity, d.Path, d.Message)
}

// Reporter receives diagnostics as they are produced. An error from Report
// aborts the pass.
type Reporter interface {
	Report(d Diagnostic) error
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(d Diagnostic) error

func (f ReporterFunc) Report(d Diagnostic) error { return f(d) }

// Result collects diagnostics. It is itself a Reporter.
type Result struct {
	Diagnostics []Diagnostic
}

func (r *Result) Report(d Diagnostic) error {
	r.Diagnostics = append(r.Diagnostics, d)
	return nil
}

func (r *Result) addError(path, message string) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Severity: SeverityError, Path: path, Message: message})
}

func (r *Result) addWarning(path, message string) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Severity: SeverityWarning, Path: path, Message: message})
}

// Errors returns only error-severity diagnostics.
func (r *Result) Errors() []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			out = append(out, d)
		}
	}
	return out
}

// IsValid is true when no error-severity diagnostic was recorded.
func (r *Result) IsValid() bool {
	return len(r.Errors()) == 0
}

func (r *Result) Error() string {
	errs := r.Errors()
	if len(errs) == 0 {
		return ""
	}
	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.String())
	}
	return strings.Join(msgs, "\n")
}

// Forward sends every collected diagnostic to rep, stopping on the first failure.
func (r *Result) Forward(rep Reporter) error {
	for _, d := range r.Diagnostics {
		if err := rep.Report(d); err != nil {
			return fmt.Errorf("reporting diagnostic: %w", err)
		}
	}
	return nil
}
