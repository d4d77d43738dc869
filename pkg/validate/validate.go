// Package validate checks a resolved component list before it is handed to
// the layout tool.
//
// [Validator] is the contract for any checker. [Structural] is the built-in
// implementation: it looks at names, corners, chip bounds, pad overlap and
// device classification. It performs no design-rule checking.
package validate

import (
	"github.com/LiixTT/AMS-IO-Agent/pkg/process"
	"github.com/LiixTT/AMS-IO-Agent/pkg/ring"
)

// Severity grades a diagnostic. Only errors fail a report.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic is one finding.
type Diagnostic struct {
	Severity  Severity `json:"severity"`
	Check     string   `json:"check"`
	Component string   `json:"component,omitempty"`
	Message   string   `json:"message"`
}

// Report is the outcome of one validation run.
type Report struct {
	Pass        bool         `json:"pass"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// Errors returns the error diagnostics.
func (r Report) Errors() []Diagnostic { return r.filter(SeverityError) }

// Warnings returns the warning diagnostics.
func (r Report) Warnings() []Diagnostic { return r.filter(SeverityWarning) }

func (r Report) filter(s Severity) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Severity == s {
			out = append(out, d)
		}
	}
	return out
}

// Validator checks a component list produced for node.
type Validator interface {
	Validate(components []ring.Component, node process.Node) Report
}

// newReport builds a report whose Pass reflects the absence of errors.
func newReport(diags []Diagnostic) Report {
	r := Report{Pass: true, Diagnostics: diags}
	if r.Diagnostics == nil {
		r.Diagnostics = []Diagnostic{}
	}
	for _, d := range diags {
		if d.Severity == SeverityError {
			r.Pass = false
			break
		}
	}
	return r
}
