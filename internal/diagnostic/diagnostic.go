// Package diagnostic collects structured warnings and errors raised
// while converting a record stream.
//
// Recoverable per-record issues (a rule referencing a field the record
// does not carry) are collected here and surfaced once as an end-of-run
// summary instead of per-occurrence noise.
package diagnostic

import (
	"fmt"
	"strings"
)

// Severity is the severity level of a diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	default:
		return "warning"
	}
}

// Diagnostic is a single collected message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a stable identifier for this class of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Rule names the mapping rule involved, if any.
	Rule string
	// Record is the 1-based input record number, or 0 if not tied to one.
	Record int
}

// String renders the diagnostic on one line.
func (d Diagnostic) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] %s", d.Severity, d.Code, d.Message)

	if d.Rule != "" {
		fmt.Fprintf(&b, " (rule %q)", d.Rule)
	}
	if d.Record > 0 {
		fmt.Fprintf(&b, " (record %d)", d.Record)
	}

	return b.String()
}

// Diagnostics accumulates diagnostics over one run.
type Diagnostics struct {
	Warnings []Diagnostic
	Errors   []Diagnostic
}

// AddWarning records a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, rule string, recordNum int) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  message,
		Rule:     rule,
		Record:   recordNum,
	})
}

// AddError records an error diagnostic.
func (d *Diagnostics) AddError(code, message, rule string, recordNum int) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  message,
		Rule:     rule,
		Record:   recordNum,
	})
}

// HasErrors reports whether any error diagnostics were collected.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Summary renders every collected diagnostic, errors first, one per
// line. Returns "" when nothing was collected.
func (d *Diagnostics) Summary() string {
	if len(d.Errors) == 0 && len(d.Warnings) == 0 {
		return ""
	}

	lines := make([]string, 0, len(d.Errors)+len(d.Warnings))
	for _, diag := range d.Errors {
		lines = append(lines, diag.String())
	}
	for _, diag := range d.Warnings {
		lines = append(lines, diag.String())
	}

	return strings.Join(lines, "\n")
}
