// Package report holds the outcome of checking one declaration document:
// the findings raised against it and the sorts of the specification it
// declares.
package report

import "fmt"

// Severity separates findings that make a document invalid (undeclared
// sorts, role conflicts, ill-typed equations) from advisory ones such as
// alias cycles or sorts declared finite without proof.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// String returns "error" or "warning".
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// MarshalText writes the string form. The --format json output of
// dataspec-check and FormatJSONAll rely on it for the "severity" field.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses "error" or "warning", so a saved JSON report can
// be read back into a Report.
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	default:
		return fmt.Errorf("unknown severity %q", text)
	}
	return nil
}

// Location points at a declaration inside a document. Path uses the
// "$.list[i].field" form of the semantic passes; Line is the source line
// of that node when the loader could index it.
type Location struct {
	File string `json:"file"`
	Path string `json:"path"` // e.g. "$.constructors[2].sort"
	Line int    `json:"line,omitempty"`
}

// Finding is one problem found in a document.
type Finding struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Location Location `json:"location"`
}

// NewFinding returns a finding of the given severity.
func NewFinding(rule string, severity Severity, message string, loc Location) Finding {
	return Finding{Rule: rule, Severity: severity, Message: message, Location: loc}
}

// NewError returns an error finding.
func NewError(rule, message string, loc Location) Finding {
	return NewFinding(rule, SeverityError, message, loc)
}

// NewWarning returns a warning finding.
func NewWarning(rule, message string, loc Location) Finding {
	return NewFinding(rule, SeverityWarning, message, loc)
}

// Where a listed sort comes from: declared as a sort, declared as a
// context sort, or only reached through the closure of built-in theories.
const (
	OriginUser    = "user"
	OriginContext = "context"
	OriginSystem  = "system"
)

// SortInfo describes one sort of the checked specification. Finite is true
// only when the sort is certainly finite.
type SortInfo struct {
	Sort   string `json:"sort"`
	Origin string `json:"origin"`
	Finite bool   `json:"finite"`
}

// Summary counts the entries of a report.
type Summary struct {
	ErrorCount   int `json:"error_count"`
	WarningCount int `json:"warning_count"`
	SortCount    int `json:"sort_count"`
}

// Report is the result of checking a single document.
type Report struct {
	File        string     `json:"file"`
	SchemaValid bool       `json:"schema_valid"`
	Errors      []Finding  `json:"errors"`
	Warnings    []Finding  `json:"warnings"`
	Sorts       []SortInfo `json:"sorts"`
	Summary     Summary    `json:"summary"`
}

// NewReport returns an empty report for file. Its slices are non-nil so
// they encode as empty JSON arrays.
func NewReport(file string) *Report {
	return &Report{
		File:     file,
		Errors:   []Finding{},
		Warnings: []Finding{},
		Sorts:    []SortInfo{},
	}
}

// AddFinding files f under its severity and updates the counts.
func (r *Report) AddFinding(f Finding) {
	switch f.Severity {
	case SeverityError:
		r.Errors = append(r.Errors, f)
		r.Summary.ErrorCount++
	case SeverityWarning:
		r.Warnings = append(r.Warnings, f)
		r.Summary.WarningCount++
	}
}

// AddSort records a sort of the checked specification.
func (r *Report) AddSort(info SortInfo) {
	r.Sorts = append(r.Sorts, info)
	r.Summary.SortCount++
}

// HasErrors reports whether any error was found.
func (r *Report) HasErrors() bool {
	return r.Summary.ErrorCount > 0
}

// HasWarnings reports whether any warning was found.
func (r *Report) HasWarnings() bool {
	return r.Summary.WarningCount > 0
}

// HasRule reports whether an error with the given rule was found.
func (r *Report) HasRule(rule string) bool {
	for _, f := range r.Errors {
		if f.Rule == rule {
			return true
		}
	}
	return false
}
