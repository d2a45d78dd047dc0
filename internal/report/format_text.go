package report

import (
	"fmt"
	"strings"
)

// FormatText renders r for a terminal: one line per finding, errors first,
// then the sorts with their finiteness, then the counts.
func FormatText(r *Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "File: %s\n", r.File)
	for _, f := range r.Errors {
		writeFinding(&b, f)
	}
	for _, f := range r.Warnings {
		writeFinding(&b, f)
	}

	if len(r.Sorts) > 0 {
		b.WriteString("\nSorts:\n")
		for _, s := range r.Sorts {
			writeSort(&b, s)
		}
	}

	fmt.Fprintf(&b, "\n%d errors, %d warnings, %d sorts\n",
		r.Summary.ErrorCount, r.Summary.WarningCount, r.Summary.SortCount)
	return b.String()
}

func writeFinding(b *strings.Builder, f Finding) {
	loc := f.Location.Path
	if loc == "" {
		loc = "$"
	}
	if f.Location.Line > 0 {
		loc = fmt.Sprintf("%s (line %d)", loc, f.Location.Line)
	}
	fmt.Fprintf(b, "  [%s] %s: %s at %s\n", f.Rule, f.Severity, f.Message, loc)
}

func writeSort(b *strings.Builder, s SortInfo) {
	finite := "infinite or unknown"
	if s.Finite {
		finite = "finite"
	}
	fmt.Fprintf(b, "  %-7s %s (%s)\n", s.Origin, s.Sort, finite)
}
