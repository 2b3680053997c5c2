package autobind

import (
	"fmt"
	"strings"
	"text/tabwriter"
)

// Status classifies one binding entry
type Status int

const (
	StatusOK Status = iota
	StatusMissing
	StatusTypeMismatch
)

// String returns the status label used in reports
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusMissing:
		return "Missing"
	case StatusTypeMismatch:
		return "TypeMismatch"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// ReportEntry is the outcome for one field
type ReportEntry struct {
	FieldName string
	Status    Status
	Detail    string
}

// ValidationReport is produced per binder invocation
type ValidationReport struct {
	Owner   string
	Entries []ReportEntry
}

// Counts returns the number of entries per status
func (r ValidationReport) Counts() (ok, missing, mismatched int) {
	for _, entry := range r.Entries {
		switch entry.Status {
		case StatusOK:
			ok++
		case StatusMissing:
			missing++
		case StatusTypeMismatch:
			mismatched++
		}
	}
	return ok, missing, mismatched
}

// OK reports whether every entry bound cleanly
func (r ValidationReport) OK() bool {
	_, missing, mismatched := r.Counts()
	return missing == 0 && mismatched == 0
}

// Failures returns the entries that did not bind
func (r ValidationReport) Failures() []ReportEntry {
	var failures []ReportEntry
	for _, entry := range r.Entries {
		if entry.Status != StatusOK {
			failures = append(failures, entry)
		}
	}
	return failures
}

func (r *ValidationReport) add(field string, status Status, format string, args ...interface{}) {
	r.Entries = append(r.Entries, ReportEntry{
		FieldName: field,
		Status:    status,
		Detail:    fmt.Sprintf(format, args...),
	})
}

// GenerateReport renders a report as aligned text. Entries keep their
// binding order, so equal reports render identically.
func GenerateReport(report ValidationReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Binding report for %s\n", report.Owner)

	if len(report.Entries) == 0 {
		b.WriteString("  (no bindings)\n")
	} else {
		tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
		for _, entry := range report.Entries {
			fmt.Fprintf(tw, "  [%s]\t%s\t%s\n", entry.Status, entry.FieldName, entry.Detail)
		}
		tw.Flush()
	}

	ok, missing, mismatched := report.Counts()
	fmt.Fprintf(&b, "%d ok, %d missing, %d type mismatch\n", ok, missing, mismatched)
	return b.String()
}
