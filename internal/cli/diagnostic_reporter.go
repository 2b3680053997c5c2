package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/toyz/autobind/internal/errors"
)

// DiagnosticReporter provides user-friendly error reporting and diagnostics
type DiagnosticReporter struct {
	verbose bool
	out     io.Writer
	errOut  io.Writer
}

// NewDiagnosticReporter creates a new diagnostic reporter writing to the
// standard streams
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return NewDiagnosticReporterTo(verbose, os.Stdout, os.Stderr)
}

// NewDiagnosticReporterTo creates a reporter with explicit output streams
func NewDiagnosticReporterTo(verbose bool, out, errOut io.Writer) *DiagnosticReporter {
	return &DiagnosticReporter{
		verbose: verbose,
		out:     out,
		errOut:  errOut,
	}
}

// ReportWarning provides user-friendly warning reporting
func (r *DiagnosticReporter) ReportWarning(message string, suggestions ...string) {
	orange := color.New(color.FgYellow, color.Bold)
	orange.Fprint(r.errOut, "! ")
	fmt.Fprintf(r.errOut, "%s\n", message)
	for _, s := range suggestions {
		fmt.Fprintf(r.errOut, "  - %s\n", s)
	}
}

// ReportError provides comprehensive error reporting with user-friendly output
func (r *DiagnosticReporter) ReportError(err error) {
	if err == nil {
		return
	}

	red := color.New(color.FgRed, color.Bold)
	red.Fprintf(r.errOut, "\nERROR: ")
	fmt.Fprintf(r.errOut, "autobind failed\n\n")

	var multi *errors.MultipleErrors
	if stderrors.As(err, &multi) {
		for i, e := range multi.Errors {
			if len(multi.Errors) > 1 {
				fmt.Fprintf(r.errOut, "[%d/%d]\n", i+1, len(multi.Errors))
			}
			r.reportBindError(e)
		}
		return
	}

	var bindErr errors.BindError
	if stderrors.As(err, &bindErr) {
		r.reportBindError(bindErr)
		return
	}

	fmt.Fprintf(r.errOut, "Message: %s\n\n", err.Error())
}

// reportBindError reports a BindError with full context and suggestions
func (r *DiagnosticReporter) reportBindError(err errors.BindError) {
	title := errorTitle(err.ErrorCode())
	fmt.Fprintf(r.errOut, "Type: %s\n", title)
	fmt.Fprintf(r.errOut, "%s\n", strings.Repeat("-", len(title)+6))
	fmt.Fprintf(r.errOut, "Message: %s\n\n", err.Error())

	if loc := err.Location(); !loc.IsEmpty() {
		fmt.Fprintf(r.errOut, "Location: %s\n\n", loc)
	}

	if ctx := err.Context(); len(ctx) > 0 {
		r.printContext(ctx)
	}

	if suggestions := err.Suggestions(); len(suggestions) > 0 {
		r.printSuggestions(suggestions)
	}

	r.printAdditionalHelp(err.ErrorCode())

	if r.verbose {
		r.printErrorChain(err)
	}
}

func errorTitle(code errors.ErrorCode) string {
	switch code {
	case errors.ConfigErrorCode:
		return "Configuration Error"
	case errors.GenerationErrorCode:
		return "Code Generation Error"
	case errors.BindingFailureCode:
		return "Binding Failure"
	case errors.ReadinessTimeoutCode:
		return "Readiness Timeout"
	case errors.FileSystemErrorCode:
		return "File System Error"
	case errors.SyntaxErrorCode:
		return "Scene Syntax Error"
	case errors.ValidationErrorCode:
		return "Validation Error"
	case errors.TemplateErrorCode:
		return "Template Error"
	default:
		return "Unknown Error"
	}
}

// printContext prints context information in a readable format
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	fmt.Fprintf(r.errOut, "Context:\n")

	importantKeys := []string{"owner", "field", "stage", "target_file", "path"}
	printed := make(map[string]bool)

	for _, key := range importantKeys {
		if value, exists := context[key]; exists {
			fmt.Fprintf(r.errOut, "   %s: %v\n", formatContextKey(key), value)
			printed[key] = true
		}
	}

	var rest []string
	for key := range context {
		if !printed[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		fmt.Fprintf(r.errOut, "   %s: %v\n", formatContextKey(key), context[key])
	}

	fmt.Fprintf(r.errOut, "\n")
}

// formatContextKey converts snake_case keys to Title Case
func formatContextKey(key string) string {
	parts := strings.Split(key, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

// printSuggestions prints actionable suggestions
func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(r.errOut, "Suggestions:\n")

	for i, suggestion := range suggestions {
		lines := strings.Split(suggestion, "\n")
		fmt.Fprintf(r.errOut, "   %d. %s\n", i+1, lines[0])
		for _, line := range lines[1:] {
			if strings.TrimSpace(line) != "" {
				fmt.Fprintf(r.errOut, "      %s\n", line)
			}
		}
	}

	fmt.Fprintf(r.errOut, "\n")
}

// printAdditionalHelp prints additional help based on the error code
func (r *DiagnosticReporter) printAdditionalHelp(code errors.ErrorCode) {
	switch code {
	case errors.ConfigErrorCode:
		fmt.Fprintf(r.errOut, "Rule Set Help:\n")
		fmt.Fprintf(r.errOut, "  - Run 'autobind config show' to inspect the active rules\n")
		fmt.Fprintf(r.errOut, "  - Run 'autobind config regenerate' to restore the defaults\n\n")
	case errors.SyntaxErrorCode:
		fmt.Fprintf(r.errOut, "Scene Syntax Help:\n")
		fmt.Fprintf(r.errOut, "  - Nodes are declared as: Name [ \"pkg/path.Type\", ... ] { children }\n")
		fmt.Fprintf(r.errOut, "  - Owners are marked with: @owner(mode = AutoSuffix, class = \"ClassName\")\n\n")
	case errors.ReadinessTimeoutCode:
		fmt.Fprintf(r.errOut, "Readiness Help:\n")
		fmt.Fprintf(r.errOut, "  - Check that 'autobind compile' succeeds\n")
		fmt.Fprintf(r.errOut, "  - Run 'autobind generate' again to re-queue the owner\n\n")
	}
}

// printErrorChain prints the cause chain in verbose mode
func (r *DiagnosticReporter) printErrorChain(err error) {
	cause := stderrors.Unwrap(err)
	if cause == nil {
		return
	}
	fmt.Fprintf(r.errOut, "Error Chain:\n")
	for level := 1; cause != nil; level++ {
		fmt.Fprintf(r.errOut, "  %d. %s\n", level, cause.Error())
		cause = stderrors.Unwrap(cause)
	}
	fmt.Fprintf(r.errOut, "\n")
}

// Debug prints debug information when verbose mode is enabled
func (r *DiagnosticReporter) Debug(format string, args ...interface{}) {
	if r.verbose {
		fmt.Fprintf(r.errOut, "[DEBUG] "+format+"\n", args...)
	}
}

// ReportSuccess reports a generate run with summary information
func (r *DiagnosticReporter) ReportSuccess(summary GenerationSummary) {
	green := color.New(color.FgGreen, color.Bold)
	green.Fprintf(r.out, "\nCode generation completed\n")
	fmt.Fprintf(r.out, "=========================\n\n")

	fmt.Fprintf(r.out, "Processed %d owner(s)\n", summary.OwnersProcessed)
	if summary.Generated > 0 {
		fmt.Fprintf(r.out, "Generated %d owner(s)\n", summary.Generated)
	}
	if summary.ManualCreated > 0 {
		fmt.Fprintf(r.out, "Created %d manual file(s)\n", summary.ManualCreated)
	}
	if summary.Skipped > 0 {
		fmt.Fprintf(r.out, "Skipped %d owner(s) without bindings\n", summary.Skipped)
	}
	if summary.Queued > 0 {
		fmt.Fprintf(r.out, "Queued %d owner(s) for binding after the next build\n", summary.Queued)
	}
	if len(summary.Failures) > 0 {
		fmt.Fprintf(r.out, "Failed: %s\n", strings.Join(summary.Failures, ", "))
	}

	if len(summary.GeneratedFiles) > 0 {
		fmt.Fprintf(r.out, "\nGenerated files:\n")
		for _, file := range summary.GeneratedFiles {
			fmt.Fprintf(r.out, "  - %s\n", file)
		}
	}
}
