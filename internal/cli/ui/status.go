// Package ui formats user-facing CLI output. Structured logs go through
// zap; these helpers cover the short colored status lines the operator
// actually reads.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// ErrorOptions configures a formatted error message.
type ErrorOptions struct {
	Context     string
	Problem     string
	Details     []string
	Suggestions []string
	NoColor     bool
}

// FormatError creates a standardized error message with optional detail
// lines and suggestions.
//
// Example output:
//
//	❌ UPLOAD FAILED: myproj-1.0.zip
//	   403 Forbidden
//
//	   → Check your hosting credentials
func FormatError(opts ErrorOptions) string {
	var b strings.Builder

	headerColor := color.New(color.FgRed, color.Bold)
	bodyColor := color.New(color.FgRed)
	if opts.NoColor {
		headerColor.DisableColor()
		bodyColor.DisableColor()
	}

	if opts.Context != "" {
		headerColor.Fprintf(&b, "❌ %s: %s\n", strings.ToUpper(opts.Context), opts.Problem)
	} else {
		headerColor.Fprintf(&b, "❌ %s\n", opts.Problem)
	}

	for _, d := range opts.Details {
		bodyColor.Fprintf(&b, "   %s\n", d)
	}

	if len(opts.Suggestions) > 0 {
		b.WriteString("\n")
		cyan := color.New(color.FgCyan)
		if opts.NoColor {
			cyan.DisableColor()
		}
		for _, s := range opts.Suggestions {
			cyan.Fprintf(&b, "   → %s\n", s)
		}
	}

	return b.String()
}

// WriteError writes a formatted error message to the writer.
func WriteError(w io.Writer, opts ErrorOptions) {
	fmt.Fprint(w, FormatError(opts))
}

// Success prints a bold green checkmarked message.
func Success(w io.Writer, format string, args ...interface{}) {
	green := color.New(color.FgGreen, color.Bold)
	green.Fprintf(w, "✓ "+format+"\n", args...)
}

// Info prints a cyan informational message.
func Info(w io.Writer, format string, args ...interface{}) {
	cyan := color.New(color.FgCyan)
	cyan.Fprintf(w, format+"\n", args...)
}

// Warn prints a yellow warning message.
func Warn(w io.Writer, format string, args ...interface{}) {
	yellow := color.New(color.FgYellow)
	yellow.Fprintf(w, "⚠️  "+format+"\n", args...)
}
