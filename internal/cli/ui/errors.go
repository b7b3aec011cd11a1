package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	runerrors "github.com/conduit-lang/docxmlext/internal/errors"
)

// ErrorLevel represents the severity of a message
type ErrorLevel int

const (
	ErrorLevelError ErrorLevel = iota
	ErrorLevelWarning
	ErrorLevelInfo
)

// ErrorOptions configures message formatting
type ErrorOptions struct {
	Level        ErrorLevel
	Context      string
	Problem      string
	Consequence  string
	Suggestions  []string
	HelpCommands []string
	NoColor      bool
}

// FormatError renders a message with an optional context header,
// suggestions and help commands.
//
// Example output:
//
//	❌ TYPE NOT FOUND: Acme.Fo
//	   No type 'Acme.Fo' in the loaded manifests.
//
//	   Did you mean: Acme.Foo?
//
//	   → Get help: docxmlext inspect --help
func FormatError(opts ErrorOptions) string {
	var b strings.Builder

	headerColor, bodyColor, symbol := levelStyle(opts.Level)
	if opts.NoColor {
		headerColor.DisableColor()
		bodyColor.DisableColor()
	}

	if opts.Context != "" {
		headerColor.Fprintf(&b, "%s %s\n", symbol, strings.ToUpper(opts.Context))
		if opts.Problem != "" {
			bodyColor.Fprintf(&b, "   %s\n", opts.Problem)
		}
	} else {
		headerColor.Fprintf(&b, "%s %s\n", symbol, opts.Problem)
	}

	if opts.Consequence != "" {
		b.WriteString("\n")
		bodyColor.Fprintf(&b, "   %s\n", opts.Consequence)
	}

	if len(opts.Suggestions) > 0 {
		b.WriteString("\n")
		yellow := color.New(color.FgYellow)
		if opts.NoColor {
			yellow.DisableColor()
		}
		yellow.Fprintf(&b, "   Did you mean: %s?\n", strings.Join(opts.Suggestions, ", "))
	}

	if len(opts.HelpCommands) > 0 {
		b.WriteString("\n")
		cyan := color.New(color.FgCyan)
		if opts.NoColor {
			cyan.DisableColor()
		}
		for _, cmd := range opts.HelpCommands {
			cyan.Fprintf(&b, "   → %s\n", cmd)
		}
	}

	return b.String()
}

func levelStyle(level ErrorLevel) (header, body *color.Color, symbol string) {
	switch level {
	case ErrorLevelWarning:
		return color.New(color.FgYellow, color.Bold), color.New(color.FgYellow), "⚠️"
	case ErrorLevelInfo:
		return color.New(color.FgCyan, color.Bold), color.New(color.FgCyan), "ℹ️"
	default:
		return color.New(color.FgRed, color.Bold), color.New(color.FgRed), "❌"
	}
}

// WriteError writes a formatted error message to the writer
func WriteError(w io.Writer, opts ErrorOptions) {
	fmt.Fprint(w, FormatError(opts))
}

// FormatSuccess creates a success message
func FormatSuccess(message string, noColor bool) string {
	green := color.New(color.FgGreen, color.Bold)
	if noColor {
		green.DisableColor()
	}
	return green.Sprintf("✓ %s", message)
}

// WriteSuccess writes a success message to the writer
func WriteSuccess(w io.Writer, message string, noColor bool) {
	fmt.Fprintln(w, FormatSuccess(message, noColor))
}

// RunError renders a failed run phase. The problem line carries the code
// and the offending path; the cause goes into the consequence.
func RunError(re *runerrors.RunError, noColor bool) string {
	problem := fmt.Sprintf("%s %s", re.Code, re.Message)
	if re.Path != "" {
		problem += ": " + re.Path
	}

	opts := ErrorOptions{
		Level:   ErrorLevelError,
		Context: phaseContext(re.Phase),
		Problem: problem,
		NoColor: noColor,
	}
	if re.Err != nil {
		opts.Consequence = re.Err.Error()
	}

	switch re.Code {
	case runerrors.ErrDocLoad, runerrors.ErrMetadataLoad:
		opts.HelpCommands = []string{"Get help: docxmlext extend --help"}
	case runerrors.ErrAugment:
		opts.HelpCommands = []string{"Inspect the record: docxmlext inspect <manifest> <identifier>"}
	case runerrors.ErrConfig:
		opts.HelpCommands = []string{"View config: cat docxmlext.yaml", "Get help: docxmlext --help"}
	}
	return FormatError(opts)
}

func phaseContext(phase string) string {
	switch phase {
	case runerrors.PhaseLoad:
		return "LOAD FAILED"
	case runerrors.PhaseAugment:
		return "AUGMENT FAILED"
	case runerrors.PhaseSave:
		return "SAVE FAILED"
	case runerrors.PhaseConfig:
		return "CONFIGURATION ERROR"
	default:
		return "ERROR"
	}
}

// TypeNotFoundError reports an identifier whose owning type is not in the
// loaded manifests.
func TypeNotFoundError(typeName string, suggestions []string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:       ErrorLevelWarning,
		Context:     "TYPE NOT FOUND",
		Problem:     fmt.Sprintf("No type '%s' in the loaded manifests.", typeName),
		Suggestions: suggestions,
		HelpCommands: []string{
			"Add a referenced manifest: --reference <manifest>",
			"Get help: docxmlext inspect --help",
		},
		NoColor: noColor,
	})
}

// Warning creates a standardized warning message
func Warning(message string, suggestions []string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:       ErrorLevelWarning,
		Problem:     message,
		Suggestions: suggestions,
		NoColor:     noColor,
	})
}

// Info creates a standardized info message
func Info(message string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:   ErrorLevelInfo,
		Problem: message,
		NoColor: noColor,
	})
}
