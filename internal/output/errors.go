package output

import (
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/fatih/color"

	"github.com/propuestas-project/propctl/internal/api"
)

// Exit code constants
const (
	ExitSuccess         = 0
	ExitGeneral         = 1
	ExitUsageError      = 2
	ExitAPIError        = 3
	ExitConfigError     = 4
	ExitAuthError       = 5
	ExitValidationError = 6
)

// CLIError is a structured error with user-facing context
type CLIError struct {
	Summary    string
	Detail     string
	Suggestion string
	// Fields lists per-field validation messages, rendered one per line
	Fields   map[string]string
	ExitCode int
}

// Error implements the error interface, returning the summary
func (e *CLIError) Error() string {
	return e.Summary
}

// FromError converts err into a CLIError. API failures are mapped by kind;
// a CLIError is returned as is.
func FromError(err error) *CLIError {
	if err == nil {
		return nil
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}

	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		return &CLIError{Summary: err.Error(), ExitCode: ExitGeneral}
	}

	switch apiErr.Kind {
	case api.KindAuth:
		return &CLIError{
			Summary:    apiErr.UserMessage(),
			Suggestion: "Run 'propctl login' to start a session",
			ExitCode:   ExitAuthError,
		}
	case api.KindValidation:
		fields := apiErr.FieldMessages()
		summary := apiErr.Message
		if summary == "" {
			summary = "Datos inválidos"
		}
		return &CLIError{
			Summary:  summary,
			Fields:   fields,
			ExitCode: ExitValidationError,
		}
	case api.KindRemote:
		e := &CLIError{
			Summary:  apiErr.UserMessage(),
			ExitCode: ExitAPIError,
		}
		if apiErr.Status == http.StatusUnauthorized {
			e.Suggestion = "Run 'propctl login' to start a new session"
			e.ExitCode = ExitAuthError
		}
		return e
	default:
		e := &CLIError{
			Summary:  apiErr.UserMessage(),
			ExitCode: ExitAPIError,
		}
		if cause := apiErr.Unwrap(); cause != nil {
			e.Detail = cause.Error()
		}
		if apiErr.Status == 0 {
			e.Suggestion = "Check that the backend is reachable (api.base_url, PROPCTL_API_URL)"
		}
		return e
	}
}

// FormatError prints a structured error message to stderr
func (p *Printer) FormatError(e *CLIError) {
	if p.useColors {
		color.New(color.FgRed, color.Bold).Fprintf(p.err, "Error: %s\n", e.Summary)
	} else {
		fmt.Fprintf(p.err, "[ERROR] %s\n", e.Summary)
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(p.err, "  %s: %s\n", p.Bold(k), e.Fields[k])
	}

	if e.Detail != "" {
		fmt.Fprintf(p.err, "  Cause: %s\n", e.Detail)
	}
	if e.Suggestion != "" {
		if p.useColors {
			color.New(color.FgCyan).Fprintf(p.err, "  Suggestion: %s\n", e.Suggestion)
		} else {
			fmt.Fprintf(p.err, "  Suggestion: %s\n", e.Suggestion)
		}
	}
}

// FormatAPIError renders err and returns the exit code to use
func (p *Printer) FormatAPIError(err error) int {
	e := FromError(err)
	if e == nil {
		return ExitSuccess
	}
	p.FormatError(e)
	return e.ExitCode
}
