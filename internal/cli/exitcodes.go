package cli

import (
	"errors"

	"github.com/yaklabco/adocblocks/pkg/config"
	"github.com/yaklabco/adocblocks/pkg/runner"
)

// Exit codes for adocblocks.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitDiagnosticErrors indicates the check found error diagnostics.
	ExitDiagnosticErrors = 1

	// ExitDiagnosticWarnings indicates the check found warnings in strict mode.
	ExitDiagnosticWarnings = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrDiagnosticsFound signals a check that found reportable diagnostics.
// The diagnostics were already written, so it is not logged again.
var ErrDiagnosticsFound = errors.New("diagnostics found")

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: code, Err: err}
}

// ExitCode maps a command error to a process exit code. Errors without an
// ExitError in their chain are internal errors.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitInternalError
}

// ExitCodeFromResult determines the exit code of a check. Error diagnostics
// win over unreadable files, which win over warnings in strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	switch {
	case result.Stats.BySeverity[config.SeverityError] > 0:
		return ExitDiagnosticErrors
	case result.Stats.FilesErrored > 0:
		return ExitIOError
	case strict && result.HasWarnings():
		return ExitDiagnosticWarnings
	default:
		return ExitSuccess
	}
}
