package cli

import "fmt"

// Exit codes for the relnotes CLI
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitRuntimeError indicates an unexpected failure during execution
	ExitRuntimeError = 1

	// ExitVersionNotFound indicates the requested release is not in the change log
	ExitVersionNotFound = 2

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitInputError indicates the change-log source could not be read
	ExitInputError = 4

	// ExitCheckFailed indicates the check command found problems
	ExitCheckFailed = 5
)

// ExitError carries a process exit code up to Execute. The triggering
// message has already been written to stderr by the command, so the error
// itself is not displayed.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// NewExitError creates an ExitError for the given code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}
