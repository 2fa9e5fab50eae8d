package cli

import (
	clierrors "github.com/ariel-frischer/changelog/internal/errors"
)

// Exit codes for the changelog CLI
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitGenerationFailed indicates a repository could not be processed or
	// the document could not be written
	ExitGenerationFailed = int(clierrors.Generation)

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = int(clierrors.Argument)

	// ExitConfigError indicates a missing, malformed or invalid configuration
	ExitConfigError = int(clierrors.Configuration)
)

// ExitCode maps an error returned by Execute to a process exit code.
// Errors that are not CLIErrors come from cobra's argument parsing.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		return cliErr.Category.ExitCode()
	}
	return ExitInvalidArguments
}
