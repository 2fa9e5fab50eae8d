// Package errors defines the failures the changelog CLI reports to users.
// A CLIError carries a category, which is also the process exit code, and
// the remediation steps printed under its message.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory classifies a CLIError. Its value is the exit code of the process.
type ErrorCategory int

const (
	// Generation errors: a repository could not be processed or the output
	// could not be rendered or written.
	Generation ErrorCategory = 1
	// Argument errors: unknown commands or flags, bad arguments.
	Argument ErrorCategory = 3
	// Configuration errors: a missing, malformed or invalid config file, or a
	// configured repository that cannot be used.
	Configuration ErrorCategory = 6
)

func (c ErrorCategory) String() string {
	switch c {
	case Generation:
		return "Generation Error"
	case Argument:
		return "Argument Error"
	case Configuration:
		return "Configuration Error"
	default:
		return "Error"
	}
}

// ExitCode returns the process exit code for c.
func (c ErrorCategory) ExitCode() int {
	return int(c)
}

// CLIError is a failure shown to the user with steps to resolve it.
type CLIError struct {
	Category    ErrorCategory
	Message     string
	Remediation []string
	// Usage is the use line of the command that failed. The command tree
	// fills it in for argument errors.
	Usage string
}

func (e *CLIError) Error() string {
	return e.Message
}

// NewArgumentError returns an argument error.
func NewArgumentError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Argument, Message: message, Remediation: remediation}
}

// NewConfigError returns a configuration error.
func NewConfigError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Configuration, Message: message, Remediation: remediation}
}

// Wrap converts err into a CLIError of category, keeping its message.
func Wrap(err error, category ErrorCategory, remediation ...string) *CLIError {
	return &CLIError{Category: category, Message: err.Error(), Remediation: remediation}
}

// WrapWithMessage converts err into a CLIError whose message is prefixed with message.
func WrapWithMessage(err error, category ErrorCategory, message string, remediation ...string) *CLIError {
	return &CLIError{
		Category:    category,
		Message:     fmt.Sprintf("%s: %v", message, err),
		Remediation: remediation,
	}
}

// AsCLIError returns the CLIError in err's chain, or nil.
func AsCLIError(err error) *CLIError {
	var cliErr *CLIError
	if stderrors.As(err, &cliErr) {
		return cliErr
	}
	return nil
}
