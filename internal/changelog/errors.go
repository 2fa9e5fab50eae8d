package changelog

import (
	"errors"
	"fmt"
)

// ErrMissingAuthor is returned when a commit has neither an author nor a committer name.
var ErrMissingAuthor = errors.New("no such author or committer")

// ErrMissingMessage is returned when a commit has neither a summary nor a message.
var ErrMissingMessage = errors.New("no such message or summary")

// ErrLinkFormat is returned when a link template cannot be expanded.
var ErrLinkFormat = errors.New("could not format commit link")

// CommitError attaches the offending commit hash to a resolution failure.
type CommitError struct {
	Hash string
	Err  error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("could not parse commit '%s': %v", e.Hash, e.Err)
}

func (e *CommitError) Unwrap() error {
	return e.Err
}

// RepositoryError attaches the configured repository name to a fatal failure.
type RepositoryError struct {
	Name string
	Err  error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("could not process repository '%s': %v", e.Name, e.Err)
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// IsRepositoryError returns true if err wraps a RepositoryError.
func IsRepositoryError(err error) bool {
	var re *RepositoryError
	return errors.As(err, &re)
}
