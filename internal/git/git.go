// Package git reads release markers and commit history for changelog generation.
// It uses go-git for all repository access, so no git CLI installation is needed.
//
// Only annotated tags are release boundaries. A lightweight tag is a bare
// reference to a commit without its own tag object; it carries no release
// metadata and is skipped with a diagnostic.
package git

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Repository is a read-only handle on a git repository.
type Repository struct {
	repo *git.Repository
}

// Open discovers the repository containing path, walking up the directory
// tree until a .git directory is found. An empty path means the current
// working directory.
func Open(path string) (*Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w at %s", ErrRepositoryNotFound, path)
		}
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	logDebug("[git] repository opened successfully")
	return &Repository{repo: repo}, nil
}

// Wrap returns a Repository backed by an already opened go-git repository.
// Useful with in-memory storage.
func Wrap(repo *git.Repository) *Repository {
	return &Repository{repo: repo}
}
