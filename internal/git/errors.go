package git

import "errors"

// Sentinel errors for fatal history conditions. All are checkable with errors.Is.

// ErrRepositoryNotFound is returned when no repository exists at or above the given path.
var ErrRepositoryNotFound = errors.New("repository not found")

// ErrInvalidRange is returned when a revision range expression cannot be parsed
// or one of its sides does not resolve.
var ErrInvalidRange = errors.New("invalid revision range")

// ErrResolveFailed is returned when a revision (HEAD included) cannot be resolved
// to a commit.
var ErrResolveFailed = errors.New("cannot resolve revision")

// ErrTagEnumeration is returned when the tag references cannot be listed or a
// tag reference points to an object that does not exist.
var ErrTagEnumeration = errors.New("cannot enumerate tags")

// ErrCommitLookup is returned when a commit yielded by the history walk cannot be read.
var ErrCommitLookup = errors.New("cannot read commit")
