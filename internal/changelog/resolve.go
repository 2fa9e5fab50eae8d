package changelog

import (
	"strings"

	"github.com/ariel-frischer/changelog/internal/config"
	"github.com/ariel-frischer/changelog/internal/git"
)

// dateLayout is the UTC calendar date stored on every commit.
const dateLayout = "2006-01-02"

// shortHashLen is the length of the display hash.
const shortHashLen = 7

// Resolve normalizes a raw commit for repo. The link, when configured, is
// built from the full hash; the stored hash is truncated afterwards.
func Resolve(repo config.Repository, raw git.RawCommit) (Commit, error) {
	author := raw.AuthorName
	if author == "" {
		author = raw.CommitterName
	}
	if author == "" {
		return Commit{}, &CommitError{Hash: raw.Hash, Err: ErrMissingAuthor}
	}

	message := summary(raw.Message)
	if message == "" {
		return Commit{}, &CommitError{Hash: raw.Hash, Err: ErrMissingMessage}
	}

	commit := Commit{
		Hash:    raw.Hash,
		Message: message,
		Author:  author,
		Date:    raw.When.UTC().Format(dateLayout),
	}

	if repo.Link != "" {
		link, err := FormatLink(repo.Link, raw.Hash)
		if err != nil {
			return Commit{}, &CommitError{Hash: raw.Hash, Err: err}
		}
		commit.Link = link
	}

	if len(commit.Hash) > shortHashLen {
		commit.Hash = commit.Hash[:shortHashLen]
	}
	return commit, nil
}

// summary returns the first non-empty line of message, or the whole trimmed
// message when it has no distinguishable first line.
func summary(message string) string {
	first, _, _ := strings.Cut(strings.TrimLeft(message, "\r\n"), "\n")
	if s := strings.TrimSpace(first); s != "" {
		return s
	}
	return strings.TrimSpace(message)
}
