package git

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// RawCommit is a commit as stored in the repository, before normalization.
type RawCommit struct {
	Hash          string
	AuthorName    string
	CommitterName string
	Message       string
	// When is the committer timestamp.
	When time.Time
}

// Range is a parsed revision range. Commits reachable from From are excluded;
// an empty From walks the whole history reachable from To.
type Range struct {
	From string
	To   string
}

// ParseRange parses "A..B", "A.." and "..B". The empty expression selects
// the history reachable from HEAD. Symmetric ranges ("A...B") and single
// revisions are not ranges and fail with ErrInvalidRange.
func ParseRange(expr string) (Range, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Range{To: "HEAD"}, nil
	}

	if strings.Contains(expr, "...") {
		return Range{}, fmt.Errorf("%w %q: symmetric ranges are not supported", ErrInvalidRange, expr)
	}

	from, to, ok := strings.Cut(expr, "..")
	if !ok {
		return Range{}, fmt.Errorf("%w %q: expected <from>..<to>", ErrInvalidRange, expr)
	}

	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from == "" && to == "" {
		return Range{}, fmt.Errorf("%w %q: both sides are empty", ErrInvalidRange, expr)
	}
	if strings.Contains(to, "..") {
		return Range{}, fmt.Errorf("%w %q: more than one '..'", ErrInvalidRange, expr)
	}
	if to == "" {
		to = "HEAD"
	}

	return Range{From: from, To: to}, nil
}

// Walk calls fn for every commit selected by expr, oldest first.
// Commits are ordered by committer time. An error returned by fn stops the
// walk and is returned unchanged.
func (r *Repository) Walk(expr string, fn func(RawCommit) error) error {
	commits, err := r.Commits(expr)
	if err != nil {
		return err
	}

	for _, c := range commits {
		if err := fn(c); err != nil {
			return err
		}
	}
	return nil
}

// Commits returns the commits selected by expr, oldest first.
func (r *Repository) Commits(expr string) ([]RawCommit, error) {
	rng, err := ParseRange(expr)
	if err != nil {
		return nil, err
	}

	to, err := r.resolve(rng.To)
	if err != nil {
		if expr == "" {
			return nil, fmt.Errorf("%w %s: %v", ErrResolveFailed, rng.To, err)
		}
		return nil, fmt.Errorf("%w %q: resolving %s: %v", ErrInvalidRange, expr, rng.To, err)
	}

	excluded := map[plumbing.Hash]bool{}
	if rng.From != "" {
		from, err := r.resolve(rng.From)
		if err != nil {
			return nil, fmt.Errorf("%w %q: resolving %s: %v", ErrInvalidRange, expr, rng.From, err)
		}
		if err := r.each(from, func(c *object.Commit) error {
			excluded[c.Hash] = true
			return nil
		}); err != nil {
			return nil, err
		}
	}

	var newestFirst []RawCommit
	err = r.each(to, func(c *object.Commit) error {
		if excluded[c.Hash] {
			return nil
		}
		newestFirst = append(newestFirst, toRaw(c))
		return nil
	})
	if err != nil {
		return nil, err
	}

	commits := make([]RawCommit, len(newestFirst))
	for i, c := range newestFirst {
		commits[len(newestFirst)-1-i] = c
	}

	logDebug("[git] Commits(%q): %d commits, %d excluded", expr, len(commits), len(excluded))
	return commits, nil
}

// CheckRange verifies that both sides of expr resolve to commits without
// walking the history.
func (r *Repository) CheckRange(expr string) error {
	rng, err := ParseRange(expr)
	if err != nil {
		return err
	}
	for _, rev := range []string{rng.From, rng.To} {
		if rev == "" {
			continue
		}
		if _, err := r.resolve(rev); err != nil {
			if expr == "" {
				return fmt.Errorf("%w %s: %v", ErrResolveFailed, rev, err)
			}
			return fmt.Errorf("%w %q: resolving %s: %v", ErrInvalidRange, expr, rev, err)
		}
	}
	return nil
}

// each iterates the history reachable from from, newest first by committer time.
func (r *Repository) each(from plumbing.Hash, fn func(*object.Commit) error) error {
	iter, err := r.repo.Log(&git.LogOptions{
		From:  from,
		Order: git.LogOrderCommitterTime,
	})
	if err != nil {
		return fmt.Errorf("%w %s: %v", ErrCommitLookup, from, err)
	}
	defer iter.Close()

	for {
		c, err := iter.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: walking history from %s: %v", ErrCommitLookup, from, err)
		}
		if err := fn(c); err != nil {
			return err
		}
	}
}

// resolve turns a revision into a commit hash, peeling annotated tags.
func (r *Repository) resolve(rev string) (plumbing.Hash, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return plumbing.ZeroHash, err
	}
	return *hash, nil
}

func toRaw(c *object.Commit) RawCommit {
	return RawCommit{
		Hash:          c.Hash.String(),
		AuthorName:    c.Author.Name,
		CommitterName: c.Committer.Name,
		Message:       c.Message,
		When:          c.Committer.When,
	}
}
