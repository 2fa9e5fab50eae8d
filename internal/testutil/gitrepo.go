// Package testutil provides test utilities and helpers for changelog tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/require"
)

// DefaultAuthor is the author name used when a commit does not override it.
const DefaultAuthor = "Jane Doe"

// Epoch is the committer time of the first fixture commit. Each following
// commit is one hour later, so committer-time ordering is unambiguous.
var Epoch = time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)

// GitRepo builds a repository history commit by commit.
type GitRepo struct {
	t        testing.TB
	Repo     *git.Repository
	fs       billy.Filesystem
	worktree *git.Worktree
	clock    time.Time
	count    int
}

// CommitOption customizes a fixture commit.
type CommitOption func(*commitSpec)

type commitSpec struct {
	author    string
	committer string
	when      time.Time
}

// WithAuthor sets the author name. An empty name records an empty author.
func WithAuthor(name string) CommitOption {
	return func(s *commitSpec) { s.author = name }
}

// WithCommitter sets the committer name independently from the author.
func WithCommitter(name string) CommitOption {
	return func(s *commitSpec) { s.committer = name }
}

// NewMemoryRepo creates a repository backed by in-memory storage and worktree.
func NewMemoryRepo(t testing.TB) *GitRepo {
	t.Helper()

	fs := memfs.New()
	repo, err := git.Init(memory.NewStorage(), fs)
	require.NoError(t, err, "failed to initialize in-memory repository")

	return newGitRepo(t, repo, fs)
}

// NewDiskRepo creates a repository in dir on the real filesystem.
func NewDiskRepo(t testing.TB, dir string) *GitRepo {
	t.Helper()

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err, "failed to initialize repository at %s", dir)

	wt, err := repo.Worktree()
	require.NoError(t, err, "failed to get worktree")

	return newGitRepo(t, repo, wt.Filesystem)
}

func newGitRepo(t testing.TB, repo *git.Repository, fs billy.Filesystem) *GitRepo {
	t.Helper()

	wt, err := repo.Worktree()
	require.NoError(t, err, "failed to get worktree")

	return &GitRepo{
		t:        t,
		Repo:     repo,
		fs:       fs,
		worktree: wt,
		clock:    Epoch,
	}
}

// Commit records a commit touching a fresh file and returns its hash.
func (g *GitRepo) Commit(message string, opts ...CommitOption) plumbing.Hash {
	g.t.Helper()

	spec := commitSpec{author: DefaultAuthor, committer: DefaultAuthor, when: g.clock}
	for _, opt := range opts {
		opt(&spec)
	}

	g.count++
	name := fmt.Sprintf("file-%03d.txt", g.count)
	require.NoError(g.t, util.WriteFile(g.fs, name, []byte(message), 0o644), "failed to write %s", name)

	_, err := g.worktree.Add(name)
	require.NoError(g.t, err, "failed to stage %s", name)

	hash, err := g.worktree.Commit(message, &git.CommitOptions{
		Author:    &object.Signature{Name: spec.author, Email: "dev@example.com", When: spec.when},
		Committer: &object.Signature{Name: spec.committer, Email: "dev@example.com", When: spec.when},
	})
	require.NoError(g.t, err, "failed to commit %q", message)

	g.clock = spec.when.Add(time.Hour)
	return hash
}

// AnnotatedTag creates a tag object named name pointing at hash.
func (g *GitRepo) AnnotatedTag(name string, hash plumbing.Hash) {
	g.t.Helper()

	_, err := g.Repo.CreateTag(name, hash, &git.CreateTagOptions{
		Tagger:  &object.Signature{Name: DefaultAuthor, Email: "dev@example.com", When: g.clock},
		Message: "Release " + name,
	})
	require.NoError(g.t, err, "failed to create annotated tag %s", name)
}

// LightweightTag creates a bare tag reference named name pointing at hash.
func (g *GitRepo) LightweightTag(name string, hash plumbing.Hash) {
	g.t.Helper()

	ref := plumbing.NewHashReference(plumbing.NewTagReferenceName(name), hash)
	require.NoError(g.t, g.Repo.Storer.SetReference(ref), "failed to create lightweight tag %s", name)
}
