package changelog

import (
	"github.com/ariel-frischer/changelog/internal/config"
	"github.com/ariel-frischer/changelog/internal/diag"
	"github.com/ariel-frischer/changelog/internal/git"
)

// History is the read access to a repository the walker needs.
// *git.Repository implements it.
type History interface {
	TagIndex(sink diag.Sink) (git.TagIndex, error)
	Walk(expr string, fn func(git.RawCommit) error) error
}

// Walker assembles the release groups of one repository.
type Walker struct {
	Repository      config.Repository
	Kinds           map[string]string
	ScopePolicy     config.ScopePolicy
	UnreleasedLabel string
	Sink            diag.Sink
}

// NewWalker returns a walker for repo using the shared settings of cfg.
func NewWalker(cfg *config.Configuration, repo config.Repository, sink diag.Sink) *Walker {
	return &Walker{
		Repository:      repo,
		Kinds:           cfg.Kinds,
		ScopePolicy:     cfg.ScopePolicy,
		UnreleasedLabel: cfg.UnreleasedLabel,
		Sink:            sink,
	}
}

// Walk builds the tag index, then visits the configured range oldest first.
// Accepted commits accumulate per kind label; an accepted commit that carries
// a release tag closes the current group under that tag's name. Commits left
// after the last boundary form a trailing group named UnreleasedLabel.
// The returned tags are newest first.
func (w *Walker) Walk(h History) (Repository, error) {
	sink := diag.WithRepository(w.Sink, w.Repository.Name)
	result := Repository{Name: w.Repository.Name}

	index, err := h.TagIndex(sink)
	if err != nil {
		return result, err
	}

	classifier := NewClassifier(w.Kinds, w.Repository.Scopes, w.ScopePolicy, sink)
	current := newBuckets()
	tags := make([]Tag, 0)

	err = h.Walk(w.Repository.Range, func(raw git.RawCommit) error {
		commit, err := Resolve(w.Repository, raw)
		if err != nil {
			return err
		}

		accepted, ok := classifier.Classify(commit)
		if !ok {
			if name, tagged := index.Lookup(raw.Hash); tagged {
				sink.Emit(diag.Event{
					Level:   diag.LevelWarn,
					Reason:  diag.ReasonSkippedBoundary,
					Message: "tagged commit was skipped, its changes roll into the next release",
					Hash:    commit.Hash,
					Tag:     name,
					Subject: commit.Message,
				})
			}
			return nil
		}

		current.add(accepted.Label, accepted.Commit)

		if name, tagged := index.Lookup(raw.Hash); tagged {
			tags = append(tags, current.flush(name))
		}
		return nil
	})
	if err != nil {
		return result, err
	}

	if !current.empty() {
		tags = append(tags, current.flush(w.UnreleasedLabel))
	}

	for i, j := 0, len(tags)-1; i < j; i, j = i+1, j-1 {
		tags[i], tags[j] = tags[j], tags[i]
	}
	result.Tags = tags
	return result, nil
}
