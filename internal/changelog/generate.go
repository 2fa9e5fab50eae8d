package changelog

import (
	"fmt"

	"github.com/ariel-frischer/changelog/internal/config"
	"github.com/ariel-frischer/changelog/internal/diag"
	"github.com/ariel-frischer/changelog/internal/git"
)

// Opener opens the history of the repository at path.
type Opener func(path string) (History, error)

// OpenRepository opens an on-disk repository with go-git.
func OpenRepository(path string) (History, error) {
	repo, err := git.Open(path)
	if err != nil {
		return nil, err
	}
	return repo, nil
}

// Progress is notified around the processing of each repository.
type Progress interface {
	Start(name string)
	Stop(name string, err error)
}

// Generator runs the pipeline over every configured repository.
type Generator struct {
	Open     Opener
	Sink     diag.Sink
	Progress Progress
}

// NewGenerator returns a generator reading on-disk repositories.
func NewGenerator(sink diag.Sink) *Generator {
	return &Generator{Open: OpenRepository, Sink: sink}
}

// Generate processes the repositories of cfg in order. The first failure
// aborts the run and no changelog is returned.
func (g *Generator) Generate(cfg *config.Configuration) (*Changelog, error) {
	out := &Changelog{Repositories: make([]Repository, 0, len(cfg.Repositories))}
	for _, repo := range cfg.Repositories {
		result, err := g.Repository(cfg, repo)
		if err != nil {
			return nil, err
		}
		out.Repositories = append(out.Repositories, result)
	}
	return out, nil
}

// Repository builds the section of a single configured repository.
// Errors are wrapped in a *RepositoryError.
func (g *Generator) Repository(cfg *config.Configuration, repo config.Repository) (Repository, error) {
	sink := diag.WithRepository(g.Sink, repo.Name)
	if g.Progress != nil {
		g.Progress.Start(repo.Name)
	}

	sink.Emit(diag.Event{
		Level:   diag.LevelInfo,
		Reason:  diag.ReasonRepositoryStart,
		Message: fmt.Sprintf("processing repository at %s", repo.Path),
	})

	result, err := g.walk(cfg, repo, sink)
	if g.Progress != nil {
		g.Progress.Stop(repo.Name, err)
	}
	if err != nil {
		return Repository{}, &RepositoryError{Name: repo.Name, Err: err}
	}

	commits := 0
	for _, t := range result.Tags {
		commits += t.Count()
	}
	sink.Emit(diag.Event{
		Level:   diag.LevelInfo,
		Reason:  diag.ReasonRepositoryDone,
		Message: fmt.Sprintf("%d releases, %d commits", len(result.Tags), commits),
	})
	return result, nil
}

func (g *Generator) walk(cfg *config.Configuration, repo config.Repository, sink diag.Sink) (Repository, error) {
	open := g.Open
	if open == nil {
		open = OpenRepository
	}

	history, err := open(repo.Path)
	if err != nil {
		return Repository{}, err
	}
	return NewWalker(cfg, repo, sink).Walk(history)
}
