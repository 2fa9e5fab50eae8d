package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/changelog/internal/changelog"
	"github.com/ariel-frischer/changelog/internal/config"
	clierrors "github.com/ariel-frischer/changelog/internal/errors"
	"github.com/ariel-frischer/changelog/internal/git"
)

// repositoryOpener opens a repository for check. Replaced in tests.
type repositoryOpener func(path string) (*git.Repository, error)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configuration and every configured repository",
	Long: `Validate the configuration without writing anything.

The config file is loaded and validated, every repository path is opened,
the revision range is resolved and the link template is expanded against a
sample hash. Returns exit code 0 when everything is usable.`,
	Example: `  changelog check
  changelog check -c release/changelog.yaml`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runCheck(globals, git.Open, cmd.OutOrStdout())
	},
}

func init() {
	checkCmd.GroupID = GroupSetup
	rootCmd.AddCommand(checkCmd)
}

func runCheck(opts globalOptions, open repositoryOpener, w io.Writer) error {
	cfg, err := loadConfiguration(opts)
	if err != nil {
		return err
	}

	ok := color.New(color.FgGreen).SprintFunc()
	for _, repo := range cfg.Repositories {
		if err := checkRepository(repo, open); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s %s (%s)\n", ok("✓"), repo.Name, repo.Path)
	}

	fmt.Fprintln(w, "Configuration is healthy")
	return nil
}

// sampleHash is expanded into link templates to prove they are well formed.
const sampleHash = "0123456789abcdef0123456789abcdef01234567"

func checkRepository(repo config.Repository, open repositoryOpener) error {
	r, err := open(repo.Path)
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotFound) {
			return clierrors.RepositoryNotFound(repo.Name, repo.Path)
		}
		return clierrors.WrapWithMessage(err, clierrors.Configuration,
			fmt.Sprintf("cannot open repository '%s'", repo.Name))
	}

	if err := r.CheckRange(repo.Range); err != nil {
		return clierrors.InvalidRange(repo.Name, repo.Range, err)
	}

	if repo.Link != "" {
		if _, err := changelog.FormatLink(repo.Link, sampleHash); err != nil {
			return clierrors.InvalidLinkTemplate(repo.Name, err)
		}
	}
	return nil
}
