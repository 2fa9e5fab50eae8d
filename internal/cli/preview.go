package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/changelog/internal/changelog"
	"github.com/ariel-frischer/changelog/internal/config"
	clierrors "github.com/ariel-frischer/changelog/internal/errors"
	"github.com/ariel-frischer/changelog/internal/logging"
	"github.com/ariel-frischer/changelog/internal/progress"
	"github.com/ariel-frischer/changelog/internal/render"
)

var previewPlainFlag bool

var previewCmd = &cobra.Command{
	Use:   "preview [repository]",
	Short: "Show the changelog in the terminal",
	Long: `Show the changelog in the terminal without writing a file.

Without an argument every configured repository is shown. Kind sections are
colored per label; use --plain for output without colors or icons.`,
	Example: `  changelog preview
  changelog preview api
  changelog preview --plain | less`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		return runPreview(globals, name, previewPlainFlag, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	previewCmd.GroupID = GroupCore
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().BoolVar(&previewPlainFlag, "plain", false, "Plain text output (no colors/icons)")
}

func runPreview(opts globalOptions, name string, plain bool, stdout, stderr io.Writer) error {
	cfg, err := loadConfiguration(opts)
	if err != nil {
		return err
	}

	generator := changelog.NewGenerator(logging.Sink(newLogger(stderr, opts.Verbosity)))

	var repos []changelog.Repository
	if name != "" {
		repo, ok := cfg.Repository(name)
		if !ok {
			return clierrors.UnknownRepository(name, repositoryNames(cfg))
		}
		section, err := generator.Repository(cfg, repo)
		if err != nil {
			return clierrors.GenerationFailed(err)
		}
		repos = []changelog.Repository{section}
	} else {
		doc, err := generator.Generate(cfg)
		if err != nil {
			return clierrors.GenerationFailed(err)
		}
		repos = doc.Repositories
	}

	formatOpts := render.FormatOptions{Plain: plain}
	if f, ok := stdout.(*os.File); ok {
		caps := progress.DetectTerminalCapabilities(f)
		formatOpts.Plain = plain || !caps.SupportsColor
		formatOpts.MaxWidth = caps.Width
	}

	if err := render.FormatTerminal(repos, stdout, formatOpts); err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Generation, "formatting preview")
	}
	return nil
}

func repositoryNames(cfg *config.Configuration) []string {
	names := make([]string, 0, len(cfg.Repositories))
	for _, r := range cfg.Repositories {
		names = append(names, r.Name)
	}
	return names
}
