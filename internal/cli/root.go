// Package cli implements the changelog command tree.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ariel-frischer/changelog/internal/build"
	"github.com/ariel-frischer/changelog/internal/changelog"
	"github.com/ariel-frischer/changelog/internal/config"
	clierrors "github.com/ariel-frischer/changelog/internal/errors"
	"github.com/ariel-frischer/changelog/internal/git"
	"github.com/ariel-frischer/changelog/internal/logging"
	"github.com/ariel-frischer/changelog/internal/progress"
	"github.com/ariel-frischer/changelog/internal/render"
)

// Command groups shown in help output.
const (
	GroupCore  = "core"
	GroupSetup = "setup"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	ConfigPath     string
	Verbosity      int
	SkipUserConfig bool
}

// generateOptions are the flags of the root generate command. Empty values
// leave the configured setting in place.
type generateOptions struct {
	globalOptions
	Output string
	Format string
}

var (
	globals     globalOptions
	outputFlag  string
	formatFlag  string
	formatNames = []string{config.FormatMarkdown, config.FormatHTML, config.FormatYAML, config.FormatJSON}
)

var rootCmd = &cobra.Command{
	Use:   "changelog",
	Short: "Generate a changelog from conventional commit history",
	Long: `Generate a release-grouped changelog from the git history of one or more repositories.

Commits whose subject follows the conventional commit grammar "kind(scope): text"
are grouped by release tag and by the label configured for their kind. Only
annotated tags mark releases; commits after the newest release are collected
under the unreleased label.

Configuration is read from changelog.toml (see 'changelog init'). Environment
variables prefixed with CHANGELOG_ override scalar settings, and flags override both.`,
	Example: `  # Write CHANGELOG.md using ./changelog.toml
  changelog

  # Use another config and write HTML
  changelog -c release/changelog.yaml -f html -o site/changes.html

  # Show skipped commits and tags while generating
  changelog -vvv`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		logger := newLogger(cmd.ErrOrStderr(), globals.Verbosity)
		git.SetDebugLogger(logging.GitDebug(logger))
		if build.IsDevBuild() {
			logger.Warn().Str("version", build.Version).Str("profile", build.Profile).Msg("running a development build")
		}
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runGenerate(generateOptions{
			globalOptions: globals,
			Output:        outputFlag,
			Format:        formatFlag,
		}, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupSetup, Title: "Setup Commands:"},
	)

	rootCmd.PersistentFlags().StringVarP(&globals.ConfigPath, "config", "c", config.ProjectConfigPath(), "Path to the configuration file")
	rootCmd.PersistentFlags().CountVarP(&globals.Verbosity, "verbose", "v", "Increase log verbosity (repeatable, -vvvvv for trace)")

	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output file (default CHANGELOG plus the format extension)")
	rootCmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Output format: markdown, html, yaml or json")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return clierrors.NewArgumentError(err.Error(), "Run '"+cmd.CommandPath()+" --help' to list the flags")
	})
}

// Execute runs the command tree and prints any failure to stderr.
func Execute() error {
	return execute(rootCmd)
}

// execute runs root and prints a failure as a CLIError. Argument errors get
// the use line of the command that failed.
func execute(root *cobra.Command) error {
	cmd, err := root.ExecuteC()
	if err == nil {
		return nil
	}

	cliErr := clierrors.AsCLIError(err)
	if cliErr == nil {
		// cobra reports unknown commands and bad argument counts as plain errors.
		cliErr = clierrors.Wrap(err, clierrors.Argument)
		err = cliErr
	}
	if cliErr.Category == clierrors.Argument && cliErr.Usage == "" && cmd != nil {
		cliErr.Usage = cmd.UseLine()
	}

	clierrors.Fprint(root.ErrOrStderr(), cliErr)
	return err
}

func runGenerate(opts generateOptions, stdout, stderr io.Writer) error {
	cfg, err := loadConfiguration(opts.globalOptions)
	if err != nil {
		return err
	}
	if err := applyOverrides(cfg, opts); err != nil {
		return err
	}

	logger := newLogger(stderr, opts.Verbosity)
	generator := changelog.NewGenerator(logging.Sink(logger))
	if f, ok := stderr.(*os.File); ok && opts.Verbosity == 0 {
		if caps := progress.DetectTerminalCapabilities(f); caps.IsTTY {
			generator.Progress = progress.NewDisplay(stderr, caps, len(cfg.Repositories))
		}
	}

	doc, err := generator.Generate(cfg)
	if err != nil {
		return clierrors.GenerationFailed(err)
	}

	path := cfg.OutputPath()
	if err := render.WriteFile(path, doc, render.OptionsFrom(cfg)); err != nil {
		return renderError(path, err)
	}

	logger.Info().Str("path", path).Str("format", cfg.Format).Msg("changelog written")
	fmt.Fprintf(stdout, "Wrote %s\n", path)
	return nil
}

// loadConfiguration loads the layered config and converts failures to CLIErrors.
func loadConfiguration(opts globalOptions) (*config.Configuration, error) {
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: opts.ConfigPath,
		SkipUserConfig:    opts.SkipUserConfig,
	})
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, clierrors.ConfigFileNotFound(opts.ConfigPath)
		}
		return nil, clierrors.ConfigInvalid(opts.ConfigPath, err)
	}
	return cfg, nil
}

func applyOverrides(cfg *config.Configuration, opts generateOptions) error {
	if opts.Format != "" {
		if !slices.Contains(formatNames, opts.Format) {
			return clierrors.NewArgumentError(
				fmt.Sprintf("unknown format: %s", opts.Format),
				"Use one of: "+strings.Join(formatNames, ", "),
			)
		}
		cfg.Format = opts.Format
	}
	if opts.Output != "" {
		cfg.Output = opts.Output
	}
	if cfg.Template != "" && (cfg.Format == config.FormatYAML || cfg.Format == config.FormatJSON) {
		return clierrors.InvalidFlagCombination(
			"format "+cfg.Format+" with template "+cfg.Template,
			"Custom templates apply to markdown and html output only",
		)
	}
	return nil
}

func renderError(path string, err error) error {
	switch {
	case errors.Is(err, render.ErrWrite):
		return clierrors.FileNotWritable(path, err)
	case errors.Is(err, render.ErrUnknownFormat), errors.Is(err, render.ErrTemplateUnsupported), errors.Is(err, render.ErrTemplate):
		return clierrors.Wrap(err, clierrors.Configuration,
			"Check the 'format' and 'template' settings in the config file")
	default:
		return clierrors.GenerationFailed(err)
	}
}

func newLogger(w io.Writer, verbosity int) zerolog.Logger {
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !term.IsTerminal(int(f.Fd()))
	}
	return logging.New(w, verbosity, noColor)
}
