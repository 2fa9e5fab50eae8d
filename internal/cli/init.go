package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/changelog/internal/config"
	clierrors "github.com/ariel-frischer/changelog/internal/errors"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter changelog.toml",
	Long: `Create a commented starter configuration at the --config path.

The file maps the common conventional commit kinds to section labels and
declares the current directory as the only repository. An existing file is
left unchanged unless --force is given.`,
	Example: `  changelog init
  changelog init -c release/changelog.toml --force`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runInit(globals.ConfigPath, initForce, cmd.OutOrStdout())
	},
}

func init() {
	initCmd.GroupID = GroupSetup
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
}

func runInit(path string, force bool, w io.Writer) error {
	if _, err := os.Stat(path); err == nil && !force {
		return clierrors.ConfigAlreadyExists(path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return clierrors.FileNotWritable(path, err)
	}
	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return clierrors.FileNotWritable(path, err)
	}

	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(w, "%s Created %s\n", green("✓"), path)
	fmt.Fprintln(w, "  Edit the kinds and repositories, then run: changelog check")
	return nil
}
