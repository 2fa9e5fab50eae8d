package errors

import (
	"fmt"
	"strings"
)

// Constructors for the failures reported by the changelog commands. Each
// one names the offending file, repository or flag and how to fix it.

// ConfigFileNotFound creates an error for missing config file.
func ConfigFileNotFound(path string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("config file not found: %s", path),
		"Run 'changelog init' to create a default changelog.toml",
		"Or point to an existing file with: changelog -c <path>",
	)
}

// ConfigInvalid creates an error for a config file that fails to load or validate.
func ConfigInvalid(path string, err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		fmt.Sprintf("invalid config file %s", path),
		"Check the file for syntax errors and required keys (kinds, repositories)",
		"Validate with: changelog check -c "+path,
	)
}

// ConfigAlreadyExists creates an error when init would overwrite a config file.
func ConfigAlreadyExists(path string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("config file already exists: %s", path),
		"Use --force to overwrite it",
		"Or choose another location with: changelog init -c <path>",
	)
}

// RepositoryNotFound creates an error when a configured path is not inside a git repository.
func RepositoryNotFound(name, path string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("repository '%s' is not a git repository: %s", name, path),
		"Check the 'path' of this repository in the config file",
		"Relative paths are resolved against the config file's directory",
	)
}

// InvalidRange creates an error for a revision range that cannot be walked.
func InvalidRange(name, rng string, err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		fmt.Sprintf("repository '%s' has an invalid range %q", name, rng),
		"Use one of the forms A..B, A.. or ..B",
		"Both sides must name existing revisions (tags, branches or hashes)",
	)
}

// InvalidLinkTemplate creates an error for a link template that cannot be expanded.
func InvalidLinkTemplate(name string, err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		fmt.Sprintf("repository '%s' has an invalid link template", name),
		"The only placeholder is {hash}, e.g. https://github.com/owner/repo/commit/{hash}",
		"Write literal braces as {{ and }}",
	)
}

// GenerationFailed creates an error when the changelog could not be built.
func GenerationFailed(err error) *CLIError {
	return WrapWithMessage(err, Generation,
		"changelog generation failed",
		"No output file was written",
		"Re-run with -vvv to see skipped commits and tags",
	)
}

// UnknownRepository creates an error for a repository name not present in the config.
func UnknownRepository(name string, available []string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("unknown repository: %s", name),
		"Configured repositories: "+strings.Join(available, ", "),
	)
}

// InvalidFlagCombination creates an error for incompatible flag combinations.
func InvalidFlagCombination(flags string, reason string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("invalid flag combination: %s", flags),
		reason,
		"Use 'changelog <command> --help' to see valid options",
	)
}

// FileNotWritable creates an error when a file cannot be written.
func FileNotWritable(path string, err error) *CLIError {
	return WrapWithMessage(err, Generation,
		fmt.Sprintf("cannot write to file: %s", path),
		"Check file permissions: ls -la "+path,
		"Ensure parent directory exists and is writable",
	)
}
