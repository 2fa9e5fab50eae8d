// Package build provides version and build information for changelog.
// This package intentionally has no dependencies on other internal packages
// to avoid import cycles.
package build

var (
	// Version information - set via ldflags during build
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
	// Profile is "debug" for local builds and "release" for published binaries.
	Profile = "debug"
)

// IsDevBuild returns true if running a development build (not a release).
func IsDevBuild() bool {
	return Version == "dev" || Profile != "release"
}
