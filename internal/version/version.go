// Package version holds build fingerprints for the wgsla CLI, overridden
// at build time via -ldflags.
package version

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// VersionString returns Version, used as the cobra root command's
// --version output.
func VersionString() string {
	return Version
}
